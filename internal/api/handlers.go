package api

import (
	"net/http"
	"strings"
	"sync"

	"ultrabot/server/config"
	"ultrabot/server/internal/assistant"
	"ultrabot/server/internal/auth"
	"ultrabot/server/internal/models"
	"ultrabot/server/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Assistant is the slice of the model client the handlers need directly:
// rebuilding the knowledge base after admin data changes.
type Assistant interface {
	Reconfigure(catalog []models.Property)
}

type Handler struct {
	store         *storage.Store
	pipeline      *assistant.Pipeline
	composer      *assistant.Composer
	assistant     Assistant
	adminPassword string
	logger        *logrus.Logger

	adminMu     sync.RWMutex
	adminTokens map[string]struct{}
}

func NewHandler(store *storage.Store, pipeline *assistant.Pipeline, composer *assistant.Composer, assist Assistant, adminPassword string, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &Handler{
		store:         store,
		pipeline:      pipeline,
		composer:      composer,
		assistant:     assist,
		adminPassword: adminPassword,
		logger:        logger,
		adminTokens:   make(map[string]struct{}),
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// RequireUser resolves the session user from the bearer token.
func (h *Handler) RequireUser(c *gin.Context) {
	token := bearerToken(c)
	user, ok := h.store.Sessions().Get(token)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Não autenticado."})
		return
	}
	c.Set("sessionToken", token)
	c.Set("sessionUser", user)
	c.Next()
}

// RequireAdmin gates the dashboard routes.
func (h *Handler) RequireAdmin(c *gin.Context) {
	token := bearerToken(c)
	h.adminMu.RLock()
	_, ok := h.adminTokens[token]
	h.adminMu.RUnlock()
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Não autorizado."})
		return
	}
	c.Next()
}

func sessionUser(c *gin.Context) models.User {
	return c.MustGet("sessionUser").(models.User)
}

func sessionToken(c *gin.Context) string {
	return c.MustGet("sessionToken").(string)
}

// --- Auth ---

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if msg := auth.ValidateSignup(req.Name, req.Email, req.Password); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if _, exists := h.store.GetUserByEmail(req.Email); exists {
		c.JSON(http.StatusConflict, gin.H{"error": auth.ErrEmailTaken})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	user := h.store.AddUser(req.Name, req.Email, hash)
	token := auth.NewSessionToken()
	h.store.Sessions().Put(token, user)

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user.Sanitized()})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if msg := auth.ValidateLogin(req.Email, req.Password); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	user, ok := h.store.GetUserByEmail(req.Email)
	if !ok || !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials})
		return
	}

	token := auth.NewSessionToken()
	h.store.Sessions().Put(token, user)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user.Sanitized()})
}

func (h *Handler) Logout(c *gin.Context) {
	h.store.Sessions().Clear(sessionToken(c))
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Password != h.adminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Senha incorreta."})
		return
	}

	token := auth.NewSessionToken()
	h.adminMu.Lock()
	h.adminTokens[token] = struct{}{}
	h.adminMu.Unlock()

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// --- Profile ---

func (h *Handler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, sessionUser(c).Sanitized())
}

type profileUpdateRequest struct {
	Name              *string                   `json:"name"`
	Phone             *string                   `json:"phone"`
	SearchPreferences *models.SearchPreferences `json:"searchPreferences"`
	IsVIP             *bool                     `json:"isVip"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user := sessionUser(c)
	h.store.UpdateUser(user.ID, func(u *models.User) {
		if req.Name != nil {
			u.Name = *req.Name
		}
		if req.Phone != nil {
			u.Phone = *req.Phone
		}
		if req.SearchPreferences != nil {
			u.SearchPreferences = req.SearchPreferences
		}
		if req.IsVIP != nil {
			u.IsVIP = *req.IsVIP
		}
	})

	updated, _ := h.store.Sessions().Get(sessionToken(c))
	c.JSON(http.StatusOK, updated.Sanitized())
}

type favoritesRequest struct {
	FavoritedProperties []string `json:"favoritedProperties"`
}

// UpdateFavorites replaces the favorites list wholesale, mirroring the
// continuous overwrite the chat session performs.
func (h *Handler) UpdateFavorites(c *gin.Context) {
	var req favoritesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.FavoritedProperties == nil {
		req.FavoritedProperties = []string{}
	}

	user := sessionUser(c)
	h.store.UpdateUser(user.ID, func(u *models.User) {
		u.FavoritedProperties = req.FavoritedProperties
	})
	c.JSON(http.StatusOK, gin.H{"favoritedProperties": req.FavoritedProperties})
}

// --- Catalog (client-facing) ---

// GetCatalogMeta returns the option lists search forms are built from.
func (h *Handler) GetCatalogMeta(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"propertyTypes": models.PropertyTypes,
		"markets":       config.GetMarketNames(),
		"locations":     h.store.GetLocations(),
	})
}

func (h *Handler) GetProperties(c *gin.Context) {
	if ids := c.Query("ids"); ids != "" {
		c.JSON(http.StatusOK, h.store.GetPropertiesByIDs(strings.Split(ids, ",")))
		return
	}
	c.JSON(http.StatusOK, h.store.GetProperties())
}

type compareRequest struct {
	PropertyIDs []string `json:"propertyIds"`
	Summary     string   `json:"summary"`
}

func (h *Handler) CompareProperties(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	properties := h.store.GetPropertiesByIDs(req.PropertyIDs)
	if len(properties) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least two known properties are required"})
		return
	}

	analysis := h.composer.CompareProperties(c.Request.Context(), properties, req.Summary)
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

// --- Contact form ---

type contactRequest struct {
	Name                string           `json:"name"`
	Email               string           `json:"email"`
	Phone               string           `json:"phone"`
	Message             string           `json:"message"`
	Summary             string           `json:"summary"`
	Score               models.LeadScore `json:"score"`
	Intent              assistant.Intent `json:"intent"`
	FavoritedProperties []string         `json:"favoritedProperties"`
}

func (h *Handler) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	score := req.Score
	if score == "" {
		score = models.ScoreCold
	}
	favorites := req.FavoritedProperties
	if req.Intent == assistant.IntentSell {
		favorites = []string{}
	}

	lead := h.store.AddLead(models.Lead{
		Name:                req.Name,
		Email:               req.Email,
		Phone:               req.Phone,
		Message:             req.Message,
		Summary:             req.Summary,
		Score:               score,
		FavoritedProperties: favorites,
	})

	confirmation := models.Message{
		ID:     "ai-confirmation-" + lead.ID,
		Text:   "Obrigado, " + req.Name + "! Seus dados foram recebidos. Um de nossos especialistas entrará em contato em breve.",
		Sender: models.SenderAI,
	}
	c.JSON(http.StatusCreated, gin.H{"lead": lead, "confirmation": confirmation})
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"iter"
	"net/http"
	"net/http/httptest"
	"testing"

	"ultrabot/server/internal/assistant"
	"ultrabot/server/internal/models"
	"ultrabot/server/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// scriptedModel replays one canned text response per ChatStream call.
type scriptedModel struct {
	responses []string
	calls     int
}

func (m *scriptedModel) ChatStream(_ context.Context, _ []*genai.Content) iter.Seq2[*genai.GenerateContentResponse, error] {
	text := ""
	if m.calls < len(m.responses) {
		text = m.responses[m.calls]
	}
	m.calls++
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		yield(&genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
			}},
		}, nil)
	}
}

type scriptedGenerator struct {
	text string
}

func (g *scriptedGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	return g.text, nil
}

type recordingAssistant struct {
	reconfigured int
	lastCatalog  []models.Property
}

func (r *recordingAssistant) Reconfigure(catalog []models.Property) {
	r.reconfigured++
	r.lastCatalog = catalog
}

type testEnv struct {
	router    *gin.Engine
	store     *storage.Store
	assistant *recordingAssistant
	model     *scriptedModel
}

func newTestEnv(t *testing.T, responses ...string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	store := storage.NewStore(storage.NewMemKV(), logger)

	model := &scriptedModel{responses: responses}
	pipeline := assistant.NewPipeline(model, store, logger)
	composer := assistant.NewComposer(&scriptedGenerator{text: "texto gerado"}, logger)
	recorder := &recordingAssistant{}

	handler := NewHandler(store, pipeline, composer, recorder, "admin123", logger)
	router := gin.New()
	SetupRoutes(router, handler)

	return &testEnv{router: router, store: store, assistant: recorder, model: model}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) signup(t *testing.T) string {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "Maria", "email": "maria@example.com", "password": "segredo",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) adminLogin(t *testing.T) string {
	t.Helper()
	w := e.request(t, http.MethodPost, "/api/admin/login", "", gin.H{"password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestSignupAndProfile(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t)

	w := env.request(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Maria", profile["name"])
	assert.NotContains(t, profile, "passwordHash")
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "", "email": "maria@example.com", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.signup(t)
	w = env.request(t, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "Outra", "email": "maria@example.com", "password": "x",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)

	w := env.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "maria@example.com", "password": "segredo",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "maria@example.com", "password": "errada",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "ninguem@example.com", "password": "x",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t)

	w := env.request(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUser(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodGet, "/api/me", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfilePartial(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t)

	w := env.request(t, http.MethodPut, "/api/me", token, gin.H{"phone": "62999990000"})
	require.Equal(t, http.StatusOK, w.Code)

	var profile map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "62999990000", profile["phone"])
	// Fields absent from the request are untouched.
	assert.Equal(t, "Maria", profile["name"])
}

func TestUpdateFavorites(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t)

	w := env.request(t, http.MethodPut, "/api/favorites", token, gin.H{
		"favoritedProperties": []string{"PROP-1", "PROP-2"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	user, _ := env.store.GetUserByEmail("maria@example.com")
	assert.Equal(t, []string{"PROP-1", "PROP-2"}, user.FavoritedProperties)
}

func TestGetPropertiesWithFilter(t *testing.T) {
	env := newTestEnv(t)
	a := env.store.AddProperty(models.Property{Name: "A"})
	env.store.AddProperty(models.Property{Name: "B"})

	w := env.request(t, http.MethodGet, "/api/properties", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	w = env.request(t, http.MethodGet, "/api/properties?ids="+a.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var filtered []models.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "A", filtered[0].Name)
}

func TestGetCatalogMeta(t *testing.T) {
	env := newTestEnv(t)
	env.store.AddLocation("Goiânia, GO")

	w := env.request(t, http.MethodGet, "/api/catalog/meta", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var meta struct {
		PropertyTypes []models.PropertyType `json:"propertyTypes"`
		Markets       []string              `json:"markets"`
		Locations     []string              `json:"locations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meta))
	assert.Contains(t, meta.PropertyTypes, models.TypeApartment)
	assert.Contains(t, meta.Markets, "Goiânia, GO")
	assert.Equal(t, []string{"Goiânia, GO"}, meta.Locations)
}

func TestSubmitContact(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t)

	w := env.request(t, http.MethodPost, "/api/contact", token, gin.H{
		"name": "Maria", "email": "maria@example.com", "phone": "629",
		"summary": "quer comprar apartamento", "score": "hot",
		"favoritedProperties": []string{"PROP-1"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	leads := env.store.GetLeads()
	require.Len(t, leads, 1)
	assert.Equal(t, models.ScoreHot, leads[0].Score)
	assert.Equal(t, []string{"PROP-1"}, leads[0].FavoritedProperties)
	assert.Equal(t, models.LeadStatusNew, leads[0].Status)
}

func TestSubmitContact_SellIntentDropsFavorites(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t)

	w := env.request(t, http.MethodPost, "/api/contact", token, gin.H{
		"name": "João", "email": "joao@example.com",
		"summary": "quer vender a casa", "intent": "sell",
		"favoritedProperties": []string{"PROP-1"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	leads := env.store.GetLeads()
	require.Len(t, leads, 1)
	assert.Empty(t, leads[0].FavoritedProperties)
	// Score defaults to cold when omitted.
	assert.Equal(t, models.ScoreCold, leads[0].Score)
}

func TestChatStreamsAndPersists(t *testing.T) {
	env := newTestEnv(t, "Olá, Maria! [QUICK_REPLIES: Comprar | Vender]")
	token := env.signup(t)

	w := env.request(t, http.MethodPost, "/api/chat", token, gin.H{"text": "Oi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/event-stream")

	body := w.Body.String()
	assert.Contains(t, body, "event:delta")
	assert.Contains(t, body, "event:reply")
	assert.NotContains(t, body, "QUICK_REPLIES")

	user, _ := env.store.GetUserByEmail("maria@example.com")
	require.Len(t, user.ChatHistory, 2)
	assert.Equal(t, "Oi", user.ChatHistory[0].Text)
	assert.Equal(t, models.SenderUser, user.ChatHistory[0].Sender)
	assert.Equal(t, "Olá, Maria!", user.ChatHistory[1].Text)
	assert.Equal(t, models.SenderAI, user.ChatHistory[1].Sender)
}

func TestChatRequiresText(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t)

	w := env.request(t, http.MethodPost, "/api/chat", token, gin.H{"text": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatStartNewConversation(t *testing.T) {
	env := newTestEnv(t, "Olá! Sou o UltraBot. Como posso ajudar?")
	token := env.signup(t)

	w := env.request(t, http.MethodPost, "/api/chat/start", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.model.calls)

	user, _ := env.store.GetUserByEmail("maria@example.com")
	require.Len(t, user.ChatHistory, 2)
	assert.Equal(t, "Olá", user.ChatHistory[0].Text)
}

func TestChatStartReturningUser(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t)

	user, _ := env.store.GetUserByEmail("maria@example.com")
	env.store.UpdateUser(user.ID, func(u *models.User) {
		u.ChatHistory = []models.Message{{ID: "user-1", Text: "quero uma casa", Sender: models.SenderUser}}
	})

	w := env.request(t, http.MethodPost, "/api/chat/start", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	// The canned welcome-back greeting never hits the model.
	assert.Equal(t, 0, env.model.calls)

	var resp struct {
		Messages []models.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, assistant.WelcomeBackMessageID, resp.Messages[1].ID)
	assert.Contains(t, resp.Messages[1].Text, "Bem-vindo(a) de volta")
}

func TestGeolocationDenied(t *testing.T) {
	env := newTestEnv(t, "Sem problemas! Em qual cidade você procura?")
	token := env.signup(t)

	w := env.request(t, http.MethodPost, "/api/chat/geolocation", token, gin.H{
		"granted": false, "supported": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	user, _ := env.store.GetUserByEmail("maria@example.com")
	require.NotEmpty(t, user.ChatHistory)
	assert.Contains(t, user.ChatHistory[0].Text, "não permitiu")
}

func TestCompareProperties(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t)
	a := env.store.AddProperty(models.Property{Name: "A"})
	b := env.store.AddProperty(models.Property{Name: "B"})

	w := env.request(t, http.MethodPost, "/api/compare", token, gin.H{
		"propertyIds": []string{a.ID, b.ID},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "texto gerado")

	w = env.request(t, http.MethodPost, "/api/compare", token, gin.H{
		"propertyIds": []string{a.ID},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/admin/login", "", gin.H{"password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := env.adminLogin(t)
	w = env.request(t, http.MethodGet, "/api/admin/leads", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/admin/leads", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminPropertyCRUDReconfiguresAssistant(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminLogin(t)

	w := env.request(t, http.MethodPost, "/api/admin/properties", token, gin.H{
		"name": "Casa Nova", "location": "Goiânia, GO", "price": 750000,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, env.assistant.reconfigured)

	var created models.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.request(t, http.MethodPut, "/api/admin/properties/"+created.ID, token, gin.H{
		"name": "Casa Reformada", "location": "Goiânia, GO", "price": 800000,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, env.assistant.reconfigured)

	w = env.request(t, http.MethodPut, "/api/admin/properties/missing", token, gin.H{
		"name": "X", "location": "Y",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodDelete, "/api/admin/properties/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, env.assistant.reconfigured)
	assert.Empty(t, env.assistant.lastCatalog)
}

func TestAdminLeadWorkflow(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminLogin(t)
	lead := env.store.AddLead(models.Lead{Name: "Maria", Summary: "quer apartamento"})

	w := env.request(t, http.MethodPut, "/api/admin/leads/"+lead.ID, token, gin.H{
		"status": "contacted", "score": "warm",
	})
	require.Equal(t, http.StatusOK, w.Code)

	leads := env.store.GetLeads()
	assert.Equal(t, models.LeadStatusContacted, leads[0].Status)
	assert.Equal(t, models.ScoreWarm, leads[0].Score)

	w = env.request(t, http.MethodPost, "/api/admin/leads/"+lead.ID+"/notes", token, gin.H{
		"text": "Retornar amanhã",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/admin/leads/"+lead.ID+"/follow-up", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "texto gerado")

	w = env.request(t, http.MethodDelete, "/api/admin/leads/"+lead.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.store.GetLeads())
}

func TestAdminLocationGuard(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminLogin(t)

	w := env.request(t, http.MethodPost, "/api/admin/locations", token, gin.H{"name": "Goiânia, GO"})
	require.Equal(t, http.StatusCreated, w.Code)

	env.store.AddProperty(models.Property{Name: "Casa", Location: "Goiânia, GO"})

	w = env.request(t, http.MethodDelete, "/api/admin/locations?name=Goi%C3%A2nia%2C%20GO", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	env.store.DeleteProperty(env.store.GetProperties()[0].ID)
	w = env.request(t, http.MethodDelete, "/api/admin/locations?name=Goi%C3%A2nia%2C%20GO", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.store.GetLocations())
}

func TestAdminGenerateDescription(t *testing.T) {
	env := newTestEnv(t)
	token := env.adminLogin(t)

	w := env.request(t, http.MethodPost, "/api/admin/generate/description", token, gin.H{
		"name": "Casa Jardim", "location": "Goiânia, GO", "price": 500000,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "texto gerado")

	w = env.request(t, http.MethodPost, "/api/admin/generate/description", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

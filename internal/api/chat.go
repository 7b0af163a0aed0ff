package api

import (
	"encoding/base64"
	"net/http"

	"ultrabot/server/internal/assistant"
	"ultrabot/server/internal/geo"
	"ultrabot/server/internal/models"
	"ultrabot/server/internal/storage"

	"github.com/gin-gonic/gin"
)

type chatRequest struct {
	Text  string `json:"text"`
	Image *struct {
		MIMEType string `json:"mimeType"`
		Data     string `json:"data"`
	} `json:"image"`
}

func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var content assistant.Content
	var userText string
	if req.Image != nil {
		data, err := base64.StdEncoding.DecodeString(req.Image.Data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image payload"})
			return
		}
		attachment := assistant.ImageAttachment{Text: req.Text, MIMEType: req.Image.MIMEType, Data: data}
		content = attachment
		userText = attachment.DisplayText()
	} else {
		if req.Text == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
			return
		}
		content = assistant.PlainText{Text: req.Text}
		userText = req.Text
	}

	userMessage := models.Message{
		ID:     storage.NewMessageID("user"),
		Text:   userText,
		Sender: models.SenderUser,
	}
	h.runChatTurn(c, userMessage, content)
}

type geolocationRequest struct {
	Granted   bool    `json:"granted"`
	Supported bool    `json:"supported"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geolocation converts the browser permission outcome into a hidden user
// turn so the model can react to the visitor's position.
func (h *Handler) Geolocation(c *gin.Context) {
	var req geolocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var text string
	switch {
	case !req.Supported:
		text = geo.UnsupportedTurn
	case !req.Granted:
		text = geo.DeniedTurn
	default:
		text = geo.GrantedTurn(req.Latitude, req.Longitude)
	}

	userMessage := models.Message{
		ID:     storage.NewMessageID("user"),
		Text:   text,
		Sender: models.SenderUser,
	}
	h.runChatTurn(c, userMessage, assistant.PlainText{Text: text})
}

// ChatStart replays the stored conversation or opens a fresh one. A
// returning user with history gets a canned greeting without a model call.
func (h *Handler) ChatStart(c *gin.Context) {
	user := sessionUser(c)

	if len(user.ChatHistory) > 0 {
		welcome := models.Message{
			ID:     assistant.WelcomeBackMessageID,
			Text:   "Olá, " + user.Name + "! Bem-vindo(a) de volta. Como posso te ajudar hoje?",
			Sender: models.SenderAI,
		}
		history := append(append([]models.Message{}, user.ChatHistory...), welcome)
		h.persistHistory(c, history)
		c.JSON(http.StatusOK, gin.H{"messages": history})
		return
	}

	opener := models.Message{
		ID:     storage.NewMessageID("user"),
		Text:   "Olá",
		Sender: models.SenderUser,
	}
	h.runChatTurn(c, opener, assistant.PlainText{Text: "Olá"})
}

// runChatTurn streams the model reply over SSE, then persists the turn.
// The terminal "reply" event carries the final message plus directives;
// transport failures degrade to a stored apology message.
func (h *Handler) runChatTurn(c *gin.Context, userMessage models.Message, content assistant.Content) {
	user := sessionUser(c)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	reply, err := h.pipeline.Send(c.Request.Context(), user.ChatHistory, content, func(display string) {
		c.SSEvent("delta", display)
		c.Writer.Flush()
	})

	history := append(append([]models.Message{}, user.ChatHistory...), userMessage)

	if err != nil {
		h.logger.WithError(err).Error("Chat turn failed")
		apology := models.Message{
			ID:     storage.NewMessageID("ai"),
			Text:   assistant.ErrorReply,
			Sender: models.SenderAI,
		}
		history = append(history, apology)
		h.persistHistory(c, history)
		c.SSEvent("reply", gin.H{"message": apology, "directives": assistant.Directives{}})
		c.Writer.Flush()
		return
	}

	if reply.Message != nil {
		history = append(history, *reply.Message)
	}
	h.persistHistory(c, history)

	c.SSEvent("reply", gin.H{"message": reply.Message, "directives": reply.Directives})
	c.Writer.Flush()
}

func (h *Handler) persistHistory(c *gin.Context, history []models.Message) {
	user := sessionUser(c)
	h.store.UpdateUser(user.ID, func(u *models.User) {
		u.ChatHistory = history
	})
}

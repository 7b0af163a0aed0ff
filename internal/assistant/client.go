package assistant

import (
	"context"
	"errors"
	"iter"
	"sync"

	"ultrabot/server/internal/models"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Client wraps the Gemini API for the assistant. It is constructed
// explicitly with the live catalog; Reconfigure re-renders the system
// instruction after the catalog changes. There is no lazy global state.
type Client struct {
	ai     *genai.Client
	model  string
	logger *logrus.Logger

	mu          sync.RWMutex
	instruction string
}

func NewClient(ctx context.Context, apiKey, model string, catalog []models.Property, logger *logrus.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	ai, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}

	c := &Client{
		ai:     ai,
		model:  model,
		logger: logger,
	}
	c.Reconfigure(catalog)
	return c, nil
}

// Reconfigure rebuilds the system instruction from the given catalog.
// Call it whenever admin actions change properties or locations.
func (c *Client) Reconfigure(catalog []models.Property) {
	instruction := renderInstruction(catalog)

	c.mu.Lock()
	c.instruction = instruction
	c.mu.Unlock()

	c.logger.WithField("catalog_size", len(catalog)).Info("Assistant knowledge base updated")
}

// ChatStream opens a streaming generation over the conversation turns,
// with the mortgage function declared.
func (c *Client) ChatStream(ctx context.Context, contents []*genai.Content) iter.Seq2[*genai.GenerateContentResponse, error] {
	c.mu.RLock()
	instruction := c.instruction
	c.mu.RUnlock()

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Tools: []*genai.Tool{
			{FunctionDeclarations: []*genai.FunctionDeclaration{mortgageDeclaration}},
		},
	}
	return c.ai.Models.GenerateContentStream(ctx, c.model, contents, config)
}

// GenerateText runs a single-shot generation with no system instruction
// or tools. The admin helpers use it.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.ai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

package assistant

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"ultrabot/server/internal/models"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// ErrorReply is the fixed apology surfaced when a model call fails. No
// retry is attempted.
const ErrorReply = "Desculpe, algo deu errado. Por favor, tente novamente."

// Transcript ids for seeded greetings; they are display-only and are
// excluded from the history sent to the model.
const (
	InitialMessageID     = "initial-ai-message"
	WelcomeBackMessageID = "initial-ai-message-welcome-back"
)

// ChatModel is the streaming slice of Client the pipeline depends on.
type ChatModel interface {
	ChatStream(ctx context.Context, contents []*genai.Content) iter.Seq2[*genai.GenerateContentResponse, error]
}

// Catalog resolves property ids referenced by a reply.
type Catalog interface {
	GetPropertiesByIDs(ids []string) []models.Property
}

// Reply is the outcome of one assistant turn after directive extraction.
// Message is nil when the turn produced nothing visible (empty display
// text and no resolved properties); the directives still apply.
type Reply struct {
	Message    *models.Message
	Directives Directives
}

// Pipeline drives a conversation turn end to end: history assembly,
// streaming, the function-call side channel, and directive extraction.
type Pipeline struct {
	model   ChatModel
	catalog Catalog
	logger  *logrus.Logger
}

func NewPipeline(model ChatModel, catalog Catalog, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		model:   model,
		catalog: catalog,
		logger:  logger,
	}
}

// Send runs one turn. onDelta, when non-nil, receives the provisional
// display text after each streamed chunk, with partial tags held back.
func (p *Pipeline) Send(ctx context.Context, history []models.Message, content Content, onDelta func(string)) (*Reply, error) {
	contents := buildHistory(history)
	contents = append(contents, genai.NewContentFromParts(content.parts(), genai.RoleUser))

	var full strings.Builder
	var calls []*genai.FunctionCall
	for resp, err := range p.model.ChatStream(ctx, contents) {
		if err != nil {
			p.logger.WithError(err).Error("Assistant stream failed")
			return nil, err
		}
		calls = append(calls, resp.FunctionCalls()...)
		if text := resp.Text(); text != "" {
			full.WriteString(text)
			if onDelta != nil {
				onDelta(ProvisionalDisplay(full.String()))
			}
		}
	}

	// A function-invocation turn bypasses the text-tag pipeline entirely.
	if len(calls) > 0 {
		if len(calls) > 1 {
			p.logger.WithField("dropped", len(calls)-1).Warn("Model requested multiple function calls, honoring only the first")
		}
		return p.reenter(ctx, history, content, calls[0], onDelta)
	}

	display, directives := Parse(full.String())

	var properties []models.Property
	if len(directives.PropertyIDs) > 0 {
		properties = p.catalog.GetPropertiesByIDs(directives.PropertyIDs)
	}

	reply := &Reply{Directives: directives}
	if display == "" && len(properties) == 0 {
		// No empty bubble in the transcript.
		return reply, nil
	}

	reply.Message = &models.Message{
		ID:         newMessageID("ai"),
		Text:       display,
		Sender:     models.SenderAI,
		Properties: properties,
	}
	return reply, nil
}

// reenter executes the requested function locally and feeds the result
// back into the send pipeline as a structured function response,
// continuing the same conversation thread.
func (p *Pipeline) reenter(ctx context.Context, history []models.Message, content Content, call *genai.FunctionCall, onDelta func(string)) (*Reply, error) {
	if call.Name != mortgageDeclaration.Name {
		p.logger.WithField("function", call.Name).Warn("Model requested an undeclared function, dropping turn")
		return &Reply{}, nil
	}

	quote, err := quoteFromArgs(call.Args)
	if err != nil {
		p.logger.WithError(err).Error("Rejected mortgage function call")
		return nil, err
	}

	// The user turn that provoked the call joins the history for the
	// follow-up request.
	if text, ok := historyText(content); ok {
		history = append(history, models.Message{
			ID:     newMessageID("user"),
			Text:   text,
			Sender: models.SenderUser,
		})
	}

	result := FunctionResult{
		Name:     call.Name,
		Response: map[string]any{"result": quote},
	}
	return p.Send(ctx, history, result, onDelta)
}

// buildHistory converts the transcript into role-tagged turns, skipping
// seeded greetings and empty placeholders.
func buildHistory(history []models.Message) []*genai.Content {
	var contents []*genai.Content
	for _, m := range history {
		if m.ID == InitialMessageID || m.ID == WelcomeBackMessageID {
			continue
		}
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		role := genai.Role(genai.RoleModel)
		if m.Sender == models.SenderUser {
			role = genai.RoleUser
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return contents
}

func newMessageID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

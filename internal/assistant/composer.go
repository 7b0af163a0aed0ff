package assistant

import (
	"context"
	"fmt"
	"strings"

	"ultrabot/server/internal/models"

	"github.com/sirupsen/logrus"
)

// TextGenerator is the single-shot slice of Client the composer uses.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Fixed fallback strings shown when a helper generation fails.
const (
	followUpFallback    = "Não foi possível gerar a nota. Tente novamente."
	comparisonFallback  = "Desculpe, não foi possível gerar a comparação neste momento. Por favor, tente novamente."
	descriptionFallback = "Não foi possível gerar a descrição. Verifique os dados e tente novamente."
)

// Composer produces the admin-side helper texts: broker follow-up notes,
// property comparisons, and listing descriptions.
type Composer struct {
	gen    TextGenerator
	logger *logrus.Logger
}

func NewComposer(gen TextGenerator, logger *logrus.Logger) *Composer {
	return &Composer{gen: gen, logger: logger}
}

// FollowUpNote writes a concise broker reminder from a lead summary.
func (c *Composer) FollowUpNote(ctx context.Context, summary string) string {
	prompt := fmt.Sprintf(
		"Baseado no seguinte resumo do pedido de um cliente, escreva uma nota de acompanhamento concisa para um corretor de imóveis. A nota deve ser um lembrete rápido dos pontos-chave para a ação. Resumo: %q",
		summary,
	)
	text, err := c.gen.GenerateText(ctx, prompt)
	if err != nil {
		c.logger.WithError(err).Error("Failed to generate follow-up note")
		return followUpFallback
	}
	return text
}

// CompareProperties writes a comparative analysis of the given listings,
// optionally anchored on what the client said they want.
func (c *Composer) CompareProperties(ctx context.Context, properties []models.Property, userSummary string) string {
	details := make([]string, len(properties))
	for i, p := range properties {
		details[i] = fmt.Sprintf(
			"- **%s (ID: %s)** em %s por R$ %s. Tipo: %s. Características: %s.",
			p.Name, p.ID, p.Location, formatPrice(p.Price), p.Type, strings.Join(p.Features, ", "),
		)
	}

	var b strings.Builder
	b.WriteString("Um cliente está comparando os seguintes imóveis:\n")
	b.WriteString(strings.Join(details, "\n"))
	b.WriteString("\n\n")
	if userSummary != "" {
		fmt.Fprintf(&b, "O cliente descreveu seu interesse da seguinte forma: %q\n\n", userSummary)
	}
	b.WriteString("Por favor, forneça uma análise comparativa concisa. Destaque os principais prós e contras de cada opção, considerando o que um comprador típico valorizaria. Formate sua resposta usando markdown (negrito para títulos e listas para pontos). Conclua com uma recomendação ou uma pergunta para ajudar o cliente a decidir.")

	text, err := c.gen.GenerateText(ctx, b.String())
	if err != nil {
		c.logger.WithError(err).Error("Failed to generate property comparison")
		return comparisonFallback
	}
	return text
}

// ListingDescription writes marketing copy for a draft listing.
func (c *Composer) ListingDescription(ctx context.Context, draft models.Property) string {
	var b strings.Builder
	b.WriteString("Você é um corretor de imóveis especialista em marketing. Sua tarefa é escrever uma descrição de imóvel atraente, completa e persuasiva para um anúncio online. A descrição deve ser otimizada para SEO, usando parágrafos curtos e listas para facilitar a leitura. Use uma linguagem sofisticada, mas convidativa.\n\n")
	b.WriteString("Com base nos seguintes dados, crie a descrição:\n")
	fmt.Fprintf(&b, "- Título: %s\n", draft.Name)
	fmt.Fprintf(&b, "- Tipo: %s\n", draft.Type)
	fmt.Fprintf(&b, "- Localização: %s\n", draft.Location)
	fmt.Fprintf(&b, "- Preço: R$ %s\n", formatPrice(draft.Price))
	fmt.Fprintf(&b, "- Transação: %s\n", draft.TransactionType)
	fmt.Fprintf(&b, "- Características principais: %s\n\n", strings.Join(draft.Features, ", "))
	b.WriteString("**Estrutura da resposta:**\n")
	b.WriteString("1.  Um parágrafo de introdução que chame a atenção.\n")
	b.WriteString("2.  Um parágrafo detalhando os principais cômodos e características.\n")
	b.WriteString("3.  Se aplicável, um parágrafo sobre a área de lazer do condomínio ou o quintal.\n")
	b.WriteString("4.  Um parágrafo sobre a localização e suas conveniências.\n")
	b.WriteString("5.  Uma chamada para ação (CTA) convidando para agendar uma visita.\n\n")
	b.WriteString("**Importante:** A resposta deve conter APENAS o texto da descrição, sem nenhum título ou formatação extra como \"Resposta:\" ou \"Descrição:\".")

	text, err := c.gen.GenerateText(ctx, b.String())
	if err != nil {
		c.logger.WithError(err).Error("Failed to generate listing description")
		return descriptionFallback
	}
	return text
}

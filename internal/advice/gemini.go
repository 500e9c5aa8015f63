package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/finanzas-app/backend/internal/health"
	"google.golang.org/genai"
)

// DefaultModelName is the Gemini model used for advice generation.
const DefaultModelName = "gemini-2.0-flash"

// GeminiAdvisor generates advice with the Gemini API.
type GeminiAdvisor struct {
	client *genai.Client
	model  string
}

// NewGeminiAdvisor creates a Gemini-backed advisor. The API key is read
// from the environment by the genai client.
func NewGeminiAdvisor(ctx context.Context) (*GeminiAdvisor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &GeminiAdvisor{client: client, model: DefaultModelName}, nil
}

// Advise asks the model for short, actionable advice based on the metric
// values and statuses of a health score result.
func (g *GeminiAdvisor) Advise(ctx context.Context, result health.Result) (string, error) {
	prompt := buildPrompt(result)

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text := cleanModelText(resp.Text())
	if text == "" {
		return "", ErrUnprocessable
	}

	return text, nil
}

func buildPrompt(result health.Result) string {
	var b strings.Builder

	b.WriteString("Eres un asesor financiero personal. ")
	b.WriteString("En base a las siguientes métricas de salud financiera del mes, ")
	b.WriteString("escribe un consejo breve, concreto y accionable (máximo 4 oraciones). ")
	b.WriteString("Responde solo con el consejo, sin formato Markdown.\n\n")

	fmt.Fprintf(&b, "Tasa de ahorro: %s%% (%s)\n", result.SavingsRate.Value.StringFixed(1), result.SavingsRate.Status)
	fmt.Fprintf(&b, "Gastos fijos sobre ingresos: %s%% (%s)\n", result.FixedExpenses.Value.StringFixed(1), result.FixedExpenses.Status)
	fmt.Fprintf(&b, "Diversificación de gastos: %s (%s)\n", result.ExpenseDiversification.Value.StringFixed(1), result.ExpenseDiversification.Status)
	fmt.Fprintf(&b, "Tendencia mensual: %s%% (%s)\n", result.Trend.Value.StringFixed(1), result.Trend.Status)
	fmt.Fprintf(&b, "Estado general: %s\n", result.OverallStatus)

	return b.String()
}

// cleanModelText strips Markdown fences if the model ignored the
// plain-text instruction.
func cleanModelText(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```text).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}

		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}

		s = strings.TrimSpace(s)
	}

	return s
}

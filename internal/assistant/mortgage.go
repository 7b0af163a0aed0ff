package assistant

import (
	"fmt"
	"math"

	"google.golang.org/genai"
)

// DefaultInterestRate is the annual rate assumed when the model omits one.
const DefaultInterestRate = 9.5

// MortgageQuote is the result of a financing simulation, echoed back to
// the model as the function response.
type MortgageQuote struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalAmount    float64 `json:"totalAmount"`
	DownPayment    float64 `json:"downPayment"`
	Years          int     `json:"years"`
	InterestRate   float64 `json:"interestRate"`
}

// CalculateMortgage computes the standard amortizing-loan monthly payment:
// principal = total - down payment, r = annual rate / 12 / 100,
// payment = P*r*(1+r)^n / ((1+r)^n - 1). The payment is rounded to cents.
func CalculateMortgage(totalAmount, downPayment float64, years int, interestRate float64) MortgageQuote {
	principal := totalAmount - downPayment
	monthlyRate := interestRate / 100 / 12
	n := float64(years * 12)

	factor := math.Pow(1+monthlyRate, n)
	payment := principal * (monthlyRate * factor) / (factor - 1)

	return MortgageQuote{
		MonthlyPayment: math.Round(payment*100) / 100,
		TotalAmount:    totalAmount,
		DownPayment:    downPayment,
		Years:          years,
		InterestRate:   interestRate,
	}
}

// mortgageDeclaration is the single callable the model may invoke.
var mortgageDeclaration = &genai.FunctionDeclaration{
	Name:        "calculateMortgage",
	Description: "Calcula o valor da parcela mensal de um financiamento imobiliário com base no valor total, entrada, e prazo.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"totalAmount": {
				Type:        genai.TypeNumber,
				Description: "O valor total do imóvel. Ex: 1800000",
			},
			"downPayment": {
				Type:        genai.TypeNumber,
				Description: "O valor da entrada que o cliente vai dar. Ex: 360000",
			},
			"years": {
				Type:        genai.TypeInteger,
				Description: "O prazo do financiamento em anos. Ex: 30",
			},
			"interestRate": {
				Type:        genai.TypeNumber,
				Description: "A taxa de juros anual. O valor padrão é 9.5. Ex: 9.5",
			},
		},
		Required: []string{"totalAmount", "downPayment", "years"},
	},
}

// quoteFromArgs decodes a model function call's arguments, applying the
// default interest rate when absent.
func quoteFromArgs(args map[string]any) (MortgageQuote, error) {
	totalAmount, ok := number(args["totalAmount"])
	if !ok {
		return MortgageQuote{}, fmt.Errorf("missing or invalid totalAmount")
	}
	downPayment, ok := number(args["downPayment"])
	if !ok {
		return MortgageQuote{}, fmt.Errorf("missing or invalid downPayment")
	}
	years, ok := number(args["years"])
	if !ok || years <= 0 {
		return MortgageQuote{}, fmt.Errorf("missing or invalid years")
	}

	interestRate := DefaultInterestRate
	if rate, ok := number(args["interestRate"]); ok {
		interestRate = rate
	}

	return CalculateMortgage(totalAmount, downPayment, int(years), interestRate), nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

package report

import (
	"fmt"
	"math"
)

// Percentage returns round(100*correct/total), or 0 when total is 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// FormatNet renders a net score with two decimals.
func FormatNet(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatClock renders seconds as HH:MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatDuration renders seconds as "Xm Ys".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// Tier grades an overall percentage.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierFair      Tier = "fair"
	TierPoor      Tier = "poor"
)

// Verdict is the headline feedback shown with a result.
type Verdict struct {
	Tier    Tier   `json:"tier"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Feedback picks the verdict for a percentage.
func Feedback(percentage int) Verdict {
	switch {
	case percentage >= 80:
		return Verdict{TierExcellent, "Excelente!", "Você está pronto para a prova."}
	case percentage >= 60:
		return Verdict{TierGood, "Bom Desempenho", "Continue revisando os detalhes."}
	case percentage >= 40:
		return Verdict{TierFair, "Regular", "Foque nos fundamentos."}
	default:
		return Verdict{TierPoor, "Precisa Estudar Mais", "Revise a teoria com urgência."}
	}
}

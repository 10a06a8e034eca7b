package importer

import (
	"fmt"
	"strings"
)

var comparisonWords = []string{
	"bandingkan", "lebih besar", "lebih kecil", "paling besar", "paling kecil",
}

// fallbackExplanation synthesizes an explanation from the prompt when the CSV
// leaves the column empty, choosing a template by keyword. Returns "" when no
// correct answer is available yet.
func fallbackExplanation(prompt, correctAnswer string) string {
	answer := strings.TrimSpace(correctAnswer)
	if answer == "" {
		return ""
	}

	lower := strings.ToLower(prompt)
	switch {
	case containsAny(lower, comparisonWords):
		return fmt.Sprintf("Dengan membandingkan nilai-nilai pada soal, jawaban yang benar adalah %s.", answer)
	case strings.Contains(prompt, "+"):
		return fmt.Sprintf("Hasil penjumlahan pada soal tersebut adalah %s.", answer)
	case strings.Contains(prompt, "-"):
		return fmt.Sprintf("Hasil pengurangan pada soal tersebut adalah %s.", answer)
	case strings.Contains(lower, "sederhanakan"):
		return fmt.Sprintf("Bentuk paling sederhana dari soal tersebut adalah %s.", answer)
	default:
		return fmt.Sprintf("Jawaban yang benar adalah %s.", answer)
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

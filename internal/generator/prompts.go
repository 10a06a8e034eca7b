package generator

import (
	"fmt"
	"strings"

	"github.com/besmartkids/backend/internal/models"
)

// ExplanationSystemPrompt instructs the model to write pembahasan the way a
// tutor would explain it to an elementary or middle school student.
func ExplanationSystemPrompt() string {
	return `You are a tutor at an Indonesian tutoring center writing answer explanations (pembahasan) for practice questions.

Rules:
- Write in Bahasa Indonesia, in a warm tone suitable for elementary and middle school students.
- Explain WHY the stored answer is correct, step by step for arithmetic, briefly for factual questions.
- Keep it between one and four sentences. Do not restate the full question.
- Never contradict the stored correct answer. If it looks wrong, still explain it as given.

Respond with JSON only, no code fences, in exactly this shape:
{"explanation": "..."}`
}

// BuildExplanationPrompt renders one question into the user prompt.
func BuildExplanationPrompt(q *models.Question) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Question type: %s\n", q.Type)
	fmt.Fprintf(&b, "Question: %s\n", q.Prompt)
	if q.HelperText != "" {
		fmt.Fprintf(&b, "Helper text: %s\n", q.HelperText)
	}

	if len(q.Options) > 0 {
		b.WriteString("Options:\n")
		for i, o := range q.Options {
			letter := rune('A' + i)
			fmt.Fprintf(&b, "  %c. %s\n", letter, o.Value)
		}
	}

	if len(q.MultipartItems) > 0 {
		b.WriteString("Parts:\n")
		for _, item := range q.MultipartItems {
			fmt.Fprintf(&b, "  %s. %s = %s\n", item.Label, item.Prompt, item.Answer)
		}
	}

	if q.CorrectAnswer != "" {
		fmt.Fprintf(&b, "Correct answer: %s\n", q.CorrectAnswer)
	}

	b.WriteString("\nWrite the pembahasan for this question.")
	return b.String()
}

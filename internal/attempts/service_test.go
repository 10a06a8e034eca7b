package attempts

import (
	"testing"

	"github.com/besmartkids/backend/internal/models"
)

func TestGrade(t *testing.T) {
	keys := []answerKey{
		{ID: 1, Type: models.TypeMCQ, CorrectAnswer: "Jakarta"},
		{ID: 2, Type: models.TypeEssay, CorrectAnswer: "4.5"},
		{ID: 3, Type: models.TypeEssay, CorrectAnswer: "merah"},
		{ID: 4, Type: models.TypeEssay, CorrectAnswer: ""},
	}

	answers := []models.AttemptAnswer{
		{QuestionID: 1, Answer: "  jakarta "},
		{QuestionID: 2, Answer: "4.5"},
		{QuestionID: 3, Answer: "biru"},
		{QuestionID: 4, Answer: "anything"},
	}

	if got := grade(keys, answers); got != 2 {
		t.Errorf("grade = %d, want 2 (case-insensitive match, wrong answer, empty key)", got)
	}
}

func TestGradable_FiltersTypes(t *testing.T) {
	keys := []answerKey{
		{ID: 1, Type: models.TypeMCQ, CorrectAnswer: "a"},
		{ID: 2, Type: models.TypeDragDrop},
		{ID: 3, Type: models.TypeMultipart},
		{ID: 4, Type: models.TypeEssay, CorrectAnswer: "b"},
	}

	got := gradable(keys)
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 4 {
		t.Errorf("gradable should keep only mcq and essay questions, got %+v", got)
	}
}

func TestGrade_MissingAnswers(t *testing.T) {
	keys := []answerKey{
		{ID: 1, CorrectAnswer: "a"},
		{ID: 2, CorrectAnswer: "b"},
	}
	if got := grade(keys, nil); got != 0 {
		t.Errorf("grade with no answers = %d, want 0", got)
	}
}

func TestScorePct(t *testing.T) {
	tests := []struct {
		correct, total, want int
	}{
		{0, 10, 0},
		{10, 10, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 6, 17},
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := scorePct(tt.correct, tt.total); got != tt.want {
			t.Errorf("scorePct(%d, %d) = %d, want %d", tt.correct, tt.total, got, tt.want)
		}
	}
}

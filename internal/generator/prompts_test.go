package generator

import (
	"strings"
	"testing"

	"github.com/besmartkids/backend/internal/models"
)

func TestBuildExplanationPrompt_MCQ(t *testing.T) {
	q := &models.Question{
		Type:          models.TypeMCQ,
		Prompt:        "Berapa 2+2?",
		CorrectAnswer: "4",
		Options: []models.Option{
			{Value: "3"},
			{Value: "4"},
			{Value: "5"},
		},
	}

	prompt := BuildExplanationPrompt(q)

	if !strings.Contains(prompt, "Berapa 2+2?") {
		t.Error("prompt should contain the question text")
	}
	if !strings.Contains(prompt, "B. 4") {
		t.Errorf("options should be lettered in order, got:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Correct answer: 4") {
		t.Error("prompt should carry the stored answer")
	}
}

func TestBuildExplanationPrompt_Multipart(t *testing.T) {
	q := &models.Question{
		Type:   models.TypeMultipart,
		Prompt: "Hitung hasil berikut",
		MultipartItems: []models.MultipartItem{
			{Label: "a", Prompt: "2+2", Answer: "4"},
			{Label: "b", Prompt: "3+3", Answer: "6"},
		},
	}

	prompt := BuildExplanationPrompt(q)
	if !strings.Contains(prompt, "a. 2+2 = 4") || !strings.Contains(prompt, "b. 3+3 = 6") {
		t.Errorf("multipart parts should be listed with answers, got:\n%s", prompt)
	}
}

func TestExplanationSystemPrompt_MentionsJSONShape(t *testing.T) {
	sys := ExplanationSystemPrompt()
	if !strings.Contains(sys, `{"explanation"`) {
		t.Error("system prompt should pin the JSON response shape")
	}
}

package generator

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/besmartkids/backend/internal/models"
	"github.com/gorilla/mux"
)

// QuestionGetter is the slice of the questions service the drafter needs.
type QuestionGetter interface {
	Get(ctx context.Context, id int64) (*models.Question, error)
}

type Handler struct {
	drafter   *Drafter
	questions QuestionGetter
}

func NewHandler(drafter *Drafter, questions QuestionGetter) *Handler {
	return &Handler{drafter: drafter, questions: questions}
}

type draftResponse struct {
	QuestionID   int64  `json:"question_id"`
	Explanation  string `json:"explanation"`
	Model        string `json:"model"`
	PromptTokens int    `json:"prompt_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// DraftExplanation returns a model-written pembahasan for review. It never
// writes to the question; an admin saves the draft through the normal update
// endpoint once they have checked it.
func (h *Handler) DraftExplanation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question ID"})
		return
	}

	q, err := h.questions.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		return
	}

	draft, resp, err := h.drafter.DraftExplanation(r.Context(), q)
	if err != nil {
		log.Printf("[generator] DraftExplanation error for question %d: %v", id, err)
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Failed to draft explanation"})
		return
	}

	out := draftResponse{
		QuestionID:  id,
		Explanation: draft.Explanation,
		Model:       h.drafter.ModelName(),
	}
	if resp != nil {
		out.PromptTokens = resp.PromptTokens
		out.OutputTokens = resp.OutputTokens
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

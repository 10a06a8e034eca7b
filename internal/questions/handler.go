package questions

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/besmartkids/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.QuestionUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	q, warnings, err := h.service.Create(r.Context(), req)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: ve.Error()})
			return
		}
		log.Printf("[questions] CreateQuestion error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create question"})
		return
	}

	for _, msg := range warnings {
		log.Printf("[questions] question %d: %s", q.ID, msg)
	}
	writeJSON(w, http.StatusCreated, q)
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question ID"})
		return
	}

	q, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		return
	}

	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question ID"})
		return
	}

	var req models.QuestionUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	q, warnings, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		var ve *ValidationError
		switch {
		case errors.As(err, &ve):
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: ve.Error()})
		case errors.Is(err, sql.ErrNoRows):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		default:
			log.Printf("[questions] UpdateQuestion error: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update question"})
		}
		return
	}

	for _, msg := range warnings {
		log.Printf("[questions] question %d: %s", q.ID, msg)
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question ID"})
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
			return
		}
		log.Printf("[questions] DeleteQuestion error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete question"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListByMaterial(w http.ResponseWriter, r *http.Request) {
	materialID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid material ID"})
		return
	}

	query := r.URL.Query()
	limit := intQueryParam(query, "limit", 50)
	offset := intQueryParam(query, "offset", 0)

	questions, total, err := h.service.ListByMaterial(r.Context(), materialID, limit, offset)
	if err != nil {
		log.Printf("[questions] ListByMaterial error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list questions"})
		return
	}

	if questions == nil {
		questions = []models.Question{}
	}
	writeJSON(w, http.StatusOK, models.QuestionListResponse{
		Questions: questions,
		Total:     total,
		Page:      offset/limit + 1,
		PageSize:  limit,
	})
}

// GetQuiz serves a material's questions to students with answers stripped.
func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	materialID, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid material ID"})
		return
	}

	quiz, err := h.service.GetQuiz(r.Context(), materialID)
	if err != nil {
		log.Printf("[questions] GetQuiz error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load quiz"})
		return
	}

	writeJSON(w, http.StatusOK, quiz)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return defaultVal
	}
	return v
}

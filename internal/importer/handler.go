package importer

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/besmartkids/backend/internal/models"
)

// maxUploadBytes caps the multipart body; a 1000-row CSV is well under this.
const maxUploadBytes = 10 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Import handles POST /admin/questions/import. Expects multipart/form-data
// with fields file, autoFillFromExplanation and replaceExisting. Admin role
// is enforced by middleware before this runs.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid form data"})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "file field is required"})
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Failed to read uploaded file"})
		return
	}

	opts := Options{
		AutoFillFromExplanation: r.FormValue("autoFillFromExplanation") == "true",
		ReplaceExisting:         r.FormValue("replaceExisting") == "true",
	}

	summary, err := h.service.Run(r.Context(), string(raw), opts)
	if err != nil {
		summary.OK = false
		summary.ErrorMessage = err.Error()
		writeJSON(w, importStatus(err), summary)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func importStatus(err error) int {
	switch {
	case errors.Is(err, ErrEmptyCSV),
		errors.Is(err, ErrTooManyRows),
		errors.Is(err, ErrNoValidRows):
		return http.StatusBadRequest
	case errors.Is(err, ErrReplaceValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

package questions

import (
	"context"
	"fmt"
	"strings"

	"github.com/besmartkids/backend/internal/models"
)

// ValidationError carries every failed rule for one CMS payload.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, req models.QuestionUpsertRequest) (*models.Question, []string, error) {
	if err := validateUpsert(req); err != nil {
		return nil, nil, err
	}

	number, err := s.resolveNumber(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	id, warnings, err := s.store.CreateQuestion(ctx, req, number)
	if err != nil {
		return nil, nil, err
	}

	q, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("reload question: %w", err)
	}
	return q, warnings, nil
}

func (s *Service) Update(ctx context.Context, id int64, req models.QuestionUpsertRequest) (*models.Question, []string, error) {
	if err := validateUpsert(req); err != nil {
		return nil, nil, err
	}

	warnings, err := s.store.UpdateQuestion(ctx, id, req)
	if err != nil {
		return nil, nil, err
	}

	q, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("reload question: %w", err)
	}
	return q, warnings, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteQuestion(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Question, error) {
	return s.store.GetQuestion(ctx, id)
}

func (s *Service) ListByMaterial(ctx context.Context, materialID int64, limit, offset int) ([]models.Question, int, error) {
	return s.store.ListByMaterial(ctx, materialID, limit, offset)
}

// GetQuiz returns a material's questions with answers stripped for serving
// to students.
func (s *Service) GetQuiz(ctx context.Context, materialID int64) ([]models.QuizQuestion, error) {
	questions, _, err := s.store.ListByMaterial(ctx, materialID, 500, 0)
	if err != nil {
		return nil, err
	}

	quiz := make([]models.QuizQuestion, 0, len(questions))
	for i := range questions {
		quiz = append(quiz, questions[i].ToQuizQuestion())
	}
	return quiz, nil
}

// resolveNumber uses the explicit number when given, otherwise the next
// free number within the material.
func (s *Service) resolveNumber(ctx context.Context, req models.QuestionUpsertRequest) (int, error) {
	if req.QuestionNumber != nil {
		return *req.QuestionNumber, nil
	}
	maxima, err := s.store.MaxQuestionNumbers(ctx, []int64{req.MaterialID})
	if err != nil {
		return 0, fmt.Errorf("next question number: %w", err)
	}
	return maxima[req.MaterialID] + 1, nil
}

func validateUpsert(req models.QuestionUpsertRequest) error {
	var errs []string

	if req.MaterialID <= 0 {
		errs = append(errs, "material_id must be a positive integer")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		errs = append(errs, "prompt is required")
	}

	switch models.NormalizeType(req.Type) {
	case models.TypeMCQ:
		if len(req.Options) == 0 {
			errs = append(errs, "mcq requires at least one option")
		}
		if req.CorrectAnswer == "" {
			errs = append(errs, "correct_answer is required for mcq")
		}
	case models.TypeEssay:
		if req.CorrectAnswer == "" {
			errs = append(errs, "correct_answer is required for essay")
		}
	case models.TypeDragDrop:
		if len(req.DragItems) == 0 {
			errs = append(errs, "drag_items is required for drag_drop")
		}
		if len(req.DropTargets) == 0 {
			errs = append(errs, "drop_targets is required for drag_drop")
		}
		if len(req.DragItems) > 0 && len(req.DropTargets) > 0 &&
			len(req.DragItems) != len(req.DropTargets) {
			errs = append(errs, fmt.Sprintf(
				"drag_items count (%d) does not match drop_targets count (%d)",
				len(req.DragItems), len(req.DropTargets)))
		}
	case models.TypeMultipart:
		if len(req.MultipartItems) == 0 {
			errs = append(errs, "multipart requires at least one item")
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

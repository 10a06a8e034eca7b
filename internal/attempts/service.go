package attempts

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/besmartkids/backend/internal/models"
)

var (
	ErrAttemptLimit = errors.New("attempt limit reached for this material")
	ErrNoQuestions  = errors.New("material has no questions")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Submit grades a student's answers against the material's answer key and
// records the attempt. Students get models.MaxAttemptsPerMaterial tries per
// material; the attempt number is derived from how many are already stored.
func (s *Service) Submit(ctx context.Context, userID, materialID int64, req models.SubmitAttemptRequest) (*models.Attempt, error) {
	prior, err := s.store.CountAttempts(ctx, userID, materialID)
	if err != nil {
		return nil, err
	}
	if prior >= models.MaxAttemptsPerMaterial {
		return nil, ErrAttemptLimit
	}

	keys, err := s.store.answerKeys(ctx, materialID)
	if err != nil {
		return nil, err
	}
	keys = gradable(keys)
	if len(keys) == 0 {
		return nil, ErrNoQuestions
	}

	correct := grade(keys, req.Answers)

	attempt := &models.Attempt{
		UserID:        userID,
		MaterialID:    materialID,
		AttemptNumber: prior + 1,
		QuestionCount: len(keys),
		CorrectCount:  correct,
		ScorePct:      scorePct(correct, len(keys)),
	}
	if err := s.store.CreateAttempt(ctx, attempt); err != nil {
		return nil, fmt.Errorf("attempt %d: %w", attempt.AttemptNumber, err)
	}
	return attempt, nil
}

// List returns the user's attempts for a material plus their best score.
func (s *Service) List(ctx context.Context, userID, materialID int64) (*models.AttemptListResponse, error) {
	out, err := s.store.ListAttempts(ctx, userID, materialID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Attempt{}
	}

	best := 0
	for _, a := range out {
		if a.ScorePct > best {
			best = a.ScorePct
		}
	}
	return &models.AttemptListResponse{Attempts: out, BestScorePct: best}, nil
}

// gradable keeps only the question types scored by text equality. Drag and
// multipart questions are graded client-side for feedback but stay out of the
// attempt score.
func gradable(keys []answerKey) []answerKey {
	out := keys[:0]
	for _, k := range keys {
		if k.Type == models.TypeMCQ || k.Type == models.TypeEssay {
			out = append(out, k)
		}
	}
	return out
}

// grade counts answers that match the key. Text comparison is trimmed and
// case-insensitive so "jakarta" passes against "Jakarta". A question with an
// empty stored answer can never be scored correct.
func grade(keys []answerKey, answers []models.AttemptAnswer) int {
	byQuestion := make(map[int64]string, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Answer
	}

	correct := 0
	for _, k := range keys {
		want := strings.TrimSpace(k.CorrectAnswer)
		if want == "" {
			continue
		}
		got, ok := byQuestion[k.ID]
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(got), want) {
			correct++
		}
	}
	return correct
}

func scorePct(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

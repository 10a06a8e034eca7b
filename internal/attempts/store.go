package attempts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/besmartkids/backend/internal/models"
)

// answerKey is what grading needs from a question row.
type answerKey struct {
	ID            int64
	Type          models.QuestionType
	CorrectAnswer string
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) answerKeys(ctx context.Context, materialID int64) ([]answerKey, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question_type, correct_answer
		 FROM questions WHERE material_id = $1
		 ORDER BY question_number, id`, materialID)
	if err != nil {
		return nil, fmt.Errorf("load answer keys: %w", err)
	}
	defer rows.Close()

	var keys []answerKey
	for rows.Next() {
		var k answerKey
		if err := rows.Scan(&k.ID, &k.Type, &k.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("scan answer key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *Store) CountAttempts(ctx context.Context, userID, materialID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM quiz_attempts WHERE user_id = $1 AND material_id = $2`,
		userID, materialID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return n, nil
}

func (s *Store) CreateAttempt(ctx context.Context, a *models.Attempt) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO quiz_attempts (user_id, material_id, attempt_number, question_count, correct_count, score_pct)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		a.UserID, a.MaterialID, a.AttemptNumber, a.QuestionCount, a.CorrectCount, a.ScorePct,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create attempt: %w", err)
	}
	return nil
}

func (s *Store) ListAttempts(ctx context.Context, userID, materialID int64) ([]models.Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, material_id, attempt_number, question_count, correct_count, score_pct, created_at
		 FROM quiz_attempts WHERE user_id = $1 AND material_id = $2
		 ORDER BY attempt_number`, userID, materialID)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []models.Attempt
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.MaterialID, &a.AttemptNumber,
			&a.QuestionCount, &a.CorrectCount, &a.ScorePct, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

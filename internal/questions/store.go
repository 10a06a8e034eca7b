package questions

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/besmartkids/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Import Writer ───────────────────────────────────────

func (s *Store) MaxQuestionNumbers(ctx context.Context, materialIDs []int64) (map[int64]int, error) {
	if len(materialIDs) == 0 {
		return map[int64]int{}, nil
	}

	placeholders := make([]string, len(materialIDs))
	args := make([]interface{}, len(materialIDs))
	for i, id := range materialIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT material_id, COALESCE(MAX(question_number), 0)
		 FROM questions WHERE material_id IN (%s)
		 GROUP BY material_id`, strings.Join(placeholders, ",")), args...)
	if err != nil {
		return nil, fmt.Errorf("max question numbers: %w", err)
	}
	defer rows.Close()

	maxima := make(map[int64]int)
	for rows.Next() {
		var materialID int64
		var maxNumber int
		if err := rows.Scan(&materialID, &maxNumber); err != nil {
			return nil, fmt.Errorf("scan max number: %w", err)
		}
		maxima[materialID] = maxNumber
	}
	return maxima, rows.Err()
}

func (s *Store) DeleteByMaterials(ctx context.Context, materialIDs []int64) error {
	if len(materialIDs) == 0 {
		return nil
	}

	placeholders := make([]string, len(materialIDs))
	args := make([]interface{}, len(materialIDs))
	for i, id := range materialIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	_, err := s.db.ExecContext(ctx, fmt.Sprintf(
		`DELETE FROM questions WHERE material_id IN (%s)`,
		strings.Join(placeholders, ",")), args...)
	if err != nil {
		return fmt.Errorf("delete questions by material: %w", err)
	}
	return nil
}

// CreateQuestion inserts a question and its type-specific children in one
// transaction. Warnings cover skipped children (a drag item whose target
// could not be resolved); they do not fail the row.
func (s *Store) CreateQuestion(ctx context.Context, req models.QuestionUpsertRequest, questionNumber int) (int64, []string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var questionID int64
	err = tx.QueryRow(
		`INSERT INTO questions
		 (material_id, question_number, question_mode, question_type, prompt,
		  helper_text, correct_answer, explanation, question_image_url, correct_image_url)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		req.MaterialID, questionNumber,
		models.NormalizeMode(req.Mode), models.NormalizeType(req.Type),
		req.Prompt, req.HelperText, req.CorrectAnswer, req.Explanation,
		req.QuestionImageURL, req.CorrectImageURL,
	).Scan(&questionID)
	if err != nil {
		return 0, nil, fmt.Errorf("insert question: %w", err)
	}

	warnings, err := insertChildren(tx, questionID, req)
	if err != nil {
		return 0, nil, err
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("commit question: %w", err)
	}
	return questionID, warnings, nil
}

// UpdateQuestion rewrites the question row and replaces its entire child set.
// Children never survive an edit — they are deleted and recreated so a type
// change cannot leave stale rows behind.
func (s *Store) UpdateQuestion(ctx context.Context, id int64, req models.QuestionUpsertRequest) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE questions SET material_id = $1, question_mode = $2, question_type = $3,
		        prompt = $4, helper_text = $5, correct_answer = $6, explanation = $7,
		        question_image_url = $8, correct_image_url = $9
		 WHERE id = $10`,
		req.MaterialID, models.NormalizeMode(req.Mode), models.NormalizeType(req.Type),
		req.Prompt, req.HelperText, req.CorrectAnswer, req.Explanation,
		req.QuestionImageURL, req.CorrectImageURL, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, sql.ErrNoRows
	}

	childTables := []string{
		"question_multipart_answers",
		"question_multipart_items",
		"question_drag_items",
		"question_drop_targets",
		"question_options",
	}
	for _, table := range childTables {
		if _, err := tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE question_id = $1`, table), id); err != nil {
			return nil, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	warnings, err := insertChildren(tx, id, req)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return warnings, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// insertChildren writes the child rows matching the question's type.
func insertChildren(tx *sql.Tx, questionID int64, req models.QuestionUpsertRequest) ([]string, error) {
	switch models.NormalizeType(req.Type) {
	case models.TypeMCQ:
		return nil, insertOptions(tx, questionID, req)
	case models.TypeDragDrop:
		return insertDragDrop(tx, questionID, req)
	case models.TypeMultipart:
		return insertMultipart(tx, questionID, req)
	default:
		return nil, nil
	}
}

func insertOptions(tx *sql.Tx, questionID int64, req models.QuestionUpsertRequest) error {
	for i, opt := range req.Options {
		isCorrect := opt.Value == req.CorrectAnswer || opt.Label == req.CorrectAnswer
		_, err := tx.Exec(
			`INSERT INTO question_options (question_id, value, label, image_url, is_correct, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			questionID, opt.Value, opt.Label, nullString(opt.ImageURL), isCorrect, i,
		)
		if err != nil {
			return fmt.Errorf("insert option %d: %w", i, err)
		}
	}
	return nil
}

func insertDragDrop(tx *sql.Tx, questionID int64, req models.QuestionUpsertRequest) ([]string, error) {
	targetIDs := make([]int64, 0, len(req.DropTargets))
	targetByLabel := make(map[string]int64, len(req.DropTargets))

	for i, label := range req.DropTargets {
		var targetID int64
		err := tx.QueryRow(
			`INSERT INTO question_drop_targets (question_id, label, sort_order)
			 VALUES ($1, $2, $3) RETURNING id`,
			questionID, label, i,
		).Scan(&targetID)
		if err != nil {
			return nil, fmt.Errorf("insert drop target %d: %w", i, err)
		}
		targetIDs = append(targetIDs, targetID)
		targetByLabel[label] = targetID
	}

	var warnings []string
	for i, item := range req.DragItems {
		var targetID int64
		switch {
		case i < len(targetIDs):
			targetID = targetIDs[i]
		case item.TargetKey != "":
			id, ok := targetByLabel[item.TargetKey]
			if !ok {
				warnings = append(warnings, fmt.Sprintf(
					"drag item %q skipped: target %q not found", item.Label, item.TargetKey))
				continue
			}
			targetID = id
		default:
			warnings = append(warnings, fmt.Sprintf(
				"drag item %q skipped: no target to pair with", item.Label))
			continue
		}

		_, err := tx.Exec(
			`INSERT INTO question_drag_items (question_id, label, image_url, correct_target_id, sort_order)
			 VALUES ($1, $2, $3, $4, $5)`,
			questionID, item.Label, nullString(item.ImageURL), targetID, i,
		)
		if err != nil {
			return nil, fmt.Errorf("insert drag item %d: %w", i, err)
		}
	}
	return warnings, nil
}

func insertMultipart(tx *sql.Tx, questionID int64, req models.QuestionUpsertRequest) ([]string, error) {
	itemByLabel := make(map[string]int64, len(req.MultipartItems))

	for i, item := range req.MultipartItems {
		var itemID int64
		err := tx.QueryRow(
			`INSERT INTO question_multipart_items (question_id, label, prompt, image_url, sort_order)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			questionID, item.Label, item.Prompt, nullString(item.ImageURL), i,
		).Scan(&itemID)
		if err != nil {
			return nil, fmt.Errorf("insert multipart item %d: %w", i, err)
		}
		itemByLabel[item.Label] = itemID
	}

	// Answers pair with items by label, not by insert position, so a store
	// that reorders rows cannot mis-associate them.
	var warnings []string
	for i, item := range req.MultipartItems {
		itemID, ok := itemByLabel[item.Label]
		if !ok {
			warnings = append(warnings, fmt.Sprintf(
				"answer for multipart item %q skipped: item not found", item.Label))
			continue
		}
		_, err := tx.Exec(
			`INSERT INTO question_multipart_answers (question_id, item_id, answer, sort_order)
			 VALUES ($1, $2, $3, $4)`,
			questionID, itemID, item.Answer, i,
		)
		if err != nil {
			return nil, fmt.Errorf("insert multipart answer %d: %w", i, err)
		}
	}
	return warnings, nil
}

// ── Reading ─────────────────────────────────────────────

func (s *Store) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	var q models.Question
	var helperText, explanation, questionImage, correctImage sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, material_id, question_number, question_mode, question_type,
		        prompt, helper_text, correct_answer, explanation,
		        question_image_url, correct_image_url, created_at
		 FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.MaterialID, &q.QuestionNumber, &q.Mode, &q.Type,
		&q.Prompt, &helperText, &q.CorrectAnswer, &explanation,
		&questionImage, &correctImage, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	q.HelperText = helperText.String
	q.Explanation = explanation.String
	q.QuestionImageURL = questionImage.String
	q.CorrectImageURL = correctImage.String

	if err := s.loadChildren(ctx, []*models.Question{&q}); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *Store) ListByMaterial(ctx context.Context, materialID int64, limit, offset int) ([]models.Question, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions WHERE material_id = $1`, materialID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, material_id, question_number, question_mode, question_type,
		        prompt, helper_text, correct_answer, explanation,
		        question_image_url, correct_image_url, created_at
		 FROM questions WHERE material_id = $1
		 ORDER BY question_number, id
		 LIMIT $2 OFFSET $3`,
		materialID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		var helperText, explanation, questionImage, correctImage sql.NullString
		if err := rows.Scan(&q.ID, &q.MaterialID, &q.QuestionNumber, &q.Mode, &q.Type,
			&q.Prompt, &helperText, &q.CorrectAnswer, &explanation,
			&questionImage, &correctImage, &q.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan question: %w", err)
		}
		q.HelperText = helperText.String
		q.Explanation = explanation.String
		q.QuestionImageURL = questionImage.String
		q.CorrectImageURL = correctImage.String
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	refs := make([]*models.Question, len(questions))
	for i := range questions {
		refs[i] = &questions[i]
	}
	if err := s.loadChildren(ctx, refs); err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// loadChildren fills options, drop targets, drag items and multipart items
// (with their answers) for the given questions in batched IN queries.
func (s *Store) loadChildren(ctx context.Context, questions []*models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	byID := make(map[int64]*models.Question, len(questions))
	placeholders := make([]string, len(questions))
	args := make([]interface{}, len(questions))
	for i, q := range questions {
		byID[q.ID] = q
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = q.ID
	}
	in := strings.Join(placeholders, ",")

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, question_id, value, label, COALESCE(image_url, ''), is_correct, sort_order
		 FROM question_options WHERE question_id IN (%s) ORDER BY question_id, sort_order`, in), args...)
	if err != nil {
		return fmt.Errorf("load options: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var o models.Option
		if err := rows.Scan(&o.ID, &o.QuestionID, &o.Value, &o.Label, &o.ImageURL, &o.IsCorrect, &o.SortOrder); err != nil {
			return fmt.Errorf("scan option: %w", err)
		}
		if q := byID[o.QuestionID]; q != nil {
			q.Options = append(q.Options, o)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	targetRows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, question_id, label, sort_order
		 FROM question_drop_targets WHERE question_id IN (%s) ORDER BY question_id, sort_order`, in), args...)
	if err != nil {
		return fmt.Errorf("load drop targets: %w", err)
	}
	defer targetRows.Close()
	for targetRows.Next() {
		var t models.DropTarget
		if err := targetRows.Scan(&t.ID, &t.QuestionID, &t.Label, &t.SortOrder); err != nil {
			return fmt.Errorf("scan drop target: %w", err)
		}
		if q := byID[t.QuestionID]; q != nil {
			q.DropTargets = append(q.DropTargets, t)
		}
	}
	if err := targetRows.Err(); err != nil {
		return err
	}

	itemRows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, question_id, label, COALESCE(image_url, ''), correct_target_id, sort_order
		 FROM question_drag_items WHERE question_id IN (%s) ORDER BY question_id, sort_order`, in), args...)
	if err != nil {
		return fmt.Errorf("load drag items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var d models.DragItem
		if err := itemRows.Scan(&d.ID, &d.QuestionID, &d.Label, &d.ImageURL, &d.CorrectTargetID, &d.SortOrder); err != nil {
			return fmt.Errorf("scan drag item: %w", err)
		}
		if q := byID[d.QuestionID]; q != nil {
			q.DragItems = append(q.DragItems, d)
		}
	}
	if err := itemRows.Err(); err != nil {
		return err
	}

	mpRows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT i.id, i.question_id, i.label, i.prompt, COALESCE(i.image_url, ''),
		        COALESCE(a.answer, ''), i.sort_order
		 FROM question_multipart_items i
		 LEFT JOIN question_multipart_answers a ON a.item_id = i.id
		 WHERE i.question_id IN (%s) ORDER BY i.question_id, i.sort_order`, in), args...)
	if err != nil {
		return fmt.Errorf("load multipart items: %w", err)
	}
	defer mpRows.Close()
	for mpRows.Next() {
		var m models.MultipartItem
		if err := mpRows.Scan(&m.ID, &m.QuestionID, &m.Label, &m.Prompt, &m.ImageURL, &m.Answer, &m.SortOrder); err != nil {
			return fmt.Errorf("scan multipart item: %w", err)
		}
		if q := byID[m.QuestionID]; q != nil {
			q.MultipartItems = append(q.MultipartItems, m)
		}
	}
	return mpRows.Err()
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

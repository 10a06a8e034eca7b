package importer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/besmartkids/backend/internal/models"
)

// MaxImportRows bounds one upload so a runaway CSV cannot hold the request
// open for minutes of sequential inserts.
const MaxImportRows = 1000

var (
	ErrEmptyCSV          = errors.New("csv must contain a header row and at least one data row")
	ErrTooManyRows       = fmt.Errorf("csv exceeds the %d data row limit", MaxImportRows)
	ErrNoValidRows       = errors.New("no valid rows to import")
	ErrReplaceValidation = errors.New("replace mode rejected: every row must pass validation before existing questions are deleted")
)

// Store is the persistence surface the pipeline writes through.
type Store interface {
	// MaxQuestionNumbers returns the highest stored question number per
	// material for the given ids; materials without questions are absent.
	MaxQuestionNumbers(ctx context.Context, materialIDs []int64) (map[int64]int, error)
	// DeleteByMaterials removes all questions (and their children, by
	// cascade) for the given materials.
	DeleteByMaterials(ctx context.Context, materialIDs []int64) error
	// CreateQuestion inserts one question with its children atomically and
	// returns non-fatal warnings (e.g. a drag item whose target could not
	// be resolved).
	CreateQuestion(ctx context.Context, req models.QuestionUpsertRequest, questionNumber int) (int64, []string, error)
}

type Options struct {
	AutoFillFromExplanation bool
	ReplaceExisting         bool
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Run executes the whole import: tokenize, resolve headers, decode and
// validate each row, optionally delete existing questions, assign sequence
// numbers, and write row by row. The returned summary is meaningful even
// when err is non-nil (it reports what happened before the failure).
func (s *Service) Run(ctx context.Context, raw string, opts Options) (*models.ImportSummary, error) {
	summary := &models.ImportSummary{}

	rows := Tokenize(raw)
	if len(rows) < 2 {
		return summary, ErrEmptyCSV
	}

	header := resolveHeader(rows[0])
	data := rows[1:]
	if len(data) > MaxImportRows {
		return summary, ErrTooManyRows
	}

	var valid []*ImportRow
	for i, cells := range data {
		sourceRow := i + 2 // header is row 1
		row, errs := parseRow(header, cells, sourceRow, opts.AutoFillFromExplanation)
		if len(errs) > 0 {
			summary.Skipped++
			summary.Errors = append(summary.Errors, models.RowIssue{
				Row:     sourceRow,
				Message: strings.Join(errs, "; "),
			})
			continue
		}
		valid = append(valid, row)
	}

	// Replace mode is fail-closed: never delete existing data unless the
	// whole incoming set is clean.
	if opts.ReplaceExisting && len(summary.Errors) > 0 {
		return summary, ErrReplaceValidation
	}

	if len(valid) == 0 {
		return summary, ErrNoValidRows
	}

	materialIDs := distinctMaterials(valid)

	if opts.ReplaceExisting {
		if err := s.store.DeleteByMaterials(ctx, materialIDs); err != nil {
			return summary, fmt.Errorf("delete existing questions: %w", err)
		}
	}

	if err := s.assignNumbers(ctx, valid); err != nil {
		return summary, err
	}

	for _, row := range valid {
		id, warnings, err := s.store.CreateQuestion(ctx, row.ToUpsert(), *row.QuestionNumber)
		if err != nil {
			// A failed parent insert aborts the rest of the batch;
			// everything written so far stays written.
			return summary, fmt.Errorf("row %d: insert question: %w", row.SourceRow, err)
		}
		for _, wmsg := range warnings {
			log.Printf("[importer] row %d question %d: %s", row.SourceRow, id, wmsg)
			summary.Warnings = append(summary.Warnings, models.RowIssue{Row: row.SourceRow, Message: wmsg})
		}
		summary.Inserted++
	}

	summary.OK = true
	return summary, nil
}

// assignNumbers gives every numberless row the next sequential number within
// its material, seeded from the stored maxima and bumped across the batch so
// two numberless rows for one material come out consecutive.
func (s *Service) assignNumbers(ctx context.Context, rows []*ImportRow) error {
	var need []int64
	seen := make(map[int64]bool)
	for _, r := range rows {
		if r.QuestionNumber == nil && !seen[r.MaterialID] {
			seen[r.MaterialID] = true
			need = append(need, r.MaterialID)
		}
	}
	if len(need) == 0 {
		return nil
	}

	maxima, err := s.store.MaxQuestionNumbers(ctx, need)
	if err != nil {
		return fmt.Errorf("load question number maxima: %w", err)
	}

	for _, r := range rows {
		if r.QuestionNumber != nil {
			continue
		}
		next := maxima[r.MaterialID] + 1
		maxima[r.MaterialID] = next
		n := next
		r.QuestionNumber = &n
	}
	return nil
}

func distinctMaterials(rows []*ImportRow) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, r := range rows {
		if !seen[r.MaterialID] {
			seen[r.MaterialID] = true
			ids = append(ids, r.MaterialID)
		}
	}
	return ids
}

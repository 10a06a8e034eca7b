package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/besmartkids/backend/internal/models"
)

// fakeStore records pipeline writes without a database.
type fakeStore struct {
	maxima   map[int64]int
	deleted  []int64
	created  []models.QuestionUpsertRequest
	numbers  []int
	warnings []string
	failRow  int // 1-based index of the create call that should fail, 0 = never
}

func (f *fakeStore) MaxQuestionNumbers(ctx context.Context, materialIDs []int64) (map[int64]int, error) {
	out := make(map[int64]int)
	for _, id := range materialIDs {
		if n, ok := f.maxima[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteByMaterials(ctx context.Context, materialIDs []int64) error {
	f.deleted = append(f.deleted, materialIDs...)
	for _, id := range materialIDs {
		delete(f.maxima, id)
	}
	return nil
}

func (f *fakeStore) CreateQuestion(ctx context.Context, req models.QuestionUpsertRequest, questionNumber int) (int64, []string, error) {
	if f.failRow > 0 && len(f.created)+1 == f.failRow {
		return 0, nil, errors.New("boom")
	}
	f.created = append(f.created, req)
	f.numbers = append(f.numbers, questionNumber)
	return int64(len(f.created)), f.warnings, nil
}

func TestRun_EndToEnd(t *testing.T) {
	csv := "material_id,question_number,question_type,prompt,option_a,option_b,option_c,option_d,correct_answer\n" +
		`7,,mcq,"Berapa 2+2?",2,3,4,5,B` + "\n"

	store := &fakeStore{maxima: map[int64]int{7: 4}}
	summary, err := NewService(store).Run(context.Background(), csv, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !summary.OK || summary.Inserted != 1 || summary.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 create, got %d", len(store.created))
	}

	req := store.created[0]
	if req.CorrectAnswer != "3" {
		t.Errorf("letter B should resolve to option value 3, got %q", req.CorrectAnswer)
	}
	if len(req.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(req.Options))
	}
	if store.numbers[0] != 5 {
		t.Errorf("numberless row should get stored max + 1 = 5, got %d", store.numbers[0])
	}
}

func TestRun_SequentialNumbersPerMaterial(t *testing.T) {
	csv := "material_id,question_type,prompt,correct_answer\n" +
		"1,essay,soal satu,a\n" +
		"2,essay,soal lain,b\n" +
		"1,essay,soal dua,c\n"

	store := &fakeStore{maxima: map[int64]int{1: 5}}
	summary, err := NewService(store).Run(context.Background(), csv, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Inserted != 3 {
		t.Fatalf("expected 3 inserts, got %d", summary.Inserted)
	}

	// material 1 continues from its stored max, material 2 starts fresh
	want := []int{6, 1, 7}
	for i, n := range store.numbers {
		if n != want[i] {
			t.Errorf("row %d: got number %d, want %d", i, n, want[i])
		}
	}
}

func TestRun_SkipsBadRowsKeepsGood(t *testing.T) {
	csv := "material_id,question_type,prompt,correct_answer\n" +
		"1,essay,soal valid,42\n" +
		"abc,essay,soal rusak,42\n" +
		"1,essay,,42\n"

	store := &fakeStore{maxima: map[int64]int{}}
	summary, err := NewService(store).Run(context.Background(), csv, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Inserted != 1 || summary.Skipped != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(summary.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %v", summary.Errors)
	}
	if summary.Errors[0].Row != 3 || summary.Errors[1].Row != 4 {
		t.Errorf("errors should carry 1-based source rows, got %+v", summary.Errors)
	}
}

func TestRun_ReplaceFailClosed(t *testing.T) {
	csv := "material_id,question_type,prompt,correct_answer\n" +
		"1,essay,soal valid,42\n" +
		"abc,essay,soal rusak,42\n"

	store := &fakeStore{maxima: map[int64]int{}}
	summary, err := NewService(store).Run(context.Background(), csv, Options{ReplaceExisting: true})
	if !errors.Is(err, ErrReplaceValidation) {
		t.Fatalf("expected ErrReplaceValidation, got %v", err)
	}

	if len(store.deleted) != 0 {
		t.Errorf("replace mode must not delete when any row fails, deleted %v", store.deleted)
	}
	if len(store.created) != 0 {
		t.Errorf("replace mode must not insert when any row fails, created %d", len(store.created))
	}
	if summary.OK {
		t.Error("summary should not be OK")
	}
}

func TestRun_ReplaceDeletesFirst(t *testing.T) {
	csv := "material_id,question_type,prompt,correct_answer\n" +
		"1,essay,soal,42\n" +
		"2,essay,soal lain,7\n"

	store := &fakeStore{maxima: map[int64]int{1: 9}}
	_, err := NewService(store).Run(context.Background(), csv, Options{ReplaceExisting: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.deleted) != 2 {
		t.Fatalf("expected both materials wiped, got %v", store.deleted)
	}
	// numbering runs after the wipe, so the old max of 9 no longer applies
	if store.numbers[0] != 1 {
		t.Errorf("got number %d for first row, want 1", store.numbers[0])
	}
}

func TestRun_EmptyCSV(t *testing.T) {
	store := &fakeStore{}
	_, err := NewService(store).Run(context.Background(), "material_id,prompt\n", Options{})
	if !errors.Is(err, ErrEmptyCSV) {
		t.Fatalf("expected ErrEmptyCSV, got %v", err)
	}
}

func TestRun_NoValidRows(t *testing.T) {
	csv := "material_id,question_type,prompt,correct_answer\nabc,essay,soal,42\n"
	store := &fakeStore{}
	_, err := NewService(store).Run(context.Background(), csv, Options{})
	if !errors.Is(err, ErrNoValidRows) {
		t.Fatalf("expected ErrNoValidRows, got %v", err)
	}
}

func TestRun_InsertFailureAbortsBatch(t *testing.T) {
	csv := "material_id,question_type,prompt,correct_answer\n" +
		"1,essay,soal satu,a\n" +
		"1,essay,soal dua,b\n" +
		"1,essay,soal tiga,c\n"

	store := &fakeStore{maxima: map[int64]int{}, failRow: 2}
	summary, err := NewService(store).Run(context.Background(), csv, Options{})
	if err == nil {
		t.Fatal("expected an error when an insert fails")
	}

	if summary.Inserted != 1 {
		t.Errorf("rows before the failure stay written, got Inserted=%d", summary.Inserted)
	}
	if len(store.created) != 1 {
		t.Errorf("no rows after the failure should be written, got %d", len(store.created))
	}
}

func TestRun_WarningsSurfaceWithSourceRow(t *testing.T) {
	csv := "material_id,question_type,prompt,drag_items,drop_targets\n" +
		`1,drag_drop,"Pasangkan","apel(X); jeruk(Y)","A; B"` + "\n"

	store := &fakeStore{maxima: map[int64]int{}, warnings: []string{"drag item apel: target X not found"}}
	summary, err := NewService(store).Run(context.Background(), csv, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", summary.Warnings)
	}
	if summary.Warnings[0].Row != 2 {
		t.Errorf("warning should carry the source row, got %+v", summary.Warnings[0])
	}
}

package importer

import (
	"strings"
	"testing"

	"github.com/besmartkids/backend/internal/models"
)

func rowFromCSV(t *testing.T, header, data string, autoFill bool) (*ImportRow, []string) {
	t.Helper()
	rows := Tokenize(header + "\n" + data)
	if len(rows) != 2 {
		t.Fatalf("test CSV produced %d rows, want 2", len(rows))
	}
	h := resolveHeader(rows[0])
	return parseRow(h, rows[1], 2, autoFill)
}

const mcqHeader = "material_id,question_number,question_type,prompt,option_a,option_b,option_c,option_d,correct_answer,explanation"

func TestParseRow_MCQLetterResolved(t *testing.T) {
	row, errs := rowFromCSV(t, mcqHeader, `7,,mcq,"Berapa 2+2?",2,3,4,5,B,`, false)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if row.CorrectAnswer != "3" {
		t.Errorf("expected letter B resolved to option value 3, got %q", row.CorrectAnswer)
	}
	if len(row.Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(row.Options))
	}
	if row.MaterialID != 7 {
		t.Errorf("expected material 7, got %d", row.MaterialID)
	}
}

func TestParseRow_MCQLetterOutOfRange(t *testing.T) {
	_, errs := rowFromCSV(t, mcqHeader, `7,,mcq,"Berapa 2+2?",2,3,,,E,`, false)
	if len(errs) == 0 {
		t.Fatal("expected an error for answer letter past the filled options")
	}
	if !strings.Contains(errs[0], "letter E") {
		t.Errorf("error should name the letter, got %q", errs[0])
	}
}

func TestParseRow_MCQLetterWithBlankColumn(t *testing.T) {
	row, errs := rowFromCSV(t, mcqHeader, `7,,mcq,"Berapa 5+5?",,10,20,,B,`, false)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if row.CorrectAnswer != "10" {
		t.Errorf("letter B names the option_b column even with option_a blank, got %q", row.CorrectAnswer)
	}
	if len(row.Options) != 2 {
		t.Errorf("blank columns stay out of the stored options, got %d", len(row.Options))
	}
}

func TestParseRow_MCQLetterNamesBlankColumn(t *testing.T) {
	_, errs := rowFromCSV(t, mcqHeader, `7,,mcq,"Berapa 5+5?",,10,20,,A,`, false)
	if len(errs) == 0 {
		t.Fatal("expected an error when the answer letter names a blank column")
	}
	if !strings.Contains(errs[0], "letter A") {
		t.Errorf("error should name the letter, got %q", errs[0])
	}
}

func TestParseRow_MCQSingleLetterOptionValue(t *testing.T) {
	row, errs := rowFromCSV(t, mcqHeader, `7,,mcq,"Simbol perkalian?",X,Y,,,X,`, false)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if row.CorrectAnswer != "X" {
		t.Errorf("a one-letter answer equal to an option value is literal, got %q", row.CorrectAnswer)
	}
}

func TestParseRow_MCQAnswerValuePassesThrough(t *testing.T) {
	row, errs := rowFromCSV(t, mcqHeader, `7,,mcq,"Ibukota Indonesia?",Jakarta,Bandung,,,Jakarta,`, false)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if row.CorrectAnswer != "Jakarta" {
		t.Errorf("multi-character answer should pass through, got %q", row.CorrectAnswer)
	}
}

func TestParseRow_DragDropCountMismatch(t *testing.T) {
	header := "material_id,question_type,prompt,drag_items,drop_targets"
	_, errs := rowFromCSV(t, header, `3,drag_drop,"Pasangkan buah","apel(A); jeruk(B); mangga(C)","A; B"`, false)
	if len(errs) == 0 {
		t.Fatal("expected a count mismatch error")
	}
	if !strings.Contains(errs[0], "(3)") || !strings.Contains(errs[0], "(2)") {
		t.Errorf("mismatch error should carry both counts, got %q", errs[0])
	}
}

func TestParseRow_DragDropSynthesizedTargets(t *testing.T) {
	header := "material_id,question_type,prompt,drag_items"
	row, errs := rowFromCSV(t, header, `3,drag_drop,"Urutkan","satu(A); dua(B); tiga(C)"`, false)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(row.DropTargets) != 3 {
		t.Fatalf("expected 3 synthesized targets, got %d", len(row.DropTargets))
	}
	if row.DropTargets[0] != "A" || row.DropTargets[2] != "C" {
		t.Errorf("targets should be letters in order, got %v", row.DropTargets)
	}
}

func TestParseRow_DragDropReclassifiedAsEssay(t *testing.T) {
	header := "material_id,question_type,prompt,correct_answer"
	row, errs := rowFromCSV(t, header, `3,drag_drop,"Berapa 5x5?",25`, false)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if row.Type != models.TypeEssay {
		t.Errorf("drag_drop without items or targets should become essay, got %s", row.Type)
	}
}

func TestParseRow_EssayAutoFillFromExplanation(t *testing.T) {
	header := "material_id,question_type,prompt,correct_answer,explanation"
	row, errs := rowFromCSV(t, header, `3,essay,"Berapa setengah dari 9?",,"Jawaban benar: 4.5"`, true)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if row.CorrectAnswer != "4.5" {
		t.Errorf("expected auto-filled answer 4.5, got %q", row.CorrectAnswer)
	}
}

func TestParseRow_EssayAutoFillDisabled(t *testing.T) {
	header := "material_id,question_type,prompt,correct_answer,explanation"
	_, errs := rowFromCSV(t, header, `3,essay,"Berapa setengah dari 9?",,"Jawaban benar: 4.5"`, false)
	if len(errs) == 0 {
		t.Fatal("expected missing correct_answer error when auto-fill is off")
	}
}

func TestParseRow_QuestionTextFallback(t *testing.T) {
	header := "material_id,question_type,question_text,correct_answer"
	row, errs := rowFromCSV(t, header, `3,essay,"Berapa 1+1?",2`, false)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if row.Prompt != "Berapa 1+1?" {
		t.Errorf("prompt should fall back to question_text, got %q", row.Prompt)
	}
}

func TestParseRow_BadMaterialAndNumber(t *testing.T) {
	header := "material_id,question_number,question_type,prompt,correct_answer"
	_, errs := rowFromCSV(t, header, `abc,nol,essay,"Soal?",42`, false)
	if len(errs) != 2 {
		t.Fatalf("expected 2 independent errors, got %v", errs)
	}
}

func TestParseRow_FallbackExplanation(t *testing.T) {
	header := "material_id,question_type,prompt,correct_answer,explanation"
	row, errs := rowFromCSV(t, header, `3,essay,"Berapa 2+3?",5,`, false)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if row.Explanation != "Hasil penjumlahan pada soal tersebut adalah 5." {
		t.Errorf("unexpected fallback explanation: %q", row.Explanation)
	}
}

func TestNormalizeTypeSynonyms(t *testing.T) {
	tests := []struct {
		raw  string
		want models.QuestionType
	}{
		{"mcq", models.TypeMCQ},
		{"Multiple_Choice", models.TypeMCQ},
		{"input", models.TypeEssay},
		{"dragdrop", models.TypeDragDrop},
		{"multi-part", models.TypeMultipart},
		{"", models.TypeMCQ},
		{"mystery", models.TypeMCQ},
	}

	for _, tt := range tests {
		if got := models.NormalizeType(tt.raw); got != tt.want {
			t.Errorf("NormalizeType(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

package generator

import (
	"strings"
	"testing"
)

func TestParseDraft_ValidJSON(t *testing.T) {
	input := `{"explanation":"Jawaban yang benar adalah 4 karena 2+2 berarti menjumlahkan dua dengan dua."}`

	draft, err := ParseDraft(input)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.HasPrefix(draft.Explanation, "Jawaban yang benar") {
		t.Errorf("unexpected explanation: %q", draft.Explanation)
	}
}

func TestParseDraft_MarkdownFences(t *testing.T) {
	input := "```json\n{\"explanation\":\"Hasil penjumlahan 2+2 adalah 4.\"}\n```"

	draft, err := ParseDraft(input)
	if err != nil {
		t.Fatalf("expected no error with markdown fences, got: %v", err)
	}
	if draft.Explanation != "Hasil penjumlahan 2+2 adalah 4." {
		t.Errorf("unexpected explanation: %q", draft.Explanation)
	}
}

func TestParseDraft_EmptyExplanation(t *testing.T) {
	if _, err := ParseDraft(`{"explanation":"   "}`); err == nil {
		t.Fatal("expected error for blank explanation")
	}
}

func TestParseDraft_NotJSON(t *testing.T) {
	if _, err := ParseDraft("Jawabannya adalah 4."); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestParseDraft_TooLong(t *testing.T) {
	long := `{"explanation":"` + strings.Repeat("a", maxExplanationLen+1) + `"}`
	if _, err := ParseDraft(long); err == nil {
		t.Fatal("expected error for oversized explanation")
	}
}

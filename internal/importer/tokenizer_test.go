package importer

import (
	"reflect"
	"testing"
)

func TestTokenize_QuotedCells(t *testing.T) {
	raw := `material_id,prompt
1,"Berapa hasil 2+2, jika dihitung?"
2,"Dia berkata ""halo"" kemarin"`

	rows := Tokenize(raw)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	if got := rows[1][1]; got != "Berapa hasil 2+2, jika dihitung?" {
		t.Errorf("quoted comma not preserved, got %q", got)
	}
	if got := rows[2][1]; got != `Dia berkata "halo" kemarin` {
		t.Errorf("doubled quote not decoded, got %q", got)
	}
}

func TestTokenize_QuotedNewline(t *testing.T) {
	raw := "material_id,prompt\n1,\"baris satu\nbaris dua\"\n"

	rows := Tokenize(raw)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if got := rows[1][1]; got != "baris satu\nbaris dua" {
		t.Errorf("newline inside quotes not preserved, got %q", got)
	}
}

func TestTokenize_CRLFAndBOM(t *testing.T) {
	raw := "\uFEFFmaterial_id,prompt\r\n1,soal pertama\r\n2,soal kedua\r\n"

	rows := Tokenize(raw)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "material_id" {
		t.Errorf("BOM not stripped from first header cell, got %q", rows[0][0])
	}
	if rows[1][1] != "soal pertama" {
		t.Errorf("CR not dropped, got %q", rows[1][1])
	}
}

func TestTokenize_BlankRowsDiscarded(t *testing.T) {
	raw := "material_id,prompt\n\n1,soal\n , \n2,soal lain"

	rows := Tokenize(raw)
	if len(rows) != 3 {
		t.Fatalf("expected blank rows discarded, got %d rows: %v", len(rows), rows)
	}
}

func TestTokenize_TrailingRowWithoutNewline(t *testing.T) {
	rows := Tokenize("a,b\n1,2")
	want := [][]string{{"a", "b"}, {"1", "2"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("expected %v, got %v", want, rows)
	}
}

func TestTokenize_Empty(t *testing.T) {
	if rows := Tokenize(""); len(rows) != 0 {
		t.Errorf("expected no rows for empty input, got %v", rows)
	}
}

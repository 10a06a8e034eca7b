package importer

import (
	"reflect"
	"testing"
)

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want []string
	}{
		{"empty", "", nil},
		{"json array", `["apel", "jeruk", "mangga"]`, []string{"apel", "jeruk", "mangga"}},
		{"json with numbers", `[1, 2, 3]`, []string{"1", "2", "3"}},
		{"semicolons", "apel; jeruk; mangga", []string{"apel", "jeruk", "mangga"}},
		{"pipes", "apel|jeruk|mangga", []string{"apel", "jeruk", "mangga"}},
		{"commas", "apel, jeruk", []string{"apel", "jeruk"}},
		{"comma inside parens", "apel(A,B); jeruk(C)", []string{"apel(A,B)", "jeruk(C)"}},
		{"malformed json falls back", `[apel; jeruk`, []string{"[apel", "jeruk"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeList(tt.cell)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("decodeList(%q) = %v, want %v", tt.cell, got, tt.want)
			}
		})
	}
}

func TestDecodeDragItem(t *testing.T) {
	tests := []struct {
		entry      string
		wantLabel  string
		wantTarget string
	}{
		{"apel(A)", "apel", "A"},
		{"buah naga (B)", "buah naga", "B"},
		{"apel", "apel", ""},
		{"(A)", "(A)", ""},
	}

	for _, tt := range tests {
		got := decodeDragItem(tt.entry)
		if got.Label != tt.wantLabel || got.TargetKey != tt.wantTarget {
			t.Errorf("decodeDragItem(%q) = {%q %q}, want {%q %q}",
				tt.entry, got.Label, got.TargetKey, tt.wantLabel, tt.wantTarget)
		}
	}
}

func TestDecodeMultipart_JSON(t *testing.T) {
	cell := `[{"label":"a","prompt":"2+2","answer":"4"},{"label":"b","prompt":"3+3","answer":"6","imageUrl":"http://x/img.png"}]`

	items := decodeMultipart(cell)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Label != "a" || items[0].Prompt != "2+2" || items[0].Answer != "4" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].ImageURL != "http://x/img.png" {
		t.Errorf("imageUrl not decoded: %+v", items[1])
	}
}

func TestDecodeMultipart_Positional(t *testing.T) {
	items := decodeMultipart("a|2+2|4; b|3+3|6")
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[1].Label != "b" || items[1].Prompt != "3+3" || items[1].Answer != "6" {
		t.Errorf("unexpected second item: %+v", items[1])
	}
}

func TestDecodeMultipart_DropsIncomplete(t *testing.T) {
	items := decodeMultipart("a|2+2|4; b|3+3; ; c||9")
	if len(items) != 1 {
		t.Fatalf("expected entries without prompt or answer dropped, got %d: %+v", len(items), items)
	}
	if items[0].Label != "a" {
		t.Errorf("wrong surviving item: %+v", items[0])
	}
}

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Jawaban benar: 4.5", "4.5", true},
		{"hasilnya adalah -12", "-12", true},
		{"tidak ada angka", "", false},
		{"angka 3 lalu 7", "3", true},
	}

	for _, tt := range tests {
		got, ok := extractNumber(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("extractNumber(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

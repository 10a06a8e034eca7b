package importer

import "testing"

func TestFallbackExplanation(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		answer string
		want   string
	}{
		{"no answer", "Berapa 2+2?", "", ""},
		{"addition", "Berapa 2+3?", "5", "Hasil penjumlahan pada soal tersebut adalah 5."},
		{"subtraction", "Berapa 9-4?", "5", "Hasil pengurangan pada soal tersebut adalah 5."},
		{"comparison", "Manakah yang lebih besar, 3/4 atau 2/3?", "3/4",
			"Dengan membandingkan nilai-nilai pada soal, jawaban yang benar adalah 3/4."},
		{"simplify", "Sederhanakan pecahan 4/8", "1/2", "Bentuk paling sederhana dari soal tersebut adalah 1/2."},
		{"default", "Ibukota Indonesia?", "Jakarta", "Jawaban yang benar adalah Jakarta."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fallbackExplanation(tt.prompt, tt.answer); got != tt.want {
				t.Errorf("fallbackExplanation(%q, %q) = %q, want %q", tt.prompt, tt.answer, got, tt.want)
			}
		})
	}
}

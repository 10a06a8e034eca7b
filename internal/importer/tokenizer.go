package importer

import "strings"

// Tokenize splits raw CSV text into rows of cells with a single left-to-right
// scan. Inside quotes a doubled quote decodes to one literal quote and
// delimiters and newlines are copied through; outside quotes a comma ends the
// cell, a newline ends the row and carriage returns are dropped. A trailing
// partial row without a final newline is still flushed. Rows whose cells are
// all blank are discarded.
func Tokenize(raw string) [][]string {
	raw = strings.TrimPrefix(raw, "\uFEFF")

	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if inQuotes {
			if c == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					cell.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cell.WriteRune(c)
			}
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, cell.String())
			cell.Reset()
		case '\n':
			row = append(row, cell.String())
			cell.Reset()
			rows = append(rows, row)
			row = nil
		case '\r':
			// dropped
		default:
			cell.WriteRune(c)
		}
	}

	if cell.Len() > 0 || len(row) > 0 {
		row = append(row, cell.String())
		rows = append(rows, row)
	}

	kept := rows[:0]
	for _, r := range rows {
		if !blankRow(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

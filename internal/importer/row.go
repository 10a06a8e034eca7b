package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/besmartkids/backend/internal/models"
)

// optionLetters are the CSV option columns, in answer-letter order.
var optionLetters = []string{"a", "b", "c", "d"}

// ImportRow is one decoded, validated CSV data row ready for persistence.
type ImportRow struct {
	SourceRow        int // 1-based, header is row 1
	MaterialID       int64
	QuestionNumber   *int
	Mode             models.QuestionMode
	Type             models.QuestionType
	Prompt           string
	HelperText       string
	Options          []models.OptionInput
	DragItems        []models.DragItemInput
	DropTargets      []string
	MultipartItems   []models.MultipartItemInput
	CorrectAnswer    string
	Explanation      string
	QuestionImageURL string
	CorrectImageURL  string
}

// ToUpsert converts the row into the shared persistence shape used by both
// the importer and the CMS create endpoint.
func (r *ImportRow) ToUpsert() models.QuestionUpsertRequest {
	return models.QuestionUpsertRequest{
		MaterialID:       r.MaterialID,
		QuestionNumber:   r.QuestionNumber,
		Mode:             string(r.Mode),
		Type:             string(r.Type),
		Prompt:           r.Prompt,
		HelperText:       r.HelperText,
		CorrectAnswer:    r.CorrectAnswer,
		Explanation:      r.Explanation,
		QuestionImageURL: r.QuestionImageURL,
		CorrectImageURL:  r.CorrectImageURL,
		Options:          r.Options,
		DropTargets:      r.DropTargets,
		DragItems:        r.DragItems,
		MultipartItems:   r.MultipartItems,
	}
}

// parseRow decodes and validates one data row. The returned error strings are
// human-readable and independent; a row with any error never reaches the
// persistence writer.
func parseRow(h headerMap, cells []string, sourceRow int, autoFill bool) (*ImportRow, []string) {
	var errs []string
	row := &ImportRow{SourceRow: sourceRow}

	materialID, err := strconv.ParseInt(h.get(cells, "material_id"), 10, 64)
	if err != nil || materialID <= 0 {
		errs = append(errs, "material_id must be a positive integer")
	}
	row.MaterialID = materialID

	row.Prompt = h.get(cells, "prompt")
	if row.Prompt == "" {
		row.Prompt = h.get(cells, "question_text")
	}
	if row.Prompt == "" {
		errs = append(errs, "prompt is required")
	}

	if raw := h.get(cells, "question_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			errs = append(errs, fmt.Sprintf("question_number %q must be a positive integer", raw))
		} else {
			row.QuestionNumber = &n
		}
	}

	row.Mode = models.NormalizeMode(h.get(cells, "question_mode"))
	row.Type = models.NormalizeType(h.get(cells, "question_type"))
	row.HelperText = h.get(cells, "helper_text")
	row.CorrectAnswer = h.get(cells, "correct_answer")
	row.QuestionImageURL = h.get(cells, "question_image_url")
	row.CorrectImageURL = h.get(cells, "correct_image_url")

	// optionCells keeps the fixed column layout so answer letters resolve by
	// column position even when an earlier option column is blank.
	optionCells := make([]string, len(optionLetters))
	for i, letter := range optionLetters {
		value := h.get(cells, "option_"+letter)
		optionCells[i] = value
		if value == "" {
			continue
		}
		row.Options = append(row.Options, models.OptionInput{
			Value:    value,
			Label:    value,
			ImageURL: h.get(cells, "option_"+letter+"_image_url"),
		})
	}

	for _, entry := range decodeList(h.get(cells, "drag_items")) {
		row.DragItems = append(row.DragItems, decodeDragItem(entry))
	}
	row.DropTargets = decodeList(h.get(cells, "drop_targets"))
	if len(row.DropTargets) == 0 && len(row.DragItems) > 0 {
		// CSVs often omit targets; synthesize letters matching the item count.
		for i := range row.DragItems {
			row.DropTargets = append(row.DropTargets, string(rune('A'+i)))
		}
	}

	row.MultipartItems = decodeMultipart(h.get(cells, "multipart_items"))

	// A common authoring mistake marks plain answer questions as drag_drop.
	if row.Type == models.TypeDragDrop &&
		len(row.DragItems) == 0 && len(row.DropTargets) == 0 &&
		len(row.Options) == 0 && row.CorrectAnswer != "" {
		row.Type = models.TypeEssay
	}

	row.Explanation = h.get(cells, "explanation")

	errs = append(errs, validateByType(row, optionCells, autoFill)...)

	if row.Explanation == "" {
		row.Explanation = fallbackExplanation(row.Prompt, row.CorrectAnswer)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return row, nil
}

func validateByType(row *ImportRow, optionCells []string, autoFill bool) []string {
	var errs []string

	switch row.Type {
	case models.TypeMCQ:
		if len(row.Options) == 0 {
			errs = append(errs, "mcq requires at least one option (option_a..option_d)")
		}
		if row.CorrectAnswer == "" {
			errs = append(errs, "correct_answer is required for mcq")
			break
		}
		if resolved, err := resolveAnswerLetter(row.CorrectAnswer, optionCells); err != nil {
			errs = append(errs, err.Error())
		} else {
			row.CorrectAnswer = resolved
		}

	case models.TypeEssay:
		if row.CorrectAnswer == "" && autoFill {
			if n, ok := extractNumber(row.Explanation); ok {
				row.CorrectAnswer = n
			}
		}
		if row.CorrectAnswer == "" {
			errs = append(errs, "correct_answer is required for essay")
		}

	case models.TypeDragDrop:
		if len(row.DragItems) == 0 {
			errs = append(errs, "drag_items is required for drag_drop")
		}
		if len(row.DropTargets) == 0 {
			errs = append(errs, "drop_targets is required for drag_drop")
		}
		if len(row.DragItems) > 0 && len(row.DropTargets) > 0 &&
			len(row.DragItems) != len(row.DropTargets) {
			errs = append(errs, fmt.Sprintf(
				"drag_items count (%d) does not match drop_targets count (%d)",
				len(row.DragItems), len(row.DropTargets)))
		}

	case models.TypeMultipart:
		if len(row.MultipartItems) == 0 {
			errs = append(errs, "multipart requires at least one multipart_items entry")
		}
	}

	return errs
}

// resolveAnswerLetter maps a bare letter to the option column it names.
// optionCells is the fixed column layout (option_a..option_d in order, blanks
// kept), so a blank interior column cannot shift the letter onto the wrong
// option. A one-letter answer that literally equals a filled option value is
// taken as that value, not a column reference; any other single letter must
// name a filled column. Multi-character answers pass through unchanged.
func resolveAnswerLetter(answer string, optionCells []string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(answer))
	if len(trimmed) != 1 || trimmed[0] < 'A' || trimmed[0] > 'Z' {
		return answer, nil
	}

	for _, v := range optionCells {
		if v != "" && v == strings.TrimSpace(answer) {
			return v, nil
		}
	}

	idx := int(trimmed[0] - 'A')
	if idx >= len(optionCells) || optionCells[idx] == "" {
		return "", fmt.Errorf("correct_answer letter %s does not match a filled option", trimmed)
	}
	return optionCells[idx], nil
}

package importer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/besmartkids/backend/internal/models"
)

// decodeList turns a raw cell into a list of strings. A JSON array is used
// as-is (elements stringified); anything else is split on ";", "|" or ","
// outside parenthesized groups. The fallback path cannot fail — at worst it
// returns an empty list.
func decodeList(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}

	if strings.HasPrefix(cell, "[") {
		var arr []interface{}
		if err := json.Unmarshal([]byte(cell), &arr); err == nil {
			out := make([]string, 0, len(arr))
			for _, v := range arr {
				s, ok := v.(string)
				if !ok {
					s = fmt.Sprintf("%v", v)
				}
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
			return out
		}
	}

	return splitOutsideParens(cell)
}

// splitOutsideParens splits on ";", "|" and "," but never inside
// parenthesized groups, so "apel(A); jeruk(B)" keeps its target keys intact.
func splitOutsideParens(s string) []string {
	var out []string
	var seg strings.Builder
	depth := 0

	flush := func() {
		if v := strings.TrimSpace(seg.String()); v != "" {
			out = append(out, v)
		}
		seg.Reset()
	}

	for _, c := range s {
		switch c {
		case '(':
			depth++
			seg.WriteRune(c)
		case ')':
			if depth > 0 {
				depth--
			}
			seg.WriteRune(c)
		case ';', '|', ',':
			if depth == 0 {
				flush()
			} else {
				seg.WriteRune(c)
			}
		default:
			seg.WriteRune(c)
		}
	}
	flush()
	return out
}

// dragItemPattern captures an optional trailing "(targetKey)" group.
var dragItemPattern = regexp.MustCompile(`^(.*?)\s*\(([^()]+)\)$`)

// decodeDragItem splits "label(targetKey)" into its parts; a bare label has
// an empty target key.
func decodeDragItem(entry string) models.DragItemInput {
	if m := dragItemPattern.FindStringSubmatch(entry); m != nil && strings.TrimSpace(m[1]) != "" {
		return models.DragItemInput{
			Label:     strings.TrimSpace(m[1]),
			TargetKey: strings.TrimSpace(m[2]),
		}
	}
	return models.DragItemInput{Label: entry}
}

// decodeMultipart parses the multipart_items cell: either a JSON array of
// {label, prompt, answer, imageUrl} objects, or ";"-separated entries of up
// to four "|"-separated positional fields. Entries missing a prompt or an
// answer are dropped silently.
func decodeMultipart(cell string) []models.MultipartItemInput {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}

	if strings.HasPrefix(cell, "[") {
		var arr []struct {
			Label    string `json:"label"`
			Prompt   string `json:"prompt"`
			Answer   string `json:"answer"`
			ImageURL string `json:"imageUrl"`
		}
		if err := json.Unmarshal([]byte(cell), &arr); err == nil {
			var out []models.MultipartItemInput
			for _, e := range arr {
				item := models.MultipartItemInput{
					Label:    strings.TrimSpace(e.Label),
					Prompt:   strings.TrimSpace(e.Prompt),
					Answer:   strings.TrimSpace(e.Answer),
					ImageURL: strings.TrimSpace(e.ImageURL),
				}
				if item.Prompt == "" || item.Answer == "" {
					continue
				}
				out = append(out, item)
			}
			return out
		}
	}

	var out []models.MultipartItemInput
	for _, entry := range strings.Split(cell, ";") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		fields := strings.SplitN(entry, "|", 4)
		var item models.MultipartItemInput
		for i, f := range fields {
			f = strings.TrimSpace(f)
			switch i {
			case 0:
				item.Label = f
			case 1:
				item.Prompt = f
			case 2:
				item.Answer = f
			case 3:
				item.ImageURL = f
			}
		}
		if item.Prompt == "" || item.Answer == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// numberPattern matches the first signed decimal number substring.
var numberPattern = regexp.MustCompile(`[-+]?[0-9]+(?:\.[0-9]+)?`)

// extractNumber pulls the first signed decimal number out of free text,
// used to auto-fill essay answers from an explanation.
func extractNumber(s string) (string, bool) {
	m := numberPattern.FindString(s)
	if m == "" {
		return "", false
	}
	return m, true
}

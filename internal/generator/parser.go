package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExplanationDraft is the model's parsed output.
type ExplanationDraft struct {
	Explanation string `json:"explanation"`
}

// maxExplanationLen keeps drafts within what the CMS explanation field holds.
const maxExplanationLen = 2000

func ParseDraft(responseBody string) (*ExplanationDraft, error) {
	cleaned := stripCodeFences(responseBody)

	var draft ExplanationDraft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	draft.Explanation = strings.TrimSpace(draft.Explanation)
	if draft.Explanation == "" {
		return nil, fmt.Errorf("empty explanation in response")
	}
	if len(draft.Explanation) > maxExplanationLen {
		return nil, fmt.Errorf("explanation length %d exceeds limit %d", len(draft.Explanation), maxExplanationLen)
	}

	return &draft, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}

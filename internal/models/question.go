package models

import (
	"strings"
	"time"
)

type QuestionType string

const (
	TypeMCQ       QuestionType = "mcq"
	TypeEssay     QuestionType = "essay"
	TypeDragDrop  QuestionType = "drag_drop"
	TypeMultipart QuestionType = "multipart"
)

var ValidQuestionTypes = map[QuestionType]bool{
	TypeMCQ:       true,
	TypeEssay:     true,
	TypeDragDrop:  true,
	TypeMultipart: true,
}

// typeSynonyms maps the loose spellings seen in CSV uploads to the canonical enum.
var typeSynonyms = map[string]QuestionType{
	"mcq":             TypeMCQ,
	"multiple_choice": TypeMCQ,
	"input":           TypeEssay,
	"essay":           TypeEssay,
	"dragdrop":        TypeDragDrop,
	"drag_drop":       TypeDragDrop,
	"multipart":       TypeMultipart,
	"multi_part":      TypeMultipart,
	"multi-part":      TypeMultipart,
}

// NormalizeType maps a raw type cell to the canonical question type.
// Unrecognized values fall back to mcq rather than erroring — uploads from
// the old CMS template leave the column blank for multiple choice.
func NormalizeType(raw string) QuestionType {
	if t, ok := typeSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return t
	}
	return TypeMCQ
}

type QuestionMode string

const (
	ModePractice QuestionMode = "practice"
	ModeTryout   QuestionMode = "tryout"
)

// NormalizeMode defaults to practice unless the cell says tryout.
func NormalizeMode(raw string) QuestionMode {
	if strings.EqualFold(strings.TrimSpace(raw), string(ModeTryout)) {
		return ModeTryout
	}
	return ModePractice
}

// ── Core Structs ───────────────────────────────────────

type Question struct {
	ID               int64           `json:"id"`
	MaterialID       int64           `json:"material_id"`
	QuestionNumber   int             `json:"question_number"`
	Mode             QuestionMode    `json:"question_mode"`
	Type             QuestionType    `json:"question_type"`
	Prompt           string          `json:"prompt"`
	HelperText       string          `json:"helper_text,omitempty"`
	CorrectAnswer    string          `json:"correct_answer"`
	Explanation      string          `json:"explanation,omitempty"`
	QuestionImageURL string          `json:"question_image_url,omitempty"`
	CorrectImageURL  string          `json:"correct_image_url,omitempty"`
	Options          []Option        `json:"options,omitempty"`
	DropTargets      []DropTarget    `json:"drop_targets,omitempty"`
	DragItems        []DragItem      `json:"drag_items,omitempty"`
	MultipartItems   []MultipartItem `json:"multipart_items,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

type Option struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Value      string `json:"value"`
	Label      string `json:"label"`
	ImageURL   string `json:"image_url,omitempty"`
	IsCorrect  bool   `json:"is_correct"`
	SortOrder  int    `json:"sort_order"`
}

type DropTarget struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Label      string `json:"label"`
	SortOrder  int    `json:"sort_order"`
}

type DragItem struct {
	ID              int64  `json:"id"`
	QuestionID      int64  `json:"question_id"`
	Label           string `json:"label"`
	ImageURL        string `json:"image_url,omitempty"`
	CorrectTargetID *int64 `json:"correct_target_id,omitempty"`
	SortOrder       int    `json:"sort_order"`
}

type MultipartItem struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Label      string `json:"label"`
	Prompt     string `json:"prompt"`
	ImageURL   string `json:"image_url,omitempty"`
	Answer     string `json:"answer"`
	SortOrder  int    `json:"sort_order"`
}

// ── Request Types ─────────────────────────────────────

// QuestionUpsertRequest is the CMS create/update payload. Children are
// replaced wholesale on update; whichever child lists match the question
// type are used, the rest are ignored.
type QuestionUpsertRequest struct {
	MaterialID       int64                `json:"material_id"`
	QuestionNumber   *int                 `json:"question_number,omitempty"`
	Mode             string               `json:"question_mode"`
	Type             string               `json:"question_type"`
	Prompt           string               `json:"prompt"`
	HelperText       string               `json:"helper_text"`
	CorrectAnswer    string               `json:"correct_answer"`
	Explanation      string               `json:"explanation"`
	QuestionImageURL string               `json:"question_image_url"`
	CorrectImageURL  string               `json:"correct_image_url"`
	Options          []OptionInput        `json:"options"`
	DropTargets      []string             `json:"drop_targets"`
	DragItems        []DragItemInput      `json:"drag_items"`
	MultipartItems   []MultipartItemInput `json:"multipart_items"`
}

type OptionInput struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	ImageURL string `json:"image_url"`
}

type DragItemInput struct {
	Label     string `json:"label"`
	ImageURL  string `json:"image_url"`
	TargetKey string `json:"target_key"`
}

type MultipartItemInput struct {
	Label    string `json:"label"`
	Prompt   string `json:"prompt"`
	Answer   string `json:"answer"`
	ImageURL string `json:"image_url"`
}

// ── Response Types ────────────────────────────────────

type QuestionListResponse struct {
	Questions []Question `json:"questions"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	PageSize  int        `json:"page_size"`
}

// ── Quiz Types (strip answers for serving) ────────────

type QuizQuestion struct {
	ID               int64          `json:"id"`
	MaterialID       int64          `json:"material_id"`
	QuestionNumber   int            `json:"question_number"`
	Mode             QuestionMode   `json:"question_mode"`
	Type             QuestionType   `json:"question_type"`
	Prompt           string         `json:"prompt"`
	HelperText       string         `json:"helper_text,omitempty"`
	QuestionImageURL string         `json:"question_image_url,omitempty"`
	Options          []QuizOption   `json:"options,omitempty"`
	DropTargets      []string       `json:"drop_targets,omitempty"`
	DragItems        []QuizDragItem `json:"drag_items,omitempty"`
	MultipartItems   []QuizItem     `json:"multipart_items,omitempty"`
}

type QuizOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	ImageURL string `json:"image_url,omitempty"`
}

type QuizDragItem struct {
	Label    string `json:"label"`
	ImageURL string `json:"image_url,omitempty"`
}

type QuizItem struct {
	Label    string `json:"label"`
	Prompt   string `json:"prompt"`
	ImageURL string `json:"image_url,omitempty"`
}

func (q *Question) ToQuizQuestion() QuizQuestion {
	out := QuizQuestion{
		ID:               q.ID,
		MaterialID:       q.MaterialID,
		QuestionNumber:   q.QuestionNumber,
		Mode:             q.Mode,
		Type:             q.Type,
		Prompt:           q.Prompt,
		HelperText:       q.HelperText,
		QuestionImageURL: q.QuestionImageURL,
	}
	for _, o := range q.Options {
		out.Options = append(out.Options, QuizOption{Value: o.Value, Label: o.Label, ImageURL: o.ImageURL})
	}
	for _, t := range q.DropTargets {
		out.DropTargets = append(out.DropTargets, t.Label)
	}
	for _, d := range q.DragItems {
		out.DragItems = append(out.DragItems, QuizDragItem{Label: d.Label, ImageURL: d.ImageURL})
	}
	for _, m := range q.MultipartItems {
		out.MultipartItems = append(out.MultipartItems, QuizItem{Label: m.Label, Prompt: m.Prompt, ImageURL: m.ImageURL})
	}
	return out
}

// ── Import Types ──────────────────────────────────────

// RowIssue ties an error or warning to its 1-based CSV source row
// (the header is row 1, the first data row is row 2).
type RowIssue struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportSummary struct {
	OK           bool       `json:"ok"`
	Inserted     int        `json:"inserted"`
	Skipped      int        `json:"skipped"`
	Errors       []RowIssue `json:"errors,omitempty"`
	Warnings     []RowIssue `json:"warnings,omitempty"`
	ErrorMessage string     `json:"error,omitempty"`
}

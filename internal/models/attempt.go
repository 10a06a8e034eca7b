package models

import "time"

// MaxAttemptsPerMaterial caps how many quiz attempts a student gets per material.
const MaxAttemptsPerMaterial = 2

type Attempt struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	MaterialID    int64     `json:"material_id"`
	AttemptNumber int       `json:"attempt_number"`
	QuestionCount int       `json:"question_count"`
	CorrectCount  int       `json:"correct_count"`
	ScorePct      int       `json:"score_pct"`
	CreatedAt     time.Time `json:"created_at"`
}

type AttemptAnswer struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
}

type SubmitAttemptRequest struct {
	Answers []AttemptAnswer `json:"answers"`
}

type AttemptListResponse struct {
	Attempts     []Attempt `json:"attempts"`
	BestScorePct int       `json:"best_score_pct"`
}

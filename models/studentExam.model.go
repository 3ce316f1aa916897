package models

import (
	"gorm.io/gorm"
)

const (
	ExamStatusNotStarted = "not_started"
	ExamStatusInProgress = "in_progress"
	ExamStatusCompleted  = "completed"
)

// StudentExam is a student's attempt record for one exam. There is only one
// live row per (student, exam); retakes reuse the row and the scored history
// lives in ExamResult.
type StudentExam struct {
	gorm.Model
	StudentID uint   `gorm:"index;not null" json:"student_id"`
	ExamID    uint   `gorm:"index;not null" json:"exam_id"`
	Status    string `gorm:"size:20;default:'not_started'" json:"status"`
}

// StudentAnswer belongs to one session and one question. IsCorrect is computed
// server-side from the authoritative Answer row at submission time; a
// client-supplied flag is never trusted. Answers are hard-deleted when a new
// attempt starts.
type StudentAnswer struct {
	gorm.Model
	StudentExamID uint  `gorm:"index;not null" json:"student_exam_id"`
	QuestionID    uint  `gorm:"index;not null" json:"question_id"`
	AnswerID      *uint `gorm:"index" json:"answer_id,omitempty"`
	IsCorrect     bool  `gorm:"default:false" json:"is_correct"`
}

// ExamResult is an immutable scored snapshot of one completed attempt,
// numbered sequentially per session starting at 1.
type ExamResult struct {
	gorm.Model
	StudentExamID   uint    `gorm:"index;not null" json:"student_exam_id"`
	AttemptNumber   int     `gorm:"default:1" json:"attempt_number"`
	TotalQuestions  int     `gorm:"default:0" json:"total_questions"`
	CorrectAnswers  int     `gorm:"default:0" json:"correct_answers"`
	ScorePercentage float64 `gorm:"default:0" json:"score_percentage"`
	ObtainedMarks   float64 `gorm:"default:0" json:"obtained_marks"`
	MaxMarks        float64 `gorm:"default:0" json:"max_marks"`
	PassedStatus    bool    `gorm:"default:false" json:"passed_status"`
}

package services

import (
	"errors"
	"lams/models"
	"log"
	"time"

	"gorm.io/gorm"
)

// SessionManager drives the per-(student, exam) lifecycle:
// not_started -> in_progress -> completed, with retakes cycling back to
// in_progress while the attempt ledger permits.
type SessionManager struct {
	db           *gorm.DB
	entitlements *EntitlementResolver
	ledger       *AttemptLedger
}

func NewSessionManager(db *gorm.DB) *SessionManager {
	return &SessionManager{
		db:           db,
		entitlements: NewEntitlementResolver(db),
		ledger:       NewAttemptLedger(db),
	}
}

// Entitlements exposes the resolver for callers that only need entitlement
// lookups alongside session operations.
func (m *SessionManager) Entitlements() *EntitlementResolver {
	return m.entitlements
}

// Ledger exposes the attempt ledger for the attempt-count query endpoints.
func (m *SessionManager) Ledger() *AttemptLedger {
	return m.ledger
}

// Get loads a session by id.
func (m *SessionManager) Get(sessionID uint) (*models.StudentExam, error) {
	var session models.StudentExam
	if err := m.db.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Create returns the existing session for (student, exam) unchanged, or
// creates one in not_started and seeds its attempt ledger: the plan's full
// allowance is allocated and the first attempt's slot consumed up front, as
// one atomic operation.
func (m *SessionManager) Create(studentID, examID uint) (*models.StudentExam, error) {
	var existing models.StudentExam
	err := m.db.Where("student_id = ? AND exam_id = ?", studentID, examID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var exam models.Exam
	if err := m.db.First(&exam, examID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	sub, err := m.entitlements.ActiveSubscription(studentID, time.Now())
	if err != nil {
		return nil, err
	}
	maxAttempts, err := m.entitlements.MaxAttempts(sub)
	if err != nil {
		return nil, err
	}

	session := models.StudentExam{
		StudentID: studentID,
		ExamID:    examID,
		Status:    models.ExamStatusNotStarted,
	}

	err = m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		if _, err := m.ledger.Allocate(tx, sub.ID, examID, maxAttempts); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Start moves a session to in_progress. Validation order: session exists,
// parent exam exists, current time inside the exam window, an active
// entitlement exists, the ledger permits one more attempt. On a retake all
// previously submitted answers are hard-deleted while scored results stay;
// the status flip and the ledger decrement commit together.
func (m *SessionManager) Start(sessionID uint) (*models.StudentExam, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	var exam models.Exam
	if err := m.db.First(&exam, session.ExamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExamNotFound
		}
		return nil, err
	}

	now := time.Now()
	if exam.StartDatetime != nil && now.Before(*exam.StartDatetime) {
		return nil, ErrExamNotStartedYet
	}
	if exam.EndDatetime != nil && now.After(*exam.EndDatetime) {
		return nil, ErrExamEnded
	}

	sub, err := m.entitlements.ActiveSubscription(session.StudentID, now)
	if err != nil {
		return nil, err
	}
	maxAttempts, err := m.entitlements.MaxAttempts(sub)
	if err != nil {
		return nil, err
	}

	isRetake := session.Status != models.ExamStatusNotStarted

	err = m.db.Transaction(func(tx *gorm.DB) error {
		attempt, err := m.ledger.PrepareForStart(tx, sub.ID, session.ExamID, maxAttempts)
		if err != nil {
			return err
		}
		if err := m.ledger.ConsumeOne(tx, attempt); err != nil {
			return err
		}

		if isRetake {
			// Scored results are history; only the raw answers go.
			res := tx.Where("student_exam_id = ?", session.ID).Delete(&models.StudentAnswer{})
			if res.Error != nil {
				return res.Error
			}
			log.Printf("Deleted %d previous answers for retake of student exam %d", res.RowsAffected, session.ID)
		}

		session.Status = models.ExamStatusInProgress
		return tx.Save(session).Error
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitAnswer records one answer for the session. Correctness is looked up
// from the authoritative answer record; repeated calls for the same question
// append new rows rather than upserting.
func (m *SessionManager) SubmitAnswer(sessionID, questionID uint, answerID *uint) (*models.StudentAnswer, error) {
	if _, err := m.Get(sessionID); err != nil {
		return nil, err
	}

	isCorrect := false
	if answerID != nil {
		var answer models.Answer
		if err := m.db.First(&answer, *answerID).Error; err == nil {
			isCorrect = answer.IsCorrect
		}
	}

	studentAnswer := models.StudentAnswer{
		StudentExamID: sessionID,
		QuestionID:    questionID,
		AnswerID:      answerID,
		IsCorrect:     isCorrect,
	}
	if err := m.db.Create(&studentAnswer).Error; err != nil {
		return nil, err
	}
	return &studentAnswer, nil
}

// Answers returns the current attempt's submitted answers.
func (m *SessionManager) Answers(sessionID uint) ([]models.StudentAnswer, error) {
	var answers []models.StudentAnswer
	err := m.db.Where("student_exam_id = ?", sessionID).Find(&answers).Error
	return answers, err
}

// Complete scores the session's submitted answers and persists a new result
// row numbered one past the session's highest attempt. The ledger is not
// touched: consumption happened at start time.
func (m *SessionManager) Complete(sessionID uint) (*models.StudentExam, *models.ExamResult, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}

	var exam models.Exam
	if err := m.db.First(&exam, session.ExamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrExamNotFound
		}
		return nil, nil, err
	}

	answers, err := m.Answers(sessionID)
	if err != nil {
		return nil, nil, err
	}

	var examQuestions []models.ExamQuestion
	if err := m.db.Where("exam_id = ?", exam.ID).Find(&examQuestions).Error; err != nil {
		return nil, nil, err
	}

	summary := ScoreAttempt(examQuestions, answers, exam.MaxQuestions)

	result := models.ExamResult{
		StudentExamID:   session.ID,
		TotalQuestions:  summary.TotalQuestions,
		CorrectAnswers:  summary.CorrectAnswers,
		ScorePercentage: summary.ScorePercentage,
		ObtainedMarks:   summary.ObtainedMarks,
		MaxMarks:        summary.MaxMarks,
		PassedStatus:    summary.Passed,
	}

	err = m.db.Transaction(func(tx *gorm.DB) error {
		var latest models.ExamResult
		err := tx.Where("student_exam_id = ?", session.ID).
			Order("attempt_number DESC").
			First(&latest).Error
		switch {
		case err == nil:
			result.AttemptNumber = latest.AttemptNumber + 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			result.AttemptNumber = 1
		default:
			return err
		}

		if err := tx.Create(&result).Error; err != nil {
			return err
		}

		session.Status = models.ExamStatusCompleted
		return tx.Save(session).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return session, &result, nil
}

// Results returns the session's scored history ordered by attempt number.
func (m *SessionManager) Results(sessionID uint) ([]models.ExamResult, error) {
	var results []models.ExamResult
	err := m.db.Where("student_exam_id = ?", sessionID).
		Order("attempt_number ASC").
		Find(&results).Error
	return results, err
}

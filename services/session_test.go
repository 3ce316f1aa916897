package services

import (
	"lams/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 2)
	mgr := NewSessionManager(db)

	session, err := mgr.Create(fx.student, fx.exam.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExamStatusNotStarted, session.Status)

	again, err := mgr.Create(fx.student, fx.exam.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, again.ID)

	var count int64
	db.Model(&models.StudentExam{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateSeedsLedgerAtMaxMinusOne(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 2)
	mgr := NewSessionManager(db)

	_, err := mgr.Create(fx.student, fx.exam.ID)
	require.NoError(t, err)

	attempt, err := mgr.Ledger().Get(fx.sub.ID, fx.exam.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.RemainingAttempts)
}

func TestCreateWithoutSubscriptionFails(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 2)
	mgr := NewSessionManager(db)

	require.NoError(t, db.Model(&models.UserSubscription{}).
		Where("id = ?", fx.sub.ID).
		Update("status", models.SubscriptionExpired).Error)

	_, err := mgr.Create(fx.student, fx.exam.ID)
	assert.ErrorIs(t, err, ErrNoActiveSubscription)

	var count int64
	db.Model(&models.StudentExam{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

// Spec-level scenario: plan allows 2 attempts. Create seeds the ledger at 1,
// start consumes it, a perfect 2/2 completion scores 100% as attempt 1, and
// a second start is refused.
func TestFullLifecycleScenario(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 2)
	q1, correct1 := seedQuestion(t, db, fx.exam.ID, 50)
	q2, correct2 := seedQuestion(t, db, fx.exam.ID, 50)
	mgr := NewSessionManager(db)

	session, err := mgr.Create(fx.student, fx.exam.ID)
	require.NoError(t, err)

	session, err = mgr.Start(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExamStatusInProgress, session.Status)

	remaining, err := mgr.Ledger().Remaining(fx.sub.ID, fx.exam.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	_, err = mgr.SubmitAnswer(session.ID, q1.ID, &correct1)
	require.NoError(t, err)
	_, err = mgr.SubmitAnswer(session.ID, q2.ID, &correct2)
	require.NoError(t, err)

	session, result, err := mgr.Complete(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExamStatusCompleted, session.Status)
	assert.Equal(t, 1, result.AttemptNumber)
	assert.Equal(t, 100.0, result.ObtainedMarks)
	assert.Equal(t, 100.0, result.MaxMarks)
	assert.Equal(t, 100.0, result.ScorePercentage)
	assert.True(t, result.PassedStatus)

	_, err = mgr.Start(session.ID)
	assert.ErrorIs(t, err, ErrNoAttemptsLeft)

	// Refused start leaves both the ledger and the session untouched.
	remaining, err = mgr.Ledger().Remaining(fx.sub.ID, fx.exam.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	session, err = mgr.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExamStatusCompleted, session.Status)
}

func TestRetakeDeletesAnswersKeepsResults(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 3)
	q1, correct1 := seedQuestion(t, db, fx.exam.ID, 50)
	q2, _ := seedQuestion(t, db, fx.exam.ID, 50)
	mgr := NewSessionManager(db)

	session, err := mgr.Create(fx.student, fx.exam.ID)
	require.NoError(t, err)
	_, err = mgr.Start(session.ID)
	require.NoError(t, err)

	_, err = mgr.SubmitAnswer(session.ID, q1.ID, &correct1)
	require.NoError(t, err)
	_, err = mgr.SubmitAnswer(session.ID, q2.ID, nil)
	require.NoError(t, err)

	_, first, err := mgr.Complete(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.AttemptNumber)

	// Retake: answers cleared, scored history intact.
	_, err = mgr.Start(session.ID)
	require.NoError(t, err)

	answers, err := mgr.Answers(session.ID)
	require.NoError(t, err)
	assert.Empty(t, answers)

	results, err := mgr.Results(session.ID)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	// The next completion continues the attempt sequence.
	_, second, err := mgr.Complete(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.AttemptNumber)

	results, err = mgr.Results(session.ID)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Less(t, results[0].AttemptNumber, results[1].AttemptNumber)
}

func TestStartOutsideExamWindow(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 2)
	mgr := NewSessionManager(db)

	session, err := mgr.Create(fx.student, fx.exam.ID)
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	require.NoError(t, db.Model(&models.Exam{}).
		Where("id = ?", fx.exam.ID).
		Update("start_datetime", future).Error)

	_, err = mgr.Start(session.ID)
	assert.ErrorIs(t, err, ErrExamNotStartedYet)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, db.Model(&models.Exam{}).
		Where("id = ?", fx.exam.ID).
		Updates(map[string]interface{}{"start_datetime": nil, "end_datetime": past}).Error)

	_, err = mgr.Start(session.ID)
	assert.ErrorIs(t, err, ErrExamEnded)

	session, err = mgr.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExamStatusNotStarted, session.Status)
}

func TestStartWithoutSubscription(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 2)
	mgr := NewSessionManager(db)

	session, err := mgr.Create(fx.student, fx.exam.ID)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.UserSubscription{}).
		Where("id = ?", fx.sub.ID).
		Update("end_date", time.Now().Add(-time.Minute)).Error)

	_, err = mgr.Start(session.ID)
	assert.ErrorIs(t, err, ErrNoActiveSubscription)
}

func TestSubmitAnswerIgnoresClientCorrectness(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 2)
	q, _ := seedQuestion(t, db, fx.exam.ID, 10)
	mgr := NewSessionManager(db)

	session, err := mgr.Create(fx.student, fx.exam.ID)
	require.NoError(t, err)
	_, err = mgr.Start(session.ID)
	require.NoError(t, err)

	// Find the wrong option for the question.
	var wrong models.Answer
	require.NoError(t, db.Where("question_id = ? AND is_correct = ?", q.ID, false).First(&wrong).Error)

	stored, err := mgr.SubmitAnswer(session.ID, q.ID, &wrong.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsCorrect)

	// No selected option at all is stored as incorrect.
	skipped, err := mgr.SubmitAnswer(session.ID, q.ID, nil)
	require.NoError(t, err)
	assert.False(t, skipped.IsCorrect)

	// Re-submission appends; no upsert.
	answers, err := mgr.Answers(session.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 2)
}

func TestStartMissingSession(t *testing.T) {
	db := newTestDB(t)
	seedEntitlement(t, db, 1)
	mgr := NewSessionManager(db)

	_, err := mgr.Start(12345)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

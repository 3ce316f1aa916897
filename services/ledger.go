package services

import (
	"errors"
	"lams/models"

	"gorm.io/gorm"
)

// AttemptLedger tracks remaining attempts per (entitlement, exam) pair.
// Rows are created lazily; remaining attempts never go below zero.
type AttemptLedger struct {
	db *gorm.DB
}

func NewAttemptLedger(db *gorm.DB) *AttemptLedger {
	return &AttemptLedger{db: db}
}

// Get returns the ledger row for the pair, or gorm.ErrRecordNotFound.
func (l *AttemptLedger) Get(userSubscriptionID, examID uint) (*models.ExamAttempt, error) {
	var attempt models.ExamAttempt
	err := l.db.
		Where("user_subscription_id = ? AND exam_id = ?", userSubscriptionID, examID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// Remaining returns the stored remaining-attempts for the pair. An exam never
// touched under this entitlement implicitly has the plan's full allowance.
func (l *AttemptLedger) Remaining(userSubscriptionID, examID uint, planMax int) (int, error) {
	attempt, err := l.Get(userSubscriptionID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return planMax, nil
		}
		return 0, err
	}
	return attempt.RemainingAttempts, nil
}

// Ensure creates the ledger row with remaining = maxAttempts if absent. If a
// row exists with a lower remaining count than the plan currently allows it
// is topped up to match; a higher count is left alone. The asymmetry is
// inherited business behavior: plan upgrades never shrink granted attempts.
// Used by the explicit attempt-count query path, never by session start.
func (l *AttemptLedger) Ensure(tx *gorm.DB, userSubscriptionID, examID uint, maxAttempts int) (*models.ExamAttempt, error) {
	var attempt models.ExamAttempt
	err := tx.
		Where("user_subscription_id = ? AND exam_id = ?", userSubscriptionID, examID).
		First(&attempt).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		attempt = models.ExamAttempt{
			UserSubscriptionID: userSubscriptionID,
			ExamID:             examID,
			RemainingAttempts:  maxAttempts,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return nil, err
		}
		return &attempt, nil
	}
	if err != nil {
		return nil, err
	}

	if attempt.RemainingAttempts < maxAttempts {
		attempt.RemainingAttempts = maxAttempts
		if err := tx.Save(&attempt).Error; err != nil {
			return nil, err
		}
	}
	return &attempt, nil
}

// PrepareForStart returns the ledger row for a session start, creating it
// with the full allowance when absent. Unlike Ensure it never tops up an
// existing row: a seeded row keeps its arithmetic, otherwise the allocation
// performed at session creation would be handed back.
func (l *AttemptLedger) PrepareForStart(tx *gorm.DB, userSubscriptionID, examID uint, maxAttempts int) (*models.ExamAttempt, error) {
	var attempt models.ExamAttempt
	err := tx.
		Where("user_subscription_id = ? AND exam_id = ?", userSubscriptionID, examID).
		First(&attempt).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		attempt = models.ExamAttempt{
			UserSubscriptionID: userSubscriptionID,
			ExamID:             examID,
			RemainingAttempts:  maxAttempts,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return nil, err
		}
		return &attempt, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// Allocate seeds the ledger for a brand-new session: the full allowance is
// granted and the first attempt's slot is consumed up front, in one step.
// An existing row is returned unchanged.
func (l *AttemptLedger) Allocate(tx *gorm.DB, userSubscriptionID, examID uint, maxAttempts int) (*models.ExamAttempt, error) {
	var attempt models.ExamAttempt
	err := tx.
		Where("user_subscription_id = ? AND exam_id = ?", userSubscriptionID, examID).
		First(&attempt).Error
	if err == nil {
		return &attempt, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	remaining := maxAttempts - 1
	if remaining < 0 {
		remaining = 0
	}
	attempt = models.ExamAttempt{
		UserSubscriptionID: userSubscriptionID,
		ExamID:             examID,
		RemainingAttempts:  remaining,
	}
	if err := tx.Create(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// ConsumeOne spends one attempt with an atomic decrement-and-floor-check, so
// two concurrent starts cannot drive the counter negative. Refuses with
// ErrNoAttemptsLeft when nothing remains; the caller's transaction makes the
// decrement atomic with the session status flip.
func (l *AttemptLedger) ConsumeOne(tx *gorm.DB, attempt *models.ExamAttempt) error {
	res := tx.Model(&models.ExamAttempt{}).
		Where("id = ? AND remaining_attempts > 0", attempt.ID).
		UpdateColumn("remaining_attempts", gorm.Expr("remaining_attempts - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNoAttemptsLeft
	}
	attempt.RemainingAttempts--
	return nil
}

package services

import (
	"errors"
	"lams/models"
	"time"

	"gorm.io/gorm"
)

// EntitlementResolver finds the subscription instance that governs a user's
// exam access. A user may hold several active rows at once; the most recently
// created one wins.
type EntitlementResolver struct {
	db *gorm.DB
}

func NewEntitlementResolver(db *gorm.DB) *EntitlementResolver {
	return &EntitlementResolver{db: db}
}

// ActiveSubscription returns the user's governing entitlement at the given
// time: status active and end date not yet passed. Returns
// ErrNoActiveSubscription when none qualifies.
func (r *EntitlementResolver) ActiveSubscription(userID uint, at time.Time) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	err := r.db.
		Where("user_id = ? AND status = ? AND end_date >= ?", userID, models.SubscriptionActive, at).
		Order("created_at DESC, id DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSubscription
		}
		return nil, err
	}
	return &sub, nil
}

// Plan resolves the subscription plan behind an entitlement instance through
// its plan-package mapping. A missing mapping or plan is a data-integrity
// condition, not a user error.
func (r *EntitlementResolver) Plan(sub *models.UserSubscription) (*models.SubscriptionPlan, error) {
	var mapping models.SubscriptionPlanPackage
	if err := r.db.First(&mapping, sub.SubscriptionPlanPackagesID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadSubscriptionConfig
		}
		return nil, err
	}

	var plan models.SubscriptionPlan
	if err := r.db.First(&plan, mapping.SubscriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadSubscriptionConfig
		}
		return nil, err
	}
	return &plan, nil
}

// MaxAttempts returns the plan's configured attempt cap for the entitlement,
// floored at one attempt for plans that never set it.
func (r *EntitlementResolver) MaxAttempts(sub *models.UserSubscription) (int, error) {
	plan, err := r.Plan(sub)
	if err != nil {
		return 0, err
	}
	if plan.MaxExams <= 0 {
		return 1, nil
	}
	return plan.MaxExams, nil
}

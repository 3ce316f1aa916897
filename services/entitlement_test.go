package services

import (
	"lams/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveSubscriptionNoneFound(t *testing.T) {
	db := newTestDB(t)
	resolver := NewEntitlementResolver(db)

	_, err := resolver.ActiveSubscription(42, time.Now())
	assert.ErrorIs(t, err, ErrNoActiveSubscription)
}

func TestActiveSubscriptionIgnoresExpiredAndCancelled(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 1)
	resolver := NewEntitlementResolver(db)

	require.NoError(t, db.Model(&models.UserSubscription{}).
		Where("id = ?", fx.sub.ID).
		Update("status", models.SubscriptionCancelled).Error)

	_, err := resolver.ActiveSubscription(1, time.Now())
	assert.ErrorIs(t, err, ErrNoActiveSubscription)

	// An "active" row whose end date has passed does not qualify either.
	stale := models.UserSubscription{
		UserID:                     1,
		SubscriptionPlanPackagesID: fx.mapping.ID,
		StartDate:                  time.Now().Add(-48 * time.Hour),
		EndDate:                    time.Now().Add(-time.Hour),
		Status:                     models.SubscriptionActive,
	}
	require.NoError(t, db.Create(&stale).Error)

	_, err = resolver.ActiveSubscription(1, time.Now())
	assert.ErrorIs(t, err, ErrNoActiveSubscription)
}

func TestActiveSubscriptionMostRecentWins(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 1)
	resolver := NewEntitlementResolver(db)

	newer := models.UserSubscription{
		UserID:                     1,
		SubscriptionPlanPackagesID: fx.mapping.ID,
		StartDate:                  time.Now(),
		EndDate:                    time.Now().Add(60 * 24 * time.Hour),
		Status:                     models.SubscriptionActive,
	}
	require.NoError(t, db.Create(&newer).Error)

	sub, err := resolver.ActiveSubscription(1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, newer.ID, sub.ID)
}

func TestPlanResolutionBadConfig(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 1)
	resolver := NewEntitlementResolver(db)

	orphan := models.UserSubscription{
		UserID:                     7,
		SubscriptionPlanPackagesID: 9999,
		StartDate:                  time.Now(),
		EndDate:                    time.Now().Add(24 * time.Hour),
		Status:                     models.SubscriptionActive,
	}
	require.NoError(t, db.Create(&orphan).Error)

	_, err := resolver.Plan(&orphan)
	assert.ErrorIs(t, err, ErrBadSubscriptionConfig)

	// Mapping present but its parent plan is gone.
	danglingMapping := models.SubscriptionPlanPackage{SubscriptionID: 9999}
	require.NoError(t, db.Create(&danglingMapping).Error)
	dangling := models.UserSubscription{
		UserID:                     8,
		SubscriptionPlanPackagesID: danglingMapping.ID,
		StartDate:                  time.Now(),
		EndDate:                    time.Now().Add(24 * time.Hour),
		Status:                     models.SubscriptionActive,
	}
	require.NoError(t, db.Create(&dangling).Error)

	_, err = resolver.Plan(&dangling)
	assert.ErrorIs(t, err, ErrBadSubscriptionConfig)

	// The healthy fixture resolves.
	plan, err := resolver.Plan(&fx.sub)
	require.NoError(t, err)
	assert.Equal(t, fx.plan.ID, plan.ID)
}

func TestMaxAttemptsFloorsAtOne(t *testing.T) {
	db := newTestDB(t)
	fx := seedEntitlement(t, db, 0)
	resolver := NewEntitlementResolver(db)

	max, err := resolver.MaxAttempts(&fx.sub)
	require.NoError(t, err)
	assert.Equal(t, 1, max)
}

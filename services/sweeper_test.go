package services

import (
	"errors"
	"lams/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSubscriptions(t *testing.T, db *gorm.DB, n int, status string, endDate time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		sub := models.UserSubscription{
			UserID:                     1,
			SubscriptionPlanPackagesID: 1,
			StartDate:                  endDate.Add(-30 * 24 * time.Hour),
			EndDate:                    endDate,
			Status:                     status,
		}
		require.NoError(t, db.Create(&sub).Error)
	}
}

func TestExpireStaleSweepsAllBatches(t *testing.T) {
	db := newTestDB(t)
	past := time.Now().Add(-time.Hour)
	seedSubscriptions(t, db, 150, models.SubscriptionActive, past)

	sweeper := NewSweeper(db, 100)
	updated, err := sweeper.ExpireStale()
	require.NoError(t, err)
	assert.Equal(t, 150, updated)

	var stillActive int64
	db.Model(&models.UserSubscription{}).
		Where("status = ?", models.SubscriptionActive).
		Count(&stillActive)
	assert.EqualValues(t, 0, stillActive)
}

func TestExpireStaleLeavesCurrentRowsAlone(t *testing.T) {
	db := newTestDB(t)
	seedSubscriptions(t, db, 3, models.SubscriptionActive, time.Now().Add(time.Hour))
	seedSubscriptions(t, db, 2, models.SubscriptionCancelled, time.Now().Add(-time.Hour))

	sweeper := NewSweeper(db, 100)
	updated, err := sweeper.ExpireStale()
	require.NoError(t, err)
	assert.Equal(t, 0, updated)

	var expired int64
	db.Model(&models.UserSubscription{}).
		Where("status = ?", models.SubscriptionExpired).
		Count(&expired)
	assert.EqualValues(t, 0, expired)
}

func TestExpireStaleBatchFailureIsIsolated(t *testing.T) {
	db := newTestDB(t)
	past := time.Now().Add(-time.Hour)
	seedSubscriptions(t, db, 150, models.SubscriptionActive, past)

	sweeper := NewSweeper(db, 100)
	sweeper.beforeBatch = func(batch int) error {
		if batch == 2 {
			return errors.New("connection reset")
		}
		return nil
	}

	updated, err := sweeper.ExpireStale()
	require.NoError(t, err)
	assert.Equal(t, 100, updated)

	// The first batch committed; the failed one rolled back in full.
	var expired int64
	db.Model(&models.UserSubscription{}).
		Where("status = ?", models.SubscriptionExpired).
		Count(&expired)
	assert.EqualValues(t, 100, expired)
}

func TestExpireStaleEmptyTable(t *testing.T) {
	db := newTestDB(t)

	sweeper := NewSweeper(db, 100)
	updated, err := sweeper.ExpireStale()
	require.NoError(t, err)
	assert.Equal(t, 0, updated)
}

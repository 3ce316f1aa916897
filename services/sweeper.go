package services

import (
	"lams/models"
	"log"
	"time"

	"gorm.io/gorm"
)

// Sweeper reclassifies entitlement rows whose end date has passed. It works
// in bounded batches committed independently so a failing batch never rolls
// back prior ones, and it must never bring down the host process.
type Sweeper struct {
	db        *gorm.DB
	batchSize int

	// beforeBatch is a test hook; nil outside tests.
	beforeBatch func(batch int) error
}

func NewSweeper(db *gorm.DB, batchSize int) *Sweeper {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Sweeper{db: db, batchSize: batchSize}
}

// ExpireStale flips every active subscription past its end date to expired
// and returns how many rows were updated. Batch failures are logged and the
// sweep continues with the next batch.
func (s *Sweeper) ExpireStale() (int, error) {
	now := time.Now()

	var ids []uint
	err := s.db.Model(&models.UserSubscription{}).
		Where("status = ? AND end_date < ?", models.SubscriptionActive, now).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	updated := 0
	for i, batchNo := 0, 1; i < len(ids); i, batchNo = i+s.batchSize, batchNo+1 {
		end := i + s.batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[i:end]

		err := s.db.Transaction(func(tx *gorm.DB) error {
			if s.beforeBatch != nil {
				if err := s.beforeBatch(batchNo); err != nil {
					return err
				}
			}
			return tx.Model(&models.UserSubscription{}).
				Where("id IN ?", batch).
				Updates(map[string]interface{}{
					"status":     models.SubscriptionExpired,
					"updated_at": now,
				}).Error
		})
		if err != nil {
			log.Printf("[SWEEPER] Error expiring batch of %d subscriptions: %v", len(batch), err)
			continue
		}
		updated += len(batch)
	}

	return updated, nil
}

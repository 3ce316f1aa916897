package utils

import (
	"fmt"
	"lams/config"
	"lams/database"
	"lams/models"
	"lams/services"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeSubscriptionScheduler sets up the periodic subscription sweeper
func InitializeSubscriptionScheduler() {
	log.Println("[SUBSCRIPTION-SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()

	interval := config.AppConfig.SweeperIntervalMinutes
	spec := fmt.Sprintf("@every %dm", interval)

	c.AddFunc(spec, func() {
		log.Println("[SUBSCRIPTION-SCHEDULER] Running subscription sweep...")
		ProcessExpiringSubscriptions()
		ExpireSubscriptions()
	})

	c.Start()
	log.Printf("[SUBSCRIPTION-SCHEDULER] Subscription scheduler started - runs every %d minutes", interval)
}

// ProcessExpiringSubscriptions sends reminder emails for subscriptions expiring in 2 days
func ProcessExpiringSubscriptions() {
	db := database.Database.Db
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	var expiring []models.UserSubscription
	if err := db.
		Where("status = ? AND reminder_sent = false", models.SubscriptionActive).
		Where("end_date BETWEEN ? AND ?", now, twoDaysFromNow).
		Find(&expiring).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expiring subscriptions: %v", err)
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Found %d subscriptions expiring soon", len(expiring))

	for _, sub := range expiring {
		var user models.User
		if err := db.Where("id = ?", sub.UserID).First(&user).Error; err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching user %d: %v", sub.UserID, err)
			continue
		}

		planName := lookupPlanName(sub.SubscriptionPlanPackagesID)
		SendSubscriptionExpiryReminder(user.Email, user.Username, planName, sub.EndDate.Format("January 2, 2006"))

		db.Model(&sub).Update("reminder_sent", true)
		log.Printf("[SUBSCRIPTION-SCHEDULER] Sent expiry reminder for subscription %d to %s", sub.ID, user.Email)
	}
}

// ExpireSubscriptions flips stale active subscriptions to expired in batches
// and notifies the affected users.
func ExpireSubscriptions() {
	db := database.Database.Db
	now := time.Now()

	sweeper := services.NewSweeper(db, config.AppConfig.SweeperBatchSize)
	updated, err := sweeper.ExpireStale()
	if err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error expiring subscriptions: %v", err)
		return
	}
	if updated == 0 {
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Expired %d subscriptions", updated)

	var expired []models.UserSubscription
	db.Where("status = ? AND end_date < ?", models.SubscriptionExpired, now).
		Where("updated_at > ?", now.Add(-time.Hour)). // Only recently expired
		Find(&expired)

	for _, sub := range expired {
		var user models.User
		if err := db.Where("id = ?", sub.UserID).First(&user).Error; err == nil {
			SendSubscriptionExpiredEmail(user.Email, user.Username, lookupPlanName(sub.SubscriptionPlanPackagesID))
		}
	}
}

func lookupPlanName(mappingID uint) string {
	db := database.Database.Db

	var mapping models.SubscriptionPlanPackage
	if err := db.First(&mapping, mappingID).Error; err != nil {
		return "your"
	}
	var plan models.SubscriptionPlan
	if err := db.First(&plan, mapping.SubscriptionID).Error; err != nil {
		return "your"
	}
	return plan.Name
}

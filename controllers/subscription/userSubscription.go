package subscriptionController

import (
	"lams/database"
	"lams/middleware"
	"lams/models"
	"lams/utils"
	subscriptionValidator "lams/validators/subscription"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// checkExpiry lazily flips a stale active subscription to expired before it
// is returned, so reads never show an active row past its end date even if
// the sweeper has not visited it yet.
func checkExpiry(sub *models.UserSubscription) {
	if sub.Status == models.SubscriptionActive && time.Now().After(sub.EndDate) {
		sub.Status = models.SubscriptionExpired
		if err := database.Database.Db.Model(sub).Update("status", models.SubscriptionExpired).Error; err != nil {
			log.Printf("Error lazily expiring subscription %d: %v", sub.ID, err)
		}
	}
}

// Purchase creates a new active subscription for the caller. The window runs
// from now for the plan's duration.
func Purchase(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPurchase").(*subscriptionValidator.PurchaseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var mapping models.SubscriptionPlanPackage
	if err := db.First(&mapping, reqData.SubscriptionPlanPackagesID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan package not found!", nil)
	}

	var plan models.SubscriptionPlan
	if err := db.First(&plan, mapping.SubscriptionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription plan not found!", nil)
	}
	if !plan.IsActive {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Subscription plan is no longer available!", nil)
	}

	now := time.Now()
	sub := models.UserSubscription{
		UserID:                     userId,
		SubscriptionPlanPackagesID: mapping.ID,
		StartDate:                  now,
		EndDate:                    now.AddDate(0, 0, plan.DurationDays),
		Status:                     models.SubscriptionActive,
	}

	if err := db.Create(&sub).Error; err != nil {
		log.Printf("Error creating subscription: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to purchase subscription!", nil)
	}

	var user models.User
	if err := db.First(&user, userId).Error; err == nil {
		utils.SendSubscriptionPurchasedEmail(user.Email, user.Username, plan.Name)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subscription purchased successfully.", sub)
}

// Renew extends a subscription by another plan duration from now (or from the
// current end date when it is still in the future) and reactivates it.
func Renew(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subscription id!", nil)
	}
	userId, _ := c.Locals("userId").(uint)

	db := database.Database.Db

	var sub models.UserSubscription
	if err := db.First(&sub, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription not found!", nil)
	}
	if sub.UserID != userId {
		role, _ := c.Locals("userRole").(string)
		if models.RoleRank(role) < models.RoleRank(models.RoleAdmin) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this subscription!", nil)
		}
	}
	if sub.Status == models.SubscriptionCancelled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cancelled subscriptions cannot be renewed!", nil)
	}

	var mapping models.SubscriptionPlanPackage
	if err := db.First(&mapping, sub.SubscriptionPlanPackagesID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan package not found!", nil)
	}
	var plan models.SubscriptionPlan
	if err := db.First(&plan, mapping.SubscriptionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription plan not found!", nil)
	}

	base := time.Now()
	if sub.EndDate.After(base) {
		base = sub.EndDate
	}

	sub.EndDate = base.AddDate(0, 0, plan.DurationDays)
	sub.Status = models.SubscriptionActive
	sub.ReminderSent = false

	if err := db.Save(&sub).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to renew subscription!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription renewed successfully.", sub)
}

func Cancel(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subscription id!", nil)
	}
	userId, _ := c.Locals("userId").(uint)

	db := database.Database.Db

	var sub models.UserSubscription
	if err := db.First(&sub, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription not found!", nil)
	}
	if sub.UserID != userId {
		role, _ := c.Locals("userRole").(string)
		if models.RoleRank(role) < models.RoleRank(models.RoleAdmin) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this subscription!", nil)
		}
	}
	if sub.Status != models.SubscriptionActive {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Only active subscriptions can be cancelled!", nil)
	}

	if err := db.Model(&sub).Update("status", models.SubscriptionCancelled).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel subscription!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription cancelled successfully.", sub)
}

// MySubscriptions lists the caller's subscriptions with the lazy expiry
// check applied, optionally filtered by status.
func MySubscriptions(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var subs []models.UserSubscription
	if err := db.Where("user_id = ?", userId).Order("created_at DESC").Find(&subs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subscriptions!", nil)
	}

	for i := range subs {
		checkExpiry(&subs[i])
	}

	if status := c.Query("status"); status != "" {
		filtered := subs[:0]
		for _, s := range subs {
			if s.Status == status {
				filtered = append(filtered, s)
			}
		}
		subs = filtered
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "My subscriptions.", subs)
}

// ListByUser is the admin view of another user's subscriptions.
func ListByUser(c *fiber.Ctx) error {
	userId, err := c.ParamsInt("userId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	db := database.Database.Db

	var subs []models.UserSubscription
	if err := db.Where("user_id = ?", userId).Order("created_at DESC").Find(&subs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subscriptions!", nil)
	}

	for i := range subs {
		checkExpiry(&subs[i])
	}

	if status := c.Query("status"); status != "" {
		filtered := subs[:0]
		for _, s := range subs {
			if s.Status == status {
				filtered = append(filtered, s)
			}
		}
		subs = filtered
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User subscriptions.", subs)
}

package examAttemptController

import (
	"errors"
	"lams/database"
	"lams/middleware"
	"lams/models"
	"lams/services"
	"time"

	"github.com/gofiber/fiber/v2"
)

func entitlementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNoActiveSubscription),
		errors.Is(err, services.ErrBadSubscriptionConfig):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case errors.Is(err, services.ErrExamNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	}
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}

// RemainingForExam reports the caller's ledger balance for one exam without
// touching the ledger.
func RemainingForExam(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	examId, err := c.ParamsInt("examId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Exam{}, examId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	resolver := services.NewEntitlementResolver(db)
	sub, err := resolver.ActiveSubscription(userId, time.Now())
	if err != nil {
		return entitlementError(c, err)
	}
	maxAttempts, err := resolver.MaxAttempts(sub)
	if err != nil {
		return entitlementError(c, err)
	}

	remaining, err := services.NewAttemptLedger(db).Remaining(sub.ID, uint(examId), maxAttempts)
	if err != nil {
		return entitlementError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Remaining attempts.", fiber.Map{
		"exam_id":            examId,
		"subscription_id":    sub.ID,
		"remaining_attempts": remaining,
		"max_attempts":       maxAttempts,
	})
}

// ListBySubscription returns every ledger row under one subscription.
func ListBySubscription(c *fiber.Ctx) error {
	subId, err := c.ParamsInt("subscriptionId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subscription id!", nil)
	}

	db := database.Database.Db

	var sub models.UserSubscription
	if err := db.First(&sub, subId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription not found!", nil)
	}

	userId, _ := c.Locals("userId").(uint)
	role, _ := c.Locals("userRole").(string)
	if sub.UserID != userId && models.RoleRank(role) < models.RoleRank(models.RoleAdmin) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this subscription!", nil)
	}

	var attempts []models.ExamAttempt
	if err := db.Where("user_subscription_id = ?", sub.ID).Order("id").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt ledger for subscription.", attempts)
}

// AttemptCount materializes the ledger row for the caller's entitlement on
// one exam, topping a stale row up to the current plan allowance.
func AttemptCount(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	examId, err := c.ParamsInt("examId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Exam{}, examId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	resolver := services.NewEntitlementResolver(db)
	sub, err := resolver.ActiveSubscription(userId, time.Now())
	if err != nil {
		return entitlementError(c, err)
	}
	maxAttempts, err := resolver.MaxAttempts(sub)
	if err != nil {
		return entitlementError(c, err)
	}

	attempt, err := services.NewAttemptLedger(db).Ensure(db, sub.ID, uint(examId), maxAttempts)
	if err != nil {
		return entitlementError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt count.", attempt)
}

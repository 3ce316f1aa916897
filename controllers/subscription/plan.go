package subscriptionController

import (
	"lams/database"
	"lams/middleware"
	"lams/models"
	subscriptionValidator "lams/validators/subscription"

	"github.com/gofiber/fiber/v2"
)

func ListPlans(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.SubscriptionPlan{})
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var plans []models.SubscriptionPlan
	if err := query.Order("id").Find(&plans).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch plans!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription plan list.", plans)
}

func GetPlan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid plan id!", nil)
	}

	var plan models.SubscriptionPlan
	if err := database.Database.Db.First(&plan, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan details.", plan)
}

func CreatePlan(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPlan").(*subscriptionValidator.PlanRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	plan := models.SubscriptionPlan{
		Name:         reqData.Name,
		Description:  reqData.Description,
		DurationDays: reqData.DurationDays,
		Price:        reqData.Price,
		MaxExams:     reqData.MaxExams,
		Features:     reqData.Features,
		IsActive:     true,
	}
	if reqData.IsActive != nil {
		plan.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Create(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create plan!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Plan created successfully.", plan)
}

// UpdatePlan edits the plan record. Existing user subscriptions keep the
// entitlement they were purchased with only in so far as attempt ledgers are
// already seeded; new ledgers resolve the current plan values.
func UpdatePlan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid plan id!", nil)
	}

	db := database.Database.Db

	var plan models.SubscriptionPlan
	if err := db.First(&plan, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan not found!", nil)
	}

	reqData, ok := c.Locals("validatedPlan").(*subscriptionValidator.PlanRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	plan.Name = reqData.Name
	plan.Description = reqData.Description
	plan.DurationDays = reqData.DurationDays
	plan.Price = reqData.Price
	plan.MaxExams = reqData.MaxExams
	plan.Features = reqData.Features
	if reqData.IsActive != nil {
		plan.IsActive = *reqData.IsActive
	}

	if err := db.Save(&plan).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update plan!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan updated successfully.", plan)
}

// DeletePlan deactivates rather than removes: purchased subscriptions keep
// resolving against the row.
func DeletePlan(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid plan id!", nil)
	}

	db := database.Database.Db

	var plan models.SubscriptionPlan
	if err := db.First(&plan, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan not found!", nil)
	}

	if err := db.Model(&plan).Update("is_active", false).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to deactivate plan!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan deactivated successfully.", nil)
}

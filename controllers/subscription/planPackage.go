package subscriptionController

import (
	"encoding/json"
	"lams/database"
	"lams/middleware"
	"lams/models"
	subscriptionValidator "lams/validators/subscription"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func packageIDsToJSON(ids []uint) (datatypes.JSON, error) {
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func ListPlanPackages(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.SubscriptionPlanPackage{})
	if planId := c.Query("subscription_id"); planId != "" {
		query = query.Where("subscription_id = ?", planId)
	}

	var mappings []models.SubscriptionPlanPackage
	if err := query.Order("id").Find(&mappings).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch plan packages!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan package list.", mappings)
}

func GetPlanPackage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid plan package id!", nil)
	}

	var mapping models.SubscriptionPlanPackage
	if err := database.Database.Db.First(&mapping, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan package not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan package details.", mapping)
}

func CreatePlanPackage(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedPlanPackage").(*subscriptionValidator.PlanPackageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.SubscriptionPlan{}, reqData.SubscriptionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription plan not found!", nil)
	}
	for _, pkgId := range reqData.PackageIDs {
		if err := db.First(&models.Package{}, pkgId).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "One or more packages not found!", nil)
		}
	}

	packageIDs, err := packageIDsToJSON(reqData.PackageIDs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode package ids!", nil)
	}

	mapping := models.SubscriptionPlanPackage{
		SubscriptionID: reqData.SubscriptionID,
		PackageIDs:     packageIDs,
	}
	if err := db.Create(&mapping).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create plan package!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Plan package created successfully.", mapping)
}

func UpdatePlanPackage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid plan package id!", nil)
	}

	db := database.Database.Db

	var mapping models.SubscriptionPlanPackage
	if err := db.First(&mapping, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan package not found!", nil)
	}

	reqData, ok := c.Locals("validatedPlanPackage").(*subscriptionValidator.PlanPackageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := db.First(&models.SubscriptionPlan{}, reqData.SubscriptionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subscription plan not found!", nil)
	}
	for _, pkgId := range reqData.PackageIDs {
		if err := db.First(&models.Package{}, pkgId).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "One or more packages not found!", nil)
		}
	}

	packageIDs, err := packageIDsToJSON(reqData.PackageIDs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode package ids!", nil)
	}

	mapping.SubscriptionID = reqData.SubscriptionID
	mapping.PackageIDs = packageIDs
	if err := db.Save(&mapping).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update plan package!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan package updated successfully.", mapping)
}

func DeletePlanPackage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid plan package id!", nil)
	}

	db := database.Database.Db

	var mapping models.SubscriptionPlanPackage
	if err := db.First(&mapping, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Plan package not found!", nil)
	}

	// Purchased subscriptions reference the mapping; block the delete
	var inUse int64
	db.Model(&models.UserSubscription{}).
		Where("subscription_plan_packages_id = ?", mapping.ID).
		Count(&inUse)
	if inUse > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Plan package has active purchases and cannot be deleted!", nil)
	}

	if err := db.Delete(&mapping).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete plan package!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plan package deleted successfully.", nil)
}

package subscriptionValidator

import (
	"lams/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type PlanRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	DurationDays int     `json:"duration_days"`
	Price        float64 `json:"price"`
	MaxExams     int     `json:"max_exams"`
	Features     string  `json:"features"`
	IsActive     *bool   `json:"is_active"`
}

func Plan() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PlanRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Plan name is required!"
		}
		if reqData.DurationDays <= 0 {
			errors["duration_days"] = "Duration must be positive!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.MaxExams < 1 {
			errors["max_exams"] = "Max exams must be at least 1!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPlan", reqData)
		return c.Next()
	}
}

type PlanPackageRequest struct {
	SubscriptionID uint   `json:"subscription_id"`
	PackageIDs     []uint `json:"package_ids"`
}

func PlanPackage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PlanPackageRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.SubscriptionID == 0 {
			errors["subscription_id"] = "Subscription plan id is required!"
		}
		if len(reqData.PackageIDs) == 0 {
			errors["package_ids"] = "At least one package id is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPlanPackage", reqData)
		return c.Next()
	}
}

type PurchaseRequest struct {
	SubscriptionPlanPackagesID uint `json:"subscription_plan_packages_id"`
}

func Purchase() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PurchaseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.SubscriptionPlanPackagesID == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"subscription_plan_packages_id": "Plan package mapping id is required!",
			})
		}

		c.Locals("validatedPurchase", reqData)
		return c.Next()
	}
}

type PackageRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
	CourseIDs   []uint `json:"course_ids"`
}

func Package() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PackageRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Name) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"name": "Package name is required!",
			})
		}

		c.Locals("validatedPackage", reqData)
		return c.Next()
	}
}

package academicsController

import (
	"lams/database"
	"lams/middleware"
	"lams/models"
	academicsValidator "lams/validators/academics"

	"github.com/gofiber/fiber/v2"
)

func ListClasses(c *fiber.Ctx) error {
	var classes []models.Class
	if err := database.Database.Db.Order("id").Find(&classes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch classes!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class list.", classes)
}

func GetClass(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	var class models.Class
	if err := database.Database.Db.First(&class, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class details.", class)
}

func CreateClass(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedClass").(*academicsValidator.ClassRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	userId, _ := c.Locals("userId").(uint)

	class := models.Class{
		Name:        reqData.Name,
		Description: reqData.Description,
		CreatedBy:   userId,
	}
	if err := database.Database.Db.Create(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create class!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Class created successfully.", class)
}

func UpdateClass(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	db := database.Database.Db

	var class models.Class
	if err := db.First(&class, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	reqData, ok := c.Locals("validatedClass").(*academicsValidator.ClassRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	class.Name = reqData.Name
	class.Description = reqData.Description
	if err := db.Save(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update class!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class updated successfully.", class)
}

func DeleteClass(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	db := database.Database.Db

	var class models.Class
	if err := db.First(&class, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	// Children keep their parent id; stale references resolve to not-found
	if err := db.Delete(&class).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete class!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class deleted successfully.", nil)
}

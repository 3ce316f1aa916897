package academicsController

import (
	"lams/database"
	"lams/middleware"
	"lams/models"
	academicsValidator "lams/validators/academics"

	"github.com/gofiber/fiber/v2"
)

func ListStreams(c *fiber.Ctx) error {
	var streams []models.Stream
	if err := database.Database.Db.Order("id").Find(&streams).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch streams!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stream list.", streams)
}

func ListStreamsByClass(c *fiber.Ctx) error {
	classId, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	var streams []models.Stream
	if err := database.Database.Db.Where("class_id = ?", classId).Order("id").Find(&streams).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch streams!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Streams for class.", streams)
}

func GetStream(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid stream id!", nil)
	}

	var stream models.Stream
	if err := database.Database.Db.First(&stream, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Stream not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stream details.", stream)
}

func CreateStream(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedStream").(*academicsValidator.StreamRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	userId, _ := c.Locals("userId").(uint)

	db := database.Database.Db

	if err := db.First(&models.Class{}, reqData.ClassID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent class not found!", nil)
	}

	stream := models.Stream{
		Name:        reqData.Name,
		Description: reqData.Description,
		ClassID:     reqData.ClassID,
		CreatedBy:   userId,
	}
	if err := db.Create(&stream).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create stream!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Stream created successfully.", stream)
}

func UpdateStream(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid stream id!", nil)
	}

	db := database.Database.Db

	var stream models.Stream
	if err := db.First(&stream, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Stream not found!", nil)
	}

	reqData, ok := c.Locals("validatedStream").(*academicsValidator.StreamRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.ClassID != stream.ClassID {
		if err := db.First(&models.Class{}, reqData.ClassID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent class not found!", nil)
		}
	}

	stream.Name = reqData.Name
	stream.Description = reqData.Description
	stream.ClassID = reqData.ClassID
	if err := db.Save(&stream).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update stream!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stream updated successfully.", stream)
}

func DeleteStream(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid stream id!", nil)
	}

	db := database.Database.Db

	var stream models.Stream
	if err := db.First(&stream, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Stream not found!", nil)
	}

	if err := db.Delete(&stream).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete stream!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stream deleted successfully.", nil)
}

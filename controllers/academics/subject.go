package academicsController

import (
	"lams/database"
	"lams/middleware"
	"lams/models"
	academicsValidator "lams/validators/academics"

	"github.com/gofiber/fiber/v2"
)

func ListSubjects(c *fiber.Ctx) error {
	var subjects []models.Subject
	if err := database.Database.Db.Order("id").Find(&subjects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subject list.", subjects)
}

func ListSubjectsByStream(c *fiber.Ctx) error {
	streamId, err := c.ParamsInt("streamId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid stream id!", nil)
	}

	var subjects []models.Subject
	if err := database.Database.Db.Where("stream_id = ?", streamId).Order("id").Find(&subjects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subjects for stream.", subjects)
}

func GetSubject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	var subject models.Subject
	if err := database.Database.Db.First(&subject, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subject details.", subject)
}

func CreateSubject(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSubject").(*academicsValidator.SubjectRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	userId, _ := c.Locals("userId").(uint)

	db := database.Database.Db

	if err := db.First(&models.Stream{}, reqData.StreamID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent stream not found!", nil)
	}

	// Subject codes are unique across the catalogue
	if err := db.Where("code = ?", reqData.Code).First(&models.Subject{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Subject code already exists!", nil)
	}

	subject := models.Subject{
		Name:        reqData.Name,
		Description: reqData.Description,
		Code:        reqData.Code,
		Credits:     reqData.Credits,
		StreamID:    reqData.StreamID,
		CreatedBy:   userId,
	}
	if err := db.Create(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subject!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subject created successfully.", subject)
}

func UpdateSubject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	db := database.Database.Db

	var subject models.Subject
	if err := db.First(&subject, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	reqData, ok := c.Locals("validatedSubject").(*academicsValidator.SubjectRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.StreamID != subject.StreamID {
		if err := db.First(&models.Stream{}, reqData.StreamID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent stream not found!", nil)
		}
	}
	if reqData.Code != subject.Code {
		if err := db.Where("code = ?", reqData.Code).First(&models.Subject{}).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Subject code already exists!", nil)
		}
	}

	subject.Name = reqData.Name
	subject.Description = reqData.Description
	subject.Code = reqData.Code
	subject.Credits = reqData.Credits
	subject.StreamID = reqData.StreamID
	if err := db.Save(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update subject!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subject updated successfully.", subject)
}

func DeleteSubject(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	db := database.Database.Db

	var subject models.Subject
	if err := db.First(&subject, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	if err := db.Delete(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete subject!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subject deleted successfully.", nil)
}

package academicsController

import (
	"lams/database"
	"lams/middleware"
	"lams/models"
	academicsValidator "lams/validators/academics"

	"github.com/gofiber/fiber/v2"
)

func ListChapters(c *fiber.Ctx) error {
	var chapters []models.Chapter
	if err := database.Database.Db.Order("id").Find(&chapters).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chapters!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter list.", chapters)
}

func ListChaptersBySubject(c *fiber.Ctx) error {
	subjectId, err := c.ParamsInt("subjectId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	var chapters []models.Chapter
	if err := database.Database.Db.Where("subject_id = ?", subjectId).
		Order("chapter_number, id").Find(&chapters).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch chapters!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapters for subject.", chapters)
}

func GetChapter(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	var chapter models.Chapter
	if err := database.Database.Db.First(&chapter, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter details.", chapter)
}

func CreateChapter(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedChapter").(*academicsValidator.ChapterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	userId, _ := c.Locals("userId").(uint)

	db := database.Database.Db

	if err := db.First(&models.Subject{}, reqData.SubjectID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent subject not found!", nil)
	}

	chapter := models.Chapter{
		Name:          reqData.Name,
		Description:   reqData.Description,
		ChapterNumber: reqData.ChapterNumber,
		IsActive:      true,
		SubjectID:     reqData.SubjectID,
		CreatedBy:     userId,
	}
	if reqData.IsActive != nil {
		chapter.IsActive = *reqData.IsActive
	}
	if err := db.Create(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully.", chapter)
}

func UpdateChapter(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	db := database.Database.Db

	var chapter models.Chapter
	if err := db.First(&chapter, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	reqData, ok := c.Locals("validatedChapter").(*academicsValidator.ChapterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.SubjectID != chapter.SubjectID {
		if err := db.First(&models.Subject{}, reqData.SubjectID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent subject not found!", nil)
		}
	}

	chapter.Name = reqData.Name
	chapter.Description = reqData.Description
	chapter.ChapterNumber = reqData.ChapterNumber
	chapter.SubjectID = reqData.SubjectID
	if reqData.IsActive != nil {
		chapter.IsActive = *reqData.IsActive
	}
	if err := db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully.", chapter)
}

func DeleteChapter(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	db := database.Database.Db

	var chapter models.Chapter
	if err := db.First(&chapter, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	if err := db.Delete(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully.", nil)
}

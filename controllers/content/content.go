package contentController

import (
	"lams/config"
	"lams/database"
	"lams/middleware"
	"lams/models"
	"lams/utils"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func parseOptionalUint(value string) *uint {
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil
	}
	id := uint(parsed)
	return &id
}

func ListContent(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.ContentItem{})
	if courseId := c.Query("course_id"); courseId != "" {
		query = query.Where("course_id = ?", courseId)
	}
	if subjectId := c.Query("subject_id"); subjectId != "" {
		query = query.Where("subject_id = ?", subjectId)
	}
	if chapterId := c.Query("chapter_id"); chapterId != "" {
		query = query.Where("chapter_id = ?", chapterId)
	}
	if topicId := c.Query("topic_id"); topicId != "" {
		query = query.Where("topic_id = ?", topicId)
	}
	if contentType := c.Query("type"); contentType != "" {
		query = query.Where("type = ?", contentType)
	}

	var items []models.ContentItem
	if err := query.Order("id").Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch content!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content list.", items)
}

func GetContent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content id!", nil)
	}

	var item models.ContentItem
	if err := database.Database.Db.First(&item, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content details.", item)
}

// UploadContent accepts a multipart form with the file plus its metadata.
// The stored file gets a uuid name under the upload dir and is served back
// as a /static URL.
func UploadContent(c *fiber.Ctx) error {
	userId, _ := c.Locals("userId").(uint)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "File is required!", nil)
	}

	title := c.FormValue("title")
	if title == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title is required!", nil)
	}

	contentType := c.FormValue("type")
	switch contentType {
	case models.ContentTypeVideo, models.ContentTypePDF, models.ContentTypeDocument:
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Type must be video, pdf or document!", nil)
	}

	fileName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving uploaded file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
	}

	item := models.ContentItem{
		Title:       title,
		Description: c.FormValue("description"),
		Type:        contentType,
		URL:         utils.GetFileURL(fileName),
		CourseID:    parseOptionalUint(c.FormValue("course_id")),
		SubjectID:   parseOptionalUint(c.FormValue("subject_id")),
		ChapterID:   parseOptionalUint(c.FormValue("chapter_id")),
		TopicID:     parseOptionalUint(c.FormValue("topic_id")),
		CreatedBy:   userId,
	}

	if err := database.Database.Db.Create(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content uploaded successfully.", item)
}

func UpdateContent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content id!", nil)
	}

	db := database.Database.Db

	var item models.ContentItem
	if err := db.First(&item, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	reqData := new(struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != nil {
		item.Title = *reqData.Title
	}
	if reqData.Description != nil {
		item.Description = *reqData.Description
	}

	if err := db.Save(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully.", item)
}

func DeleteContent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid content id!", nil)
	}

	db := database.Database.Db

	var item models.ContentItem
	if err := db.First(&item, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	if err := db.Delete(&item).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully.", nil)
}

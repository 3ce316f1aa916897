package academicsController

import (
	"lams/database"
	"lams/middleware"
	"lams/models"
	academicsValidator "lams/validators/academics"

	"github.com/gofiber/fiber/v2"
)

func ListTopics(c *fiber.Ctx) error {
	var topics []models.Topic
	if err := database.Database.Db.Order("id").Find(&topics).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch topics!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic list.", topics)
}

func ListTopicsByChapter(c *fiber.Ctx) error {
	chapterId, err := c.ParamsInt("chapterId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	var topics []models.Topic
	if err := database.Database.Db.Where("chapter_id = ?", chapterId).
		Order("topic_number, id").Find(&topics).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch topics!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topics for chapter.", topics)
}

func GetTopic(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid topic id!", nil)
	}

	var topic models.Topic
	if err := database.Database.Db.First(&topic, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic details.", topic)
}

func CreateTopic(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTopic").(*academicsValidator.TopicRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	userId, _ := c.Locals("userId").(uint)

	db := database.Database.Db

	if err := db.First(&models.Chapter{}, reqData.ChapterID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent chapter not found!", nil)
	}

	topic := models.Topic{
		Name:          reqData.Name,
		Description:   reqData.Description,
		TopicNumber:   reqData.TopicNumber,
		EstimatedTime: reqData.EstimatedTime,
		IsActive:      true,
		ChapterID:     reqData.ChapterID,
		CreatedBy:     userId,
	}
	if reqData.IsActive != nil {
		topic.IsActive = *reqData.IsActive
	}
	if err := db.Create(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create topic!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Topic created successfully.", topic)
}

func UpdateTopic(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid topic id!", nil)
	}

	db := database.Database.Db

	var topic models.Topic
	if err := db.First(&topic, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	reqData, ok := c.Locals("validatedTopic").(*academicsValidator.TopicRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.ChapterID != topic.ChapterID {
		if err := db.First(&models.Chapter{}, reqData.ChapterID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Parent chapter not found!", nil)
		}
	}

	topic.Name = reqData.Name
	topic.Description = reqData.Description
	topic.TopicNumber = reqData.TopicNumber
	topic.EstimatedTime = reqData.EstimatedTime
	topic.ChapterID = reqData.ChapterID
	if reqData.IsActive != nil {
		topic.IsActive = *reqData.IsActive
	}
	if err := db.Save(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update topic!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic updated successfully.", topic)
}

func DeleteTopic(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid topic id!", nil)
	}

	db := database.Database.Db

	var topic models.Topic
	if err := db.First(&topic, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Topic not found!", nil)
	}

	if err := db.Delete(&topic).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete topic!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Topic deleted successfully.", nil)
}

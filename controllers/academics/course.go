package academicsController

import (
	"lams/database"
	"lams/middleware"
	"lams/models"
	academicsValidator "lams/validators/academics"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// checkCourseAssociation verifies the single set hierarchy reference exists.
func checkCourseAssociation(db *gorm.DB, reqData *academicsValidator.CourseRequest) (string, bool) {
	switch {
	case reqData.StreamID != nil:
		if err := db.First(&models.Stream{}, *reqData.StreamID).Error; err != nil {
			return "Associated stream not found!", false
		}
	case reqData.SubjectID != nil:
		if err := db.First(&models.Subject{}, *reqData.SubjectID).Error; err != nil {
			return "Associated subject not found!", false
		}
	case reqData.ChapterID != nil:
		if err := db.First(&models.Chapter{}, *reqData.ChapterID).Error; err != nil {
			return "Associated chapter not found!", false
		}
	case reqData.TopicID != nil:
		if err := db.First(&models.Topic{}, *reqData.TopicID).Error; err != nil {
			return "Associated topic not found!", false
		}
	}
	return "", true
}

func ListCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.Course{})
	if streamId := c.Query("stream_id"); streamId != "" {
		query = query.Where("stream_id = ?", streamId)
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
	if level := c.Query("level"); level != "" {
		query = query.Where("level = ?", level)
	}

	var courses []models.Course
	if err := query.Order("id").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course list.", courses)
}

func GetCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details.", course)
}

func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*academicsValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	userId, _ := c.Locals("userId").(uint)

	db := database.Database.Db

	if msg, ok := checkCourseAssociation(db, reqData); !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, msg, nil)
	}

	level := reqData.Level
	if level == "" {
		level = models.CourseLevelBeginner
	}

	course := models.Course{
		Name:        reqData.Name,
		Description: reqData.Description,
		Duration:    reqData.Duration,
		Level:       level,
		IsActive:    true,
		StreamID:    reqData.StreamID,
		SubjectID:   reqData.SubjectID,
		ChapterID:   reqData.ChapterID,
		TopicID:     reqData.TopicID,
		CreatedBy:   userId,
	}
	if reqData.IsActive != nil {
		course.IsActive = *reqData.IsActive
	}
	if err := db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully.", course)
}

func UpdateCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*academicsValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if msg, ok := checkCourseAssociation(db, reqData); !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, msg, nil)
	}

	course.Name = reqData.Name
	course.Description = reqData.Description
	course.Duration = reqData.Duration
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	course.StreamID = reqData.StreamID
	course.SubjectID = reqData.SubjectID
	course.ChapterID = reqData.ChapterID
	course.TopicID = reqData.TopicID
	if reqData.IsActive != nil {
		course.IsActive = *reqData.IsActive
	}
	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", course)
}

func DeleteCourse(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := db.Delete(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully.", nil)
}

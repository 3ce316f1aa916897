package questionController

import (
	"lams/database"
	"lams/middleware"
	"lams/models"
	questionValidator "lams/validators/question"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListQuestions(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.Question{})
	if topicId := c.Query("topic_id"); topicId != "" {
		query = query.Where("topic_id = ?", topicId)
	}
	if chapterId := c.Query("chapter_id"); chapterId != "" {
		query = query.Where("chapter_id = ?", chapterId)
	}
	if subjectId := c.Query("subject_id"); subjectId != "" {
		query = query.Where("subject_id = ?", subjectId)
	}
	if courseId := c.Query("course_id"); courseId != "" {
		query = query.Where("course_id = ?", courseId)
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty_level = ?", difficulty)
	}

	var questions []models.Question
	if err := query.Preload("Answers").Order("id").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question list.", questions)
}

func GetQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	var question models.Question
	if err := database.Database.Db.Preload("Answers").First(&question, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question details.", question)
}

func CreateQuestion(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedQuestion").(*questionValidator.QuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	userId, _ := c.Locals("userId").(uint)

	db := database.Database.Db

	difficulty := reqData.DifficultyLevel
	if difficulty == "" {
		difficulty = models.DifficultyEasy
	}

	question := models.Question{
		Content:         reqData.Content,
		ImageURL:        reqData.ImageURL,
		DifficultyLevel: difficulty,
		TopicID:         reqData.TopicID,
		ChapterID:       reqData.ChapterID,
		SubjectID:       reqData.SubjectID,
		CourseID:        reqData.CourseID,
		CreatedBy:       userId,
	}
	for _, a := range reqData.Answers {
		question.Answers = append(question.Answers, models.Answer{
			Content:   a.Content,
			ImageURL:  a.ImageURL,
			IsCorrect: a.IsCorrect,
		})
	}

	if err := db.Create(&question).Error; err != nil {
		log.Printf("Error creating question: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully.", question)
}

func UpdateQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	db := database.Database.Db

	var question models.Question
	if err := db.First(&question, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*questionValidator.QuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	question.Content = reqData.Content
	question.ImageURL = reqData.ImageURL
	if reqData.DifficultyLevel != "" {
		question.DifficultyLevel = reqData.DifficultyLevel
	}
	question.TopicID = reqData.TopicID
	question.ChapterID = reqData.ChapterID
	question.SubjectID = reqData.SubjectID
	question.CourseID = reqData.CourseID

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&question).Error; err != nil {
			return err
		}
		// Supplied answers replace the existing option set wholesale
		if len(reqData.Answers) > 0 {
			if err := tx.Where("question_id = ?", question.ID).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
			for _, a := range reqData.Answers {
				answer := models.Answer{
					QuestionID: question.ID,
					Content:    a.Content,
					ImageURL:   a.ImageURL,
					IsCorrect:  a.IsCorrect,
				}
				if err := tx.Create(&answer).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error updating question %d: %v", question.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	db.Preload("Answers").First(&question, question.ID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully.", question)
}

func DeleteQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	db := database.Database.Db

	var question models.Question
	if err := db.First(&question, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully.", nil)
}

func ListAnswers(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Question{}, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	var answers []models.Answer
	if err := db.Where("question_id = ?", id).Order("id").Find(&answers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch answers!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer list.", answers)
}

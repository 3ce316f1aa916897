package examController

import (
	"lams/database"
	"lams/middleware"
	"lams/models"
	examValidator "lams/validators/exam"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListExams(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&models.Exam{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if courseId := c.Query("course_id"); courseId != "" {
		query = query.Where("course_id = ?", courseId)
	}
	if subjectId := c.Query("subject_id"); subjectId != "" {
		query = query.Where("subject_id = ?", subjectId)
	}

	var exams []models.Exam
	if err := query.Order("id").Find(&exams).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch exams!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam list.", exams)
}

// MyExams lists exams created by the caller.
func MyExams(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var exams []models.Exam
	if err := database.Database.Db.Where("created_by = ?", userId).Order("id").Find(&exams).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch exams!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "My exams.", exams)
}

func GetExam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	db := database.Database.Db

	var exam models.Exam
	if err := db.First(&exam, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	var examQuestions []models.ExamQuestion
	db.Where("exam_id = ?", exam.ID).Order("id").Find(&examQuestions)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam details.", fiber.Map{
		"exam":      exam,
		"questions": examQuestions,
	})
}

func CreateExam(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedExam").(*examValidator.ExamRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	userId, _ := c.Locals("userId").(uint)

	status := reqData.Status
	if status == "" {
		status = models.ExamActive
	}

	exam := models.Exam{
		Title:           reqData.Title,
		Description:     reqData.Description,
		StartDatetime:   reqData.StartDatetime,
		EndDatetime:     reqData.EndDatetime,
		DurationMinutes: reqData.DurationMinutes,
		MaxMarks:        reqData.MaxMarks,
		MaxQuestions:    reqData.MaxQuestions,
		Status:          status,
		CourseID:        reqData.CourseID,
		ClassID:         reqData.ClassID,
		SubjectID:       reqData.SubjectID,
		ChapterID:       reqData.ChapterID,
		TopicID:         reqData.TopicID,
		CreatedBy:       userId,
	}

	if err := database.Database.Db.Create(&exam).Error; err != nil {
		log.Printf("Error creating exam: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create exam!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exam created successfully.", exam)
}

func UpdateExam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	db := database.Database.Db

	var exam models.Exam
	if err := db.First(&exam, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	reqData, ok := c.Locals("validatedExam").(*examValidator.ExamRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	exam.Title = reqData.Title
	exam.Description = reqData.Description
	exam.StartDatetime = reqData.StartDatetime
	exam.EndDatetime = reqData.EndDatetime
	exam.DurationMinutes = reqData.DurationMinutes
	exam.MaxMarks = reqData.MaxMarks
	exam.MaxQuestions = reqData.MaxQuestions
	if reqData.Status != "" {
		exam.Status = reqData.Status
	}
	exam.CourseID = reqData.CourseID
	exam.ClassID = reqData.ClassID
	exam.SubjectID = reqData.SubjectID
	exam.ChapterID = reqData.ChapterID
	exam.TopicID = reqData.TopicID

	if err := db.Save(&exam).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update exam!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam updated successfully.", exam)
}

func DeleteExam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	db := database.Database.Db

	var exam models.Exam
	if err := db.First(&exam, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("exam_id = ?", exam.ID).Delete(&models.ExamQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&exam).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete exam!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam deleted successfully.", nil)
}

func AttachQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	reqData, ok := c.Locals("validatedAttachQuestion").(*examValidator.AttachQuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Exam{}, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}
	if err := db.First(&models.Question{}, reqData.QuestionID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	// A question appears in an exam at most once
	if err := db.Where("exam_id = ? AND question_id = ?", id, reqData.QuestionID).
		First(&models.ExamQuestion{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Question is already attached to this exam!", nil)
	}

	examQuestion := models.ExamQuestion{
		ExamID:     uint(id),
		QuestionID: reqData.QuestionID,
		Marks:      reqData.Marks,
	}
	if err := db.Create(&examQuestion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach question!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question attached successfully.", examQuestion)
}

func BulkAttachQuestions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	reqData, ok := c.Locals("validatedBulkAttach").(*examValidator.BulkAttachRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Exam{}, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	var attached []models.ExamQuestion
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, q := range reqData.Questions {
			if err := tx.First(&models.Question{}, q.QuestionID).Error; err != nil {
				return err
			}
			// Skip duplicates quietly so bulk attaches are idempotent
			if err := tx.Where("exam_id = ? AND question_id = ?", id, q.QuestionID).
				First(&models.ExamQuestion{}).Error; err == nil {
				continue
			}
			examQuestion := models.ExamQuestion{
				ExamID:     uint(id),
				QuestionID: q.QuestionID,
				Marks:      q.Marks,
			}
			if err := tx.Create(&examQuestion).Error; err != nil {
				return err
			}
			attached = append(attached, examQuestion)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error bulk attaching questions to exam %d: %v", id, err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to attach questions; no changes were made!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Questions attached successfully.", attached)
}

func DetachQuestion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}
	questionId, err := c.ParamsInt("questionId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	db := database.Database.Db

	var examQuestion models.ExamQuestion
	if err := db.Where("exam_id = ? AND question_id = ?", id, questionId).First(&examQuestion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question is not attached to this exam!", nil)
	}

	if err := db.Delete(&examQuestion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to detach question!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question detached successfully.", nil)
}

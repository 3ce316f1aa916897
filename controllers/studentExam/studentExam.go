package studentExamController

import (
	"errors"
	"lams/database"
	"lams/middleware"
	"lams/models"
	"lams/services"
	"lams/utils"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func sessions() *services.SessionManager {
	return services.NewSessionManager(database.Database.Db)
}

// lifecycleError maps the service sentinels onto HTTP statuses.
func lifecycleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound), errors.Is(err, services.ErrExamNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	case errors.Is(err, services.ErrNoActiveSubscription),
		errors.Is(err, services.ErrNoAttemptsLeft),
		errors.Is(err, services.ErrExamNotStartedYet),
		errors.Is(err, services.ErrExamEnded),
		errors.Is(err, services.ErrBadSubscriptionConfig):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}
	log.Printf("Student exam operation failed: %v", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}

// requireOwnSession loads the session and checks it belongs to the caller.
// Admin role and up may act on any session.
func requireOwnSession(c *fiber.Ctx, sessionID uint) (*models.StudentExam, error) {
	session, err := sessions().Get(sessionID)
	if err != nil {
		return nil, err
	}

	userId, _ := c.Locals("userId").(uint)
	role, _ := c.Locals("userRole").(string)
	if session.StudentID != userId && models.RoleRank(role) < models.RoleRank(models.RoleAdmin) {
		return nil, errForbidden
	}
	return session, nil
}

var errForbidden = errors.New("forbidden")

func CreateStudentExam(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		ExamID uint `json:"exam_id"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.ExamID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Exam id is required!", nil)
	}

	session, err := sessions().Create(userId, reqData.ExamID)
	if err != nil {
		return lifecycleError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Student exam created successfully.", session)
}

// MyExams lists the caller's exam sessions.
func MyExams(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var sessionRows []models.StudentExam
	if err := database.Database.Db.Where("student_id = ?", userId).Order("id").Find(&sessionRows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch student exams!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "My student exams.", sessionRows)
}

// ByExam lists all sessions for one exam (teacher and up).
func ByExam(c *fiber.Ctx) error {
	examId, err := c.ParamsInt("examId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	var sessionRows []models.StudentExam
	if err := database.Database.Db.Where("exam_id = ?", examId).Order("id").Find(&sessionRows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch student exams!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student exams for exam.", sessionRows)
}

func GetStudentExam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student exam id!", nil)
	}

	session, err := requireOwnSession(c, uint(id))
	if errors.Is(err, errForbidden) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this student exam!", nil)
	}
	if err != nil {
		return lifecycleError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student exam details.", session)
}

func StartStudentExam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student exam id!", nil)
	}

	if _, err := requireOwnSession(c, uint(id)); err != nil {
		if errors.Is(err, errForbidden) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this student exam!", nil)
		}
		return lifecycleError(c, err)
	}

	session, err := sessions().Start(uint(id))
	if err != nil {
		return lifecycleError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam started successfully.", session)
}

// RetakeStudentExam starts a fresh attempt and reports the remaining ledger
// balance alongside the session.
func RetakeStudentExam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student exam id!", nil)
	}

	if _, err := requireOwnSession(c, uint(id)); err != nil {
		if errors.Is(err, errForbidden) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this student exam!", nil)
		}
		return lifecycleError(c, err)
	}

	mgr := sessions()
	session, err := mgr.Start(uint(id))
	if err != nil {
		return lifecycleError(c, err)
	}

	remaining := 0
	if sub, subErr := mgr.Entitlements().ActiveSubscription(session.StudentID, time.Now()); subErr == nil {
		if attempt, ledgerErr := mgr.Ledger().Get(sub.ID, session.ExamID); ledgerErr == nil {
			remaining = attempt.RemainingAttempts
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Retake started successfully.", fiber.Map{
		"student_exam":       session,
		"remaining_attempts": remaining,
	})
}

func SubmitAnswer(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student exam id!", nil)
	}

	session, err := requireOwnSession(c, uint(id))
	if errors.Is(err, errForbidden) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this student exam!", nil)
	}
	if err != nil {
		return lifecycleError(c, err)
	}

	if session.Status != models.ExamStatusInProgress {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Exam is not in progress!", nil)
	}

	reqData := new(struct {
		QuestionID uint  `json:"question_id"`
		AnswerID   *uint `json:"answer_id"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.QuestionID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Question id is required!", nil)
	}

	// The question must belong to the exam
	if err := database.Database.Db.Where("exam_id = ? AND question_id = ?", session.ExamID, reqData.QuestionID).
		First(&models.ExamQuestion{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question is not part of this exam!", nil)
	}

	answer, err := sessions().SubmitAnswer(uint(id), reqData.QuestionID, reqData.AnswerID)
	if err != nil {
		return lifecycleError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Answer submitted successfully.", answer)
}

func ListAnswers(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student exam id!", nil)
	}

	if _, err := requireOwnSession(c, uint(id)); err != nil {
		if errors.Is(err, errForbidden) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this student exam!", nil)
		}
		return lifecycleError(c, err)
	}

	answers, err := sessions().Answers(uint(id))
	if err != nil {
		return lifecycleError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submitted answers.", answers)
}

func CompleteStudentExam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student exam id!", nil)
	}

	session, err := requireOwnSession(c, uint(id))
	if errors.Is(err, errForbidden) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this student exam!", nil)
	}
	if err != nil {
		return lifecycleError(c, err)
	}

	if session.Status != models.ExamStatusInProgress {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Exam is not in progress!", nil)
	}

	session, result, err := sessions().Complete(uint(id))
	if err != nil {
		return lifecycleError(c, err)
	}

	// Result notification is best-effort
	var user models.User
	var exam models.Exam
	db := database.Database.Db
	if db.First(&user, session.StudentID).Error == nil && db.First(&exam, session.ExamID).Error == nil {
		utils.SendExamResultEmail(user.Email, user.Username, exam.Title, result.ScorePercentage, result.PassedStatus)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam completed successfully.", fiber.Map{
		"student_exam": session,
		"result":       result,
	})
}

// LatestResult returns the most recent scored attempt.
func LatestResult(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student exam id!", nil)
	}

	if _, err := requireOwnSession(c, uint(id)); err != nil {
		if errors.Is(err, errForbidden) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this student exam!", nil)
		}
		return lifecycleError(c, err)
	}

	var result models.ExamResult
	err = database.Database.Db.Where("student_exam_id = ?", id).
		Order("attempt_number DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No result found for this student exam!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch result!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Latest result.", result)
}

// AllResults returns the scored history plus the current attempt number when
// an attempt is still in progress.
func AllResults(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student exam id!", nil)
	}

	session, err := requireOwnSession(c, uint(id))
	if errors.Is(err, errForbidden) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this student exam!", nil)
	}
	if err != nil {
		return lifecycleError(c, err)
	}

	results, err := sessions().Results(uint(id))
	if err != nil {
		return lifecycleError(c, err)
	}

	response := fiber.Map{
		"results": results,
		"status":  session.Status,
	}
	if session.Status == models.ExamStatusInProgress {
		response["current_attempt_number"] = len(results) + 1
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result history.", response)
}

// RemainingAttempts reports the ledger balance for the session's exam under
// the caller's current entitlement.
func RemainingAttempts(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student exam id!", nil)
	}

	session, err := requireOwnSession(c, uint(id))
	if errors.Is(err, errForbidden) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have access to this student exam!", nil)
	}
	if err != nil {
		return lifecycleError(c, err)
	}

	mgr := sessions()
	sub, err := mgr.Entitlements().ActiveSubscription(session.StudentID, time.Now())
	if err != nil {
		return lifecycleError(c, err)
	}
	maxAttempts, err := mgr.Entitlements().MaxAttempts(sub)
	if err != nil {
		return lifecycleError(c, err)
	}
	remaining, err := mgr.Ledger().Remaining(sub.ID, session.ExamID, maxAttempts)
	if err != nil {
		return lifecycleError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Remaining attempts.", fiber.Map{
		"exam_id":            session.ExamID,
		"remaining_attempts": remaining,
		"max_attempts":       maxAttempts,
	})
}

// DeleteStudentExam hard-deletes a session and its answers (admin only).
// Scored results are kept for reporting.
func DeleteStudentExam(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student exam id!", nil)
	}

	db := database.Database.Db

	var session models.StudentExam
	if err := db.First(&session, id).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student exam not found!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_exam_id = ?", session.ID).Delete(&models.StudentAnswer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&session).Error
	})
	if err != nil {
		log.Printf("Error deleting student exam %d: %v", session.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete student exam!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student exam deleted successfully.", nil)
}

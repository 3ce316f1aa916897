package reportController

import (
	"lams/database"
	"lams/middleware"
	"lams/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// StudentPerformance aggregates one student's scored history: attempt totals,
// average/highest/lowest percentage and how many attempts passed.
func StudentPerformance(c *fiber.Ctx) error {
	studentId, err := c.ParamsInt("studentId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.User{}, studentId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var results []models.ExamResult
	if err := db.Joins("JOIN student_exams ON student_exams.id = exam_results.student_exam_id").
		Where("student_exams.student_id = ?", studentId).
		Find(&results).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	stats := fiber.Map{
		"total_attempts":  len(results),
		"passed_attempts": 0,
		"average_score":   0.0,
		"highest_score":   0.0,
		"lowest_score":    0.0,
	}
	if len(results) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Student performance.", stats)
	}

	passed := 0
	sum := 0.0
	highest := results[0].ScorePercentage
	lowest := results[0].ScorePercentage
	for _, r := range results {
		if r.PassedStatus {
			passed++
		}
		sum += r.ScorePercentage
		if r.ScorePercentage > highest {
			highest = r.ScorePercentage
		}
		if r.ScorePercentage < lowest {
			lowest = r.ScorePercentage
		}
	}

	stats["passed_attempts"] = passed
	stats["average_score"] = sum / float64(len(results))
	stats["highest_score"] = highest
	stats["lowest_score"] = lowest

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student performance.", stats)
}

// SubjectPerformance aggregates results across all exams under one subject.
func SubjectPerformance(c *fiber.Ctx) error {
	subjectId, err := c.ParamsInt("subjectId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Subject{}, subjectId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	var results []models.ExamResult
	if err := db.Joins("JOIN student_exams ON student_exams.id = exam_results.student_exam_id").
		Joins("JOIN exams ON exams.id = student_exams.exam_id").
		Where("exams.subject_id = ?", subjectId).
		Find(&results).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	passed := 0
	sum := 0.0
	for _, r := range results {
		if r.PassedStatus {
			passed++
		}
		sum += r.ScorePercentage
	}

	average := 0.0
	if len(results) > 0 {
		average = sum / float64(len(results))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subject performance.", fiber.Map{
		"subject_id":      subjectId,
		"total_attempts":  len(results),
		"passed_attempts": passed,
		"average_score":   average,
	})
}

// ClassPerformance aggregates results across all exams linked to one class.
func ClassPerformance(c *fiber.Ctx) error {
	classId, err := c.ParamsInt("classId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid class id!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Class{}, classId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Class not found!", nil)
	}

	var results []models.ExamResult
	if err := db.Joins("JOIN student_exams ON student_exams.id = exam_results.student_exam_id").
		Joins("JOIN exams ON exams.id = student_exams.exam_id").
		Where("exams.class_id = ?", classId).
		Find(&results).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	passed := 0
	sum := 0.0
	for _, r := range results {
		if r.PassedStatus {
			passed++
		}
		sum += r.ScorePercentage
	}

	average := 0.0
	if len(results) > 0 {
		average = sum / float64(len(results))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Class performance.", fiber.Map{
		"class_id":        classId,
		"total_attempts":  len(results),
		"passed_attempts": passed,
		"average_score":   average,
	})
}

// ExamAttemptReport lists every scored attempt for one exam with student info.
func ExamAttemptReport(c *fiber.Ctx) error {
	examId, err := c.ParamsInt("examId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam id!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Exam{}, examId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}

	type attemptRow struct {
		StudentID       uint    `json:"student_id"`
		Username        string  `json:"username"`
		AttemptNumber   int     `json:"attempt_number"`
		ScorePercentage float64 `json:"score_percentage"`
		ObtainedMarks   float64 `json:"obtained_marks"`
		MaxMarks        float64 `json:"max_marks"`
		PassedStatus    bool    `json:"passed_status"`
	}

	var rows []attemptRow
	if err := db.Model(&models.ExamResult{}).
		Select("student_exams.student_id, users.username, exam_results.attempt_number, exam_results.score_percentage, exam_results.obtained_marks, exam_results.max_marks, exam_results.passed_status").
		Joins("JOIN student_exams ON student_exams.id = exam_results.student_exam_id").
		Joins("JOIN users ON users.id = student_exams.student_id").
		Where("student_exams.exam_id = ?", examId).
		Order("student_exams.student_id, exam_results.attempt_number").
		Scan(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempt report!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam attempt report.", rows)
}

// StudentAttemptReport lists every scored attempt one student has made,
// newest exam first.
func StudentAttemptReport(c *fiber.Ctx) error {
	studentId, err := c.ParamsInt("studentId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.User{}, studentId).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	type attemptRow struct {
		ExamID          uint    `json:"exam_id"`
		ExamTitle       string  `json:"exam_title"`
		AttemptNumber   int     `json:"attempt_number"`
		ScorePercentage float64 `json:"score_percentage"`
		ObtainedMarks   float64 `json:"obtained_marks"`
		MaxMarks        float64 `json:"max_marks"`
		PassedStatus    bool    `json:"passed_status"`
	}

	var rows []attemptRow
	if err := db.Model(&models.ExamResult{}).
		Select("student_exams.exam_id, exams.title AS exam_title, exam_results.attempt_number, exam_results.score_percentage, exam_results.obtained_marks, exam_results.max_marks, exam_results.passed_status").
		Joins("JOIN student_exams ON student_exams.id = exam_results.student_exam_id").
		Joins("JOIN exams ON exams.id = student_exams.exam_id").
		Where("student_exams.student_id = ?", studentId).
		Order("student_exams.exam_id DESC, exam_results.attempt_number").
		Scan(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempt report!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student attempt report.", rows)
}

// SubscriptionOverview breaks subscriptions down by status.
func SubscriptionOverview(c *fiber.Ctx) error {
	db := database.Database.Db

	var active, expired, cancelled int64
	db.Model(&models.UserSubscription{}).Where("status = ?", models.SubscriptionActive).Count(&active)
	db.Model(&models.UserSubscription{}).Where("status = ?", models.SubscriptionExpired).Count(&expired)
	db.Model(&models.UserSubscription{}).Where("status = ?", models.SubscriptionCancelled).Count(&cancelled)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription overview.", fiber.Map{
		"active":    active,
		"expired":   expired,
		"cancelled": cancelled,
		"total":     active + expired + cancelled,
	})
}

// SubscriptionRevenue sums plan prices over purchases in the requested month
// (defaults to the current month).
func SubscriptionRevenue(c *fiber.Ctx) error {
	db := database.Database.Db

	ref := time.Now()
	if month := c.Query("month"); month != "" {
		parsed, err := time.Parse("2006-01", month)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Month must be formatted YYYY-MM!", nil)
		}
		ref = parsed
	}

	window := now.With(ref)
	start := window.BeginningOfMonth()
	end := window.EndOfMonth()

	type revenueRow struct {
		Count   int64   `json:"count"`
		Revenue float64 `json:"revenue"`
	}

	var row revenueRow
	if err := db.Model(&models.UserSubscription{}).
		Select("COUNT(user_subscriptions.id) AS count, COALESCE(SUM(subscription_plans.price), 0) AS revenue").
		Joins("JOIN subscription_plan_packages ON subscription_plan_packages.id = user_subscriptions.subscription_plan_packages_id").
		Joins("JOIN subscription_plans ON subscription_plans.id = subscription_plan_packages.subscription_id").
		Where("user_subscriptions.created_at BETWEEN ? AND ?", start, end).
		Scan(&row).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch revenue!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription revenue.", fiber.Map{
		"month":     start.Format("2006-01"),
		"purchases": row.Count,
		"revenue":   row.Revenue,
	})
}

// SubscriptionUsage compares attempt ledgers against plan allowances.
func SubscriptionUsage(c *fiber.Ctx) error {
	db := database.Database.Db

	type usageRow struct {
		UserSubscriptionID uint `json:"user_subscription_id"`
		ExamID             uint `json:"exam_id"`
		RemainingAttempts  int  `json:"remaining_attempts"`
		MaxExams           int  `json:"max_exams"`
	}

	var rows []usageRow
	if err := db.Model(&models.ExamAttempt{}).
		Select("exam_attempts.user_subscription_id, exam_attempts.exam_id, exam_attempts.remaining_attempts, subscription_plans.max_exams").
		Joins("JOIN user_subscriptions ON user_subscriptions.id = exam_attempts.user_subscription_id").
		Joins("JOIN subscription_plan_packages ON subscription_plan_packages.id = user_subscriptions.subscription_plan_packages_id").
		Joins("JOIN subscription_plans ON subscription_plans.id = subscription_plan_packages.subscription_id").
		Order("exam_attempts.user_subscription_id, exam_attempts.exam_id").
		Scan(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch usage!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription usage.", rows)
}

// Dashboard returns headline counts for the admin landing page.
func Dashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var students, teachers, exams, questions, activeSubs, completedExams int64
	db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&students)
	db.Model(&models.User{}).Where("role = ?", models.RoleTeacher).Count(&teachers)
	db.Model(&models.Exam{}).Count(&exams)
	db.Model(&models.Question{}).Count(&questions)
	db.Model(&models.UserSubscription{}).Where("status = ?", models.SubscriptionActive).Count(&activeSubs)
	db.Model(&models.StudentExam{}).Where("status = ?", models.ExamStatusCompleted).Count(&completedExams)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard counts.", fiber.Map{
		"students":             students,
		"teachers":             teachers,
		"exams":                exams,
		"questions":            questions,
		"active_subscriptions": activeSubs,
		"completed_exams":      completedExams,
	})
}

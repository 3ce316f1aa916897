package reportRoutes

import (
	reportController "lams/controllers/report"
	"lams/middleware"
	"lams/models"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App) {
	report := app.Group("/api/reports", middleware.Protected)

	teacherUp := middleware.RequireRole(models.RoleTeacher)
	adminUp := middleware.RequireRole(models.RoleAdmin)

	report.Get("/students/:studentId/performance", teacherUp, reportController.StudentPerformance)
	report.Get("/subjects/:subjectId/performance", teacherUp, reportController.SubjectPerformance)
	report.Get("/classes/:classId/performance", teacherUp, reportController.ClassPerformance)
	report.Get("/exams/:examId/attempts", teacherUp, reportController.ExamAttemptReport)
	report.Get("/students/:studentId/attempts", teacherUp, reportController.StudentAttemptReport)

	report.Get("/subscriptions/overview", adminUp, reportController.SubscriptionOverview)
	report.Get("/subscriptions/revenue", adminUp, reportController.SubscriptionRevenue)
	report.Get("/subscriptions/usage", adminUp, reportController.SubscriptionUsage)
	report.Get("/dashboard", adminUp, reportController.Dashboard)
}

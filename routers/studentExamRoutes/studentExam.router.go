package studentExamRoutes

import (
	studentExamControllers "lams/controllers/studentExam"
	"lams/middleware"
	"lams/models"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentExamRoutes(app *fiber.App) {
	group := app.Group("/api/student-exams", middleware.Protected)

	group.Post("/", studentExamControllers.CreateStudentExam)
	group.Get("/my-exams", studentExamControllers.MyExams)
	group.Get("/by-exam/:examId", middleware.RequireRole(models.RoleTeacher), studentExamControllers.ByExam)
	group.Get("/:id", studentExamControllers.GetStudentExam)
	group.Post("/:id/start", studentExamControllers.StartStudentExam)
	group.Post("/:id/retake", studentExamControllers.RetakeStudentExam)
	group.Post("/:id/answers", studentExamControllers.SubmitAnswer)
	group.Get("/:id/answers", studentExamControllers.ListAnswers)
	group.Post("/:id/complete", studentExamControllers.CompleteStudentExam)
	group.Get("/:id/result", studentExamControllers.LatestResult)
	group.Get("/:id/results", studentExamControllers.AllResults)
	group.Get("/:id/remaining-attempts", studentExamControllers.RemainingAttempts)
	group.Delete("/:id", middleware.RequireRole(models.RoleAdmin), studentExamControllers.DeleteStudentExam)
}

package examRoutes

import (
	examControllers "lams/controllers/exam"
	"lams/middleware"
	"lams/models"
	examValidators "lams/validators/exam"

	"github.com/gofiber/fiber/v2"
)

func SetupExamRoutes(app *fiber.App) {
	teacherUp := middleware.RequireRole(models.RoleTeacher)

	examGroup := app.Group("/api/exams", middleware.Protected)

	examGroup.Get("/", examControllers.ListExams)
	examGroup.Get("/my-exams", teacherUp, examControllers.MyExams)
	examGroup.Get("/:id", examControllers.GetExam)
	examGroup.Post("/", teacherUp, examValidators.Exam(), examControllers.CreateExam)
	examGroup.Put("/:id", teacherUp, examValidators.Exam(), examControllers.UpdateExam)
	examGroup.Delete("/:id", teacherUp, examControllers.DeleteExam)

	examGroup.Post("/:id/questions", teacherUp, examValidators.AttachQuestion(), examControllers.AttachQuestion)
	examGroup.Post("/:id/questions/bulk", teacherUp, examValidators.BulkAttachQuestions(), examControllers.BulkAttachQuestions)
	examGroup.Delete("/:id/questions/:questionId", teacherUp, examControllers.DetachQuestion)
}

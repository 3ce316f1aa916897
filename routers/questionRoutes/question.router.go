package questionRoutes

import (
	questionControllers "lams/controllers/question"
	"lams/middleware"
	"lams/models"
	questionValidators "lams/validators/question"

	"github.com/gofiber/fiber/v2"
)

func SetupQuestionRoutes(app *fiber.App) {
	teacherUp := middleware.RequireRole(models.RoleTeacher)

	questionGroup := app.Group("/api/questions", middleware.Protected)

	questionGroup.Get("/", questionControllers.ListQuestions)
	questionGroup.Get("/:id", questionControllers.GetQuestion)
	questionGroup.Get("/:id/answers", questionControllers.ListAnswers)
	questionGroup.Post("/", teacherUp, questionValidators.Question(), questionControllers.CreateQuestion)
	questionGroup.Put("/:id", teacherUp, questionValidators.Question(), questionControllers.UpdateQuestion)
	questionGroup.Delete("/:id", teacherUp, questionControllers.DeleteQuestion)
}

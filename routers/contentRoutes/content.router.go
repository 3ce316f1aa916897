package contentRoutes

import (
	contentControllers "lams/controllers/content"
	"lams/middleware"
	"lams/models"

	"github.com/gofiber/fiber/v2"
)

func SetupContentRoutes(app *fiber.App) {
	teacherUp := middleware.RequireRole(models.RoleTeacher)

	contentGroup := app.Group("/api/content", middleware.Protected)

	contentGroup.Get("/", contentControllers.ListContent)
	contentGroup.Get("/:id", contentControllers.GetContent)
	contentGroup.Post("/upload", teacherUp, contentControllers.UploadContent)
	contentGroup.Put("/:id", teacherUp, contentControllers.UpdateContent)
	contentGroup.Delete("/:id", teacherUp, contentControllers.DeleteContent)
}

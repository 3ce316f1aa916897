package userRoutes

import (
	userControllers "lams/controllers/user"
	"lams/middleware"
	"lams/models"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/api/users", middleware.Protected, middleware.RequireRole(models.RoleAdmin))

	userGroup.Get("/", userControllers.ListUsers)
	userGroup.Get("/:id", userControllers.GetUser)
	userGroup.Post("/", userControllers.CreateUser)
	userGroup.Put("/:id", userControllers.UpdateUser)
	userGroup.Delete("/:id", userControllers.DeleteUser)
}

package authRoutes

import (
	authControllers "lams/controllers/auth"
	"lams/middleware"
	authValidators "lams/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/register", authValidators.Register(), authControllers.Register)
	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Get("/me", middleware.Protected, authControllers.Me)
	authGroup.Post("/request-otp", authValidators.RequestOTP(), authControllers.RequestOTP)
	authGroup.Post("/verify-otp", authValidators.VerifyOTP(), authControllers.VerifyOTP)
	authGroup.Patch("/reset-password", authValidators.ResetPassword(), authControllers.ResetPassword)
	authGroup.Get("/check-user-exists", authControllers.CheckUserExists)
}

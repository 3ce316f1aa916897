package subscriptionRoutes

import (
	examAttemptControllers "lams/controllers/examAttempt"
	subscriptionControllers "lams/controllers/subscription"
	"lams/middleware"
	"lams/models"
	subscriptionValidators "lams/validators/subscription"

	"github.com/gofiber/fiber/v2"
)

func SetupSubscriptionRoutes(app *fiber.App) {
	adminUp := middleware.RequireRole(models.RoleAdmin)

	// Plan catalog reads are public so the pricing page works without a login
	planGroup := app.Group("/api/subscriptions/plans")
	planGroup.Get("/", subscriptionControllers.ListPlans)
	planGroup.Get("/:id", subscriptionControllers.GetPlan)
	planGroup.Post("/", middleware.Protected, adminUp, subscriptionValidators.Plan(), subscriptionControllers.CreatePlan)
	planGroup.Put("/:id", middleware.Protected, adminUp, subscriptionValidators.Plan(), subscriptionControllers.UpdatePlan)
	planGroup.Delete("/:id", middleware.Protected, adminUp, subscriptionControllers.DeletePlan)

	mappingGroup := app.Group("/api/subscription-packages", middleware.Protected)
	mappingGroup.Get("/", subscriptionControllers.ListPlanPackages)
	mappingGroup.Get("/:id", subscriptionControllers.GetPlanPackage)
	mappingGroup.Post("/", adminUp, subscriptionValidators.PlanPackage(), subscriptionControllers.CreatePlanPackage)
	mappingGroup.Put("/:id", adminUp, subscriptionValidators.PlanPackage(), subscriptionControllers.UpdatePlanPackage)
	mappingGroup.Delete("/:id", adminUp, subscriptionControllers.DeletePlanPackage)

	packageGroup := app.Group("/api/packages", middleware.Protected)
	packageGroup.Get("/", subscriptionControllers.ListPackages)
	packageGroup.Get("/:id", subscriptionControllers.GetPackage)
	packageGroup.Post("/", adminUp, subscriptionValidators.Package(), subscriptionControllers.CreatePackage)
	packageGroup.Put("/:id", adminUp, subscriptionValidators.Package(), subscriptionControllers.UpdatePackage)
	packageGroup.Delete("/:id", adminUp, subscriptionControllers.DeletePackage)

	subGroup := app.Group("/api/subscriptions", middleware.Protected)
	subGroup.Post("/purchase", subscriptionValidators.Purchase(), subscriptionControllers.Purchase)
	subGroup.Post("/:id/renew", subscriptionControllers.Renew)
	subGroup.Post("/:id/cancel", subscriptionControllers.Cancel)
	subGroup.Get("/my", subscriptionControllers.MySubscriptions)
	subGroup.Get("/by-user/:userId", adminUp, subscriptionControllers.ListByUser)

	attemptGroup := app.Group("/api/exam-attempts", middleware.Protected)
	attemptGroup.Get("/remaining/:examId", examAttemptControllers.RemainingForExam)
	attemptGroup.Get("/by-subscription/:subscriptionId", examAttemptControllers.ListBySubscription)
	attemptGroup.Get("/count/:examId", examAttemptControllers.AttemptCount)
}

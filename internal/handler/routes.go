package handler

import (
	"aptilab/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything SetupRoutes mounts. Auth may be nil when no JWT
// secret is configured; /api/me/results is then not registered.
type Handlers struct {
	Questions  *QuestionHandler
	Results    *ResultHandler
	Users      *UserHandler
	System     *SystemHandler
	Validation *middleware.ValidationMiddleware
	Auth       middleware.TokenValidator
}

// SetupRoutes registers the /api routes on app.
func SetupRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api")

	api.Post("/register", h.Users.Register)
	api.Post("/login", h.Users.Login)

	api.Get("/questions",
		middleware.OptionalAuth(h.Auth),
		h.Validation.ValidateQuestionsQuery(),
		h.Questions.GetQuestions,
	)

	api.Post("/submit-test", h.Results.SubmitTest)
	api.Get("/user-results/:email", h.Results.GetUserResults)
	api.Get("/admin/results", h.Results.GetAllResults)
	if h.Auth != nil {
		api.Get("/me/results", middleware.Protected(h.Auth), h.Results.GetMyResults)
	}
	api.Post("/send-report", h.Results.SendReport)

	api.Post("/chatbot", h.System.Chatbot)
	api.Get("/health", h.System.Health)
	api.Get("/ai-health", h.System.AIHealth)
}

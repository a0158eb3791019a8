package routes

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/internal/handlers"
	"socialfeed/internal/middleware"
)

func RecommendationRoutes(app *fiber.App, d Deps) {
	rec := app.Group("/recommendations", middleware.RequireAuth())

	rec.Get("/", handlers.ListRecommendations(d.Recommendations))
	rec.Post("/generate", handlers.GenerateRecommendations(d.Recommendations))
	rec.Post("/:contentId/seen", handlers.MarkRecommendationSeen(d.Recommendations))
	rec.Post("/:contentId/interacted", handlers.MarkRecommendationInteracted(d.Recommendations))
}

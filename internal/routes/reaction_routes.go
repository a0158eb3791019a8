package routes

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/internal/handlers"
	"socialfeed/internal/middleware"
)

func ReactionRoutes(app *fiber.App, d Deps) {
	app.Post("/reactions", middleware.RequireAuth(), handlers.AddReaction(d.Reactions))
}

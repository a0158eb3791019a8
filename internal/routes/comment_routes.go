package routes

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/internal/handlers"
	"socialfeed/internal/middleware"
)

func CommentRoutes(app *fiber.App, d Deps) {
	comment := app.Group("/comments")

	comment.Get("/", handlers.ListComments(d.Comments))
	comment.Get("/:id/replies", handlers.ListReplies(d.Comments))

	comment.Post("/", middleware.RequireAuth(), handlers.AddComment(d.Comments))
	comment.Patch("/:id", middleware.RequireAuth(), handlers.UpdateComment(d.Comments))
	comment.Delete("/:id", middleware.RequireAuth(), handlers.DeleteComment(d.Comments))
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/internal/handlers"
	"socialfeed/internal/middleware"
)

func PostRoutes(app *fiber.App, d Deps) {
	post := app.Group("/posts", middleware.RequireAuth())

	post.Post("/", handlers.CreatePost(d.Posts))
	post.Patch("/:id", handlers.UpdatePost(d.Posts))
	post.Delete("/:id", handlers.DeletePost(d.Posts))
	post.Post("/:id/share", handlers.ShareContent(d.Posts))
}

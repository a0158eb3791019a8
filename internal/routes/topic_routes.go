package routes

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/internal/handlers"
	"socialfeed/internal/middleware"
)

func TopicRoutes(app *fiber.App, d Deps) {
	topic := app.Group("/topics")

	topic.Get("/", handlers.ListTopics(d.Topics))
	topic.Put("/", middleware.RequireAuth(), handlers.UpsertTopic(d.Topics))
	topic.Get("/followed", middleware.RequireAuth(), handlers.FollowedTopics(d.Topics))
	topic.Get("/suggestions", middleware.RequireAuth(), handlers.TopicSuggestions(d.Topics))
	topic.Get("/:id", handlers.GetTopic(d.Topics))
	topic.Get("/:id/following", middleware.RequireAuth(), handlers.IsFollowingTopic(d.Topics))
	topic.Post("/:id/follow", middleware.RequireAuth(), handlers.FollowTopic(d.Topics))
	topic.Delete("/:id/follow", middleware.RequireAuth(), handlers.UnfollowTopic(d.Topics))

	app.Get("/hashtags/recommended", middleware.RequireAuth(), handlers.RecommendedHashtags(d.Topics))
}

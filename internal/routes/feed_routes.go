package routes

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/internal/handlers"
)

func FeedRoutes(app *fiber.App, d Deps) {
	feed := app.Group("/feed")

	feed.Get("/", handlers.GetFeed(d.Feed))
	feed.Get("/personalized", handlers.GetPersonalizedFeed(d.Feed))
	feed.Get("/recommended", handlers.GetRecommendedFeed(d.Feed))
	feed.Get("/group/:groupId", handlers.GetGroupFeed(d.Feed))
	feed.Get("/user/:profileId", handlers.GetProfileFeed(d.Feed))
	feed.Get("/hashtag/:tag", handlers.GetHashtagFeed(d.Feed))
	feed.Get("/items/:id", handlers.GetFeedItem(d.Feed))
}

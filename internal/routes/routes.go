package routes

import (
	"github.com/gofiber/fiber/v2"

	"socialfeed/internal/handlers"
	"socialfeed/internal/services"
)

// Deps carries the wired services into route registration.
type Deps struct {
	Auth            *services.AuthService
	Feed            *services.FeedService
	Posts           *services.PostService
	Comments        *services.CommentService
	Reactions       *services.ReactionService
	Topics          *services.TopicService
	Recommendations *services.RecommendationService
	Scheduler       *services.Scheduler
}

func Register(app *fiber.App, d Deps) {
	AuthRoutes(app, d)
	FeedRoutes(app, d)
	PostRoutes(app, d)
	CommentRoutes(app, d)
	ReactionRoutes(app, d)
	TopicRoutes(app, d)
	RecommendationRoutes(app, d)
	SchedulerRoutes(app, d)
}

func AuthRoutes(app *fiber.App, d Deps) {
	auth := app.Group("/auth")
	auth.Post("/register", handlers.Register(d.Auth))
	auth.Post("/login", handlers.Login(d.Auth))

	app.Get("/whoami", handlers.WhoAmI(d.Auth))
}

func SchedulerRoutes(app *fiber.App, d Deps) {
	app.Post("/internal/scheduler/run", handlers.RunScheduler(d.Scheduler))
}

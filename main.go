package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"

	"socialfeed/bootstrap"
	"socialfeed/config"
	"socialfeed/database"
	_ "socialfeed/docs"
	"socialfeed/internal/middleware"
	"socialfeed/internal/repository"
	"socialfeed/internal/routes"
	"socialfeed/internal/services"
)

// @title        Social Feed API
// @version      1.0
// @description  Content feed, trending and recommendation service
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	client := database.ConnectMongo(cfg.MongoURI)
	defer database.DisconnectMongo(client)
	db := client.Database(cfg.MongoDB)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}
	cancel()

	// Repositories
	feedRepo := repository.NewMongoFeedRepo(db)
	reactionRepo := repository.NewMongoReactionRepo(db)
	commentRepo := repository.NewMongoCommentRepo(db)
	hashtagRepo := repository.NewMongoHashtagRepo(db)
	followRepo := repository.NewMongoTopicFollowRepo(db)
	subscriptionRepo := repository.NewMongoSubscriptionRepo(db)
	trendingRepo := repository.NewMongoTrendingRepo(db)
	recommendationRepo := repository.NewMongoRecommendationRepo(db)
	userRepo := repository.NewMongoUserRepo(db)

	// Services
	trendingSvc := services.NewTrendingService(feedRepo, reactionRepo, commentRepo, trendingRepo, log)
	similaritySvc := services.NewSimilarityService(reactionRepo, subscriptionRepo)
	recommendationSvc := services.NewRecommendationService(
		feedRepo, reactionRepo, hashtagRepo, followRepo, subscriptionRepo,
		trendingRepo, recommendationRepo, log)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, log)
	feedSvc := services.NewFeedService(feedRepo, reactionRepo, commentRepo, userRepo,
		subscriptionRepo, hashtagRepo, similaritySvc, log)
	postSvc := services.NewPostService(feedRepo, hashtagRepo, trendingSvc, log)
	commentSvc := services.NewCommentService(feedRepo, commentRepo, hashtagRepo, userRepo, trendingSvc, log)
	reactionSvc := services.NewReactionService(feedRepo, reactionRepo, trendingSvc, log)
	topicSvc := services.NewTopicService(hashtagRepo, followRepo, reactionRepo, feedRepo,
		similaritySvc, recommendationSvc, log)

	scheduler := services.NewScheduler(services.SchedulerConfig{
		Interval:          cfg.SchedulerInterval,
		RunOnStartup:      cfg.SchedulerRunOnStartup,
		TrendingBatchSize: cfg.TrendingBatchSize,
		ActiveUserWindow:  cfg.ActiveUserWindow,
	}, feedRepo, reactionRepo, trendingSvc, recommendationSvc, log)

	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	go scheduler.Run(schedulerCtx)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(fiberlogger.New())

	app.Get("/docs/*", swagger.HandlerDefault)

	app.Use(middleware.JWTUid(cfg.JWTSecret))

	routes.Register(app, routes.Deps{
		Auth:            authSvc,
		Feed:            feedSvc,
		Posts:           postSvc,
		Comments:        commentSvc,
		Reactions:       reactionSvc,
		Topics:          topicSvc,
		Recommendations: recommendationSvc,
		Scheduler:       scheduler,
	})

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		stopScheduler()
		_ = app.Shutdown()
	}()

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

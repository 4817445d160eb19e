package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/playmart/internal/cart"
	"github.com/example/playmart/internal/catalog"
	"github.com/example/playmart/internal/config"
	"github.com/example/playmart/internal/handlers"
	"github.com/example/playmart/internal/middleware"
	"github.com/example/playmart/internal/notify"
	"github.com/example/playmart/internal/rewards"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, cat *catalog.Catalog) {
	feed := notify.NewFeed()
	var notifier notify.Notifier = feed
	if cfg.TelegramBotToken != "" && cfg.TelegramAdminChat != "" {
		notifier = notify.Multi{feed, notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramAdminChat)}
	}

	carts := cart.NewStore()
	svc := rewards.NewService(rewards.Config{
		QuestionsPerQuiz: cfg.QuizQuestionsPerDay,
		QuestionTime:     time.Duration(cfg.QuizQuestionSeconds) * time.Second,
		SpinDuration:     cfg.SpinDuration,
		MaxSpinsPerDay:   cfg.MaxSpinsPerDay,
	}, rewards.NewGormStorage(db), notifier, cat, carts)

	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(cat)
	cartHandler := handlers.NewCartHandler(carts, cat)
	rewardsHandler := handlers.NewRewardsHandler(svc, feed)
	orderHandler := handlers.NewOrderHandler(db, carts, svc, notifier)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Catalog routes
	products := api.Group("/products")
	products.Get("/", catalogHandler.ListProducts)
	products.Get("/quick-delivery", catalogHandler.ListQuickDelivery)
	products.Get("/:id", catalogHandler.GetProduct)

	api.Get("/spin-rewards", catalogHandler.ListSpinRewards)
	api.Get("/badges", catalogHandler.ListBadges)
	api.Get("/quiz-info", catalogHandler.GetQuizInfo)
	api.Get("/flash-sales", rewardsHandler.ListFlashSales)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/auth/me", authHandler.Me)

	protected.Get("/cart", cartHandler.GetCart)
	protected.Get("/cart/summary", cartHandler.GetSummary)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Put("/cart/items/:id", cartHandler.UpdateQuantity)
	protected.Delete("/cart/items/:id", cartHandler.RemoveItem)
	protected.Delete("/cart", cartHandler.ClearCart)

	protected.Post("/orders", orderHandler.Checkout)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)

	protected.Get("/rewards/progress", rewardsHandler.GetProgress)
	protected.Get("/rewards/quiz", rewardsHandler.GetQuiz)
	protected.Post("/rewards/quiz/start", rewardsHandler.StartQuiz)
	protected.Post("/rewards/quiz/answer", rewardsHandler.SelectAnswer)
	protected.Post("/rewards/quiz/advance", rewardsHandler.AdvanceQuiz)
	protected.Post("/rewards/spin", rewardsHandler.Spin)
	protected.Post("/flash-sales/:id/claim", rewardsHandler.ClaimFlashSale)
	protected.Get("/notifications", rewardsHandler.ListNotifications)
}

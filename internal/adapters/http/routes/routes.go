package routes

import (
	"esavers-backend/internal/adapters/http/handlers"
	"esavers-backend/internal/adapters/http/middleware"
	"esavers-backend/internal/adapters/persistence/store"
	"esavers-backend/internal/config"
	"esavers-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, st *store.Store, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(st, cfg)
	userService := services.NewUserService(st)
	savingsService := services.NewSavingsService(st, cfg)
	loanService := services.NewLoanService(st, cfg)
	reportService := services.NewReportService(st)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	savingsHandler := handlers.NewSavingsHandler(savingsService)
	loanHandler := handlers.NewLoanHandler(loanService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Member management routes (Admin only)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Get("/", middleware.AdminOnly(), userHandler.ListUsers)
	userRoutes.Post("/", middleware.AdminOnly(), userHandler.AddMember)

	// Savings routes
	savingsRoutes := apiV1.Group("/savings")
	savingsRoutes.Use(middleware.AuthMiddleware(cfg))
	savingsRoutes.Get("/", savingsHandler.List)
	savingsRoutes.Post("/", savingsHandler.Submit)
	savingsRoutes.Get("/pending", middleware.AdminOnly(), savingsHandler.ListPending)
	savingsRoutes.Put("/:id/approve", middleware.AdminOnly(), savingsHandler.Approve)
	savingsRoutes.Put("/:id/reject", middleware.AdminOnly(), savingsHandler.Reject)

	// Loan routes
	loanRoutes := apiV1.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg))
	loanRoutes.Get("/", loanHandler.List)
	loanRoutes.Post("/", loanHandler.Submit)
	loanRoutes.Get("/pending", middleware.AdminOnly(), loanHandler.ListPending)
	loanRoutes.Put("/:id/approve", middleware.AdminOnly(), loanHandler.Approve)
	loanRoutes.Put("/:id/reject", middleware.AdminOnly(), loanHandler.Reject)
	loanRoutes.Get("/:id/balance", loanHandler.Balance)
	loanRoutes.Post("/:id/repayments", loanHandler.AddRepayment)

	// Dashboard & report routes
	apiV1.Get("/dashboard", middleware.AuthMiddleware(cfg), reportHandler.Dashboard)

	reportRoutes := apiV1.Group("/reports")
	reportRoutes.Use(middleware.AuthMiddleware(cfg))
	reportRoutes.Get("/period", reportHandler.Period)
	reportRoutes.Get("/members", middleware.AdminOnly(), reportHandler.Members)
	reportRoutes.Get("/transactions", reportHandler.Transactions)

	// Preferences
	prefRoutes := apiV1.Group("/preferences")
	prefRoutes.Use(middleware.AuthMiddleware(cfg))
	prefRoutes.Put("/dark-mode", userHandler.ToggleDarkMode)
}

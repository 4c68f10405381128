package routes

import (
	"feinkost-backend/internal/adapters/http/handlers"
	"feinkost-backend/internal/adapters/http/middleware"
	"feinkost-backend/internal/adapters/persistence/repositories"
	"feinkost-backend/internal/config"
	"feinkost-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	identityRepo := repositories.NewIdentityRepository(db)
	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	promotionRepo := repositories.NewPromotionRepository(db)
	stampEventRepo := repositories.NewStampEventRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	announcementRepo := repositories.NewAnnouncementRepository(db)

	// Initialize services
	authService := services.NewAuthService(identityRepo, userRepo, sessionRepo, cfg)
	promotionService := services.NewPromotionService(userRepo, promotionRepo, stampEventRepo)
	loyaltyService := services.NewLoyaltyService(userRepo, stampEventRepo)
	catalogService := services.NewCatalogService(categoryRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo)
	marketingService := services.NewMarketingService(announcementRepo)
	userService := services.NewUserService(userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	promotionHandler := handlers.NewPromotionHandler(promotionService)
	loyaltyHandler := handlers.NewLoyaltyHandler(loyaltyService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	orderHandler := handlers.NewOrderHandler(orderService)
	marketingHandler := handlers.NewMarketingHandler(marketingService)
	userHandler := handlers.NewUserHandler(userService)
	pageHandler := handlers.NewPageHandler()

	// Session context for every request; pages and APIs alike read it
	// from locals.
	app.Use(middleware.SessionMiddleware(authService))

	// Health check
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Browser navigation routes behind the route guard
	setupPageRoutes(app, pageHandler)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, promotionHandler,
		loyaltyHandler, catalogHandler, orderHandler, marketingHandler,
		userHandler)
}

// setupPageRoutes configures the guarded browser navigation routes.
// The guard decides allow/redirect per path before the shell is
// served.
func setupPageRoutes(app *fiber.App, handler *handlers.PageHandler) {
	pages := []string{
		"/",
		"/login",
		"/register",
		"/dashboard",
		"/dashboard/wheel",
		"/dashboard/orders",
		"/employee/scanner",
		"/employee/orders",
		"/admin/dashboard",
		"/admin/catalog",
		"/admin/users",
		"/admin/promotion",
		"/admin/announcements",
	}

	guard := middleware.RouteGuard()
	for _, path := range pages {
		app.Get(path, guard, handler.Serve)
	}
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	promotionHandler *handlers.PromotionHandler,
	loyaltyHandler *handlers.LoyaltyHandler,
	catalogHandler *handlers.CatalogHandler,
	orderHandler *handlers.OrderHandler,
	marketingHandler *handlers.MarketingHandler,
	userHandler *handlers.UserHandler,
) {
	// API Info
	router.Get("/", healthHandler.Root)

	// Auth routes (public, rate limited)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler)

	// Public storefront routes
	router.Get("/catalog", catalogHandler.GetCatalog)
	router.Get("/announcements", marketingHandler.ListVisible)

	// Profile routes (authenticated)
	profileRoutes := router.Group("/profile")
	profileRoutes.Use(middleware.RequireAuth())
	profileRoutes.Get("/", userHandler.GetProfile)
	profileRoutes.Put("/", userHandler.UpdateProfile)

	// Customer routes
	wheelRoutes := router.Group("/wheel")
	wheelRoutes.Use(middleware.CustomerOnly())
	setupWheelRoutes(wheelRoutes, promotionHandler)

	loyaltyRoutes := router.Group("/loyalty")
	loyaltyRoutes.Use(middleware.CustomerOnly())
	loyaltyRoutes.Get("/card", loyaltyHandler.MyCard)

	orderRoutes := router.Group("/orders")
	orderRoutes.Use(middleware.CustomerOnly())
	setupOrderRoutes(orderRoutes, orderHandler)

	// Employee routes (employee or admin)
	employeeRoutes := router.Group("/employee")
	employeeRoutes.Use(middleware.StaffOnly())
	setupEmployeeRoutes(employeeRoutes, loyaltyHandler, orderHandler)

	// Admin routes
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, promotionHandler, catalogHandler, marketingHandler, userHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler) {
	// Public routes (5 req/min/IP against brute force)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.RequireAuth(), handler.Me)
	router.Post("/logout-all", middleware.RequireAuth(), handler.LogoutAll)
}

// setupWheelRoutes configures the wheel of fortune routes
func setupWheelRoutes(router fiber.Router, handler *handlers.PromotionHandler) {
	router.Get("/status", handler.Status)
	router.Post("/spin", middleware.SpinRateLimiter(), handler.Spin)
}

// setupOrderRoutes configures the customer order routes
func setupOrderRoutes(router fiber.Router, handler *handlers.OrderHandler) {
	router.Post("/preorder", handler.CreatePreorder)
	router.Post("/concierge", handler.CreateConciergeOrder)
	router.Get("/my", handler.ListMyOrders)
}

// setupEmployeeRoutes configures staff routes
func setupEmployeeRoutes(
	router fiber.Router,
	loyaltyHandler *handlers.LoyaltyHandler,
	orderHandler *handlers.OrderHandler,
) {
	// Scanner operations on customer cards
	router.Post("/stamps/award", loyaltyHandler.AwardStamps)
	router.Post("/stamps/redeem", loyaltyHandler.RedeemStamps)
	router.Post("/prize/redeem", loyaltyHandler.RedeemPrize)

	// Order fulfillment
	router.Get("/orders", orderHandler.ListOrders)
	router.Put("/orders/:id/status", orderHandler.UpdateStatus)
}

// setupAdminRoutes configures admin routes
func setupAdminRoutes(
	router fiber.Router,
	promotionHandler *handlers.PromotionHandler,
	catalogHandler *handlers.CatalogHandler,
	marketingHandler *handlers.MarketingHandler,
	userHandler *handlers.UserHandler,
) {
	// Wheel configuration
	router.Get("/promotion", promotionHandler.GetConfig)
	router.Put("/promotion", promotionHandler.UpdateConfig)

	// Catalog management
	router.Get("/categories", catalogHandler.ListCategories)
	router.Post("/categories", catalogHandler.CreateCategory)
	router.Put("/categories/:id", catalogHandler.UpdateCategory)
	router.Delete("/categories/:id", catalogHandler.DeleteCategory)
	router.Get("/products", catalogHandler.ListProducts)
	router.Post("/products", catalogHandler.CreateProduct)
	router.Put("/products/:id", catalogHandler.UpdateProduct)
	router.Delete("/products/:id", catalogHandler.DeleteProduct)

	// Announcements
	router.Get("/announcements", marketingHandler.ListAll)
	router.Post("/announcements", marketingHandler.Create)
	router.Put("/announcements/:id", marketingHandler.Update)
	router.Delete("/announcements/:id", marketingHandler.Delete)

	// User management
	router.Get("/users", userHandler.ListUsers)
	router.Put("/users/:id/role", userHandler.ChangeRole)
	router.Delete("/users/:id", userHandler.DeleteUser)
}

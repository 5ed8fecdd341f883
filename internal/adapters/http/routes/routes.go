package routes

import (
	"time"

	"investhub/internal/adapters/http/handlers"
	"investhub/internal/adapters/http/middleware"
	"investhub/internal/adapters/persistence/repositories"
	"investhub/internal/config"
	"investhub/internal/core/services"
	"investhub/internal/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// App bundles the long-lived pieces the server loop needs after routing
// is wired: the authorization gate's watch loop and the cron scheduler.
type App struct {
	Gate *services.Gate
	Cron *services.CronService
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, sessions *services.SessionStore) *App {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	payoutRepo := repositories.NewPayoutRepository(db)
	settingRepo := repositories.NewSettingRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	versionRepo := repositories.NewAppVersionRepository(db)

	// Storage client for uploaded app builds
	store := storage.NewClient(cfg.Storage.URL, cfg.Storage.APIKey)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, sessions, cfg)
	googleService := services.NewGoogleService(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.CallbackURL)
	settingsService := services.NewSettingsService(settingRepo)
	requestService := services.NewRequestService(requestRepo, settingsService, notificationRepo)
	planService := services.NewPlanService(planRepo)
	userService := services.NewUserService(userRepo, requestRepo)
	dashboardService := services.NewDashboardService(userRepo, requestRepo)
	payoutService := services.NewPayoutService(payoutRepo, requestRepo, planRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	versionService := services.NewAppVersionService(versionRepo, store, cfg.Storage.AppBucket)

	// Authorization gate: sessions come from the store, denials with a
	// role cause revoke through the auth service
	gate := services.NewGate(userRepo, sessions, authService)
	if cfg.Gate.TimeoutSeconds > 0 {
		gate.SetTiming(time.Duration(cfg.Gate.TimeoutSeconds)*time.Second, services.DefaultOAuthRetryWait)
	}

	cronService := services.NewCronService(refreshTokenRepo, payoutService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, googleService, sessions, cfg)
	publicHandler := handlers.NewPublicHandler(planService, versionService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	userHandler := handlers.NewUserHandler(userService)
	requestHandler := handlers.NewRequestHandler(requestService)
	planHandler := handlers.NewPlanHandler(planService)
	payoutHandler := handlers.NewPayoutHandler(payoutService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, versionService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Public landing-page routes
	publicRoutes := apiV1.Group("/public")
	publicRoutes.Use(middleware.PublicCache(5 * time.Minute))
	publicRoutes.Get("/plans", publicHandler.ListPlans)
	publicRoutes.Get("/app/latest", publicHandler.LatestApp)

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Get("/google", authHandler.GoogleLoginURL)
	authRoutes.Get("/google/callback", middleware.AuthRateLimiter(), authHandler.GoogleCallback)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	authRoutes.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// Admin back-office routes. Every request passes the token check and
	// then the gate, which verifies the role against the users table.
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.NoCacheHeaders())
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminGate(gate))

	adminRoutes.Get("/dashboard", dashboardHandler.GetStats)

	adminRoutes.Get("/users", userHandler.List)
	adminRoutes.Get("/users/:id", userHandler.GetDetail)

	adminRoutes.Get("/requests", requestHandler.List)
	adminRoutes.Get("/requests/:id", requestHandler.Get)
	adminRoutes.Post("/requests/:id/approve", requestHandler.Approve)
	adminRoutes.Post("/requests/:id/reject", requestHandler.Reject)

	adminRoutes.Get("/plans", planHandler.List)
	adminRoutes.Post("/plans", planHandler.Create)
	adminRoutes.Put("/plans/:id", planHandler.Update)
	adminRoutes.Delete("/plans/:id", planHandler.Delete)

	adminRoutes.Get("/payouts", payoutHandler.List)
	adminRoutes.Post("/payouts/run", payoutHandler.RunMonthly)

	adminRoutes.Get("/settings", settingsHandler.List)
	adminRoutes.Put("/settings", settingsHandler.Set)
	adminRoutes.Get("/settings/bank-accounts", settingsHandler.GetBankAccounts)
	adminRoutes.Put("/settings/bank-accounts", settingsHandler.UpdateBankAccounts)
	adminRoutes.Get("/settings/app-versions", settingsHandler.ListAppVersions)
	adminRoutes.Post("/settings/app-versions", settingsHandler.RegisterAppVersion)

	adminRoutes.Get("/notifications", notificationHandler.List)

	return &App{
		Gate: gate,
		Cron: cronService,
	}
}

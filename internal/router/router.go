package router

import (
	"net/http"
	"time"

	"promolink/config"
	"promolink/internal/domain"
	"promolink/internal/handler"
	"promolink/internal/logging"
	"promolink/internal/middleware"
	"promolink/internal/repository"
	"promolink/internal/service"
	"promolink/internal/ws"
	"promolink/pkg/cloudinary"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto the router. It
// also returns the services the scheduler drives.
func Setup(cfg *config.Config, db *gorm.DB) (*gin.Engine, *service.LeaderboardService, *service.PerkService, *service.SubscriptionService) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	promoterRepo := repository.NewPromoterRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	perkRepo := repository.NewPerkRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)

	hub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(db, &cfg.JWT)
	googleSvc := service.NewGoogleAuthService(db, authSvc, &cfg.OAuth)
	negotiationSvc := service.NewNegotiationService(db, requestRepo, promoterRepo, businessRepo)
	leaderboardSvc := service.NewLeaderboardService(db, leaderboardRepo, requestRepo, promoterRepo)
	perkSvc := service.NewPerkService(db, perkRepo, businessRepo)
	subscriptionSvc := service.NewSubscriptionService(db, subscriptionRepo, businessRepo)

	uploads, err := cloudinary.New(&cfg.Cloudinary, "promolink/insights")
	if err != nil {
		logging.Logger.WithField("error", err.Error()).Warn("image uploads disabled")
		uploads = nil
	}
	profileSvc := service.NewProfileService(db, promoterRepo, businessRepo, perkSvc, uploads)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleHandler := handler.NewGoogleOAuthHandler(googleSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	uploadHandler := handler.NewUploadHandler(profileSvc)
	requestHandler := handler.NewRequestHandler(negotiationSvc, hub)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardSvc)
	perkHandler := handler.NewPerkHandler(perkSvc)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	promoterOnly := middleware.RequireRole(domain.RolePromoter)
	businessOnly := middleware.RequireRole(domain.RoleBusiness)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.GET("/me", authMw, authHandler.Me)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.DELETE("/account", authMw, authHandler.DeleteAccount)
			authGroup.GET("/google", googleHandler.AuthURL)
			authGroup.POST("/google/login", googleHandler.Login)
		}

		promoters := api.Group("/promoters", authMw)
		{
			promoters.GET("/me", promoterOnly, profileHandler.GetPromoterProfile)
			promoters.PATCH("/me", promoterOnly, profileHandler.UpdatePromoterProfile)
			promoters.POST("/me/insights", promoterOnly, uploadHandler.UploadInsight)
			promoters.GET("", businessOnly, profileHandler.BrowsePromoters)
		}

		businesses := api.Group("/businesses", authMw)
		{
			businesses.GET("/me", businessOnly, profileHandler.GetBusinessProfile)
			businesses.PATCH("/me", businessOnly, profileHandler.UpdateBusinessProfile)
			businesses.GET("", promoterOnly, profileHandler.BrowseBusinesses)
		}

		requests := api.Group("/requests", authMw)
		{
			requests.POST("", promoterOnly, requestHandler.Create)
			requests.GET("", requestHandler.List)
			requests.GET("/dashboard", businessOnly, requestHandler.Dashboard)
			requests.GET("/:id", requestHandler.Get)
			requests.GET("/:id/messages", requestHandler.Messages)
			requests.POST("/:id/messages", requestHandler.SendMessage)
			requests.POST("/:id/accept", businessOnly, requestHandler.Accept)
			requests.POST("/:id/reject", businessOnly, requestHandler.Reject)
		}

		leaderboard := api.Group("/leaderboard", authMw)
		{
			leaderboard.GET("", leaderboardHandler.Current)
			leaderboard.GET("/history", promoterOnly, leaderboardHandler.History)
			leaderboard.GET("/my-position", promoterOnly, leaderboardHandler.MyPosition)
			leaderboard.POST("/update-all", leaderboardHandler.UpdateAll)
		}

		perks := api.Group("/perks", authMw, businessOnly)
		{
			perks.GET("/balance", perkHandler.Balance)
			perks.GET("/bundles", perkHandler.Bundles)
			perks.POST("/purchase", perkHandler.Purchase)
			perks.GET("/packages", perkHandler.Packages)
			perks.POST("/activate", perkHandler.Activate)
			perks.DELETE("/:id", perkHandler.Deactivate)
			perks.GET("/active", perkHandler.Active)
			perks.GET("/transactions", perkHandler.Transactions)
			perks.GET("/stats", perkHandler.Stats)
		}

		// Pricing table is public.
		api.GET("/subscriptions/plans", subscriptionHandler.Plans)

		subscriptions := api.Group("/subscriptions", authMw, businessOnly)
		{
			subscriptions.GET("", subscriptionHandler.Current)
			subscriptions.POST("/upgrade", subscriptionHandler.Upgrade)
			subscriptions.POST("/cancel", subscriptionHandler.Cancel)
			subscriptions.GET("/usage", subscriptionHandler.Usage)
			subscriptions.POST("/check-limits", subscriptionHandler.CheckLimits)
		}

		api.GET("/ws/requests/:id", ws.UpgradeRequestFeed(&cfg.JWT, hub, negotiationSvc))
	}

	return r, leaderboardSvc, perkSvc, subscriptionSvc
}

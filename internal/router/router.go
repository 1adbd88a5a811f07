// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/exportbridge/exportbridge-backend/internal/cache"
	"github.com/exportbridge/exportbridge-backend/internal/config"
	"github.com/exportbridge/exportbridge-backend/internal/handlers"
	"github.com/exportbridge/exportbridge-backend/internal/middleware"
	"github.com/exportbridge/exportbridge-backend/internal/services"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

// Setup wires services, middleware, and the route table.
func Setup(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
	r.Use(limiter.Middleware(
		"/api/v1/admin-auth/login",
		"/api/v1/admin/trade-data/import",
	))
	r.Use(middleware.AuditLogMiddleware(db))

	// Services
	authService := services.NewAuthService(db, cfg)
	forumService := services.NewForumService(db)
	buyerService := services.NewBuyerService(db)
	complianceService := services.NewComplianceService(db)
	reliefService := services.NewReliefService(db)
	impactService := services.NewImpactService(db)
	tradeDataService := services.NewTradeDataService(db)
	intelService := services.NewIntelService(cfg, cache.SystemClock)

	storage, err := services.NewStorage(cfg)
	if err != nil {
		panic("failed to initialize upload storage: " + err.Error())
	}
	uploadService := services.NewUploadService(db, cfg, storage)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	forumHandler := handlers.NewForumHandler(forumService)
	buyerHandler := handlers.NewBuyerHandler(buyerService)
	complianceHandler := handlers.NewComplianceHandler(complianceService, uploadService)
	reliefHandler := handlers.NewReliefHandler(reliefService)
	impactHandler := handlers.NewImpactHandler(impactService)
	tradeDataHandler := handlers.NewTradeDataHandler(tradeDataService, cfg.Upload.MaxCSVSizeMB)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	intelHandler := handlers.NewIntelHandler(intelService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.APIResponse{
			Success: true,
			Data:    gin.H{"status": "healthy"},
		})
	})

	if cfg.Environment == "development" {
		r.Static("/uploads", cfg.Upload.Dir)
	}

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/signin", authHandler.Signin)
			auth.GET("/profile", middleware.UserAuthRequired(db), authHandler.Profile)
			auth.PUT("/profile", middleware.UserAuthRequired(db), authHandler.UpdateProfile)
			auth.POST("/verify-token", middleware.UserAuthRequired(db), authHandler.VerifyToken)
			auth.DELETE("/account", middleware.UserAuthRequired(db), authHandler.Deactivate)
		}

		v1.POST("/admin-auth/login", authHandler.AdminLogin)

		forum := v1.Group("/forum")
		{
			forum.GET("/posts", middleware.OptionalUserAuth(db), forumHandler.GetPosts)
			forum.GET("/posts/:id", middleware.OptionalUserAuth(db), forumHandler.GetPost)
			forum.POST("/posts", middleware.UserAuthRequired(db), forumHandler.CreatePost)
			forum.PUT("/posts/:id", middleware.UserAuthRequired(db), forumHandler.UpdatePost)
			forum.DELETE("/posts/:id", middleware.UserAuthRequired(db), forumHandler.DeletePost)
			forum.POST("/posts/:id/like", middleware.UserAuthRequired(db), forumHandler.TogglePostLike)
			forum.POST("/posts/:id/comments", middleware.UserAuthRequired(db), forumHandler.CreateComment)
			forum.POST("/posts/:id/accept/:commentId", middleware.UserAuthRequired(db), forumHandler.AcceptAnswer)
			forum.DELETE("/comments/:id", middleware.UserAuthRequired(db), forumHandler.DeleteComment)
			forum.POST("/comments/:id/like", middleware.UserAuthRequired(db), forumHandler.ToggleCommentLike)
		}

		buyers := v1.Group("/buyers", middleware.UserAuthRequired(db))
		{
			buyers.GET("", buyerHandler.GetBuyers)
			buyers.GET("/countries", buyerHandler.GetCountries)
			buyers.GET("/interactions", buyerHandler.GetInteractions)
			buyers.GET("/:id", buyerHandler.GetBuyer)
			buyers.PUT("/:id/interaction", buyerHandler.UpdateInteraction)
		}

		compliance := v1.Group("/compliance", middleware.UserAuthRequired(db))
		{
			compliance.GET("/checklist", complianceHandler.GetChecklist)
			compliance.PUT("/requirements/:id", complianceHandler.UpdateRequirement)
			compliance.POST("/requirements/:id/document", complianceHandler.UploadDocument)
		}

		relief := v1.Group("/relief", middleware.UserAuthRequired(db))
		{
			relief.GET("/schemes", reliefHandler.GetSchemes)
			relief.POST("/schemes/:id/apply", reliefHandler.Apply)
			relief.GET("/applications", reliefHandler.GetApplications)
		}

		impact := v1.Group("/impact", middleware.UserAuthRequired(db))
		{
			impact.POST("/events", impactHandler.LogEvent)
			impact.GET("/events", impactHandler.GetEvents)
			impact.GET("/dashboard", impactHandler.Dashboard)
		}

		v1.GET("/trade-data", middleware.UserAuthRequired(db), tradeDataHandler.GetRecords)

		uploads := v1.Group("/uploads", middleware.UserAuthRequired(db))
		{
			uploads.POST("", uploadHandler.Upload)
			uploads.GET("", uploadHandler.GetUploads)
			uploads.DELETE("/:id", uploadHandler.Delete)
		}

		intel := v1.Group("/intel", middleware.UserAuthRequired(db))
		{
			intel.GET("/trade-stats", intelHandler.TradeStats)
			intel.GET("/news", intelHandler.News)
			intel.GET("/tariffs", intelHandler.TariffRates)
			intel.GET("/commodities", intelHandler.CommodityPrices)
			intel.GET("/sentiment", intelHandler.Sentiment)
			intel.POST("/ask", intelHandler.Ask)
		}

		admin := v1.Group("/admin", middleware.AdminAuthRequired())
		{
			admin.POST("/trade-data/import", tradeDataHandler.ImportCSV)
			admin.DELETE("/trade-data", tradeDataHandler.Clear)
			admin.DELETE("/intel/cache", intelHandler.ClearCache)
		}
	}

	return r
}

package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"viajaia/cmd/fx/account_fx"
	"viajaia/cmd/fx/dashboard_fx"
	"viajaia/cmd/fx/db_fx"
	"viajaia/cmd/fx/generator_fx"
	"viajaia/cmd/fx/itinerary_fx"
	"viajaia/cmd/fx/mail_fx"
	"viajaia/cmd/fx/memcache_fx"
	"viajaia/internal/api/controllers"
	"viajaia/pkg/logger"
	"viajaia/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	if err := logger.Init(os.Getenv("APP_ENV")); err != nil {
		panic(err)
	}
	defer logger.Log.Sync()

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		generator_fx.Module,
		account_fx.Module,
		itinerary_fx.Module,
		dashboard_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Log.Info("starting HTTP server", zap.String("port", port))
				if err := engine.Run(":" + port); err != nil {
					logger.Log.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Log.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	itineraryController *controllers.ItineraryController,
	dashboardController *controllers.DashboardController,
) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, itineraryController, dashboardController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	itineraryController *controllers.ItineraryController,
	dashboardController *controllers.DashboardController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.POST("/request-forgot-password", accountController.ForgotPassword)
	accounts.POST("/forgot-password", accountController.ResetPassword)

	itineraries := r.Group("/itineraries")
	itineraries.POST("/stage", itineraryController.Stage)

	authed := itineraries.Group("")
	authed.Use(middleware.JWTAuthMiddleware())
	authed.POST("/generate", itineraryController.Generate)
	authed.POST("/redeem", itineraryController.Redeem)
	authed.GET("", itineraryController.List)
	authed.GET("/:itineraryId", itineraryController.GetDetails)
	authed.GET("/:itineraryId/summary", itineraryController.GetSummary)
	authed.GET("/:itineraryId/similar", itineraryController.GetSimilar)
	authed.DELETE("/:itineraryId", itineraryController.Delete)

	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.JWTAuthMiddleware())
	dashboard.GET("", dashboardController.GetDashboard)
}

package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"knowledgehub/internal/ai"
	appsvc "knowledgehub/internal/app"
	"knowledgehub/internal/bootstrap"
	"knowledgehub/internal/cache"
	"knowledgehub/internal/platform/rabbitmq"
	"knowledgehub/internal/repository"
	"knowledgehub/internal/transport/http/handler"
	"knowledgehub/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	articleRepo := repository.NewArticleRepository(app.MySQL)
	articleCache := cache.NewArticleCache(
		app.Redis,
		time.Duration(app.Config.Redis.ArticleTTLSeconds)*time.Second,
	)
	activityPublisher := rabbitmq.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)
	groqClient := ai.NewGroqClient(ai.Config{
		BaseURL: app.Config.Groq.BaseURL,
		APIKey:  app.Config.Groq.APIKey,
		Model:   app.Config.Groq.Model,
	})

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	aiService := appsvc.NewAIService(groqClient)
	articleService := appsvc.NewArticleService(articleRepo, userRepo, groqClient, articleCache, activityPublisher)

	authHandler := handler.NewAuthHandler(authService)
	articleHandler := handler.NewArticleHandler(articleService)
	aiHandler := handler.NewAIHandler(aiService)

	secret := app.Config.Auth.JWTSecret
	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(secret), authHandler.Me)

	articleGroup := api.Group("/articles")
	articleGroup.GET("", middleware.OptionalAuthJWT(secret), articleHandler.List)
	articleGroup.GET("/:id", middleware.OptionalAuthJWT(secret), articleHandler.Get)
	articleGroup.POST("", middleware.AuthJWT(secret), articleHandler.Create)
	articleGroup.PUT("/:id", middleware.AuthJWT(secret), articleHandler.Update)
	articleGroup.DELETE("/:id", middleware.AuthJWT(secret), articleHandler.Delete)

	aiGroup := api.Group("/ai")
	aiGroup.POST("/improve", aiHandler.Improve)
	aiGroup.POST("/summary", aiHandler.Summary)
	aiGroup.POST("/suggest-tags", aiHandler.SuggestTags)

	return router
}

package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/Gautam5514/url-shortner/auth"
	"github.com/Gautam5514/url-shortner/config"
	"github.com/Gautam5514/url-shortner/database"
	"github.com/Gautam5514/url-shortner/handlers"
	"github.com/Gautam5514/url-shortner/services"
	"github.com/Gautam5514/url-shortner/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	rdb := database.ConnectRedis(cfg)

	links := storage.NewGormLinkStore(db)
	guests := storage.NewRedisGuestStore(rdb)
	clicks := storage.NewGormClickStore(db)
	users := storage.NewGormUserStore(db)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	recorder := services.NewClickRecorder(links, guests, clicks, logger)
	defer recorder.Close()

	linkService := services.NewLinkService(links, guests, clicks, cfg.BaseURL)
	resolver := services.NewResolver(links, guests)
	jwtAuth := auth.New(cfg.JWTSecret)

	authHandler := handlers.NewAuthHandler(users, jwtAuth)
	linkHandler := handlers.NewLinkHandler(linkService)
	guestHandler := handlers.NewGuestHandler(linkService)
	redirectHandler := handlers.NewRedirectHandler(resolver, recorder)

	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running successfully!")
	})
	router.GET("/:code", redirectHandler.Redirect)

	router.POST("/api/users/register", authHandler.Register)
	router.POST("/api/users/login", authHandler.Login)
	router.POST("/api/guest/shorten", guestHandler.Shorten)

	api := router.Group("/api")
	api.Use(jwtAuth.Middleware())
	{
		api.POST("/urls", linkHandler.Create)
		api.GET("/urls", linkHandler.List)
		api.GET("/urls/:id", linkHandler.Get)
		api.PUT("/urls/:id", linkHandler.Update)
		api.DELETE("/urls/:id", linkHandler.Delete)
		api.GET("/urls/:id/stats", linkHandler.Stats)

		api.GET("/users/profile", authHandler.GetProfile)
		api.PUT("/users/profile", authHandler.UpdateProfile)
	}

	log.Println("URL Shortener starting on :" + cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

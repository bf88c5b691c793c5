// Package server assembles the request pipeline: rate limiting on the
// product resource, bearer-token authentication, the authorization rule
// table, then the resource handlers.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/meli-backend-challenge/product-catalog/internal/events"
	"github.com/meli-backend-challenge/product-catalog/internal/handler"
	"github.com/meli-backend-challenge/product-catalog/internal/repository"
	"github.com/meli-backend-challenge/product-catalog/internal/service"
	"github.com/meli-backend-challenge/product-catalog/pkg/config"
	"github.com/meli-backend-challenge/product-catalog/pkg/middleware"
	"github.com/meli-backend-challenge/product-catalog/pkg/ratelimit"
	"go.uber.org/zap"
)

// New wires services, middleware, and routes into a gin engine. The rate
// limiter store is injected so callers own its lifetime and tests get
// isolated bucket maps.
func New(cfg *config.Config, logger *zap.Logger, store repository.ProductStore, publisher events.Publisher, limiter *ratelimit.Store) *gin.Engine {
	jwtService := service.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration)
	productService := service.NewProductService(store, publisher, logger)

	productHandler := handler.NewProductHandler(productService, logger)
	authHandler := handler.NewAuthHandler(jwtService, cfg.AdminUsername, cfg.AdminPassword, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.RateLimit(limiter, logger))
	router.Use(middleware.Authenticate(jwtService, logger))
	router.Use(middleware.Authorize(middleware.DefaultRules()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	router.POST("/auth/login", authHandler.Login)

	products := router.Group("/products")
	{
		products.POST("", productHandler.CreateProduct)
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}

	return router
}

package handlers

import (
	"noteshare/internal/logger"
	"noteshare/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
// corsOrigins lists the frontend origins allowed to call the API; empty
// means no CORS headers are emitted.
func (h *Handler) InitRoutes(corsOrigins ...string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(h.requestIDMiddleware)

	if len(corsOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = corsOrigins
		cfg.AllowCredentials = true
		cfg.AddAllowHeaders("Authorization")
		router.Use(cors.New(cfg))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	router.POST("/register", h.register)
	router.POST("/token", h.token)
	router.GET("/verify-token/:token", h.verifyToken)
	router.POST("/logout", h.authMiddleware, h.logout)

	// Item endpoints; the listing is public, everything else needs a token
	items := router.Group("/items")
	{
		items.GET("/", h.listItems)
		items.POST("/", h.authMiddleware, h.createItem)
		items.GET("/:id", h.authMiddleware, h.getItem)
		items.DELETE("/:id", h.authMiddleware, h.deleteItem)
	}

	return router
}

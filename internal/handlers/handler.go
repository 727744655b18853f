package handlers

import (
	"rating_of_titles/internal/logger"
	"rating_of_titles/internal/service"

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
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Live ratings board (HTTP upgrade), same port
	router.GET("/ws", h.wsBoard)

	// Public endpoints
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/", h.listAllTitles)

	// Token-protected endpoints
	h.registerTitleRoutes(router)

	return router
}

// registerTitleRoutes mounts the owner-scoped title operations behind the
// bearer-token middleware. Paths are rooted, matching the original API shape.
func (h *Handler) registerTitleRoutes(r *gin.Engine) {
	titles := r.Group("/", h.userIDMiddleware)
	{
		titles.GET("/:username", h.listUserTitles)
		titles.POST("/", h.createTitle)
		titles.PUT("/:title_id", h.updateTitle)
		titles.DELETE("/:title_id", h.deleteTitle)
	}
}

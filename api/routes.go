package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the shop endpoints on r.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	catalog := r.Group("/catalog")
	{
		catalog.GET("", h.ListCatalog)
		catalog.GET("/categories", h.ListCategories)
	}

	cart := r.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/items", h.AddItem)
		cart.DELETE("/items/:index", h.RemoveItem)
		cart.DELETE("", h.ClearCart)
	}

	r.PUT("/customer", h.SetCustomer)
	r.POST("/orders", h.CompleteOrder)
}

// RequestLogger logs one line per request.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// NewRouter builds the engine with recovery, request logging and the shop routes.
func NewRouter(h *Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))
	RegisterRoutes(r, h)
	return r
}

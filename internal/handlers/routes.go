package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lambda-handler-factory/pkg/server"
)

// SetupRoutes configures the local invoke API
func SetupRoutes(router *gin.Engine, container *server.Container) {
	invokeHandler := NewInvokeHandler(container.Runtime, container.Logger)

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		if err := container.Runtime.Initialize(); err != nil {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"service": "lambda-handler-factory",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(container.Registry, promhttp.HandlerOpts{})))

	router.GET("/handlers", invokeHandler.ListHandlers)
	router.POST("/invoke/:name", invokeHandler.Invoke)

	// Dev tokens are only served when handlers can verify them
	if container.Auth != nil && container.Config.Environment != "production" {
		authHandler := NewAuthHandler(container.Auth)
		router.POST("/auth/token", authHandler.IssueToken)
	}
}

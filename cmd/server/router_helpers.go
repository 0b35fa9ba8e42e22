package main

import (
	"net/http"
	"strings"

	"gem-auction.backend/internal/infrastructure/storage"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	serviceName    = "gem-auction-backend"
	serviceVersion = "1.0.0"
)

// applyCORSMiddleware allows the configured front-end origin with credentials,
// since the auth token travels in a cookie.
func applyCORSMiddleware(r *gin.Engine, allowedOrigin string) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowedOrigin == "*" || strings.EqualFold(origin, allowedOrigin)) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerUploadsRoute serves locally stored uploads. Remote stores return
// absolute URLs, so nothing is mounted for them.
func registerUploadsRoute(r *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	r.Static(strings.TrimSuffix(storage.PublicPrefix, "/"), dir)
}

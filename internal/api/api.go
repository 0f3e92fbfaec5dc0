// backend-go/internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/api/handlers"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/api/middleware"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/dataset"
	"github.com/andresuchdata/warehouse-optimizer/backend-go/internal/service"
)

// NewRouter wires the analysis endpoints. The frontend dashboard is the only
// intended consumer; everything it renders comes from these routes.
func NewRouter(svc *service.AnalysisService, samples *dataset.SampleLoader, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalized, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalized) > 0 {
			corsConfig.AllowOrigins = normalized
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	analysisHandler := handlers.NewAnalysisHandler(svc, samples)
	apiGroup := router.Group("/api/v1")
	{
		analysisGroup := apiGroup.Group("/analysis")
		{
			analysisGroup.POST("", analysisHandler.Analyze)
			analysisGroup.POST("/scenario", analysisHandler.Scenario)
			analysisGroup.POST("/recommendations/export", analysisHandler.ExportRecommendations)
			analysisGroup.POST("/cache/invalidate", analysisHandler.InvalidateCache)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		for _, part := range strings.Split(origin, ",") {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}

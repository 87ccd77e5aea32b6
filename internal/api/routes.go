package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the stock endpoints. metrics may be nil.
func SetupRoutes(router *gin.Engine, h *Handler, metrics http.Handler) {
	router.GET("/health", HealthCheck)
	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	v1 := router.Group("/api/v1")
	{
		stock := v1.Group("/stock")
		{
			stock.GET("/GetSampleStockData", h.GetSampleStockData)
			stock.GET("/PredictStockDataLinear", h.PredictStockDataLinear)
			stock.GET("/PredictStockDataPrimitive", h.PredictStockDataPrimitive)
			stock.GET("/runs", h.ListRuns)
		}
	}
}

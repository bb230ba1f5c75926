package controllers

import (
	"errors"
	"net/http"

	"agenticads/services"

	"github.com/gin-gonic/gin"
)

// DashboardStats proxies the backend's aggregate dashboard numbers for the
// admin view, forwarding the session's bearer token.
func DashboardStats(ctx *gin.Context) {
	token := services.GetSessionService().Token()
	stats, err := services.GetBackendClient().FetchDashboardStats(token)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch dashboard stats", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// DashboardCharts proxies the backend's platform/tone chart counts.
func DashboardCharts(ctx *gin.Context) {
	token := services.GetSessionService().Token()
	charts, err := services.GetBackendClient().FetchChartData(token)
	if err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch chart data", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, charts)
}

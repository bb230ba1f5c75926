package controllers

import (
	"errors"
	"net/http"

	"agenticads/services"

	"github.com/gin-gonic/gin"
)

// GetData returns the cached history and feedback lists with their
// loading/error state.
func GetData(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, services.GetDataCacheService().Snapshot())
}

// RefreshData re-fetches both lists from the backend.
func RefreshData(ctx *gin.Context) {
	cache := services.GetDataCacheService()
	if err := cache.Refresh(); err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to refresh data", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, cache.Snapshot())
}

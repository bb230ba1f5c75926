package controllers

import (
	"net/http"

	"agenticads/services"
	"agenticads/structs"

	"github.com/gin-gonic/gin"
)

// GetSession returns the current view and admin state.
func GetSession(ctx *gin.Context) {
	session := services.GetSessionService().Session()
	ctx.JSON(http.StatusOK, gin.H{
		"view":          session.View,
		"authenticated": session.Authenticated,
	})
}

// SetView switches the current screen.
func SetView(ctx *gin.Context) {
	var request structs.SetViewRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}
	if !request.View.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown view"})
		return
	}

	if err := services.GetSessionService().SetView(request.View); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist view", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"view": request.View})
}

// Health reports service liveness and backend reachability.
func Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"backendReachable": services.GetBackendClient().Ping(),
	})
}

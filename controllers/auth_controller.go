package controllers

import (
	"errors"
	"net/http"

	"agenticads/services"
	"agenticads/structs"

	"github.com/gin-gonic/gin"
)

// AdminLogin exchanges credentials for an admin session.
func AdminLogin(ctx *gin.Context) {
	var request structs.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "Check username and password"})
		return
	}

	if err := services.GetAuthService().Login(request.Username, request.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Login failed", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Login successful", "view": "admin"})
}

// AdminLogout clears the admin session and returns to the welcome view.
func AdminLogout(ctx *gin.Context) {
	if err := services.GetAuthService().Logout(); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed", "message": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out", "view": "welcome"})
}

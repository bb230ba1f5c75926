package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"agenticads/models"
	"agenticads/services"
	"agenticads/structs"

	"github.com/gin-gonic/gin"
)

// FeedbackAction routes a UI action tag. Download actions stream the asset
// binary back with a Content-Disposition header; all actions tell the client
// to open the feedback modal under the routed tag.
func FeedbackAction(ctx *gin.Context) {
	var request structs.FeedbackActionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	result, ok := services.GetGenerationService().Result()
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No generation result available"})
		return
	}

	outcome, err := services.GetFeedbackService().RouteAction(models.FeedbackAction(request.Action), result)
	if err != nil {
		if errors.Is(err, services.ErrNoPosterAsset) || errors.Is(err, services.ErrNoVideoAsset) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Download failed", "message": err.Error()})
		return
	}

	if outcome.Download != nil {
		ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", outcome.Download.Filename))
		ctx.Header("X-Feedback-Action", string(outcome.Action))
		contentType := outcome.Download.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		ctx.Data(http.StatusOK, contentType, outcome.Download.Data)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"openModal": true, "action": outcome.Action})
}

// SubmitFeedback validates and persists one feedback record.
func SubmitFeedback(ctx *gin.Context) {
	var request structs.SubmitFeedbackRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	platform := request.Platform
	if platform == "" {
		platform = string(services.GetGenerationService().LastForm().Platform)
	}

	draft := models.FeedbackDraft{
		Email:   request.Email,
		Message: request.Message,
		Rating:  request.Rating,
	}

	item, err := services.GetFeedbackService().Submit(draft, models.FeedbackAction(request.Action), platform)
	if err != nil {
		if errors.Is(err, services.ErrEmailRequired) || errors.Is(err, services.ErrMessageRequired) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Persistence failed; the client keeps the modal open for a retry.
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save feedback", "message": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Feedback saved",
		"feedback": item,
		"draft":    models.EmptyFeedbackDraft(),
	})
}

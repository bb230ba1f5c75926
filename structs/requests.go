package structs

import "agenticads/models"

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SetViewRequest struct {
	View models.View `json:"view" binding:"required"`
}

type GenerateRequest struct {
	AdText          string   `json:"adText" binding:"required"`
	Tone            string   `json:"tone" binding:"required"`
	Platform        string   `json:"platform" binding:"required"`
	Outputs         []string `json:"outputs" binding:"required,min=1"`
	BrandGuidelines string   `json:"brandGuidelines"`
	LogoPlacement   string   `json:"logoPlacement"`
}

type FeedbackActionRequest struct {
	Action string `json:"action" binding:"required"`
}

type SubmitFeedbackRequest struct {
	Email    string `json:"email"`
	Message  string `json:"message"`
	Rating   int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Action   string `json:"action" binding:"required"`
	Platform string `json:"platform"`
}

package controllers

import (
	"io"
	"net/http"
	"strings"

	"agenticads/models"
	"agenticads/services"
	"agenticads/structs"

	"github.com/gin-gonic/gin"
)

// Generate runs one generation cycle. The request is JSON, or multipart form
// data when a logo file is attached. Backend failures never surface as
// errors here; the user gets degraded fallback content instead.
func Generate(ctx *gin.Context) {
	service := services.GetGenerationService()
	if service.IsGenerating() {
		ctx.JSON(http.StatusConflict, gin.H{"error": "A generation is already in progress"})
		return
	}

	var (
		form models.AdForm
		logo *services.LogoUpload
	)

	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		parsed, upload, err := bindMultipartForm(ctx)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
			return
		}
		form = parsed
		logo = upload
	} else {
		var request structs.GenerateRequest
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
			return
		}
		form = models.AdForm{
			AdText:          request.AdText,
			Tone:            models.Tone(request.Tone),
			Platform:        models.Platform(request.Platform),
			BrandGuidelines: request.BrandGuidelines,
			LogoPlacement:   request.LogoPlacement,
		}
		for _, kind := range request.Outputs {
			form.Outputs = append(form.Outputs, models.OutputKind(kind))
		}
	}

	if message, ok := validateForm(form); !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": message})
		return
	}

	result := service.Generate(form, logo)
	ctx.JSON(http.StatusOK, gin.H{"result": result})
}

// GenerationStatus reports whether a cycle is in flight, so the UI can
// disable the generate control.
func GenerationStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"generating": services.GetGenerationService().IsGenerating()})
}

func bindMultipartForm(ctx *gin.Context) (models.AdForm, *services.LogoUpload, error) {
	form := models.AdForm{
		AdText:          ctx.PostForm("adText"),
		Tone:            models.Tone(ctx.PostForm("tone")),
		Platform:        models.Platform(ctx.PostForm("platform")),
		BrandGuidelines: ctx.PostForm("brandGuidelines"),
		LogoPlacement:   ctx.PostForm("logoPlacement"),
	}
	for _, kind := range strings.Split(ctx.PostForm("outputs"), ",") {
		if kind = strings.TrimSpace(kind); kind != "" {
			form.Outputs = append(form.Outputs, models.OutputKind(kind))
		}
	}

	fileHeader, err := ctx.FormFile("logo")
	if err != nil {
		// A multipart request without a logo falls back to the JSON path
		// semantics; the encoding choice follows logo presence.
		return form, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return form, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return form, nil, err
	}

	return form, &services.LogoUpload{Filename: fileHeader.Filename, Data: data}, nil
}

func validateForm(form models.AdForm) (string, bool) {
	if strings.TrimSpace(form.AdText) == "" {
		return "ad text is required", false
	}
	if !form.Tone.Valid() {
		return "unknown tone", false
	}
	if !form.Platform.Valid() {
		return "unknown platform", false
	}
	if len(form.Outputs) == 0 {
		return "select at least one output type", false
	}
	for _, kind := range form.Outputs {
		if !kind.Valid() {
			return "unknown output type", false
		}
	}
	return "", true
}

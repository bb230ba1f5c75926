package services

import (
	"log"
	"sync"
	"time"

	"agenticads/models"
	"agenticads/utils"
)

// Placeholder copy substituted when the backend answers 200 with every
// generative field empty. Distinct from the error fallback below so a
// degraded-but-completed cycle stays distinguishable.
const (
	PlaceholderText         = "Your ad is ready! Compelling copy crafted for your audience."
	PlaceholderPosterPrompt = "A clean, modern promotional poster highlighting your product."
	PlaceholderVideoScript  = "SCENE 1: Product close-up.\nNARRATION: Discover what's new.\n\nSCENE 2: Call to action.\nNARRATION: Visit us today!"
)

// Canned fallback payload used when the generation call itself fails. The
// user sees degraded content, never a raw error.
const (
	FallbackText         = "Experience the difference today! Our product delivers results you can count on."
	FallbackPosterPrompt = "Bold promotional poster with product spotlight and clear call to action."
	FallbackVideoScript  = "SCENE 1: Opening shot of the product.\nNARRATION: Built for you.\n\nSCENE 2: Happy customers.\nNARRATION: Join thousands who already made the switch."
)

// GenerationService drives one generation cycle end to end: request
// encoding, backend call, fallback substitution, asset URL resolution and
// the best-effort history side effect.
type GenerationService struct {
	client *BackendClient
	cache  *DataCacheService

	mu         sync.Mutex
	generating bool
	lastResult *models.GenerationResult
	lastForm   models.AdForm
}

func NewGenerationService(client *BackendClient, cache *DataCacheService) *GenerationService {
	return &GenerationService{client: client, cache: cache}
}

// IsGenerating reports whether a cycle is in flight. The UI disables the
// generate control while true; there is no request-level cancellation.
func (g *GenerationService) IsGenerating() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generating
}

// Result returns the most recent generation result, if any. Results are
// replaced wholesale on every cycle, never merged.
func (g *GenerationService) Result() (models.GenerationResult, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lastResult == nil {
		return models.GenerationResult{}, false
	}
	return *g.lastResult, true
}

// LastForm returns the form values the current result corresponds to.
func (g *GenerationService) LastForm() models.AdForm {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastForm
}

// Generate runs one generation cycle. It never returns an error to the
// caller: backend failures are absorbed into the canned fallback payload and
// recorded as a Fallback history entry.
func (g *GenerationService) Generate(form models.AdForm, logo *LogoUpload) models.GenerationResult {
	g.mu.Lock()
	g.generating = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.generating = false
		g.mu.Unlock()
	}()

	var (
		resp *GenerateResponse
		err  error
	)
	if logo != nil {
		resp, err = g.client.GenerateWithLogo(form, *logo)
	} else {
		resp, err = g.client.Generate(form)
	}

	if err != nil {
		log.Printf("Generation failed, serving fallback content: %v", err)
		result := fallbackResult()
		g.storeResult(form, result)
		g.recordHistory(form, models.StatusFallback)
		return result
	}

	result := models.GenerationResult{
		RewrittenText:      resp.Text,
		PosterPrompt:       resp.PosterPrompt,
		PosterURL:          g.client.ResolveAssetURL(resp.PosterURL),
		VideoScript:        resp.VideoScript,
		VideoURL:           g.client.ResolveAssetURL(resp.VideoGifURL),
		VideoFilename:      resp.VideoGifFilename,
		QualityScores:      resp.QualityScores,
		ValidationFeedback: resp.ValidationFeedback,
	}

	// An all-empty 200 still counts as Completed, with placeholder copy.
	if resp.Text == "" && resp.PosterPrompt == "" && resp.VideoScript == "" {
		result.RewrittenText = PlaceholderText
		result.PosterPrompt = PlaceholderPosterPrompt
		result.VideoScript = PlaceholderVideoScript
	}

	g.storeResult(form, result)
	g.recordHistory(form, models.StatusCompleted)
	return result
}

func (g *GenerationService) storeResult(form models.AdForm, result models.GenerationResult) {
	g.mu.Lock()
	g.lastResult = &result
	g.lastForm = form
	g.mu.Unlock()
}

func fallbackResult() models.GenerationResult {
	return models.GenerationResult{
		RewrittenText: FallbackText,
		PosterPrompt:  FallbackPosterPrompt,
		VideoScript:   FallbackVideoScript,
		Fallback:      true,
	}
}

// recordHistory persists the cycle's history entry. Persistence failures are
// logged, not raised: generation itself already completed or fell back.
func (g *GenerationService) recordHistory(form models.AdForm, status string) {
	now := time.Now()
	kinds := make([]string, 0, len(form.Outputs))
	for _, k := range form.Outputs {
		kinds = append(kinds, string(k))
	}

	entry := models.GenerationHistory{
		ID:       now.UnixMilli(),
		Date:     now.Format("2006-01-02"),
		Time:     now.Format("15:04:05"),
		Platform: string(form.Platform),
		Tone:     utils.Capitalize(string(form.Tone)),
		AdText:   form.AdText,
		Outputs:  utils.CapitalizeList(kinds),
		Status:   status,
	}

	if _, err := g.cache.AddGenerationHistory(entry); err != nil {
		log.Printf("Failed to persist generation history entry: %v", err)
	}
}

package models

import "strings"

// Tone is the voice the rewritten ad copy should carry.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneHumorous     Tone = "humorous"
	ToneInspiring    Tone = "inspiring"
	ToneUrgent       Tone = "urgent"
)

func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneHumorous, ToneInspiring, ToneUrgent:
		return true
	}
	return false
}

// Platform is the ad network the copy is targeted at.
type Platform string

const (
	PlatformGoogleAds Platform = "Google Ads"
	PlatformInstagram Platform = "Instagram"
	PlatformFacebook  Platform = "Facebook"
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformTwitter   Platform = "Twitter"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformGoogleAds, PlatformInstagram, PlatformFacebook, PlatformLinkedIn, PlatformTwitter:
		return true
	}
	return false
}

// OutputKind is one of the generated artifact types a user can request.
type OutputKind string

const (
	OutputText   OutputKind = "text"
	OutputPoster OutputKind = "poster"
	OutputVideo  OutputKind = "video"
)

func (k OutputKind) Valid() bool {
	switch k {
	case OutputText, OutputPoster, OutputVideo:
		return true
	}
	return false
}

// AdForm holds the user's input for one generation cycle.
type AdForm struct {
	AdText          string       `json:"adText"`
	Tone            Tone         `json:"tone"`
	Platform        Platform     `json:"platform"`
	Outputs         []OutputKind `json:"outputs"`
	BrandGuidelines string       `json:"brandGuidelines,omitempty"`
	LogoPlacement   string       `json:"logoPlacement,omitempty"`
}

// OutputsJoined returns the selected output kinds as a comma-joined string,
// the wire format the backend expects.
func (f AdForm) OutputsJoined() string {
	parts := make([]string, 0, len(f.Outputs))
	for _, k := range f.Outputs {
		parts = append(parts, string(k))
	}
	return strings.Join(parts, ",")
}

// GenerationResult is the outcome of one generation cycle, replaced
// wholesale on every generate call.
type GenerationResult struct {
	RewrittenText      string             `json:"rewrittenText"`
	PosterPrompt       string             `json:"posterPrompt,omitempty"`
	PosterURL          string             `json:"posterUrl,omitempty"`
	VideoScript        string             `json:"videoScript,omitempty"`
	VideoURL           string             `json:"videoUrl,omitempty"`
	VideoFilename      string             `json:"videoFilename,omitempty"`
	QualityScores      map[string]float64 `json:"qualityScores,omitempty"`
	ValidationFeedback map[string]string  `json:"validationFeedback,omitempty"`
	Fallback           bool               `json:"fallback"`
}

// Generation cycle statuses recorded in history.
const (
	StatusCompleted = "Completed"
	StatusFallback  = "Fallback"
)

// GenerationHistory is one immutable history record. Identifiers are
// backend-assigned; the client-side id is advisory.
type GenerationHistory struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Platform string `json:"platform"`
	Tone     string `json:"tone"`
	AdText   string `json:"adText"`
	Outputs  string `json:"outputs"`
	Status   string `json:"status"`
}

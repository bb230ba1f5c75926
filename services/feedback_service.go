package services

import (
	"errors"
	"time"

	"agenticads/models"
	"agenticads/utils"
)

var (
	ErrEmailRequired   = errors.New("email is required")
	ErrMessageRequired = errors.New("message is required")
	ErrNoPosterAsset   = errors.New("no poster available to download")
	ErrNoVideoAsset    = errors.New("no video available to download")
)

const (
	defaultPosterFilename = "agenticads-poster.png"
	defaultVideoFilename  = "agenticads-video.gif"
)

// AssetDownload is a fetched binary handed back to the browser for saving.
type AssetDownload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ActionOutcome is the result of routing a UI action tag: an optional
// download plus the feedback action the modal should be tagged with.
type ActionOutcome struct {
	Action   models.FeedbackAction
	Download *AssetDownload
}

// FeedbackService routes feedback-triggering actions and submits completed
// feedback records.
type FeedbackService struct {
	client *BackendClient
	cache  *DataCacheService
}

func NewFeedbackService(client *BackendClient, cache *DataCacheService) *FeedbackService {
	return &FeedbackService{client: client, cache: cache}
}

// RouteAction handles one UI action tag. Download actions fetch the asset
// binary first and fail visibly when the result carries no such asset; every
// action ends with the feedback modal opening under that tag.
func (f *FeedbackService) RouteAction(action models.FeedbackAction, result models.GenerationResult) (ActionOutcome, error) {
	switch action {
	case models.ActionDownloadPoster:
		if result.PosterURL == "" {
			return ActionOutcome{}, ErrNoPosterAsset
		}
		download, err := f.fetchAsset(result.PosterURL, defaultPosterFilename)
		if err != nil {
			return ActionOutcome{}, err
		}
		return ActionOutcome{Action: action, Download: download}, nil

	case models.ActionDownloadVideo:
		if result.VideoURL == "" {
			return ActionOutcome{}, ErrNoVideoAsset
		}
		fallback := result.VideoFilename
		if fallback == "" {
			fallback = defaultVideoFilename
		}
		download, err := f.fetchAsset(result.VideoURL, fallback)
		if err != nil {
			return ActionOutcome{}, err
		}
		return ActionOutcome{Action: action, Download: download}, nil

	default:
		// Every other tag opens the feedback modal directly, no network.
		return ActionOutcome{Action: action}, nil
	}
}

func (f *FeedbackService) fetchAsset(assetURL, fallbackName string) (*AssetDownload, error) {
	data, contentType, err := f.client.DownloadAsset(assetURL)
	if err != nil {
		return nil, err
	}
	return &AssetDownload{
		Filename:    utils.FilenameFromURL(assetURL, fallbackName),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Submit validates the draft, derives the action label and persists the
// feedback record. A persistence failure is returned so the modal stays open
// for a retry.
func (f *FeedbackService) Submit(draft models.FeedbackDraft, action models.FeedbackAction, platform string) (models.FeedbackItem, error) {
	if draft.Email == "" {
		return models.FeedbackItem{}, ErrEmailRequired
	}
	if draft.Message == "" {
		return models.FeedbackItem{}, ErrMessageRequired
	}

	rating := draft.Rating
	if rating == 0 {
		rating = 5
	}

	item := models.FeedbackItem{
		Email:    draft.Email,
		Message:  draft.Message,
		Rating:   rating,
		Action:   action.Label(),
		Date:     time.Now().Format("2006-01-02"),
		Platform: platform,
	}

	return f.cache.AddFeedback(item)
}

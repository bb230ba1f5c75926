package services

import (
	"time"

	"agenticads/config"
	"agenticads/db"
)

var (
	backendClient     *BackendClient
	sessionService    *SessionService
	dataCacheService  *DataCacheService
	generationService *GenerationService
	authService       *AuthService
	feedbackService   *FeedbackService
)

// InitServices wires the singleton service graph from config and the durable
// state store. Called once from main before the router starts.
func InitServices(cfg *config.Config, store *db.Store) {
	backendClient = NewBackendClient(cfg.Backend.APIBaseURL, time.Duration(cfg.Backend.TimeoutSeconds)*time.Second)
	sessionService = NewSessionService(store)
	dataCacheService = NewDataCacheService(backendClient, sessionService, cfg.Backend.AuthMode)
	generationService = NewGenerationService(backendClient, dataCacheService)
	authService = NewAuthService(backendClient, sessionService, dataCacheService)
	feedbackService = NewFeedbackService(backendClient, dataCacheService)
}

func GetBackendClient() *BackendClient { return backendClient }

func GetSessionService() *SessionService { return sessionService }

func GetDataCacheService() *DataCacheService { return dataCacheService }

func GetGenerationService() *GenerationService { return generationService }

func GetAuthService() *AuthService { return authService }

func GetFeedbackService() *FeedbackService { return feedbackService }

package services

import (
	"log"
	"sync"

	"agenticads/db"
	"agenticads/models"
)

// SessionService owns the current view and admin session state. Every
// mutation updates memory synchronously and writes through to the durable
// state store; state is rehydrated from the store at construction.
type SessionService struct {
	store *db.Store

	mu            sync.Mutex
	view          models.View
	authenticated bool
	token         string
}

func NewSessionService(store *db.Store) *SessionService {
	s := &SessionService{store: store, view: models.ViewWelcome}
	s.rehydrate()
	return s
}

func (s *SessionService) rehydrate() {
	if view, err := s.store.Get(db.KeyCurrentView); err != nil {
		log.Printf("Failed to restore view state: %v", err)
	} else if v := models.View(view); v.Valid() {
		s.view = v
	}

	if flag, err := s.store.Get(db.KeyAdminAuthenticated); err != nil {
		log.Printf("Failed to restore admin flag: %v", err)
	} else {
		s.authenticated = flag == "true"
	}

	if token, err := s.store.Get(db.KeyAdminToken); err != nil {
		log.Printf("Failed to restore admin token: %v", err)
	} else {
		s.token = token
	}

	// Keep the flag consistent with token presence
	if s.token == "" {
		s.authenticated = false
	}
}

// Session returns a snapshot of the current session state.
func (s *SessionService) Session() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Session{
		View:          s.view,
		Authenticated: s.authenticated,
		Token:         s.token,
	}
}

// Token returns the current admin bearer token, "" when logged out.
func (s *SessionService) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetView switches the current screen and persists the choice.
func (s *SessionService) SetView(view models.View) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
	if err := s.store.Set(db.KeyCurrentView, string(view)); err != nil {
		return err
	}
	return nil
}

// SetAdminSession stores the bearer token, marks the session authenticated
// and switches to the admin view.
func (s *SessionService) SetAdminSession(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.authenticated = true
	s.view = models.ViewAdmin

	if err := s.store.Set(db.KeyAdminToken, token); err != nil {
		return err
	}
	if err := s.store.Set(db.KeyAdminAuthenticated, "true"); err != nil {
		return err
	}
	return s.store.Set(db.KeyCurrentView, string(models.ViewAdmin))
}

// Reset clears view, admin flag and token together and wipes their durable
// entries.
func (s *SessionService) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = models.ViewWelcome
	s.authenticated = false
	s.token = ""
	return s.store.Reset()
}

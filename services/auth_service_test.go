package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agenticads/config"
	"agenticads/db"
	"agenticads/models"
)

func newAuthFixture(t *testing.T, handler http.HandlerFunc) (*AuthService, *SessionService, *db.Store) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", handler)
	mux.HandleFunc("/api/generation-history", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	mux.HandleFunc("/api/feedback", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store := newTestStore(t)
	session := NewSessionService(store)
	client := NewBackendClient(server.URL+"/api", 5*time.Second)
	cache := NewDataCacheService(client, session, config.AuthModePublic)
	return NewAuthService(client, session, cache), session, store
}

func TestLoginSuccess(t *testing.T) {
	auth, session, store := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["username"] != "admin" || creds["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "jwt-abc"})
	})

	if err := auth.Login("admin", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	snapshot := session.Session()
	if !snapshot.Authenticated {
		t.Error("expected authenticated session")
	}
	if snapshot.Token != "jwt-abc" {
		t.Errorf("expected stored token, got %q", snapshot.Token)
	}
	if snapshot.View != models.ViewAdmin {
		t.Errorf("expected admin view, got %s", snapshot.View)
	}

	if value, _ := store.Get(db.KeyAdminToken); value != "jwt-abc" {
		t.Errorf("expected token persisted, got %q", value)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	auth, session, _ := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := auth.Login("admin", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	snapshot := session.Session()
	if snapshot.Authenticated || snapshot.Token != "" {
		t.Error("expected session untouched after failed login")
	}
	if snapshot.View != models.ViewWelcome {
		t.Errorf("expected welcome view untouched, got %s", snapshot.View)
	}
}

func TestLoginRefreshesGatedCache(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "jwt-abc"})
	})
	mux.HandleFunc("/api/generation-history", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer jwt-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]models.GenerationHistory{{ID: 1, Status: models.StatusCompleted}})
	})
	mux.HandleFunc("/api/feedback", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer jwt-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]models.FeedbackItem{{ID: 2, Email: "a@b.com"}})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewBackendClient(server.URL+"/api", 5*time.Second)
	session := NewSessionService(newTestStore(t))
	cache := NewDataCacheService(client, session, config.AuthModeGated)
	auth := NewAuthService(client, session, cache)

	// Before login the gated cache short-circuits to empty lists.
	if err := cache.Refresh(); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized before login, got %v", err)
	}

	if err := auth.Login("admin", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// The token change alone must re-fetch both lists.
	snapshot := cache.Snapshot()
	if len(snapshot.History) != 1 || len(snapshot.Feedback) != 1 {
		t.Errorf("expected cache refreshed after login, got history=%d feedback=%d",
			len(snapshot.History), len(snapshot.Feedback))
	}
	if snapshot.Error != "" {
		t.Errorf("expected error state cleared after login, got %q", snapshot.Error)
	}
}

func TestLogoutEmptiesGatedCache(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "jwt-abc"})
	})
	list := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.GenerationHistory{{ID: 1}})
	}
	mux.HandleFunc("/api/generation-history", list)
	mux.HandleFunc("/api/feedback", list)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewBackendClient(server.URL+"/api", 5*time.Second)
	session := NewSessionService(newTestStore(t))
	cache := NewDataCacheService(client, session, config.AuthModeGated)
	auth := NewAuthService(client, session, cache)

	if err := auth.Login("admin", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if len(cache.Snapshot().History) != 1 {
		t.Fatal("expected cache populated after login")
	}

	if err := auth.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	snapshot := cache.Snapshot()
	if len(snapshot.History) != 0 || len(snapshot.Feedback) != 0 {
		t.Errorf("expected empty gated cache after logout, got history=%d feedback=%d",
			len(snapshot.History), len(snapshot.Feedback))
	}
}

func TestLogoutClearsSession(t *testing.T) {
	auth, session, store := newAuthFixture(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "jwt-abc"})
	})

	if err := auth.Login("admin", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := auth.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	snapshot := session.Session()
	if snapshot.Authenticated || snapshot.Token != "" {
		t.Error("expected cleared session after logout")
	}
	if snapshot.View != models.ViewWelcome {
		t.Errorf("expected welcome view after logout, got %s", snapshot.View)
	}

	for _, key := range []string{db.KeyCurrentView, db.KeyAdminAuthenticated, db.KeyAdminToken} {
		if value, _ := store.Get(key); value != "" {
			t.Errorf("expected %s wiped after logout, got %q", key, value)
		}
	}
}

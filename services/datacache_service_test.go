package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"agenticads/config"
	"agenticads/models"
)

func newCacheFixture(t *testing.T, handler http.Handler, authMode string) (*DataCacheService, *SessionService) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewBackendClient(server.URL+"/api", 5*time.Second)
	session := NewSessionService(newTestStore(t))
	return NewDataCacheService(client, session, authMode), session
}

func listHandler(history []models.GenerationHistory, feedback []models.FeedbackItem) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generation-history", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(history)
	})
	mux.HandleFunc("/api/feedback", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(feedback)
	})
	return mux
}

func TestRefreshFetchesBothLists(t *testing.T) {
	history := []models.GenerationHistory{{ID: 1, Platform: "Instagram", Status: models.StatusCompleted}}
	feedback := []models.FeedbackItem{{ID: 7, Email: "a@b.com", Rating: 4}}

	cache, _ := newCacheFixture(t, listHandler(history, feedback), config.AuthModePublic)

	if err := cache.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	snapshot := cache.Snapshot()
	if len(snapshot.History) != 1 || snapshot.History[0].ID != 1 {
		t.Errorf("unexpected history: %+v", snapshot.History)
	}
	if len(snapshot.Feedback) != 1 || snapshot.Feedback[0].ID != 7 {
		t.Errorf("unexpected feedback: %+v", snapshot.Feedback)
	}
	if snapshot.Loading {
		t.Error("expected loading cleared after refresh")
	}
	if snapshot.Error != "" {
		t.Errorf("expected no error, got %q", snapshot.Error)
	}
}

func TestRefreshUnauthorized(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	cache, _ := newCacheFixture(t, handler, config.AuthModePublic)

	err := cache.Refresh()
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if cache.Snapshot().Error == "" {
		t.Error("expected error state recorded")
	}
}

func TestRefreshGatedWithoutTokenSkipsNetwork(t *testing.T) {
	var calls int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	cache, _ := newCacheFixture(t, handler, config.AuthModeGated)

	err := cache.Refresh()
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("expected no network calls, got %d", n)
	}

	snapshot := cache.Snapshot()
	if len(snapshot.History) != 0 || len(snapshot.Feedback) != 0 {
		t.Error("expected empty lists in gated mode without token")
	}
}

func TestRefreshGatedSendsBearerToken(t *testing.T) {
	var sawToken atomic.Bool
	mux := http.NewServeMux()
	check := func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer tok-1" {
			sawToken.Store(true)
		}
		w.Write([]byte("[]"))
	}
	mux.HandleFunc("/api/generation-history", check)
	mux.HandleFunc("/api/feedback", check)

	cache, session := newCacheFixture(t, mux, config.AuthModeGated)
	session.SetAdminSession("tok-1")

	if err := cache.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if !sawToken.Load() {
		t.Error("expected bearer token on gated reads")
	}
}

func TestAddGenerationHistoryAppendsAfterWrite(t *testing.T) {
	var posted models.GenerationHistory
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generation-history", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewDecoder(r.Body).Decode(&posted)
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode([]models.GenerationHistory{{ID: 10}})
	})
	mux.HandleFunc("/api/feedback", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})

	cache, _ := newCacheFixture(t, mux, config.AuthModePublic)
	if err := cache.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	entry, err := cache.AddGenerationHistory(models.GenerationHistory{Platform: "Instagram"})
	if err != nil {
		t.Fatalf("AddGenerationHistory failed: %v", err)
	}
	if entry.ID != 11 {
		t.Errorf("expected next free id 11, got %d", entry.ID)
	}
	if posted.ID != 11 {
		t.Errorf("expected posted entry to carry id 11, got %d", posted.ID)
	}

	snapshot := cache.Snapshot()
	if len(snapshot.History) != 2 || snapshot.History[1].ID != 11 {
		t.Errorf("expected optimistic append, got %+v", snapshot.History)
	}
}

func TestAddFeedbackPrepends(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generation-history", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})
	mux.HandleFunc("/api/feedback", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode([]models.FeedbackItem{{ID: 3}})
	})

	cache, _ := newCacheFixture(t, mux, config.AuthModePublic)
	if err := cache.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	item, err := cache.AddFeedback(models.FeedbackItem{Email: "a@b.com", Message: "great", Rating: 5})
	if err != nil {
		t.Fatalf("AddFeedback failed: %v", err)
	}
	if item.ID != 4 {
		t.Errorf("expected next free id 4, got %d", item.ID)
	}

	snapshot := cache.Snapshot()
	if len(snapshot.Feedback) != 2 || snapshot.Feedback[0].ID != 4 {
		t.Errorf("expected prepend, got %+v", snapshot.Feedback)
	}
}

func TestAddFailureLeavesListUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generation-history", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("[]"))
	})
	mux.HandleFunc("/api/feedback", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	})

	cache, _ := newCacheFixture(t, mux, config.AuthModePublic)
	if err := cache.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if _, err := cache.AddGenerationHistory(models.GenerationHistory{ID: 42}); err == nil {
		t.Fatal("expected error from failed write")
	}
	if len(cache.Snapshot().History) != 0 {
		t.Error("expected local list untouched after failed write")
	}
}

type recordingListener struct {
	historyCount  int32
	feedbackCount int32
}

func (r *recordingListener) HistoryAppended(models.GenerationHistory) {
	atomic.AddInt32(&r.historyCount, 1)
}

func (r *recordingListener) FeedbackAppended(models.FeedbackItem) {
	atomic.AddInt32(&r.feedbackCount, 1)
}

func TestListenerNotifiedOnAppend(t *testing.T) {
	mux := http.NewServeMux()
	ok := func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("[]")) }
	mux.HandleFunc("/api/generation-history", ok)
	mux.HandleFunc("/api/feedback", ok)

	cache, _ := newCacheFixture(t, mux, config.AuthModePublic)
	listener := &recordingListener{}
	cache.SetListener(listener)

	cache.AddGenerationHistory(models.GenerationHistory{ID: 1})
	cache.AddFeedback(models.FeedbackItem{ID: 1, Email: "a@b.com", Message: "m"})

	if atomic.LoadInt32(&listener.historyCount) != 1 {
		t.Error("expected history listener notification")
	}
	if atomic.LoadInt32(&listener.feedbackCount) != 1 {
		t.Error("expected feedback listener notification")
	}
}

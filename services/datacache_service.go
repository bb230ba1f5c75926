package services

import (
	"sync"
	"time"

	"agenticads/config"
	"agenticads/models"
)

// DataListener receives notifications when a record is appended to the
// cache after a successful remote write. The dashboard websocket hub
// implements this.
type DataListener interface {
	HistoryAppended(entry models.GenerationHistory)
	FeedbackAppended(item models.FeedbackItem)
}

// CacheSnapshot is the cache state handed to the UI.
type CacheSnapshot struct {
	History  []models.GenerationHistory `json:"history"`
	Feedback []models.FeedbackItem      `json:"feedback"`
	Loading  bool                       `json:"loading"`
	Error    string                     `json:"error,omitempty"`
}

// DataCacheService mirrors the backend's generation-history and feedback
// collections. Reads are public or bearer-token-gated depending on the
// configured auth mode; writes are always public.
type DataCacheService struct {
	client   *BackendClient
	session  *SessionService
	authMode string
	listener DataListener

	mu       sync.Mutex
	history  []models.GenerationHistory
	feedback []models.FeedbackItem
	loading  bool
	lastErr  error
}

func NewDataCacheService(client *BackendClient, session *SessionService, authMode string) *DataCacheService {
	return &DataCacheService{
		client:   client,
		session:  session,
		authMode: authMode,
		history:  []models.GenerationHistory{},
		feedback: []models.FeedbackItem{},
	}
}

// SetListener registers the live-feed listener. Must be called before the
// service starts receiving writes.
func (d *DataCacheService) SetListener(listener DataListener) {
	d.listener = listener
}

func (d *DataCacheService) readToken() string {
	if d.authMode == config.AuthModeGated {
		return d.session.Token()
	}
	return ""
}

// Refresh re-issues both list fetches concurrently and replaces the cached
// lists. In gated mode without a token it short-circuits to empty lists plus
// an unauthorized error without touching the network.
func (d *DataCacheService) Refresh() error {
	if d.authMode == config.AuthModeGated && d.session.Token() == "" {
		d.mu.Lock()
		d.history = []models.GenerationHistory{}
		d.feedback = []models.FeedbackItem{}
		d.lastErr = ErrUnauthorized
		d.mu.Unlock()
		return ErrUnauthorized
	}

	d.mu.Lock()
	d.loading = true
	d.mu.Unlock()

	token := d.readToken()

	var (
		wg          sync.WaitGroup
		history     []models.GenerationHistory
		feedback    []models.FeedbackItem
		historyErr  error
		feedbackErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		history, historyErr = d.client.FetchGenerationHistory(token)
	}()
	go func() {
		defer wg.Done()
		feedback, feedbackErr = d.client.FetchFeedback(token)
	}()
	wg.Wait()

	err := historyErr
	if err == nil {
		err = feedbackErr
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.loading = false
	d.lastErr = err
	if err != nil {
		return err
	}

	if history == nil {
		history = []models.GenerationHistory{}
	}
	if feedback == nil {
		feedback = []models.FeedbackItem{}
	}
	d.history = history
	d.feedback = feedback
	return nil
}

// Snapshot returns the cached lists plus loading/error flags.
func (d *DataCacheService) Snapshot() CacheSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	snapshot := CacheSnapshot{
		History:  append([]models.GenerationHistory{}, d.history...),
		Feedback: append([]models.FeedbackItem{}, d.feedback...),
		Loading:  d.loading,
	}
	if d.lastErr != nil {
		snapshot.Error = d.lastErr.Error()
	}
	return snapshot
}

// AddGenerationHistory persists the entry and appends it to the local list
// only after the remote write succeeds. Entries without an id get the next
// free one.
func (d *DataCacheService) AddGenerationHistory(entry models.GenerationHistory) (models.GenerationHistory, error) {
	if entry.ID == 0 {
		entry.ID = d.nextHistoryID()
	}

	if err := d.client.PostGenerationHistory(entry, d.session.Token()); err != nil {
		return models.GenerationHistory{}, err
	}

	d.mu.Lock()
	d.history = append(d.history, entry)
	d.mu.Unlock()

	if d.listener != nil {
		d.listener.HistoryAppended(entry)
	}
	return entry, nil
}

// AddFeedback persists the item and prepends it to the local list only after
// the remote write succeeds.
func (d *DataCacheService) AddFeedback(item models.FeedbackItem) (models.FeedbackItem, error) {
	if item.ID == 0 {
		item.ID = d.nextFeedbackID()
	}

	if err := d.client.PostFeedback(item, d.session.Token()); err != nil {
		return models.FeedbackItem{}, err
	}

	d.mu.Lock()
	d.feedback = append([]models.FeedbackItem{item}, d.feedback...)
	d.mu.Unlock()

	if d.listener != nil {
		d.listener.FeedbackAppended(item)
	}
	return item, nil
}

func (d *DataCacheService) nextHistoryID() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	var max int64
	for _, entry := range d.history {
		if entry.ID > max {
			max = entry.ID
		}
	}
	if max == 0 {
		return time.Now().UnixMilli()
	}
	return max + 1
}

func (d *DataCacheService) nextFeedbackID() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	var max int64
	for _, item := range d.feedback {
		if item.ID > max {
			max = item.ID
		}
	}
	if max == 0 {
		return time.Now().UnixMilli()
	}
	return max + 1
}

package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"agenticads/models"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// GenerateResponse mirrors the backend's generation payload.
type GenerateResponse struct {
	Text               string             `json:"text"`
	PosterPrompt       string             `json:"poster_prompt"`
	PosterURL          string             `json:"poster_url"`
	VideoScript        string             `json:"video_script"`
	VideoGifURL        string             `json:"video_gif_url"`
	VideoGifFilename   string             `json:"video_gif_filename"`
	QualityScores      map[string]float64 `json:"quality_scores"`
	ValidationFeedback map[string]string  `json:"validation_feedback"`
	Errors             []string           `json:"errors"`
}

// LogoUpload is an attached logo file for the multipart generation request.
type LogoUpload struct {
	Filename string
	Data     []byte
}

// BackendClient talks to the remote AgenticAds backend API. It is the only
// component that crosses the network boundary.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Origin returns the backend's own origin, derived by stripping the /api
// suffix from the API base. Relative asset paths resolve against this, not
// against the frontend origin.
func (c *BackendClient) Origin() string {
	return strings.TrimSuffix(c.baseURL, "/api")
}

// ResolveAssetURL turns a backend-relative asset path into an absolute URL.
// Absolute URLs pass through unchanged.
func (c *BackendClient) ResolveAssetURL(assetPath string) string {
	if assetPath == "" {
		return ""
	}
	if strings.HasPrefix(assetPath, "http://") || strings.HasPrefix(assetPath, "https://") {
		return assetPath
	}
	if !strings.HasPrefix(assetPath, "/") {
		assetPath = "/" + assetPath
	}
	return c.Origin() + assetPath
}

// Ping reports whether the backend answers at all.
func (c *BackendClient) Ping() bool {
	resp, err := c.httpClient.Get(c.Origin() + "/")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

// Login exchanges credentials for a bearer token.
func (c *BackendClient) Login(username, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal login request: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+"/auth/login", "application/json", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrInvalidCredentials
	}

	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse login response: %w", err)
	}
	if result.AccessToken == "" {
		return "", ErrInvalidCredentials
	}
	return result.AccessToken, nil
}

// FetchGenerationHistory lists all generation history records. The token is
// attached only when non-empty.
func (c *BackendClient) FetchGenerationHistory(token string) ([]models.GenerationHistory, error) {
	var entries []models.GenerationHistory
	if err := c.getJSON("/generation-history", token, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FetchFeedback lists all feedback records.
func (c *BackendClient) FetchFeedback(token string) ([]models.FeedbackItem, error) {
	var items []models.FeedbackItem
	if err := c.getJSON("/feedback", token, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// PostGenerationHistory persists one history record.
func (c *BackendClient) PostGenerationHistory(entry models.GenerationHistory, token string) error {
	return c.postJSON("/generation-history", token, entry)
}

// PostFeedback persists one feedback record.
func (c *BackendClient) PostFeedback(item models.FeedbackItem, token string) error {
	return c.postJSON("/feedback", token, item)
}

// Generate runs one backend generation call with a JSON body.
func (c *BackendClient) Generate(form models.AdForm) (*GenerateResponse, error) {
	payload, err := json.Marshal(map[string]string{
		"input_text":       form.AdText,
		"platform":         string(form.Platform),
		"tone":             string(form.Tone),
		"output_types":     form.OutputsJoined(),
		"brand_guidelines": form.BrandGuidelines,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/rag/generate", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doGenerate(req)
}

// GenerateWithLogo runs one backend generation call as multipart form data,
// used when a logo file is attached.
func (c *BackendClient) GenerateWithLogo(form models.AdForm, logo LogoUpload) (*GenerateResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"input_text":   form.AdText,
		"platform":     string(form.Platform),
		"tone":         string(form.Tone),
		"output_types": form.OutputsJoined(),
	}
	if form.BrandGuidelines != "" {
		fields["brand_guidelines"] = form.BrandGuidelines
	}
	if form.LogoPlacement != "" {
		fields["logo_placement"] = form.LogoPlacement
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	part, err := writer.CreateFormFile("logo", logo.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create logo form file: %w", err)
	}
	if _, err := part.Write(logo.Data); err != nil {
		return nil, fmt.Errorf("failed to write logo data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/rag/generate-with-logo", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.doGenerate(req)
}

// DownloadAsset fetches a binary asset (poster image, video gif) and returns
// its bytes plus the response content type.
func (c *BackendClient) DownloadAsset(assetURL string) ([]byte, string, error) {
	resp, err := c.httpClient.Get(assetURL)
	if err != nil {
		return nil, "", fmt.Errorf("asset download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("asset download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read asset body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// FetchDashboardStats proxies the backend's aggregate dashboard numbers.
func (c *BackendClient) FetchDashboardStats(token string) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.getJSON("/dashboard/stats", token, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// FetchChartData proxies the backend's platform/tone chart counts.
func (c *BackendClient) FetchChartData(token string) (*models.ChartData, error) {
	var charts models.ChartData
	if err := c.getJSON("/dashboard/charts", token, &charts); err != nil {
		return nil, err
	}
	return &charts, nil
}

func (c *BackendClient) doGenerate(req *http.Request) (*GenerateResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generation failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result GenerateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse generation response: %w", err)
	}
	return &result, nil
}

func (c *BackendClient) getJSON(path, token string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request to %s failed with status %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}

func (c *BackendClient) postJSON(path, token string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("request to %s failed with status %d: %s", path, resp.StatusCode, string(body))
	}
	return nil
}

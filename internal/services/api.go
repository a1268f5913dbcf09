// Backlog API implementation of [Service]
//
// Endpoint shapes follow the server's /api/v1 routes: user-games for the
// collection, games for catalog records, games/search for the IGDB proxy.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:8080"

// envelope is the uniform response wrapper every endpoint returns.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// BacklogAPI implements [Service] against the backlog tracker HTTP API.
type BacklogAPI struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// BacklogOpts contains configuration for creating a BacklogAPI.
type BacklogOpts struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	RateLimit  float64 // requests per second, 0 disables limiting
	Timeout    time.Duration
}

// NewBacklogAPI creates a gateway for the backlog tracker server.
func NewBacklogAPI(opts BacklogOpts) *BacklogAPI {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.HTTPClient == nil {
		client := &http.Client{}
		if opts.Timeout > 0 {
			client.Timeout = opts.Timeout
		}
		opts.HTTPClient = client
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &BacklogAPI{
		baseURL:    opts.BaseURL,
		token:      opts.Token,
		httpClient: opts.HTTPClient,
		limiter:    limiter,
	}
}

// Name returns the service name.
func (b *BacklogAPI) Name() string {
	return "Backlog API"
}

// do performs a request and decodes the envelope into result (if non-nil).
// A non-2xx status or a populated error field becomes a [shared.ErrRemote].
func (b *BacklogAPI) do(ctx context.Context, method, endpoint string, body, result any) error {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrRemote, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", shared.GenerateID())
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRemote, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", shared.ErrRemote, err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return fmt.Errorf("%w: status %d", shared.ErrRemote, resp.StatusCode)
			}
			return fmt.Errorf("%w: malformed envelope: %v", shared.ErrRemote, err)
		}
	}

	if env.Error != "" {
		return fmt.Errorf("%w: %s", shared.ErrRemote, env.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrRemote, resp.StatusCode)
	}

	if result != nil {
		if len(env.Data) == 0 {
			return fmt.Errorf("%w: empty data payload", shared.ErrRemote)
		}
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("%w: failed to decode payload: %v", shared.ErrRemote, err)
		}
	}

	return nil
}

// ListCollection retrieves the user's full collection.
func (b *BacklogAPI) ListCollection(ctx context.Context) ([]models.CollectionEntry, error) {
	var entries []models.CollectionEntry
	if err := b.do(ctx, http.MethodGet, "/api/v1/user-games", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateGame creates or resolves a canonical GameRecord.
func (b *BacklogAPI) CreateGame(ctx context.Context, draft models.GameDraft) (*models.GameRecord, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	var game models.GameRecord
	if err := b.do(ctx, http.MethodPost, "/api/v1/games", draft, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// AddToCollection creates an entry for the game with default status backlog.
func (b *BacklogAPI) AddToCollection(ctx context.Context, gameID string) (*models.CollectionEntry, error) {
	if gameID == "" {
		return nil, fmt.Errorf("%w: game id is required", shared.ErrValidation)
	}

	body := map[string]string{"game_id": gameID}
	var entry models.CollectionEntry
	if err := b.do(ctx, http.MethodPost, "/api/v1/user-games", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateStatus moves an entry to a new status.
func (b *BacklogAPI) UpdateStatus(ctx context.Context, entryID string, status models.Status) (*models.CollectionEntry, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", shared.ErrValidation, status)
	}

	body := map[string]models.Status{"status": status}
	var entry models.CollectionEntry
	if err := b.do(ctx, http.MethodPatch, "/api/v1/user-games/"+url.PathEscape(entryID)+"/status", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateProgress sets progress percent and playtime hours.
func (b *BacklogAPI) UpdateProgress(ctx context.Context, entryID string, progressPercent int, playtimeHours float64) (*models.CollectionEntry, error) {
	if progressPercent < 0 || progressPercent > 100 {
		return nil, fmt.Errorf("%w: progress_percent must be 0-100, got %d", shared.ErrValidation, progressPercent)
	}
	if playtimeHours < 0 {
		return nil, fmt.Errorf("%w: playtime_hours must be non-negative, got %v", shared.ErrValidation, playtimeHours)
	}

	body := map[string]any{
		"progress_percent": progressPercent,
		"playtime_hours":   playtimeHours,
	}
	var entry models.CollectionEntry
	if err := b.do(ctx, http.MethodPatch, "/api/v1/user-games/"+url.PathEscape(entryID)+"/progress", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateDetails sets notes, rating, and the selected platform.
func (b *BacklogAPI) UpdateDetails(ctx context.Context, entryID string, notes string, rating int, platform string) (*models.CollectionEntry, error) {
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be 0-5, got %d", shared.ErrValidation, rating)
	}

	body := map[string]any{
		"notes":    notes,
		"rating":   rating,
		"platform": platform,
	}
	var entry models.CollectionEntry
	if err := b.do(ctx, http.MethodPatch, "/api/v1/user-games/"+url.PathEscape(entryID)+"/notes", body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes an entry and echoes its identifier.
func (b *BacklogAPI) DeleteEntry(ctx context.Context, entryID string) (string, error) {
	var result struct {
		ID string `json:"id"`
	}
	if err := b.do(ctx, http.MethodDelete, "/api/v1/user-games/"+url.PathEscape(entryID), nil, &result); err != nil {
		return "", err
	}
	if result.ID == "" {
		result.ID = entryID
	}
	return result.ID, nil
}

// SearchCatalog queries the catalog provider through the server.
func (b *BacklogAPI) SearchCatalog(ctx context.Context, query string, limit, offset int) ([]models.GameRecord, error) {
	if limit <= 0 {
		limit = 9
	}
	if offset < 0 {
		offset = 0
	}

	endpoint := fmt.Sprintf("/api/v1/games/search?q=%s&limit=%d&offset=%d", url.QueryEscape(query), limit, offset)
	var results []models.GameRecord
	if err := b.do(ctx, http.MethodGet, endpoint, nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Health reports whether the server is reachable.
func (b *BacklogAPI) Health(ctx context.Context) error {
	return b.do(ctx, http.MethodGet, "/health", nil, nil)
}

var _ Service = (*BacklogAPI)(nil)

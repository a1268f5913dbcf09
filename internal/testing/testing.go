// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/services"
	"github.com/desertthunder/questlog/internal/shared"
)

var _ services.Service = (*MockGateway)(nil)

// MockGateway is a configurable test double for [services.Service].
// Zero value behaves as an empty, healthy backend that assigns sequential IDs.
type MockGateway struct {
	mu sync.Mutex

	Entries       []models.CollectionEntry
	SearchResults map[string][]models.GameRecord

	ListErr     error
	CreateErr   error
	AddErr      error
	StatusErr   error
	ProgressErr error
	DetailsErr  error
	DeleteErr   error
	SearchErr   error
	HealthErr   error

	// SearchDelay simulates slow responses per query for supersession tests.
	SearchDelay map[string]time.Duration

	ListCalls   int
	CreateCalls int
	AddCalls    int
	StatusCalls int
	DeleteCalls int
	SearchCalls int

	nextID int
}

func (m *MockGateway) Name() string { return "mock" }

func (m *MockGateway) ListCollection(ctx context.Context) ([]models.CollectionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.CollectionEntry, len(m.Entries))
	copy(out, m.Entries)
	return out, nil
}

func (m *MockGateway) CreateGame(ctx context.Context, draft models.GameDraft) (*models.GameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	m.nextID++
	return &models.GameRecord{
		ID:                fmt.Sprintf("game-%d", m.nextID),
		Title:             draft.Title,
		CoverURL:          draft.CoverURL,
		ReleaseDate:       draft.ReleaseDate,
		Platforms:         draft.Platforms,
		Genres:            draft.Genres,
		Summary:           draft.Summary,
		InvolvedCompanies: draft.InvolvedCompanies,
		Provider:          draft.Provider,
		ProviderID:        draft.ProviderID,
	}, nil
}

func (m *MockGateway) AddToCollection(ctx context.Context, gameID string) (*models.CollectionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AddCalls++
	if m.AddErr != nil {
		return nil, m.AddErr
	}

	m.nextID++
	entry := models.CollectionEntry{
		ID:        fmt.Sprintf("entry-%d", m.nextID),
		Game:      models.GameRecord{ID: gameID},
		Status:    models.StatusBacklog,
		UpdatedAt: time.Now(),
	}
	m.Entries = append(m.Entries, entry)
	return &entry, nil
}

func (m *MockGateway) UpdateStatus(ctx context.Context, entryID string, status models.Status) (*models.CollectionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StatusCalls++
	if m.StatusErr != nil {
		return nil, m.StatusErr
	}

	for i := range m.Entries {
		if m.Entries[i].ID == entryID {
			m.Entries[i].Status = status
			m.Entries[i].UpdatedAt = time.Now()
			e := m.Entries[i]
			return &e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrRemote, entryID)
}

func (m *MockGateway) UpdateProgress(ctx context.Context, entryID string, progressPercent int, playtimeHours float64) (*models.CollectionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ProgressErr != nil {
		return nil, m.ProgressErr
	}

	for i := range m.Entries {
		if m.Entries[i].ID == entryID {
			m.Entries[i].ProgressPercent = progressPercent
			m.Entries[i].PlaytimeHours = playtimeHours
			m.Entries[i].UpdatedAt = time.Now()
			e := m.Entries[i]
			return &e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrRemote, entryID)
}

func (m *MockGateway) UpdateDetails(ctx context.Context, entryID string, notes string, rating int, platform string) (*models.CollectionEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DetailsErr != nil {
		return nil, m.DetailsErr
	}

	for i := range m.Entries {
		if m.Entries[i].ID == entryID {
			m.Entries[i].Notes = notes
			m.Entries[i].Rating = rating
			m.Entries[i].SelectedPlatform = platform
			m.Entries[i].UpdatedAt = time.Now()
			e := m.Entries[i]
			return &e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrRemote, entryID)
}

func (m *MockGateway) DeleteEntry(ctx context.Context, entryID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls++
	if m.DeleteErr != nil {
		return "", m.DeleteErr
	}

	for i := range m.Entries {
		if m.Entries[i].ID == entryID {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			return entryID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", shared.ErrRemote, entryID)
}

func (m *MockGateway) SearchCatalog(ctx context.Context, query string, limit, offset int) ([]models.GameRecord, error) {
	m.mu.Lock()
	delay := m.SearchDelay[query]
	results := m.SearchResults[query]
	err := m.SearchErr
	m.SearchCalls++
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (m *MockGateway) Health(ctx context.Context) error {
	return m.HealthErr
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading a response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

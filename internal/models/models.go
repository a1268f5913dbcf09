package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/questlog/internal/shared"
)

// Status is the tracking state of a collection entry.
type Status string

const (
	StatusWishlist  Status = "wishlist"
	StatusBacklog   Status = "backlog"
	StatusPaused    Status = "paused"
	StatusPlaying   Status = "playing"
	StatusCompleted Status = "completed"
	StatusDropped   Status = "dropped"
)

// Statuses lists every status in board column order.
var Statuses = []Status{
	StatusWishlist,
	StatusBacklog,
	StatusPaused,
	StatusPlaying,
	StatusCompleted,
	StatusDropped,
}

// ParseStatus converts a string to a [Status], or fails with [shared.ErrValidation].
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", shared.ErrValidation, s)
}

// Valid reports whether s is one of the six tracking states.
func (s Status) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Label returns the human-readable name for the status.
func (s Status) Label() string {
	switch s {
	case StatusWishlist:
		return "Wishlist"
	case StatusBacklog:
		return "Backlog"
	case StatusPaused:
		return "Paused"
	case StatusPlaying:
		return "Playing"
	case StatusCompleted:
		return "Completed"
	case StatusDropped:
		return "Dropped"
	default:
		return string(s)
	}
}

// GameRecord represents a game as resolved from the catalog provider.
type GameRecord struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	CoverURL          string   `json:"cover_url,omitempty"`
	ReleaseDate       string   `json:"release_date,omitempty"`
	Platforms         []string `json:"platforms,omitempty"`
	Genres            []string `json:"genres,omitempty"`
	Summary           string   `json:"summary,omitempty"`
	InvolvedCompanies []string `json:"involved_companies,omitempty"`
	Provider          string   `json:"provider,omitempty"`
	ProviderID        string   `json:"provider_id,omitempty"`
}

// GameDraft is the payload for creating or resolving a GameRecord.
// Search results lack local identifiers, so adds go through a draft.
type GameDraft struct {
	Title             string   `json:"title"`
	CoverURL          string   `json:"cover_url,omitempty"`
	ReleaseDate       string   `json:"release_date,omitempty"`
	Platforms         []string `json:"platforms,omitempty"`
	Genres            []string `json:"genres,omitempty"`
	Summary           string   `json:"summary,omitempty"`
	InvolvedCompanies []string `json:"involved_companies,omitempty"`
	Provider          string   `json:"provider,omitempty"`
	ProviderID        string   `json:"provider_id,omitempty"`
}

// Validate checks the draft for required fields.
func (d GameDraft) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrValidation)
	}
	return nil
}

// DraftFromRecord converts a catalog search candidate into a creation draft.
func DraftFromRecord(g GameRecord) GameDraft {
	return GameDraft{
		Title:             g.Title,
		CoverURL:          g.CoverURL,
		ReleaseDate:       g.ReleaseDate,
		Platforms:         g.Platforms,
		Genres:            g.Genres,
		Summary:           g.Summary,
		InvolvedCompanies: g.InvolvedCompanies,
		Provider:          g.Provider,
		ProviderID:        g.ProviderID,
	}
}

// CollectionEntry pairs a GameRecord with the user's tracking fields.
type CollectionEntry struct {
	ID               string     `json:"id"`
	Game             GameRecord `json:"game"`
	Status           Status     `json:"status"`
	ProgressPercent  int        `json:"progress_percent"`
	PlaytimeHours    float64    `json:"playtime_hours"`
	Rating           int        `json:"rating"`
	Notes            string     `json:"notes,omitempty"`
	SelectedPlatform string     `json:"selected_platform,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Validate checks the entry invariants: progress in [0,100], rating in [0,5],
// status in the six-value enumeration, playtime non-negative.
func (e CollectionEntry) Validate() error {
	if !e.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", shared.ErrValidation, e.Status)
	}
	if e.ProgressPercent < 0 || e.ProgressPercent > 100 {
		return fmt.Errorf("%w: progress_percent must be 0-100, got %d", shared.ErrValidation, e.ProgressPercent)
	}
	if e.Rating < 0 || e.Rating > 5 {
		return fmt.Errorf("%w: rating must be 0-5, got %d", shared.ErrValidation, e.Rating)
	}
	if e.PlaytimeHours < 0 {
		return fmt.Errorf("%w: playtime_hours must be non-negative, got %v", shared.ErrValidation, e.PlaytimeHours)
	}
	return nil
}

// SortKey selects the comparator for library views.
type SortKey string

const (
	SortUpdatedDesc SortKey = "updated_desc"
	SortUpdatedAsc  SortKey = "updated_asc"
	SortTitleAsc    SortKey = "title_asc"
	SortTitleDesc   SortKey = "title_desc"
	SortRatingDesc  SortKey = "rating_desc"
	SortRatingAsc   SortKey = "rating_asc"
)

// SortKeys lists every sort key in menu order.
var SortKeys = []SortKey{
	SortUpdatedDesc,
	SortUpdatedAsc,
	SortTitleAsc,
	SortTitleDesc,
	SortRatingDesc,
	SortRatingAsc,
}

// ParseSortKey converts a string to a [SortKey], or fails with [shared.ErrValidation].
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sort key %q", shared.ErrValidation, s)
}

// FilterSpec is the ephemeral filter/sort selection a view owns.
// The zero value passes every entry and applies no ordering.
type FilterSpec struct {
	Search   string
	Platform string
	Genre    string
	Sort     SortKey
}

// Reset restores the spec to its defaults.
func (f *FilterSpec) Reset() {
	*f = FilterSpec{Sort: SortUpdatedDesc}
}

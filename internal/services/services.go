// package services defines interface Service for the backlog tracker API
package services

import (
	"context"

	"github.com/desertthunder/questlog/internal/models"
)

// Service defines the remote gateway operations the client consumes.
type Service interface {
	// ListCollection retrieves the user's full collection, in server order.
	ListCollection(ctx context.Context) ([]models.CollectionEntry, error)

	// CreateGame creates or resolves a canonical GameRecord from a draft.
	// The server de-duplicates on provider+provider_id.
	CreateGame(ctx context.Context, draft models.GameDraft) (*models.GameRecord, error)

	// AddToCollection creates a CollectionEntry for the given game with
	// default status backlog.
	AddToCollection(ctx context.Context, gameID string) (*models.CollectionEntry, error)

	// UpdateStatus moves an entry to a new status and returns the canonical entry.
	UpdateStatus(ctx context.Context, entryID string, status models.Status) (*models.CollectionEntry, error)

	// UpdateProgress sets progress percent and playtime hours.
	UpdateProgress(ctx context.Context, entryID string, progressPercent int, playtimeHours float64) (*models.CollectionEntry, error)

	// UpdateDetails sets notes, rating, and the selected platform.
	UpdateDetails(ctx context.Context, entryID string, notes string, rating int, platform string) (*models.CollectionEntry, error)

	// DeleteEntry removes an entry and echoes its identifier.
	DeleteEntry(ctx context.Context, entryID string) (string, error)

	// SearchCatalog queries the catalog provider. Results may lack local
	// identifiers; adds go through CreateGame first.
	SearchCatalog(ctx context.Context, query string, limit, offset int) ([]models.GameRecord, error)

	// Health reports whether the backlog server is reachable and the token accepted.
	Health(ctx context.Context) error

	// Name returns the service name for logs and UI.
	Name() string
}

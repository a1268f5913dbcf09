package collection

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/services"
	"github.com/desertthunder/questlog/internal/shared"
)

// Store holds the canonical in-memory collection and applies the
// optimistic/pessimistic mutation protocols against the remote gateway.
type Store struct {
	mu      sync.Mutex
	svc     services.Service
	logger  *log.Logger
	entries []models.CollectionEntry
}

// NewStore creates a Store backed by the given gateway.
func NewStore(svc services.Service, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{svc: svc, logger: logger}
}

// Len returns the number of entries currently held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Snapshot returns a copy of the entry list in store order. Consumers derive
// views from the copy and re-request after every mutation.
func (s *Store) Snapshot() []models.CollectionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CollectionEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Entry looks up an entry by identifier.
func (s *Store) Entry(id string) (models.CollectionEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(id); i >= 0 {
		return s.entries[i], true
	}
	return models.CollectionEntry{}, false
}

// FindByProvider looks up an entry by the game's provider+provider_id pair.
func (s *Store) FindByProvider(provider, providerID string) (models.CollectionEntry, bool) {
	if providerID == "" {
		return models.CollectionEntry{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.Game.Provider == provider && e.Game.ProviderID == providerID {
			return e, true
		}
	}
	return models.CollectionEntry{}, false
}

// index returns the position of id, or -1. Caller holds s.mu.
func (s *Store) index(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// LoadAll fetches the full collection and replaces the in-memory list
// wholesale. On failure the prior state is left untouched. Concurrent calls
// are not sequenced; the last response to resolve wins.
func (s *Store) LoadAll(ctx context.Context) error {
	entries, err := s.svc.ListCollection(ctx)
	if err != nil {
		s.logger.Error("failed to load collection", "err", err)
		return err
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()

	s.logger.Debug("collection loaded", "entries", len(entries))
	return nil
}

// AddGame resolves or creates the GameRecord, then creates a collection entry
// with default status backlog. No local mutation happens until both phases
// succeed. Adding a game already in the collection fails with
// [shared.ErrDuplicate] before any network call.
func (s *Store) AddGame(ctx context.Context, draft models.GameDraft) (*models.CollectionEntry, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	if existing, ok := s.FindByProvider(draft.Provider, draft.ProviderID); ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrDuplicate, existing.Game.Title)
	}

	game, err := s.svc.CreateGame(ctx, draft)
	if err != nil {
		return nil, err
	}

	entry, err := s.svc.AddToCollection(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if i := s.index(entry.ID); i >= 0 {
		s.entries[i] = *entry
	} else {
		s.entries = append(s.entries, *entry)
	}
	s.mu.Unlock()

	s.logger.Info("added game", "title", entry.Game.Title, "entry", entry.ID)
	return entry, nil
}

// MoveStatus applies an optimistic local status change and returns the prior
// status so the caller can compensate if the remote update fails. Unknown
// identifiers fail with [shared.ErrNotFound]; the status must be one of the
// six tracking states.
func (s *Store) MoveStatus(id string, status models.Status) (models.Status, error) {
	if !status.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", shared.ErrValidation, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return "", fmt.Errorf("%w: %s", shared.ErrNotFound, id)
	}

	prior := s.entries[i].Status
	s.entries[i].Status = status
	return prior, nil
}

// RollbackMove reverts an optimistic move, but only while the entry still
// holds the attempted value. A newer move or a reconciled server entry is
// never clobbered. Reports whether a revert happened.
func (s *Store) RollbackMove(id string, prior, attempted models.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 || s.entries[i].Status != attempted {
		return false
	}

	s.entries[i].Status = prior
	return true
}

// Reconcile replaces the local entry with the server's canonical version.
// Entries removed since the request was issued are ignored.
func (s *Store) Reconcile(entry models.CollectionEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.index(entry.ID); i >= 0 {
		s.entries[i] = entry
	}
}

// SetStatus runs the full optimistic protocol synchronously: local move,
// remote update, reconcile on success, rollback on failure.
func (s *Store) SetStatus(ctx context.Context, id string, status models.Status) error {
	prior, err := s.MoveStatus(id, status)
	if err != nil {
		return err
	}

	entry, err := s.svc.UpdateStatus(ctx, id, status)
	if err != nil {
		if s.RollbackMove(id, prior, status) {
			s.logger.Warn("rolled back status move", "entry", id, "status", prior)
		}
		return err
	}

	s.Reconcile(*entry)
	return nil
}

// PushStatus issues the remote status update without touching local state.
// Interactive callers pair it with [Store.MoveStatus] beforehand and
// [Store.Reconcile] or [Store.RollbackMove] once the response lands.
func (s *Store) PushStatus(ctx context.Context, id string, status models.Status) (*models.CollectionEntry, error) {
	return s.svc.UpdateStatus(ctx, id, status)
}

// SetProgress updates progress and playtime pessimistically: local state
// changes only once the server's canonical entry arrives.
func (s *Store) SetProgress(ctx context.Context, id string, progressPercent int, playtimeHours float64) (*models.CollectionEntry, error) {
	if _, ok := s.Entry(id); !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, id)
	}

	entry, err := s.svc.UpdateProgress(ctx, id, progressPercent, playtimeHours)
	if err != nil {
		return nil, err
	}

	s.Reconcile(*entry)
	return entry, nil
}

// SetDetails updates notes, rating, and platform pessimistically.
func (s *Store) SetDetails(ctx context.Context, id string, notes string, rating int, platform string) (*models.CollectionEntry, error) {
	if _, ok := s.Entry(id); !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotFound, id)
	}

	entry, err := s.svc.UpdateDetails(ctx, id, notes, rating, platform)
	if err != nil {
		return nil, err
	}

	s.Reconcile(*entry)
	return entry, nil
}

// Remove deletes an entry remotely, then locally once the delete succeeds.
func (s *Store) Remove(ctx context.Context, id string) error {
	if _, ok := s.Entry(id); !ok {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, id)
	}

	echoed, err := s.svc.DeleteEntry(ctx, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if i := s.index(echoed); i >= 0 {
		s.entries = append(s.entries[:i], s.entries[i+1:]...)
	}
	s.mu.Unlock()

	s.logger.Info("removed entry", "entry", echoed)
	return nil
}

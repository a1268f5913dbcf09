package collection

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/shared"
	tu "github.com/desertthunder/questlog/internal/testing"
)

func seedEntries() []models.CollectionEntry {
	now := time.Now()
	return []models.CollectionEntry{
		{ID: "e1", Game: models.GameRecord{ID: "g1", Title: "Hades", Provider: "igdb", ProviderID: "113112"}, Status: models.StatusBacklog, PlaytimeHours: 10, UpdatedAt: now},
		{ID: "e2", Game: models.GameRecord{ID: "g2", Title: "Celeste", Provider: "igdb", ProviderID: "26226"}, Status: models.StatusPlaying, PlaytimeHours: 4.5, UpdatedAt: now.Add(-time.Hour)},
		{ID: "e3", Game: models.GameRecord{ID: "g3", Title: "Outer Wilds", Provider: "igdb", ProviderID: "17763"}, Status: models.StatusCompleted, PlaytimeHours: 22, UpdatedAt: now.Add(-2 * time.Hour)},
	}
}

func newSeededStore(t *testing.T) (*Store, *tu.MockGateway) {
	t.Helper()

	gw := &tu.MockGateway{Entries: seedEntries()}
	store := NewStore(gw, nil)
	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}
	return store, gw
}

func TestLoadAll(t *testing.T) {
	t.Run("Replaces Wholesale", func(t *testing.T) {
		store, gw := newSeededStore(t)

		gw.Entries = seedEntries()[:1]
		if err := store.LoadAll(context.Background()); err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if store.Len() != 1 {
			t.Errorf("expected wholesale replace to 1 entry, got %d", store.Len())
		}
	})

	t.Run("Keeps Prior State On Failure", func(t *testing.T) {
		store, gw := newSeededStore(t)

		gw.ListErr = fmt.Errorf("%w: connection refused", shared.ErrRemote)
		if err := store.LoadAll(context.Background()); err == nil {
			t.Fatal("expected error")
		}
		if store.Len() != 3 {
			t.Errorf("failed load should leave prior state, got %d entries", store.Len())
		}
	})

	t.Run("Last Response Wins", func(t *testing.T) {
		// Two sequential loads model responses resolving in issue order;
		// there is deliberately no sequencing beyond that.
		store, gw := newSeededStore(t)

		gw.Entries = seedEntries()[:2]
		_ = store.LoadAll(context.Background())
		gw.Entries = seedEntries()
		_ = store.LoadAll(context.Background())

		if store.Len() != 3 {
			t.Errorf("expected last response to win with 3 entries, got %d", store.Len())
		}
	})
}

func TestSnapshotIsolation(t *testing.T) {
	store, _ := newSeededStore(t)

	snap := store.Snapshot()
	snap[0].Status = models.StatusDropped
	snap[0].Game.Title = "mutated"

	entry, _ := store.Entry("e1")
	if entry.Status != models.StatusBacklog || entry.Game.Title != "Hades" {
		t.Error("mutating a snapshot must not affect store state")
	}
}

func TestAddGame(t *testing.T) {
	t.Run("Two Phase Append", func(t *testing.T) {
		store, gw := newSeededStore(t)

		entry, err := store.AddGame(context.Background(), models.GameDraft{
			Title: "Tunic", Provider: "igdb", ProviderID: "96217",
		})
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if gw.CreateCalls != 1 || gw.AddCalls != 1 {
			t.Errorf("expected one create and one add call, got %d/%d", gw.CreateCalls, gw.AddCalls)
		}
		if entry.Status != models.StatusBacklog {
			t.Errorf("new entries default to backlog, got %s", entry.Status)
		}
		if store.Len() != 4 {
			t.Errorf("expected 4 entries after add, got %d", store.Len())
		}
	})

	t.Run("No Mutation On Create Failure", func(t *testing.T) {
		store, gw := newSeededStore(t)

		gw.CreateErr = fmt.Errorf("%w: provider unavailable", shared.ErrRemote)
		if _, err := store.AddGame(context.Background(), models.GameDraft{Title: "Tunic"}); err == nil {
			t.Fatal("expected error")
		}
		if store.Len() != 3 {
			t.Errorf("failed add must not mutate, got %d entries", store.Len())
		}
	})

	t.Run("No Mutation On Add Failure", func(t *testing.T) {
		store, gw := newSeededStore(t)

		gw.AddErr = fmt.Errorf("%w: quota exceeded", shared.ErrRemote)
		if _, err := store.AddGame(context.Background(), models.GameDraft{Title: "Tunic"}); err == nil {
			t.Fatal("expected error")
		}
		if store.Len() != 3 {
			t.Errorf("failed add must not mutate, got %d entries", store.Len())
		}
	})

	t.Run("Rejects Empty Title", func(t *testing.T) {
		store, gw := newSeededStore(t)

		if _, err := store.AddGame(context.Background(), models.GameDraft{}); !errors.Is(err, shared.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if gw.CreateCalls != 0 {
			t.Error("validation failures must not reach the gateway")
		}
	})

	t.Run("Duplicate Guard", func(t *testing.T) {
		store, gw := newSeededStore(t)

		_, err := store.AddGame(context.Background(), models.GameDraft{
			Title: "Hades", Provider: "igdb", ProviderID: "113112",
		})
		if !errors.Is(err, shared.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
		if gw.CreateCalls != 0 {
			t.Error("duplicate adds must not reach the gateway")
		}
	})

	t.Run("Round Trip Add Then Remove", func(t *testing.T) {
		store, _ := newSeededStore(t)
		before := idSet(store.Snapshot())

		entry, err := store.AddGame(context.Background(), models.GameDraft{Title: "Tunic", Provider: "igdb", ProviderID: "96217"})
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := store.Remove(context.Background(), entry.ID); err != nil {
			t.Fatalf("remove failed: %v", err)
		}

		after := idSet(store.Snapshot())
		if len(before) != len(after) {
			t.Fatalf("expected identifier sets to match, %d vs %d", len(before), len(after))
		}
		for id := range before {
			if !after[id] {
				t.Errorf("missing id %s after round trip", id)
			}
		}
	})
}

func idSet(entries []models.CollectionEntry) map[string]bool {
	out := make(map[string]bool, len(entries))
	for _, e := range entries {
		out[e.ID] = true
	}
	return out
}

func TestMoveStatus(t *testing.T) {
	t.Run("Optimistic Before Network", func(t *testing.T) {
		store, gw := newSeededStore(t)

		prior, err := store.MoveStatus("e1", models.StatusPlaying)
		if err != nil {
			t.Fatalf("move failed: %v", err)
		}
		if prior != models.StatusBacklog {
			t.Errorf("expected prior backlog, got %s", prior)
		}

		// local state reflects the move before any gateway call
		entry, _ := store.Entry("e1")
		if entry.Status != models.StatusPlaying {
			t.Errorf("expected optimistic playing, got %s", entry.Status)
		}
		if gw.StatusCalls != 0 {
			t.Error("MoveStatus must not touch the gateway")
		}
	})

	t.Run("Unknown ID Fails With NotFound", func(t *testing.T) {
		store, _ := newSeededStore(t)

		if _, err := store.MoveStatus("nope", models.StatusPlaying); !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if store.Len() != 3 {
			t.Error("failed move must not partially mutate")
		}
	})

	t.Run("Invalid Status Rejected", func(t *testing.T) {
		store, _ := newSeededStore(t)

		if _, err := store.MoveStatus("e1", "shelved"); !errors.Is(err, shared.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestRollbackMove(t *testing.T) {
	t.Run("Reverts While Attempted Value Stands", func(t *testing.T) {
		store, _ := newSeededStore(t)

		prior, _ := store.MoveStatus("e1", models.StatusPlaying)
		if !store.RollbackMove("e1", prior, models.StatusPlaying) {
			t.Fatal("expected rollback to apply")
		}

		entry, _ := store.Entry("e1")
		if entry.Status != models.StatusBacklog {
			t.Errorf("expected backlog after rollback, got %s", entry.Status)
		}
	})

	t.Run("Never Clobbers A Newer Move", func(t *testing.T) {
		store, _ := newSeededStore(t)

		prior, _ := store.MoveStatus("e1", models.StatusPlaying)
		_, _ = store.MoveStatus("e1", models.StatusCompleted)

		if store.RollbackMove("e1", prior, models.StatusPlaying) {
			t.Fatal("rollback must not apply over a newer value")
		}

		entry, _ := store.Entry("e1")
		if entry.Status != models.StatusCompleted {
			t.Errorf("expected newer move to stand, got %s", entry.Status)
		}
	})
}

func TestSetStatus(t *testing.T) {
	t.Run("Reconciles With Server Entry", func(t *testing.T) {
		store, gw := newSeededStore(t)

		if err := store.SetStatus(context.Background(), "e1", models.StatusPlaying); err != nil {
			t.Fatalf("set status failed: %v", err)
		}
		if gw.StatusCalls != 1 {
			t.Errorf("expected exactly one gateway call, got %d", gw.StatusCalls)
		}

		entry, _ := store.Entry("e1")
		if entry.Status != models.StatusPlaying {
			t.Errorf("expected playing, got %s", entry.Status)
		}
	})

	t.Run("Rolls Back On Remote Failure", func(t *testing.T) {
		store, gw := newSeededStore(t)

		gw.StatusErr = fmt.Errorf("%w: 500", shared.ErrRemote)
		err := store.SetStatus(context.Background(), "e1", models.StatusPlaying)
		if !errors.Is(err, shared.ErrRemote) {
			t.Fatalf("expected ErrRemote, got %v", err)
		}

		entry, _ := store.Entry("e1")
		if entry.Status != models.StatusBacklog {
			t.Errorf("expected rollback to backlog, got %s", entry.Status)
		}
	})

	t.Run("NoOp For Unknown ID", func(t *testing.T) {
		store, gw := newSeededStore(t)

		if err := store.SetStatus(context.Background(), "nope", models.StatusPlaying); !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if gw.StatusCalls != 0 {
			t.Error("unknown ids must not reach the gateway")
		}
	})
}

func TestPessimisticUpdates(t *testing.T) {
	t.Run("SetProgress Applies Server Truth", func(t *testing.T) {
		store, _ := newSeededStore(t)

		entry, err := store.SetProgress(context.Background(), "e1", 80, 35.5)
		if err != nil {
			t.Fatalf("set progress failed: %v", err)
		}
		if entry.ProgressPercent != 80 || entry.PlaytimeHours != 35.5 {
			t.Errorf("unexpected canonical entry %+v", entry)
		}

		local, _ := store.Entry("e1")
		if local.ProgressPercent != 80 {
			t.Errorf("expected local apply after success, got %d", local.ProgressPercent)
		}
	})

	t.Run("SetProgress Leaves State On Failure", func(t *testing.T) {
		store, gw := newSeededStore(t)

		gw.ProgressErr = fmt.Errorf("%w: 500", shared.ErrRemote)
		if _, err := store.SetProgress(context.Background(), "e1", 80, 35.5); err == nil {
			t.Fatal("expected error")
		}

		local, _ := store.Entry("e1")
		if local.ProgressPercent != 0 || local.PlaytimeHours != 10 {
			t.Errorf("failed pessimistic update must leave last known-good state, got %+v", local)
		}
	})

	t.Run("SetDetails Applies Server Truth", func(t *testing.T) {
		store, _ := newSeededStore(t)

		entry, err := store.SetDetails(context.Background(), "e2", "so good", 5, "Switch")
		if err != nil {
			t.Fatalf("set details failed: %v", err)
		}
		if entry.Rating != 5 || entry.SelectedPlatform != "Switch" {
			t.Errorf("unexpected canonical entry %+v", entry)
		}
	})

	t.Run("Unknown IDs Fail Fast", func(t *testing.T) {
		store, _ := newSeededStore(t)

		if _, err := store.SetProgress(context.Background(), "nope", 10, 1); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if _, err := store.SetDetails(context.Background(), "nope", "", 0, ""); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestRemove(t *testing.T) {
	t.Run("Local Removal Only After Success", func(t *testing.T) {
		store, gw := newSeededStore(t)

		gw.DeleteErr = fmt.Errorf("%w: 500", shared.ErrRemote)
		if err := store.Remove(context.Background(), "e1"); err == nil {
			t.Fatal("expected error")
		}
		if store.Len() != 3 {
			t.Errorf("failed delete must keep local entry, got %d", store.Len())
		}

		gw.DeleteErr = nil
		if err := store.Remove(context.Background(), "e1"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		if _, ok := store.Entry("e1"); ok {
			t.Error("entry should be gone after successful delete")
		}
	})
}

func TestNoDuplicateIDs(t *testing.T) {
	store, gw := newSeededStore(t)

	// A reconcile for an entry that already exists replaces, never appends.
	entry, _ := store.Entry("e1")
	entry.Rating = 5
	store.Reconcile(entry)

	if store.Len() != 3 {
		t.Fatalf("reconcile must not grow the list, got %d", store.Len())
	}

	ids := []string{}
	for _, e := range store.Snapshot() {
		ids = append(ids, e.ID)
	}
	sort.Strings(ids)
	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			t.Errorf("duplicate id %s", ids[i])
		}
	}

	_ = gw
}

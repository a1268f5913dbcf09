package ui

import (
	"testing"

	"github.com/desertthunder/questlog/internal/models"
)

func testZones() []DropZone {
	// two columns side by side, one card in each
	return []DropZone{
		{Status: models.StatusBacklog, EntryID: "entry-1", Bounds: Rect{X: 0, Y: 2, W: 20, H: 3}},
		{Status: models.StatusPlaying, EntryID: "entry-2", Bounds: Rect{X: 21, Y: 2, W: 20, H: 3}},
		{Status: models.StatusBacklog, Bounds: Rect{X: 0, Y: 0, W: 20, H: 30}},
		{Status: models.StatusPlaying, Bounds: Rect{X: 21, Y: 0, W: 20, H: 30}},
	}
}

func TestRect(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}

	t.Run("contains interior and edges", func(t *testing.T) {
		for _, p := range [][2]int{{2, 3}, {5, 3}, {2, 4}, {5, 4}, {3, 3}} {
			if !r.Contains(p[0], p[1]) {
				t.Errorf("expected (%d,%d) inside %+v", p[0], p[1], r)
			}
		}
	})

	t.Run("excludes outside cells", func(t *testing.T) {
		for _, p := range [][2]int{{1, 3}, {6, 3}, {2, 2}, {2, 5}} {
			if r.Contains(p[0], p[1]) {
				t.Errorf("expected (%d,%d) outside %+v", p[0], p[1], r)
			}
		}
	})

	t.Run("corner distance zero at corner", func(t *testing.T) {
		if d := r.CornerDistance(2, 3); d != 0 {
			t.Errorf("expected 0, got %v", d)
		}
	})

	t.Run("corner distance from nearest corner", func(t *testing.T) {
		if d := r.CornerDistance(8, 4); d != 3 {
			t.Errorf("expected 3, got %v", d)
		}
	})
}

func TestResolveDrop(t *testing.T) {
	zones := testZones()

	t.Run("over another card takes that card's status", func(t *testing.T) {
		status, ok := ResolveDrop(25, 3, "entry-1", zones)
		if !ok || status != models.StatusPlaying {
			t.Errorf("expected playing, got %q ok=%v", status, ok)
		}
	})

	t.Run("own card zone is ignored in favor of the column", func(t *testing.T) {
		status, ok := ResolveDrop(5, 3, "entry-1", zones)
		if !ok || status != models.StatusBacklog {
			t.Errorf("expected backlog column, got %q ok=%v", status, ok)
		}
	})

	t.Run("over empty column space takes the column status", func(t *testing.T) {
		status, ok := ResolveDrop(25, 20, "entry-1", zones)
		if !ok || status != models.StatusPlaying {
			t.Errorf("expected playing, got %q ok=%v", status, ok)
		}
	})

	t.Run("near miss snaps to the closest zone", func(t *testing.T) {
		status, ok := ResolveDrop(35, 31, "entry-1", zones)
		if !ok || status != models.StatusPlaying {
			t.Errorf("expected snap to playing, got %q ok=%v", status, ok)
		}
	})

	t.Run("far miss is a no-op", func(t *testing.T) {
		if status, ok := ResolveDrop(200, 200, "entry-1", zones); ok {
			t.Errorf("expected no target, got %q", status)
		}
	})
}

func TestDragController(t *testing.T) {
	zones := testZones()

	t.Run("release without movement is a click not a drop", func(t *testing.T) {
		c := NewDragController(1)
		c.Press("entry-1", models.StatusBacklog, 5, 3)
		if _, _, ok := c.Release(zones); ok {
			t.Error("expected no drop for a plain click")
		}
	})

	t.Run("movement below threshold stays a click", func(t *testing.T) {
		c := NewDragController(3)
		c.Press("entry-1", models.StatusBacklog, 5, 3)
		c.Move(6, 3)
		if c.Dragging() {
			t.Error("expected pending, not dragging")
		}
		if _, _, ok := c.Release(zones); ok {
			t.Error("expected no drop below threshold")
		}
	})

	t.Run("movement past threshold activates the drag", func(t *testing.T) {
		c := NewDragController(1)
		c.Press("entry-1", models.StatusBacklog, 5, 3)
		c.Move(7, 3)
		if !c.Dragging() {
			t.Error("expected active drag")
		}
		if got := c.ActiveID(); got != "entry-1" {
			t.Errorf("expected entry-1, got %q", got)
		}
	})

	t.Run("release in another column resolves the move", func(t *testing.T) {
		c := NewDragController(1)
		c.Press("entry-1", models.StatusBacklog, 5, 3)
		c.Move(25, 10)
		id, target, ok := c.Release(zones)
		if !ok {
			t.Fatal("expected a drop")
		}
		if id != "entry-1" || target != models.StatusPlaying {
			t.Errorf("expected entry-1 to playing, got %s to %s", id, target)
		}
	})

	t.Run("release over the origin column is a no-op", func(t *testing.T) {
		c := NewDragController(1)
		c.Press("entry-1", models.StatusBacklog, 5, 3)
		c.Move(5, 20)
		if _, _, ok := c.Release(zones); ok {
			t.Error("expected no drop onto the origin status")
		}
	})

	t.Run("cancel abandons the gesture", func(t *testing.T) {
		c := NewDragController(1)
		c.Press("entry-1", models.StatusBacklog, 5, 3)
		c.Move(25, 10)
		c.Cancel()
		if c.Dragging() || c.ActiveID() != "" {
			t.Error("expected idle after cancel")
		}
		if _, _, ok := c.Release(zones); ok {
			t.Error("expected no drop after cancel")
		}
	})

	t.Run("controller resets after release", func(t *testing.T) {
		c := NewDragController(1)
		c.Press("entry-1", models.StatusBacklog, 5, 3)
		c.Move(25, 10)
		c.Release(zones)
		if c.Dragging() || c.ActiveID() != "" {
			t.Error("expected idle after release")
		}
	})
}

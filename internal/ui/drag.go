package ui

import (
	"math"

	"github.com/desertthunder/questlog/internal/models"
)

// DefaultDragThreshold is the minimum pointer travel, in cells, before a
// press becomes a drag. Presses released inside the threshold stay clicks.
const DefaultDragThreshold = 1

// maxSnapDistance bounds nearest-corner resolution: drops farther than this
// from every zone corner are a no-op.
const maxSnapDistance = 8.0

// Rect is a rectangle in terminal cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// CornerDistance returns the distance from (x, y) to the nearest of the
// rectangle's four corners.
func (r Rect) CornerDistance(x, y int) float64 {
	corners := [4][2]int{
		{r.X, r.Y},
		{r.X + r.W - 1, r.Y},
		{r.X, r.Y + r.H - 1},
		{r.X + r.W - 1, r.Y + r.H - 1},
	}

	best := math.Inf(1)
	for _, c := range corners {
		dx := float64(x - c[0])
		dy := float64(y - c[1])
		if d := math.Hypot(dx, dy); d < best {
			best = d
		}
	}
	return best
}

// DropZone is a board region a card can be dropped on. Card zones carry the
// entry occupying them; column zones have an empty EntryID.
type DropZone struct {
	Status  models.Status
	EntryID string
	Bounds  Rect
}

// dragState tracks the gesture lifecycle.
type dragState int

const (
	dragIdle dragState = iota
	dragPending
	dragActive
)

// DragController translates pointer gestures into drop decisions. It is a
// small state machine: idle, pending (pressed but within the travel
// threshold), and dragging. The controller owns no collection state; callers
// act on the Release result.
type DragController struct {
	state     dragState
	entryID   string
	origin    models.Status
	startX    int
	startY    int
	x, y      int
	threshold int
}

// NewDragController creates a controller with the given travel threshold.
// A threshold below 1 falls back to [DefaultDragThreshold].
func NewDragController(threshold int) *DragController {
	if threshold < 1 {
		threshold = DefaultDragThreshold
	}
	return &DragController{threshold: threshold}
}

// Press begins a gesture on the card holding entryID.
func (c *DragController) Press(entryID string, origin models.Status, x, y int) {
	c.state = dragPending
	c.entryID = entryID
	c.origin = origin
	c.startX, c.startY = x, y
	c.x, c.y = x, y
}

// Move updates the pointer position, promoting a pending press to an active
// drag once travel reaches the threshold.
func (c *DragController) Move(x, y int) {
	if c.state == dragIdle {
		return
	}
	c.x, c.y = x, y

	if c.state == dragPending {
		dx := math.Abs(float64(x - c.startX))
		dy := math.Abs(float64(y - c.startY))
		if math.Max(dx, dy) >= float64(c.threshold) {
			c.state = dragActive
		}
	}
}

// Dragging reports whether a drag is active (past the travel threshold).
func (c *DragController) Dragging() bool {
	return c.state == dragActive
}

// ActiveID returns the dragged entry's identifier, or "" when idle.
func (c *DragController) ActiveID() string {
	if c.state == dragIdle {
		return ""
	}
	return c.entryID
}

// Cancel abandons the gesture without a drop.
func (c *DragController) Cancel() {
	c.state = dragIdle
	c.entryID = ""
}

// Release ends the gesture and resolves the drop target. It returns the
// dragged entry, the resolved status, and whether a status change should be
// issued. Drops that never became a drag, land outside every zone, or
// resolve to the entry's current status report ok=false.
func (c *DragController) Release(zones []DropZone) (entryID string, target models.Status, ok bool) {
	defer c.Cancel()

	if c.state != dragActive {
		return "", "", false
	}

	status, found := ResolveDrop(c.x, c.y, c.entryID, zones)
	if !found || status == c.origin {
		return "", "", false
	}
	return c.entryID, status, true
}

// ResolveDrop maps a release point to a status. A point inside another
// card's zone takes that card's status; a point inside a column takes the
// column's status; otherwise the nearest zone by corner distance wins, up to
// [maxSnapDistance]. The dragged card's own zone is ignored.
func ResolveDrop(x, y int, draggedID string, zones []DropZone) (models.Status, bool) {
	var columnHit *DropZone

	for i := range zones {
		z := &zones[i]
		if z.EntryID == draggedID && draggedID != "" {
			continue
		}
		if !z.Bounds.Contains(x, y) {
			continue
		}
		if z.EntryID != "" {
			// card zones sit inside column zones and win outright
			return z.Status, true
		}
		if columnHit == nil {
			columnHit = z
		}
	}
	if columnHit != nil {
		return columnHit.Status, true
	}

	best := math.Inf(1)
	var bestStatus models.Status
	for i := range zones {
		z := &zones[i]
		if z.EntryID == draggedID && draggedID != "" {
			continue
		}
		if d := z.Bounds.CornerDistance(x, y); d < best {
			best = d
			bestStatus = z.Status
		}
	}
	if best <= maxSnapDistance {
		return bestStatus, true
	}
	return "", false
}

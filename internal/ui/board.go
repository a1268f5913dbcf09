package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/views"
)

const (
	minColumnWidth = 14
	columnGap      = 1
	headerRows     = 2
	cardRows       = 3
)

// cardLayout is a rendered card's position on the board.
type cardLayout struct {
	entryID string
	title   string
	meta    string
	status  models.Status
	bounds  Rect
}

// columnLayout is one status column: its header region plus visible cards.
type columnLayout struct {
	status models.Status
	count  int
	bounds Rect
	cards  []cardLayout
}

// boardLayout fixes where every column and card sits so that hit testing,
// drop zones, and rendering all agree on the same cell geometry.
type boardLayout struct {
	width   int
	height  int
	columns []columnLayout
}

// newBoardLayout places the six status columns across the given viewport.
// Cards beyond the column's visible capacity are counted but not placed.
func newBoardLayout(groups []views.StatusGroup, width, height int) boardLayout {
	l := boardLayout{width: width, height: height}
	if len(groups) == 0 || width <= 0 || height <= headerRows {
		return l
	}

	colWidth := (width - columnGap*(len(groups)-1)) / len(groups)
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	capacity := (height - headerRows) / cardRows

	x := 0
	for _, g := range groups {
		col := columnLayout{
			status: g.Status,
			count:  len(g.Entries),
			bounds: Rect{X: x, Y: 0, W: colWidth, H: height},
		}

		y := headerRows
		for i, e := range g.Entries {
			if i >= capacity {
				break
			}
			col.cards = append(col.cards, cardLayout{
				entryID: e.ID,
				title:   e.Game.Title,
				meta:    cardMeta(e),
				status:  g.Status,
				bounds:  Rect{X: x, Y: y, W: colWidth, H: cardRows},
			})
			y += cardRows
		}

		l.columns = append(l.columns, col)
		x += colWidth + columnGap
	}
	return l
}

func cardMeta(e models.CollectionEntry) string {
	switch {
	case e.Rating > 0:
		return strings.Repeat("★", e.Rating)
	case e.ProgressPercent > 0:
		return fmt.Sprintf("%d%%", e.ProgressPercent)
	case e.SelectedPlatform != "":
		return e.SelectedPlatform
	default:
		return ""
	}
}

// zones flattens the layout into drop targets. Card zones precede column
// zones; [ResolveDrop] gives cards priority regardless of order.
func (l boardLayout) zones() []DropZone {
	var out []DropZone
	for _, col := range l.columns {
		for _, c := range col.cards {
			out = append(out, DropZone{Status: col.status, EntryID: c.entryID, Bounds: c.bounds})
		}
	}
	for _, col := range l.columns {
		out = append(out, DropZone{Status: col.status, Bounds: col.bounds})
	}
	return out
}

// hitCard returns the card under the cell (x, y), if any.
func (l boardLayout) hitCard(x, y int) (cardLayout, bool) {
	for _, col := range l.columns {
		if !col.bounds.Contains(x, y) {
			continue
		}
		for _, c := range col.cards {
			if c.bounds.Contains(x, y) {
				return c, true
			}
		}
	}
	return cardLayout{}, false
}

// render draws the board from the layout. The dragged card is dimmed in
// place; a floating label is not drawn since terminal cells cannot overlap.
func (l boardLayout) render(dragID string) string {
	if len(l.columns) == 0 {
		return styles.help.Render("collection is empty")
	}

	cols := make([]string, 0, len(l.columns))
	for _, col := range l.columns {
		cols = append(cols, l.renderColumn(col, dragID))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// renderColumn draws one column at its full stride (bounds width plus the
// inter-column gap) so joined columns line up with the layout's cell math.
func (l boardLayout) renderColumn(col columnLayout, dragID string) string {
	w := col.bounds.W
	stride := w + columnGap
	accent := StatusColor(col.status)

	header := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Width(stride).
		Render(truncate(fmt.Sprintf("%s (%d)", col.status.Label(), col.count), w))

	lines := []string{header, strings.Repeat("─", w) + strings.Repeat(" ", columnGap)}

	for _, c := range col.cards {
		titleStyle := lipgloss.NewStyle().Width(stride)
		if c.entryID == dragID {
			titleStyle = styles.help.Width(stride)
		}
		title := titleStyle.Render(truncate("▐ "+c.title, w))
		meta := styles.help.Width(stride).Render(truncate("  "+c.meta, w))
		lines = append(lines, title, meta, strings.Repeat(" ", stride))
	}

	for len(lines) < l.height {
		lines = append(lines, strings.Repeat(" ", stride))
	}
	return strings.Join(lines[:l.height], "\n")
}

func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

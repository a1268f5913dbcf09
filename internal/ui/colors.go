package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/questlog/internal/models"
)

var styles = NewPalette("#7D56F4", "#10B981", "#EF4444", "#FBBF24", "#626262")

// statusColors maps each backlog status to its accent color.
var statusColors = map[models.Status]lipgloss.Color{
	models.StatusWishlist:  lipgloss.Color("#F472B6"),
	models.StatusBacklog:   lipgloss.Color("#94A3B8"),
	models.StatusPaused:    lipgloss.Color("#FBBF24"),
	models.StatusPlaying:   lipgloss.Color("#3B82F6"),
	models.StatusCompleted: lipgloss.Color("#10B981"),
	models.StatusDropped:   lipgloss.Color("#EF4444"),
}

// StatusColor returns the accent color for a status, falling back to the
// help gray for unknown values.
func StatusColor(s models.Status) lipgloss.Color {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return lipgloss.Color("#626262")
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/shared"
)

const (
	fieldProgress = iota
	fieldHours
	fieldRating
	fieldPlatform
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{"Progress %", "Hours", "Rating (0-5)", "Platform", "Notes"}

// detailForm edits one entry's tracking fields. Saving only issues the
// calls whose field group actually changed.
type detailForm struct {
	entry  models.CollectionEntry
	origin ViewState
	inputs [fieldCount]textinput.Model
	focus  int
	err    error
}

func newDetailForm(entry models.CollectionEntry, origin ViewState) detailForm {
	f := detailForm{entry: entry, origin: origin}

	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 240
		f.inputs[i] = in
	}
	f.inputs[fieldProgress].SetValue(strconv.Itoa(entry.ProgressPercent))
	f.inputs[fieldHours].SetValue(strconv.FormatFloat(entry.PlaytimeHours, 'f', -1, 64))
	f.inputs[fieldRating].SetValue(strconv.Itoa(entry.Rating))
	f.inputs[fieldPlatform].SetValue(entry.SelectedPlatform)
	f.inputs[fieldNotes].SetValue(entry.Notes)

	f.inputs[fieldProgress].Focus()
	return f
}

func (f *detailForm) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// changes parses the form and reports which field groups differ from the
// entry. Parse failures surface as [shared.ErrValidation].
func (f *detailForm) changes() (progress int, hours float64, rating int, platform, notes string, progressDirty, detailsDirty bool, err error) {
	progress, err = strconv.Atoi(strings.TrimSpace(f.inputs[fieldProgress].Value()))
	if err != nil {
		return 0, 0, 0, "", "", false, false, fmt.Errorf("%w: progress must be a number", shared.ErrValidation)
	}
	hours, err = strconv.ParseFloat(strings.TrimSpace(f.inputs[fieldHours].Value()), 64)
	if err != nil {
		return 0, 0, 0, "", "", false, false, fmt.Errorf("%w: hours must be a number", shared.ErrValidation)
	}
	rating, err = strconv.Atoi(strings.TrimSpace(f.inputs[fieldRating].Value()))
	if err != nil {
		return 0, 0, 0, "", "", false, false, fmt.Errorf("%w: rating must be a number", shared.ErrValidation)
	}
	platform = strings.TrimSpace(f.inputs[fieldPlatform].Value())
	notes = f.inputs[fieldNotes].Value()

	progressDirty = progress != f.entry.ProgressPercent || hours != f.entry.PlaytimeHours
	detailsDirty = rating != f.entry.Rating || platform != f.entry.SelectedPlatform || notes != f.entry.Notes
	return progress, hours, rating, platform, notes, progressDirty, detailsDirty, nil
}

// openDetail switches to the edit form for the given entry.
func (m *Model) openDetail(id string, origin ViewState) tea.Cmd {
	entry, ok := m.store.Entry(id)
	if !ok {
		m.notice = "entry not found"
		return nil
	}
	m.detail = newDetailForm(entry, origin)
	m.view = DetailView
	return textinput.Blink
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// "q" types into the form; only ctrl+c quits here
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = m.detail.origin
		return m, nil
	case key.Matches(msg, m.keys.enter):
		return m, m.saveDetail()
	}

	switch msg.String() {
	case "tab", "down":
		m.detail.setFocus(m.detail.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.detail.setFocus(m.detail.focus - 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.detail.inputs[m.detail.focus], cmd = m.detail.inputs[m.detail.focus].Update(msg)
	return m, cmd
}

// saveDetail issues one update per dirty field group. Unchanged groups make
// no network call at all.
func (m *Model) saveDetail() tea.Cmd {
	f := &m.detail
	progress, hours, rating, platform, notes, progressDirty, detailsDirty, err := f.changes()
	if err != nil {
		f.err = err
		return nil
	}
	f.err = nil

	if !progressDirty && !detailsDirty {
		m.notice = "no changes"
		m.view = f.origin
		return nil
	}

	id := f.entry.ID
	var cmds []tea.Cmd
	if progressDirty {
		cmds = append(cmds, func() tea.Msg {
			entry, err := m.store.SetProgress(m.ctx, id, progress, hours)
			return entrySavedMsg{entry: entry, err: err}
		})
	}
	if detailsDirty {
		cmds = append(cmds, func() tea.Msg {
			entry, err := m.store.SetDetails(m.ctx, id, notes, rating, platform)
			return entrySavedMsg{entry: entry, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) renderDetail() string {
	f := &m.detail
	title := styles.title.Render(f.entry.Game.Title)

	var info []string
	if f.entry.Game.ReleaseDate != "" {
		info = append(info, f.entry.Game.ReleaseDate)
	}
	if len(f.entry.Game.Genres) > 0 {
		info = append(info, strings.Join(f.entry.Game.Genres, ", "))
	}
	info = append(info, f.entry.Status.Label())
	header := styles.help.Render(strings.Join(info, " • "))

	var b strings.Builder
	b.WriteString(title + "\n" + header + "\n\n")
	for i, in := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			b.WriteString(styles.ok.Render("› "+label) + " " + in.View() + "\n")
		} else {
			b.WriteString("  " + label + " " + in.View() + "\n")
		}
	}

	if f.err != nil {
		b.WriteString("\n" + styles.err.Render(f.err.Error()) + "\n")
	}

	saveKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
	helpView := m.help.ShortHelpView([]key.Binding{saveKey, m.keys.back, m.keys.quit})
	return b.String() + "\n" + helpView
}

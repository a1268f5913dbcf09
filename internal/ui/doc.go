// Package ui implements the interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI presents five views over one collection store:
//  1. [BoardView] : Kanban columns per status with mouse drag-and-drop moves
//  2. [LibraryView] : filterable, sortable flat list of the collection
//  3. [DashboardView] : aggregate counts, playtime, completion rate, platforms
//  4. [SearchView] : debounced catalog search with add-to-backlog
//  5. [DetailView] : edit status/progress/rating/notes/platform for one entry
//
// The [Model] implements bubbletea's standard Init/Update/View pattern. Status
// moves are optimistic: the board updates the moment a card is dropped, then
// the gateway response reconciles or rolls the move back. All other edits
// apply only after the server confirms them.
//
// Mouse input drives the board's drag controller; keyboard navigation uses
// vim-style bindings (j/k select, h/l switch columns, </> move a card) with
// contextual help via charmbracelet/bubbles/help.
package ui

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/shared"
	"github.com/urfave/cli/v3"
)

// GamesSearch queries the catalog and prints candidates, marking games
// already in the collection.
func (r *Runner) GamesSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	limit := cmd.Int("limit")
	offset := cmd.Int("offset")

	if err := r.store.LoadAll(ctx); err != nil {
		r.logger.Warnf("could not load collection for duplicate marks: %v", err)
	}

	token := r.searcher.Begin()
	res := r.searcher.Run(ctx, token, query, limit, offset)
	if res.Err != nil {
		return fmt.Errorf("%w: %v", shared.ErrRemote, res.Err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(res.Results, true)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q", query))
	for _, g := range res.Results {
		mark := " "
		if _, ok := r.store.FindByProvider(g.Provider, g.ProviderID); ok {
			mark = "✓"
		}
		line := g.Title
		if g.ReleaseDate != "" {
			line = fmt.Sprintf("%s (%s)", line, g.ReleaseDate)
		}
		r.writePlain("%s %s\n", mark, line)
		if len(g.Platforms) > 0 {
			r.writePlain("    %s\n", strings.Join(g.Platforms, ", "))
		}
	}
	if len(res.Results) == 0 {
		r.writePlain("No results.\n")
	}
	return nil
}

// GamesAdd creates the game record and adds it to the collection.
func (r *Runner) GamesAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.store.LoadAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	draft := models.GameDraft{
		Title:       cmd.String("title"),
		Provider:    cmd.String("provider"),
		ProviderID:  cmd.String("provider-id"),
		Platforms:   cmd.StringSlice("platform"),
		Genres:      cmd.StringSlice("genre"),
		ReleaseDate: cmd.String("release-date"),
	}

	entry, err := r.store.AddGame(ctx, draft)
	if err != nil {
		return err
	}

	r.writePlain("✓ Added %s (%s)\n", entry.Game.Title, entry.ID)
	return nil
}

// GamesMove sets an entry's status.
func (r *Runner) GamesMove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	status, err := models.ParseStatus(cmd.StringArg("status"))
	if err != nil {
		return err
	}

	if err := r.store.LoadAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if err := r.store.SetStatus(ctx, id, status); err != nil {
		return err
	}

	r.writePlain("✓ Moved %s to %s\n", id, status.Label())
	return nil
}

// GamesProgress updates completion percentage and playtime.
func (r *Runner) GamesProgress(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	if err := r.store.LoadAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	entry, err := r.store.SetProgress(ctx, id, cmd.Int("percent"), cmd.Float("hours"))
	if err != nil {
		return err
	}

	r.writePlain("✓ %s is %d%% complete after %.1f hours\n", entry.Game.Title, entry.ProgressPercent, entry.PlaytimeHours)
	return nil
}

// GamesRate updates rating, notes, and selected platform.
func (r *Runner) GamesRate(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	if err := r.store.LoadAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	existing, ok := r.store.Entry(id)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrNotFound, id)
	}

	// keep whatever the flags leave untouched
	rating := existing.Rating
	if cmd.IsSet("rating") {
		rating = cmd.Int("rating")
	}
	notes := existing.Notes
	if cmd.IsSet("notes") {
		notes = cmd.String("notes")
	}
	platform := existing.SelectedPlatform
	if cmd.IsSet("platform") {
		platform = cmd.String("platform")
	}

	entry, err := r.store.SetDetails(ctx, id, notes, rating, platform)
	if err != nil {
		return err
	}

	r.writePlain("✓ Updated %s\n", entry.Game.Title)
	return nil
}

// GamesRemove deletes an entry from the collection.
func (r *Runner) GamesRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	if err := r.store.LoadAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if err := r.store.Remove(ctx, id); err != nil {
		return err
	}

	r.writePlain("✓ Removed %s\n", id)
	return nil
}

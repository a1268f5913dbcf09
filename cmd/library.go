package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/questlog/internal/formatter"
	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/shared"
	"github.com/desertthunder/questlog/internal/views"
	"github.com/urfave/cli/v3"
)

// LibraryList prints the collection, filtered and sorted per the flags.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	sortKey, err := models.ParseSortKey(cmd.String("sort"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	if err := r.store.LoadAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	spec := models.FilterSpec{
		Search:   cmd.String("search"),
		Platform: cmd.String("platform"),
		Genre:    cmd.String("genre"),
		Sort:     sortKey,
	}
	entries := views.Apply(r.store.Snapshot(), spec)

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Library (%d games)", len(entries)))
	for _, e := range entries {
		var meta []string
		meta = append(meta, e.Status.Label())
		if e.SelectedPlatform != "" {
			meta = append(meta, e.SelectedPlatform)
		}
		if e.ProgressPercent > 0 {
			meta = append(meta, fmt.Sprintf("%d%%", e.ProgressPercent))
		}
		if e.Rating > 0 {
			meta = append(meta, strings.Repeat("★", e.Rating))
		}
		r.writePlain("%s  %s (%s)\n", e.ID, e.Game.Title, strings.Join(meta, ", "))
	}
	return nil
}

// LibraryExport writes the collection to a file in the requested format.
func (r *Runner) LibraryExport(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	output := cmd.String("output")
	title := cmd.String("title")

	if err := r.store.LoadAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	entries := r.store.Snapshot()

	r.logger.Infof("exporting %d entries as %s", len(entries), format)

	switch format {
	case "csv":
		result, err := formatter.WriteCSVExport(entries, strings.TrimSuffix(output, ".csv"))
		if err != nil {
			return err
		}
		r.writePlain("✓ Wrote %s and %s\n", result.EntriesFile, result.SummaryFile)
	case "md", "markdown":
		written, err := formatter.WriteMarkdownExport(title, entries, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Wrote %s\n", written)
	case "txt", "text":
		written, err := formatter.WriteTextExport(title, entries, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Wrote %s\n", written)
	case "json":
		return r.writeJSON(entries, true)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	return nil
}

// LibraryStats prints the dashboard aggregates.
func (r *Runner) LibraryStats(ctx context.Context, cmd *cli.Command) error {
	if err := r.store.LoadAll(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	summary := views.Aggregate(r.store.Snapshot())

	if cmd.Bool("json") {
		return r.writeJSON(summary, true)
	}

	r.writePlainHeader("Backlog Stats")
	r.writePlain("Games: %d\n", summary.Total)
	r.writePlain("Hours played: %.1f\n", summary.TotalHours)
	r.writePlain("Completion rate: %d%%\n\n", summary.CompletionRate)

	for _, st := range models.Statuses {
		r.writePlain("%-10s %d\n", st.Label(), summary.ByStatus[st])
	}

	if len(summary.TopPlatforms) > 0 {
		r.writePlain("\nTop platforms:\n")
		for _, p := range summary.TopPlatforms {
			r.writePlain("  %-20s %d\n", p.Platform, p.Count)
		}
	}

	if len(summary.Recent) > 0 {
		r.writePlain("\nRecently updated:\n")
		for _, e := range summary.Recent {
			r.writePlain("  %s (%s)\n", e.Game.Title, e.Status.Label())
		}
	}
	return nil
}

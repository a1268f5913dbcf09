// package formatter provides functions to export library data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/questlog/internal/models"
	"github.com/desertthunder/questlog/internal/shared"
	"github.com/desertthunder/questlog/internal/views"
)

// ExportToCSV converts collection entries to CSV format with columns:
// ID, Title, Status, Progress, Hours, Rating, Platform, Updated
func ExportToCSV(entries []models.CollectionEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Status", "Progress", "Hours", "Rating", "Platform", "Updated"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.ID,
			e.Game.Title,
			string(e.Status),
			strconv.Itoa(e.ProgressPercent),
			strconv.FormatFloat(e.PlaytimeHours, 'f', -1, 64),
			strconv.Itoa(e.Rating),
			e.SelectedPlatform,
			e.UpdatedAt.Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts collection entries to Markdown format, grouped
// by status in board column order.
func ExportToMarkdown(title string, entries []models.CollectionEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Games**: %d\n\n", len(entries)))

	for _, group := range views.GroupByStatus(entries) {
		if len(group.Entries) == 0 {
			continue
		}

		buf.WriteString(fmt.Sprintf("## %s (%d)\n\n", group.Status.Label(), len(group.Entries)))
		for i, e := range group.Entries {
			var meta []string
			if e.SelectedPlatform != "" {
				meta = append(meta, e.SelectedPlatform)
			}
			if e.ProgressPercent > 0 {
				meta = append(meta, fmt.Sprintf("%d%%", e.ProgressPercent))
			}
			if e.PlaytimeHours > 0 {
				meta = append(meta, fmt.Sprintf("%.1fh", e.PlaytimeHours))
			}
			if e.Rating > 0 {
				meta = append(meta, strings.Repeat("★", e.Rating))
			}

			line := fmt.Sprintf("%d. %s", i+1, e.Game.Title)
			if len(meta) > 0 {
				line = fmt.Sprintf("%s (%s)", line, strings.Join(meta, ", "))
			}
			buf.WriteString(line + "\n")
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts collection entries to plain text format.
func ExportToText(title string, entries []models.CollectionEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Library: %s\n", title))
	buf.WriteString(fmt.Sprintf("Games: %d\n\n", len(entries)))

	for i, e := range entries {
		buf.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, e.Game.Title, e.Status.Label()))
	}

	return buf.Bytes(), nil
}

// ToSummaryJSON generates a JSON representation of the dashboard aggregates.
func ToSummaryJSON(summary views.Summary) ([]byte, error) {
	return shared.MarshalJSON(summary, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	EntriesFile string
	SummaryFile string
}

// WriteCSVExport exports the library to CSV with an accompanying summary JSON file.
//
// Defaults to "library" as the base filename & creates {base}_games.csv and {base}_summary.json
func WriteCSVExport(entries []models.CollectionEntry, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "library"
	}

	csvData, err := ExportToCSV(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	entriesFile := baseFilepath + "_games.csv"
	if err := os.WriteFile(entriesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	summaryJSON, err := ToSummaryJSON(views.Aggregate(entries))
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary JSON: %w", err)
	}

	summaryFile := baseFilepath + "_summary.json"
	if err := os.WriteFile(summaryFile, summaryJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write summary file: %w", err)
	}

	return &CSVExportResult{
		EntriesFile: entriesFile,
		SummaryFile: summaryFile,
	}, nil
}

// WriteMarkdownExport exports the library to a Markdown file.
//
// Defaults to library.md as the filename.
func WriteMarkdownExport(title string, entries []models.CollectionEntry, filepath string) (string, error) {
	if filepath == "" {
		filepath = "library.md"
	}

	mdData, err := ExportToMarkdown(title, entries)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports the library to plain text format.
//
// Defaults to library.txt as the filename.
func WriteTextExport(title string, entries []models.CollectionEntry, filepath string) (string, error) {
	if filepath == "" {
		filepath = "library.txt"
	}

	textData, err := ExportToText(title, entries)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

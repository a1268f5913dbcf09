// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create a starter configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage authentication",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Check backend reachability and token state (calls /health)",
				Action: r.AuthStatus,
			},
		},
	}
}

// libraryCommand handles collection-wide read operations
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Browse and export your collection",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List collection entries with optional filters",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "platform",
						Usage: "Keep entries whose game lists this platform",
					},
					&cli.StringFlag{
						Name:  "genre",
						Usage: "Keep entries whose game lists this genre",
					},
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Case-insensitive title substring",
					},
					&cli.StringFlag{
						Name:  "sort",
						Usage: "Sort key (updated_desc, updated_asc, title_asc, title_desc, rating_desc, rating_asc)",
						Value: "updated_desc",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.LibraryList,
			},
			{
				Name:  "export",
				Usage: "Export the collection to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, md, txt, json)",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Library title used in exports",
						Value: "Game Library",
					},
				},
				Action: r.LibraryExport,
			},
			{
				Name:  "stats",
				Usage: "Show dashboard aggregates",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryStats,
			},
		},
	}
}

// gamesCommand handles per-entry operations
func gamesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "games",
		Aliases: []string{"g"},
		Usage:   "Search the catalog and manage entries",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search the game catalog",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: 9,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Result offset for pagination",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.GamesSearch,
			},
			{
				Name:  "add",
				Usage: "Add a game to the collection",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Game title",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Catalog provider name",
					},
					&cli.StringFlag{
						Name:  "provider-id",
						Usage: "Catalog provider identifier",
					},
					&cli.StringSliceFlag{
						Name:  "platform",
						Usage: "Platform the game is available on (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "genre",
						Usage: "Genre tag (repeatable)",
					},
					&cli.StringFlag{
						Name:  "release-date",
						Usage: "Release date (YYYY-MM-DD)",
					},
				},
				Action: r.GamesAdd,
			},
			{
				Name:  "move",
				Usage: "Move an entry to another status",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
					&cli.StringArg{Name: "status"},
				},
				Action: r.GamesMove,
			},
			{
				Name:  "progress",
				Usage: "Update completion progress and playtime",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "percent",
						Aliases: []string{"p"},
						Usage:   "Completion percentage (0-100)",
					},
					&cli.FloatFlag{
						Name:  "hours",
						Usage: "Total playtime in hours",
					},
				},
				Action: r.GamesProgress,
			},
			{
				Name:  "rate",
				Usage: "Set rating, notes, or the selected platform",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "rating",
						Usage: "Star rating (0-5)",
					},
					&cli.StringFlag{
						Name:  "notes",
						Usage: "Free-form notes",
					},
					&cli.StringFlag{
						Name:  "platform",
						Usage: "Platform the game is played on",
					},
				},
				Action: r.GamesRate,
			},
			{
				Name:  "remove",
				Usage: "Remove an entry from the collection",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.GamesRemove,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive backlog management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "board",
		Aliases: []string{"tui", "ui"},
		Usage:   "Launch the interactive kanban board",
		Action:  r.TUI,
	}
}

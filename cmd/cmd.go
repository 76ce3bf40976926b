// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func outputFlags(prettyDefault bool) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: prettyDefault,
		},
	}
}

func pageFlags() []cli.Flag {
	return append([]cli.Flag{
		&cli.IntFlag{
			Name:    "page",
			Aliases: []string{"p"},
			Usage:   "Result page to fetch",
			Value:   1,
		},
	}, outputFlags(false)...)
}

func movieIDArgs() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "id", UsageText: "TMDB movie id"}}
}

// setupCommand handles setup operations for the database and configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the key-value database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a configuration file from the built-in template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// authCommand handles the mock session
func authCommand(r *Runner) *cli.Command {
	credentialFlags := func(withName bool) []cli.Flag {
		flags := []cli.Flag{
			&cli.StringFlag{
				Name:     "email",
				Aliases:  []string{"e"},
				Usage:    "Account email",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "password",
				Usage:    "Account password (at least 6 characters)",
				Required: true,
			},
		}
		if withName {
			flags = append([]cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Usage:    "Display name",
					Required: true,
				},
			}, flags...)
		}
		return flags
	}

	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the local session",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Sign in and persist the session",
				Flags:  credentialFlags(false),
				Action: r.AuthLogin,
			},
			{
				Name:   "register",
				Usage:  "Create an account and persist the session",
				Flags:  credentialFlags(true),
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Clear the persisted session",
				Action: r.AuthLogout,
			},
			{
				Name:   "status",
				Usage:  "Show the current session",
				Flags:  outputFlags(true),
				Action: r.AuthStatus,
			},
		},
	}
}

// moviesCommand handles catalog browsing
func moviesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"m"},
		Usage:   "Browse the TMDB movie catalog",
		Commands: []*cli.Command{
			{
				Name:   "popular",
				Usage:  "List popular movies",
				Flags:  pageFlags(),
				Action: r.MoviesPopular,
			},
			{
				Name:    "top-rated",
				Aliases: []string{"top"},
				Usage:   "List top rated movies",
				Flags:   pageFlags(),
				Action:  r.MoviesTopRated,
			},
			{
				Name:    "now-playing",
				Aliases: []string{"now"},
				Usage:   "List movies now playing in theaters",
				Flags:   pageFlags(),
				Action:  r.MoviesNowPlaying,
			},
			{
				Name:  "search",
				Usage: "Search movies by title",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "query",
					},
				},
				Flags:  pageFlags(),
				Action: r.MoviesSearch,
			},
			{
				Name:      "details",
				Aliases:   []string{"show"},
				Usage:     "Show full details for a movie",
				Arguments: movieIDArgs(),
				Flags:     outputFlags(false),
				Action:    r.MoviesDetails,
			},
			{
				Name:   "genres",
				Usage:  "List movie genres",
				Flags:  outputFlags(false),
				Action: r.MoviesGenres,
			},
			{
				Name:      "open",
				Usage:     "Open a movie's TMDB page in the browser",
				Arguments: movieIDArgs(),
				Action:    r.MoviesOpen,
			},
		},
	}
}

// favoritesCommand handles the signed-in user's favorites
func favoritesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav", "favs"},
		Usage:   "Manage favorite movies (requires login)",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List favorites in the order they were added",
				Flags:  outputFlags(false),
				Action: r.FavoritesList,
			},
			{
				Name:      "add",
				Usage:     "Add a movie to favorites",
				Arguments: movieIDArgs(),
				Action:    r.FavoritesAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a movie from favorites",
				Arguments: movieIDArgs(),
				Action:    r.FavoritesRemove,
			},
			{
				Name:      "toggle",
				Usage:     "Add a movie if absent, otherwise remove it",
				Arguments: movieIDArgs(),
				Action:    r.FavoritesToggle,
			},
			{
				Name:   "clear",
				Usage:  "Remove all favorites",
				Action: r.FavoritesClear,
			},
			{
				Name:  "export",
				Usage: "Export favorites to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: json, csv, markdown, txt",
						Value:   "json",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: favorites.{ext})",
					},
					&cli.BoolFlag{
						Name:  "details",
						Usage: "Fetch full details for runtime and genres",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent details requests (max 10)",
						Value: 4,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Details requests per second",
						Value: 5,
					},
				},
				Action: r.FavoritesExport,
			},
		},
	}
}

// storeCommand inspects the persisted key-value store
func storeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Inspect the persisted key-value store",
		Commands: []*cli.Command{
			{
				Name:   "keys",
				Usage:  "List stored keys",
				Action: r.StoreKeys,
			},
			{
				Name:  "get",
				Usage: "Print the raw value stored under a key",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "key",
					},
				},
				Action: r.StoreGet,
			},
		},
	}
}

// apiCommand handles direct TMDB API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the TMDB API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to a TMDB path, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive movie browser",
		Action:  r.TUI,
	}
}

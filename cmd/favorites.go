package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/tasks"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints favorites in insertion order.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser()
	if err != nil {
		return err
	}
	if err := r.favorites.Load(); err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	movies := r.favorites.List()
	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("%s's Favorites", user.Name))
	if len(movies) == 0 {
		return r.writePlain("No favorites yet. Add one with 'marquee favorites add <id>'.\n")
	}
	for _, m := range movies {
		r.writePlain("%-8d %s\n", m.ID, formatter.MovieLine(m))
	}
	r.writePlainln("%d favorite(s)", len(movies))
	return nil
}

// lookupMovie fetches the catalog record for the id argument.
func (r *Runner) lookupMovie(ctx context.Context, cmd *cli.Command) (models.Movie, error) {
	if err := r.requireCatalog(); err != nil {
		return models.Movie{}, err
	}
	id, err := movieIDArg(cmd)
	if err != nil {
		return models.Movie{}, err
	}

	d, err := r.catalog.Details(ctx, id)
	if err != nil {
		return models.Movie{}, err
	}
	return d.AsMovie(), nil
}

// FavoritesAdd appends a movie to favorites. Adding an existing favorite changes nothing.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireUser(); err != nil {
		return err
	}
	if err := r.favorites.Load(); err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}
	movie, err := r.lookupMovie(ctx, cmd)
	if err != nil {
		return err
	}

	if r.favorites.IsFavorite(movie.ID) {
		return r.writePlain("%s is already a favorite\n", movie.Title)
	}
	if err := r.favorites.Add(movie); err != nil {
		return err
	}
	return r.writePlain("♥ Added %s\n", formatter.MovieLine(movie))
}

// FavoritesRemove removes a movie from favorites by id.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireUser(); err != nil {
		return err
	}
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	if err := r.favorites.Load(); err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}
	if !r.favorites.IsFavorite(id) {
		return r.writePlain("Movie %d is not a favorite\n", id)
	}
	if err := r.favorites.Remove(id); err != nil {
		return err
	}
	return r.writePlain("✓ Removed movie %d\n", id)
}

// FavoritesToggle adds a movie when absent and removes it when present.
func (r *Runner) FavoritesToggle(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireUser(); err != nil {
		return err
	}
	movie, err := r.lookupMovie(ctx, cmd)
	if err != nil {
		return err
	}

	added, err := r.favorites.Toggle(movie)
	if err != nil {
		return err
	}
	if added {
		return r.writePlain("♥ Added %s\n", formatter.MovieLine(movie))
	}
	return r.writePlain("✓ Removed %s\n", formatter.MovieLine(movie))
}

// FavoritesClear removes every favorite.
func (r *Runner) FavoritesClear(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireUser(); err != nil {
		return err
	}
	if err := r.favorites.Load(); err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	n := r.favorites.Len()
	if err := r.favorites.Clear(); err != nil {
		return err
	}
	return r.writePlain("✓ Cleared %d favorite(s)\n", n)
}

// FavoritesExport writes favorites to a file, optionally enriched with fetched details.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireUser()
	if err != nil {
		return err
	}
	if err := r.favorites.Load(); err != nil {
		return fmt.Errorf("failed to load favorites: %w", err)
	}

	withDetails := cmd.Bool("details")
	if withDetails {
		if err := r.requireCatalog(); err != nil {
			return err
		}
	}

	opts := tasks.ExportOpts{
		Format:       cmd.String("format"),
		OutputPath:   cmd.String("output"),
		Owner:        user.Name,
		WithDetails:  withDetails,
		ImageBaseURL: r.config.Catalog.ImageBaseURL,
		Fetch: tasks.FetchOpts{
			NumWorkers: cmd.Int("workers"),
			RateLimit:  cmd.Float("rate"),
		},
	}

	if withDetails {
		if genres, err := r.catalog.Genres(ctx); err != nil {
			r.logger.Warn("failed to fetch genres, exporting without names", "error", err)
		} else {
			opts.Genres = genres
		}
	}

	fetcher := r.fetcher
	if fetcher == nil {
		fetcher = tasks.NewDetailsFetcher(nil, r.logger)
	}

	progressCh := make(chan tasks.ProgressUpdate, 20)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchDetails:
				if update.Step == 0 {
					r.writePlain("📥 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			case tasks.WriteExport:
				r.writePlain("📝 %s\n", update.Message)
			}
		}
	}()

	result, err := fetcher.ExportFavorites(ctx, progressCh, r.favorites.List(), opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Export Complete")
	r.writePlain("Movies: %d\n", result.Count)
	if result.Details != nil {
		r.writePlain("Details: %d fetched, %d failed\n", result.Details.Succeeded, result.Details.Failed)
	}
	r.writePlain("File: %s\n", result.Path)
	return nil
}

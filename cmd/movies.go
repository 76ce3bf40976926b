package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/urfave/cli/v3"
)

const movieURLFormat = "https://www.themoviedb.org/movie/%d"

type pageFetcher func(ctx context.Context, page int) (*models.Page[models.Movie], error)

// MoviesPopular lists popular movies.
func (r *Runner) MoviesPopular(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	return r.listMovies(ctx, cmd, "Popular Movies", r.catalog.Popular)
}

// MoviesTopRated lists top rated movies.
func (r *Runner) MoviesTopRated(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	return r.listMovies(ctx, cmd, "Top Rated Movies", r.catalog.TopRated)
}

// MoviesNowPlaying lists movies currently in theaters.
func (r *Runner) MoviesNowPlaying(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	return r.listMovies(ctx, cmd, "Now Playing", r.catalog.NowPlaying)
}

// MoviesSearch searches movies by title.
func (r *Runner) MoviesSearch(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	search := func(ctx context.Context, page int) (*models.Page[models.Movie], error) {
		return r.catalog.Search(ctx, query, page)
	}
	return r.listMovies(ctx, cmd, fmt.Sprintf("Results for %q", query), search)
}

func (r *Runner) listMovies(ctx context.Context, cmd *cli.Command, title string, fetch pageFetcher) error {
	page := cmd.Int("page")
	if page < 1 {
		return fmt.Errorf("%w: page must be at least 1, got %d", shared.ErrInvalidFlag, page)
	}

	r.logger.Debug("fetching movies", "list", title, "page", page)
	result, err := fetch(ctx, page)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	r.writePlainHeader(title)
	if len(result.Results) == 0 {
		return r.writePlain("No movies found\n")
	}

	for _, m := range result.Results {
		r.writePlain("%-8d %s\n", m.ID, formatter.MovieLine(m))
	}
	r.writePlainln("Page %d of %d (%d results)", result.Page, max(result.TotalPages, 1), result.TotalResults)
	return nil
}

// MoviesDetails prints the full record for a movie.
func (r *Runner) MoviesDetails(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	d, err := r.catalog.Details(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(d, cmd.Bool("pretty"))
	}

	title := d.Title
	if y := d.Year(); y != "" {
		title = fmt.Sprintf("%s (%s)", title, y)
	}
	r.writePlainHeader(title)
	if d.Tagline != nil && *d.Tagline != "" {
		r.writePlain("%s\n\n", *d.Tagline)
	}

	genres := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		genres[i] = g.Name
	}

	r.writePlain("Rating:   ★ %s (%d votes)\n", formatter.FormatRating(d.VoteAverage), d.VoteCount)
	r.writePlain("Released: %s\n", formatter.FormatReleaseDate(d.ReleaseDate))
	r.writePlain("Runtime:  %s\n", formatter.FormatRuntime(d.Runtime))
	if len(genres) > 0 {
		r.writePlain("Genres:   %s\n", strings.Join(genres, ", "))
	}
	if d.Status != "" {
		r.writePlain("Status:   %s\n", d.Status)
	}
	r.writePlain("Poster:   %s\n", formatter.ImageURL(r.config.Catalog.ImageBaseURL, d.PosterPath, formatter.DefaultImageSize))
	if d.Overview != "" {
		r.writePlainln("%s", d.Overview)
	}

	if r.isSignedIn() && r.favorites.IsFavorite(d.ID) {
		r.writePlainln("♥ In your favorites")
	}
	return nil
}

// isSignedIn restores the session quietly and reports whether a user is present.
func (r *Runner) isSignedIn() bool {
	_, err := r.requireUser()
	return err == nil
}

// MoviesGenres lists genre ids and names.
func (r *Runner) MoviesGenres(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	genres, err := r.catalog.Genres(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Genres")
	for _, g := range genres {
		r.writePlain("%-8d %s\n", g.ID, g.Name)
	}
	return nil
}

// MoviesOpen opens the TMDB page for a movie in the default browser.
func (r *Runner) MoviesOpen(ctx context.Context, cmd *cli.Command) error {
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	url := fmt.Sprintf(movieURLFormat, id)
	r.logger.Info("opening browser", "url", url)
	if err := r.openURL(url); err != nil {
		r.writePlain("Could not open a browser. Visit:\n%s\n", url)
		return err
	}
	return r.writePlain("✓ Opened %s\n", url)
}

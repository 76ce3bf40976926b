package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/desertthunder/marquee/internal/models"
)

// ExportOpts contains configuration for a favorites export.
type ExportOpts struct {
	Format       string // Export format: json, csv, markdown, txt
	OutputPath   string // Destination file (default: favorites.{ext})
	Owner        string // Display name used in headings
	WithDetails  bool   // Fetch full records for runtime, genres and taglines
	Genres       []models.Genre
	ImageBaseURL string
	Fetch        FetchOpts
}

// ExportResult summarizes an export.
type ExportResult struct {
	Path    string
	Count   int
	Details *FetchResult
}

// ExportFavorites writes movies to a file, optionally enriched with details fetched from the catalog.
//
// Failed details lookups do not fail the export; those movies are written without enrichment.
func (f *DetailsFetcher) ExportFavorites(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	movies []models.Movie,
	opts ExportOpts,
) (*ExportResult, error) {
	export := &formatter.Favorites{
		Owner:        opts.Owner,
		ExportedAt:   time.Now().UTC(),
		Movies:       movies,
		Genres:       opts.Genres,
		ImageBaseURL: opts.ImageBaseURL,
	}
	result := &ExportResult{Count: len(movies)}

	if opts.WithDetails && len(movies) > 0 {
		ids := make([]int, len(movies))
		for i, m := range movies {
			ids[i] = m.ID
		}

		fetched, err := f.FetchAll(ctx, progress, ids, opts.Fetch)
		if err != nil {
			return nil, fmt.Errorf("details fetch interrupted: %w", err)
		}
		result.Details = fetched
		export.Details = fetched.ByID()
	}

	sendProgress(progress, writingExportUpdate(opts.Format, len(movies)))

	path, err := formatter.WriteExport(export, opts.Format, opts.OutputPath)
	if err != nil {
		return nil, err
	}
	result.Path = path
	return result, nil
}

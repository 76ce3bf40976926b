package services

import (
	"context"

	"github.com/desertthunder/marquee/internal/models"
)

// Catalog is the remote, read-only source of movie records.
type Catalog interface {
	// Popular returns a page of currently popular movies.
	Popular(ctx context.Context, page int) (*models.Page[models.Movie], error)

	// TopRated returns a page of the highest rated movies.
	TopRated(ctx context.Context, page int) (*models.Page[models.Movie], error)

	// NowPlaying returns a page of movies currently in theaters.
	NowPlaying(ctx context.Context, page int) (*models.Page[models.Movie], error)

	// Search returns movies matching query. A blank query yields an empty first page without a request.
	Search(ctx context.Context, query string, page int) (*models.Page[models.Movie], error)

	// Details retrieves the full record for a movie.
	Details(ctx context.Context, id int) (*models.MovieDetails, error)

	// Genres returns the catalog's movie genre list.
	Genres(ctx context.Context) ([]models.Genre, error)
}

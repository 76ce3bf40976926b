package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	"golang.org/x/oauth2"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
)

// TMDBService implements [Catalog] against the TMDB v3 API.
type TMDBService struct {
	api    *APIService
	logger *log.Logger
}

// NewTMDBService builds a TMDB client from catalog settings.
//
// When AccessToken is set it is sent as a Bearer token via an [oauth2.StaticTokenSource];
// otherwise APIKey is sent as the api_key query parameter.
func NewTMDBService(cfg shared.CatalogConfig, logger *log.Logger) *TMDBService {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var client *http.Client
	if cfg.AccessToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"})
		client = oauth2.NewClient(context.Background(), ts)
	} else {
		client = &http.Client{}
	}
	client.Timeout = cfg.Timeout

	api := NewAPIService(cfg.BaseURL, client)
	if cfg.AccessToken == "" && cfg.APIKey != "" {
		api.SetQueryParam("api_key", cfg.APIKey)
	}
	api.SetRateLimit(cfg.RateLimit)

	return &TMDBService{api: api, logger: logger}
}

// NewTMDBServiceWithAPI wraps an existing transport.
func NewTMDBServiceWithAPI(api *APIService, logger *log.Logger) *TMDBService {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TMDBService{api: api, logger: logger}
}

// API exposes the underlying raw transport.
func (s *TMDBService) API() *APIService { return s.api }

func (s *TMDBService) Popular(ctx context.Context, page int) (*models.Page[models.Movie], error) {
	return s.moviePage(ctx, "failed to fetch popular movies", "/movie/popular", page, nil)
}

func (s *TMDBService) TopRated(ctx context.Context, page int) (*models.Page[models.Movie], error) {
	return s.moviePage(ctx, "failed to fetch top rated movies", "/movie/top_rated", page, nil)
}

func (s *TMDBService) NowPlaying(ctx context.Context, page int) (*models.Page[models.Movie], error) {
	return s.moviePage(ctx, "failed to fetch now playing movies", "/movie/now_playing", page, nil)
}

func (s *TMDBService) Search(ctx context.Context, query string, page int) (*models.Page[models.Movie], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &models.Page[models.Movie]{Page: 1, Results: []models.Movie{}}, nil
	}
	return s.moviePage(ctx, "failed to search movies", "/search/movie", page, url.Values{"query": {query}})
}

func (s *TMDBService) Details(ctx context.Context, id int) (*models.MovieDetails, error) {
	var details models.MovieDetails
	if err := s.getJSON(ctx, "failed to fetch movie details", fmt.Sprintf("/movie/%d", id), nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (s *TMDBService) Genres(ctx context.Context) ([]models.Genre, error) {
	var resp struct {
		Genres []models.Genre `json:"genres"`
	}
	if err := s.getJSON(ctx, "failed to fetch genres", "/genre/movie/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Genres, nil
}

func (s *TMDBService) moviePage(ctx context.Context, op, path string, page int, params url.Values) (*models.Page[models.Movie], error) {
	if page < 1 {
		page = 1
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("page", strconv.Itoa(page))

	var result models.Page[models.Movie]
	if err := s.getJSON(ctx, op, path, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// getJSON performs a GET and decodes a 2xx JSON body into out. Failures wrap [shared.ErrFetchFailed].
func (s *TMDBService) getJSON(ctx context.Context, op, path string, params url.Values, out any) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	start := time.Now()
	resp, err := s.api.Get(ctx, path)
	if err != nil {
		s.logger.Error(op, "path", path, "error", err)
		return fmt.Errorf("%w: %s: %w", shared.ErrFetchFailed, op, err)
	}
	s.logger.Debug("catalog request", "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if !resp.OK() {
		cause := statusError(resp.StatusCode)
		s.logger.Error(op, "path", path, "error", cause)
		return fmt.Errorf("%w: %s: %w", shared.ErrFetchFailed, op, cause)
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("%w: %s: failed to decode response: %w", shared.ErrFetchFailed, op, err)
	}
	return nil
}

func statusError(code int) error {
	switch {
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", shared.ErrMovieNotFound, code)
	case code >= 500:
		return fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, code)
	default:
		return fmt.Errorf("HTTP error status %d", code)
	}
}

package tasks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
	"golang.org/x/time/rate"
)

const (
	DefaultWorkers   = 4
	MaxWorkers       = 10
	DefaultRateLimit = 5.0
)

// FetchOpts configures [DetailsFetcher.FetchAll].
type FetchOpts struct {
	NumWorkers int     // Concurrent workers (default: 4, max: 10)
	RateLimit  float64 // Requests per second (default: 5)
}

// DetailsResult is the outcome for one movie id.
type DetailsResult struct {
	ID      int
	Details *models.MovieDetails
	Err     error
}

// FetchResult collects per-id outcomes in input order.
type FetchResult struct {
	Results   []DetailsResult
	Succeeded int
	Failed    int
}

// ByID returns the successfully fetched details keyed by movie id.
func (r *FetchResult) ByID() map[int]*models.MovieDetails {
	out := make(map[int]*models.MovieDetails, r.Succeeded)
	for _, res := range r.Results {
		if res.Err == nil && res.Details != nil {
			out[res.ID] = res.Details
		}
	}
	return out
}

// DetailsFetcher fetches full movie records for many ids concurrently.
type DetailsFetcher struct {
	catalog services.Catalog
	logger  *log.Logger
}

// NewDetailsFetcher creates a fetcher over catalog.
func NewDetailsFetcher(catalog services.Catalog, logger *log.Logger) *DetailsFetcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &DetailsFetcher{catalog: catalog, logger: logger}
}

type detailsJob struct {
	index int
	id    int
}

// FetchAll fetches details for ids with a rate-limited worker pool.
//
// Individual failures are recorded in the result rather than aborting the batch. If ctx is
// cancelled, ids that were not attempted are recorded with the context error and ctx.Err() is
// returned alongside the partial result.
func (f *DetailsFetcher) FetchAll(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	ids []int,
	opts FetchOpts,
) (*FetchResult, error) {
	if f.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = DefaultWorkers
	}
	if opts.NumWorkers > MaxWorkers {
		opts.NumWorkers = MaxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = DefaultRateLimit
	}

	result := &FetchResult{Results: make([]DetailsResult, len(ids))}
	attempted := make([]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan detailsJob)
	results := make(chan detailsJob, len(ids))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go f.worker(ctx, &wg, limiter, jobs, results, result.Results)
	}

	sendProgress(progress, fetchingDetailsUpdate(len(ids)))

	go func() {
		defer close(jobs)
		for i, id := range ids {
			select {
			case <-ctx.Done():
				return
			case jobs <- detailsJob{index: i, id: id}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for job := range results {
		completed++
		attempted[job.index] = true
		res := result.Results[job.index]
		if res.Err == nil {
			result.Succeeded++
			sendProgress(progress, detailsFetchedUpdate(completed, len(ids), res))
		} else {
			result.Failed++
			f.logger.Warn("failed to fetch movie details", "id", res.ID, "error", res.Err)
			sendProgress(progress, detailsFailedUpdate(completed, len(ids), res))
		}
	}

	if err := ctx.Err(); err != nil {
		for i, id := range ids {
			if !attempted[i] {
				result.Results[i] = DetailsResult{ID: id, Err: err}
				result.Failed++
			}
		}
		return result, err
	}
	return result, nil
}

// worker writes each outcome into its own slot of out, then reports the job on results.
func (f *DetailsFetcher) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan detailsJob,
	results chan<- detailsJob,
	out []DetailsResult,
) {
	defer wg.Done()

	for job := range jobs {
		res := DetailsResult{ID: job.id}
		if err := limiter.Wait(ctx); err != nil {
			res.Err = err
		} else {
			res.Details, res.Err = f.catalog.Details(ctx, job.id)
		}
		out[job.index] = res
		results <- job
	}
}

// Package tasks runs background work for the CLI and TUI with real-time progress reporting.
//
// # Details Fetching
//
// [DetailsFetcher.FetchAll] fetches full movie records for many ids using a worker pool that
// shares one [rate.Limiter]. Results keep input order, and a failed lookup is recorded without
// aborting the batch.
//
// [DetailsFetcher.ExportFavorites] builds on it to write a favorites export enriched with
// runtimes, genres and taglines.
//
// # Progress Reporting
//
// # All operations use non-blocking channels for progress updates
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking.
//
// # Debouncing
//
// [Debouncer] implements a cancellable delayed task. Each new input cancels the prior pending
// task and schedules a new one after a fixed quiet interval. The TUI uses it for search.
package tasks

// Package services defines the [Catalog] interface for the remote movie catalog and implements it for TMDB.
//
// # Catalog Interface
//
// The catalog is read-only and paginated. Pages start at 1.
//
// # TMDB Implementation
//
// [TMDBService] talks to the TMDB v3 REST API through [APIService], a raw GET transport that is
// also used by the `api get` debugging command.
//
// Two authentication modes are supported:
//   - api_key: appended as a query parameter on every request
//   - access_token: a v4 read access token sent as a Bearer token through an [oauth2] client
//
// Requests are throttled client-side with a [rate.Limiter].
//
// # Error Handling
//
// Every catalog failure wraps [shared.ErrFetchFailed] with a message naming the operation,
// e.g. "failed to fetch popular movies". A 404 additionally wraps
// [shared.ErrMovieNotFound] and a 5xx wraps [shared.ErrServiceUnavailable].
package services

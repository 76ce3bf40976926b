// Package models defines the domain entities shared by the catalog client, the session layer and the favorites store.
//
// Catalog types mirror the TMDB v3 JSON schema and are treated as read-only values:
//   - [Movie] : list item returned by popular, top-rated, now-playing and search endpoints
//   - [MovieDetails] : full record returned by the details endpoint
//   - [Genre] : genre id/name pair
//   - [Page] : paginated envelope for list endpoints
//
// [User] is issued by the mock identity layer and persisted as JSON alongside the session token.
package models

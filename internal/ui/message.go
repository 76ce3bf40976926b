package ui

import (
	"github.com/desertthunder/marquee/internal/auth"
	"github.com/desertthunder/marquee/internal/models"
)

// sessionChangedMsg carries a session snapshot published by [auth.Session].
type sessionChangedMsg auth.State

// favoritesChangedMsg carries a favorites snapshot published by the favorites store.
type favoritesChangedMsg []models.Movie

type loadedMsg struct {
	what string
	err  error
}

type authResultMsg struct {
	err error
}

type moviesFetchedMsg struct {
	tab   Tab
	query string
	page  *models.Page[models.Movie]
	err   error
}

type detailsFetchedMsg struct {
	details *models.MovieDetails
	err     error
}

type genresFetchedMsg struct {
	genres []models.Genre
	err    error
}

// searchReadyMsg fires once the search input has been quiet for the debounce interval.
type searchReadyMsg struct {
	query string
	seq   int
}

type toggledMsg struct {
	movie models.Movie
	added bool
	err   error
}

type statusMsg struct {
	text string
	err  error
}

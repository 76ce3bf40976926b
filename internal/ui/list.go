package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/desertthunder/marquee/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie    models.Movie
	favorite bool
	genres   []models.Genre
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string {
	if i.favorite {
		return "♥ " + i.movie.Title
	}
	return i.movie.Title
}
func (i movieItem) Description() string {
	parts := []string{}
	if y := i.movie.Year(); y != "" {
		parts = append(parts, y)
	}
	parts = append(parts, "★ "+formatter.FormatRating(i.movie.VoteAverage))
	if names := formatter.GenreNames(i.movie.GenreIDs, i.genres); len(names) > 0 {
		parts = append(parts, strings.Join(names, ", "))
	}
	return strings.Join(parts, " • ")
}

func movieItems(movies []models.Movie, isFavorite func(int) bool, genres []models.Genre) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m, favorite: isFavorite(m.ID), genres: genres}
	}
	return items
}

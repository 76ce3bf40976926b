// package formatter renders catalog values for display and exports favorites to files (CSV, Markdown, plain text, JSON)
package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/marquee/internal/models"
)

const (
	// PlaceholderImage stands in for movies without artwork.
	PlaceholderImage = "/placeholder.svg?height=750&width=500&text=No+Image"

	DefaultImageSize = "w500"
	releaseLayout    = "2006-01-02"
	displayLayout    = "January 2, 2006"
)

// FormatRating converts a 10-point vote average to a 5-point scale with one decimal.
func FormatRating(voteAverage float64) string {
	return fmt.Sprintf("%.1f", voteAverage/2)
}

// FormatReleaseDate renders an ISO date as "January 2, 2006". Unparseable input is returned unchanged.
func FormatReleaseDate(date string) string {
	t, err := time.Parse(releaseLayout, date)
	if err != nil {
		return date
	}
	return t.Format(displayLayout)
}

// FormatRuntime renders minutes as "2h 5m", "2h" or "45m".
func FormatRuntime(minutes *int) string {
	if minutes == nil || *minutes <= 0 {
		return "Runtime unknown"
	}

	h, m := *minutes/60, *minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// ImageURL joins an image path onto base at size. Missing paths yield [PlaceholderImage].
func ImageURL(base string, path *string, size string) string {
	if path == nil || *path == "" {
		return PlaceholderImage
	}
	if size == "" {
		size = DefaultImageSize
	}
	return strings.TrimRight(base, "/") + "/" + size + *path
}

// GenreNames maps ids to names using genres, skipping ids that are not listed.
func GenreNames(ids []int, genres []models.Genre) []string {
	byID := make(map[int]string, len(genres))
	for _, g := range genres {
		byID[g.ID] = g.Name
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// Truncate shortens s to at most n runes, ending with an ellipsis when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// MovieLine is a one-line summary: "Title (Year) ★ 4.2".
func MovieLine(m models.Movie) string {
	var b strings.Builder
	b.WriteString(m.Title)
	if y := m.Year(); y != "" {
		fmt.Fprintf(&b, " (%s)", y)
	}
	fmt.Fprintf(&b, " ★ %s", FormatRating(m.VoteAverage))
	return b.String()
}

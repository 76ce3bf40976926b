package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

// Favorites is the input to every favorites export.
//
// Details and Genres are optional; when present they enrich the output.
type Favorites struct {
	Owner        string                       `json:"owner,omitempty"`
	ExportedAt   time.Time                    `json:"exported_at"`
	Movies       []models.Movie               `json:"movies"`
	Details      map[int]*models.MovieDetails `json:"details,omitempty"`
	Genres       []models.Genre               `json:"-"`
	ImageBaseURL string                       `json:"-"`
}

func (f *Favorites) genres(m models.Movie) string {
	if d, ok := f.Details[m.ID]; ok && d != nil && len(d.Genres) > 0 {
		names := make([]string, len(d.Genres))
		for i, g := range d.Genres {
			names[i] = g.Name
		}
		return strings.Join(names, ", ")
	}
	return strings.Join(GenreNames(m.GenreIDs, f.Genres), ", ")
}

func (f *Favorites) runtime(m models.Movie) string {
	if d, ok := f.Details[m.ID]; ok && d != nil && d.Runtime != nil {
		return FormatRuntime(d.Runtime)
	}
	return ""
}

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "markdown", "txt"}

// Extension returns the file extension for format.
func Extension(format string) string {
	switch format {
	case "csv":
		return ".csv"
	case "markdown", "md":
		return ".md"
	case "txt", "text":
		return ".txt"
	default:
		return ".json"
	}
}

// ExportToCSV converts favorites to CSV with columns: ID, Title, Year, Rating, Release Date, Genres, Runtime
func ExportToCSV(f *Favorites) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Year", "Rating", "Release Date", "Genres", "Runtime"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, m := range f.Movies {
		record := []string{
			strconv.Itoa(m.ID),
			m.Title,
			m.Year(),
			FormatRating(m.VoteAverage),
			m.ReleaseDate,
			f.genres(m),
			f.runtime(m),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts favorites to a Markdown document with one section per movie.
func ExportToMarkdown(f *Favorites) ([]byte, error) {
	var buf bytes.Buffer

	title := "Favorites"
	if f.Owner != "" {
		title = fmt.Sprintf("%s's Favorites", f.Owner)
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Movies**: %d\n", len(f.Movies))
	if !f.ExportedAt.IsZero() {
		fmt.Fprintf(&buf, "**Exported**: %s\n", f.ExportedAt.Format(time.RFC1123))
	}
	buf.WriteString("\n")

	for i, m := range f.Movies {
		fmt.Fprintf(&buf, "## %d. %s", i+1, m.Title)
		if y := m.Year(); y != "" {
			fmt.Fprintf(&buf, " (%s)", y)
		}
		buf.WriteString("\n\n")

		if f.ImageBaseURL != "" && m.PosterPath != nil {
			fmt.Fprintf(&buf, "![Poster](%s)\n\n", ImageURL(f.ImageBaseURL, m.PosterPath, "w185"))
		}

		fmt.Fprintf(&buf, "- **Rating**: %s/5\n", FormatRating(m.VoteAverage))
		if m.ReleaseDate != "" {
			fmt.Fprintf(&buf, "- **Released**: %s\n", FormatReleaseDate(m.ReleaseDate))
		}
		if g := f.genres(m); g != "" {
			fmt.Fprintf(&buf, "- **Genres**: %s\n", g)
		}
		if r := f.runtime(m); r != "" {
			fmt.Fprintf(&buf, "- **Runtime**: %s\n", r)
		}
		if d, ok := f.Details[m.ID]; ok && d != nil && d.Tagline != nil && *d.Tagline != "" {
			fmt.Fprintf(&buf, "\n> %s\n", *d.Tagline)
		}
		if m.Overview != "" {
			fmt.Fprintf(&buf, "\n%s\n", m.Overview)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts favorites to a numbered plain text list.
func ExportToText(f *Favorites) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Favorites: %d\n\n", len(f.Movies))
	for i, m := range f.Movies {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, MovieLine(m))
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders favorites as indented JSON.
func ExportToJSON(f *Favorites) ([]byte, error) {
	return shared.MarshalJSON(f, true)
}

// Export renders favorites in format. Unknown formats are rejected.
func Export(f *Favorites, format string) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(f)
	case "markdown", "md":
		return ExportToMarkdown(f)
	case "txt", "text":
		return ExportToText(f)
	case "json", "":
		return ExportToJSON(f)
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport renders favorites and writes them to path, creating parent directories.
//
// Defaults to favorites{ext} in the working directory. Returns the path written.
func WriteExport(f *Favorites, format, path string) (string, error) {
	data, err := Export(f, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = "favorites" + Extension(format)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}
	return path, nil
}

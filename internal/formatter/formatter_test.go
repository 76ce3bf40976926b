package formatter

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
	th "github.com/desertthunder/marquee/internal/testing"
)

func TestFormatters(t *testing.T) {
	t.Run("FormatRating", func(t *testing.T) {
		tests := []struct {
			in   float64
			want string
		}{
			{8.4, "4.2"},
			{10, "5.0"},
			{0, "0.0"},
			{7.25, "3.6"},
		}
		for _, tt := range tests {
			if got := FormatRating(tt.in); got != tt.want {
				t.Errorf("FormatRating(%v) = %q, want %q", tt.in, got, tt.want)
			}
		}
	})

	t.Run("FormatReleaseDate", func(t *testing.T) {
		if got := FormatReleaseDate("1999-10-15"); got != "October 15, 1999" {
			t.Errorf("unexpected date %q", got)
		}
		if got := FormatReleaseDate("sometime"); got != "sometime" {
			t.Errorf("expected input to be returned unchanged, got %q", got)
		}
		if got := FormatReleaseDate(""); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("FormatRuntime", func(t *testing.T) {
		tests := []struct {
			in   *int
			want string
		}{
			{nil, "Runtime unknown"},
			{th.Ptr(0), "Runtime unknown"},
			{th.Ptr(45), "45m"},
			{th.Ptr(120), "2h"},
			{th.Ptr(125), "2h 5m"},
		}
		for _, tt := range tests {
			if got := FormatRuntime(tt.in); got != tt.want {
				t.Errorf("FormatRuntime = %q, want %q", got, tt.want)
			}
		}
	})

	t.Run("ImageURL", func(t *testing.T) {
		base := "https://image.tmdb.org/t/p/"
		if got := ImageURL(base, th.Ptr("/a.jpg"), "w1280"); got != "https://image.tmdb.org/t/p/w1280/a.jpg" {
			t.Errorf("unexpected url %q", got)
		}
		if got := ImageURL(base, th.Ptr("/a.jpg"), ""); got != "https://image.tmdb.org/t/p/w500/a.jpg" {
			t.Errorf("expected default size, got %q", got)
		}
		if got := ImageURL(base, nil, "w500"); got != PlaceholderImage {
			t.Errorf("expected placeholder, got %q", got)
		}
		if got := ImageURL(base, th.Ptr(""), "w500"); got != PlaceholderImage {
			t.Errorf("expected placeholder for empty path, got %q", got)
		}
	})

	t.Run("GenreNames", func(t *testing.T) {
		genres := []models.Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}}
		got := GenreNames([]int{18, 99, 28}, genres)
		if strings.Join(got, ",") != "Drama,Action" {
			t.Errorf("unexpected names %v", got)
		}
		if len(GenreNames(nil, genres)) != 0 {
			t.Error("expected no names")
		}
	})

	t.Run("Truncate", func(t *testing.T) {
		if got := Truncate("héllo world", 5); got != "héll…" {
			t.Errorf("unexpected %q", got)
		}
		if got := Truncate("short", 10); got != "short" {
			t.Errorf("unexpected %q", got)
		}
	})

	t.Run("MovieLine", func(t *testing.T) {
		got := MovieLine(models.Movie{Title: "Heat", ReleaseDate: "1995-12-15", VoteAverage: 8})
		if got != "Heat (1995) ★ 4.0" {
			t.Errorf("unexpected line %q", got)
		}
		if got := MovieLine(models.Movie{Title: "Untitled"}); got != "Untitled ★ 0.0" {
			t.Errorf("unexpected line %q", got)
		}
	})
}

func testFavorites() *Favorites {
	return &Favorites{
		Owner:      "ada",
		ExportedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Movies: []models.Movie{
			{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", VoteAverage: 8.4, GenreIDs: []int{18}, Overview: "An insomniac office worker...", PosterPath: th.Ptr("/fc.jpg")},
			{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", VoteAverage: 8.2, GenreIDs: []int{28, 878}},
		},
		Details: map[int]*models.MovieDetails{
			603: {Runtime: th.Ptr(136), Tagline: th.Ptr("Welcome to the Real World."), Genres: []models.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}}},
		},
		Genres:       []models.Genre{{ID: 18, Name: "Drama"}},
		ImageBaseURL: "https://image.tmdb.org/t/p",
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testFavorites())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "ID,Title,Year,Rating,Release Date,Genres,Runtime" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[1] != "550,Fight Club,1999,4.2,1999-10-15,Drama," {
			t.Errorf("unexpected first row %q", lines[1])
		}
		if lines[2] != `603,The Matrix,1999,4.1,1999-03-30,"Action, Science Fiction",2h 16m` {
			t.Errorf("unexpected second row %q", lines[2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testFavorites())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}
		output := string(data)

		for _, want := range []string{
			"# ada's Favorites",
			"**Movies**: 2",
			"## 1. Fight Club (1999)",
			"![Poster](https://image.tmdb.org/t/p/w185/fc.jpg)",
			"- **Released**: October 15, 1999",
			"- **Genres**: Drama",
			"- **Runtime**: 2h 16m",
			"> Welcome to the Real World.",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q", want)
			}
		}
	})

	t.Run("ExportToMarkdown Without Owner", func(t *testing.T) {
		data, _ := ExportToMarkdown(&Favorites{})
		if !strings.HasPrefix(string(data), "# Favorites\n") {
			t.Errorf("unexpected heading: %s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testFavorites())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}
		want := "Favorites: 2\n\n1. Fight Club (1999) ★ 4.2\n2. The Matrix (1999) ★ 4.1\n"
		if string(data) != want {
			t.Errorf("unexpected text:\n%s", data)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(testFavorites())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded struct {
			Owner  string         `json:"owner"`
			Movies []models.Movie `json:"movies"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Owner != "ada" || len(decoded.Movies) != 2 {
			t.Errorf("unexpected decoded export %+v", decoded)
		}
	})

	t.Run("Export Rejects Unknown Format", func(t *testing.T) {
		_, err := Export(testFavorites(), "xml")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Extension", func(t *testing.T) {
		for format, want := range map[string]string{"csv": ".csv", "markdown": ".md", "md": ".md", "txt": ".txt", "json": ".json", "": ".json"} {
			if got := Extension(format); got != want {
				t.Errorf("Extension(%q) = %q, want %q", format, got, want)
			}
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("Writes To Nested Path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "favs.csv")

		got, err := WriteExport(testFavorites(), "csv", path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
		th.AssertFileExists(t, path)
		if !strings.HasPrefix(th.MustReadFile(t, path), "ID,Title") {
			t.Error("expected CSV content")
		}
	})

	t.Run("Defaults Filename From Format", func(t *testing.T) {
		dir := t.TempDir()
		wd := th.MustGetwd(t)
		th.MustChdir(t, dir)
		defer th.MustChdir(t, wd)

		got, err := WriteExport(testFavorites(), "markdown", "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if got != "favorites.md" {
			t.Errorf("expected favorites.md, got %s", got)
		}
		th.AssertFileExists(t, filepath.Join(dir, "favorites.md"))
	})

	t.Run("Unwritable Path", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := WriteExport(testFavorites(), "txt", filepath.Join(blocker, "out.txt")); err == nil {
			t.Error("expected error writing beneath a regular file")
		}
	})
}

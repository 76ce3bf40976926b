package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/marquee/internal/auth"
	"github.com/desertthunder/marquee/internal/favorites"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/store"
	"github.com/desertthunder/marquee/internal/tasks"
	tu "github.com/desertthunder/marquee/internal/testing"
)

type fixture struct {
	model   *Model
	catalog *tu.MockCatalog
	store   *store.MemoryStore
	session *auth.Session
	favs    *favorites.Store
}

func newFixture(t *testing.T, seed map[string]string) *fixture {
	t.Helper()

	catalog := tu.NewMockCatalog(
		models.Movie{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", VoteAverage: 8.4},
		models.Movie{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-31", VoteAverage: 8.2},
	)
	backend := store.NewMemoryStore(seed)
	codec := auth.NewTokenCodec(nil)
	session := auth.NewSession(backend, codec, nil)
	favs := favorites.New(backend, nil)

	m := NewModel(context.Background(), Deps{
		Catalog:       catalog,
		Session:       session,
		Favorites:     favs,
		Authenticator: auth.NewAuthenticator(auth.AuthenticatorOpts{Codec: codec, Latency: -1}),
		Debouncer:     tasks.NewDebouncer(10 * time.Millisecond),
	})
	t.Cleanup(m.Close)

	return &fixture{model: m, catalog: catalog, store: backend, session: session, favs: favs}
}

// nextSession applies the next session snapshot the model is subscribed to.
func (f *fixture) nextSession(t *testing.T) {
	t.Helper()
	select {
	case st := <-f.model.sessionCh:
		f.model.Update(sessionChangedMsg(st))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for session snapshot")
	}
}

func (f *fixture) nextFavorites(t *testing.T) {
	t.Helper()
	select {
	case movies := <-f.model.favoritesCh:
		f.model.Update(favoritesChangedMsg(movies))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for favorites snapshot")
	}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	if err := f.session.Login(models.User{ID: "1", Email: "neo@matrix.io", Name: "neo"}, "token"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	f.nextSession(t)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel(t *testing.T) {
	t.Run("starts on the loading view", func(t *testing.T) {
		f := newFixture(t, nil)
		if f.model.view != LoadingView {
			t.Errorf("expected LoadingView, got %v", f.model.view)
		}
		if !strings.Contains(f.model.View(), "Restoring session") {
			t.Errorf("expected loading text, got %q", f.model.View())
		}
	})

	t.Run("anonymous session shows login", func(t *testing.T) {
		f := newFixture(t, nil)

		msg := f.model.loadSession()()
		if lm, ok := msg.(loadedMsg); !ok || lm.err != nil {
			t.Fatalf("unexpected load result %#v", msg)
		}
		f.nextSession(t)

		if f.model.view != LoginView {
			t.Errorf("expected LoginView, got %v", f.model.view)
		}
		if f.model.focus != emailInput {
			t.Errorf("expected email input focused, got %d", f.model.focus)
		}
		if !strings.Contains(f.model.View(), "Sign in") {
			t.Errorf("expected sign in form, got %q", f.model.View())
		}
	})

	t.Run("submitting credentials signs in", func(t *testing.T) {
		f := newFixture(t, nil)
		f.model.loadSession()()
		f.nextSession(t)

		f.model.inputs[emailInput].SetValue("neo@matrix.io")
		f.model.inputs[passwordInput].SetValue("secret1")
		f.model.focusInput(passwordInput)

		_, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd == nil {
			t.Fatal("expected submit command")
		}
		if !f.model.pending {
			t.Error("expected pending while authenticating")
		}

		res, ok := cmd().(authResultMsg)
		if !ok || res.err != nil {
			t.Fatalf("unexpected auth result %#v", res)
		}
		f.model.Update(res)
		f.nextSession(t)

		if f.model.view != BrowseView {
			t.Errorf("expected BrowseView, got %v", f.model.view)
		}
		if u := f.model.session.User; u == nil || u.Name != "neo" {
			t.Errorf("expected user neo, got %+v", u)
		}
		if _, ok, _ := f.store.Get(store.KeyAuthToken); !ok {
			t.Error("expected token persisted")
		}
	})

	t.Run("invalid credentials stay on login with an error", func(t *testing.T) {
		f := newFixture(t, nil)
		f.model.loadSession()()
		f.nextSession(t)

		f.model.inputs[emailInput].SetValue("neo@matrix.io")
		f.model.inputs[passwordInput].SetValue("123")
		f.model.focusInput(passwordInput)

		_, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		f.model.Update(cmd())

		if f.model.view != LoginView {
			t.Errorf("expected LoginView, got %v", f.model.view)
		}
		if f.model.err == nil || !strings.Contains(f.model.err.Error(), "at least 6") {
			t.Errorf("expected password length error, got %v", f.model.err)
		}
		if f.model.pending {
			t.Error("expected pending cleared")
		}
	})

	t.Run("register mode cycles through the name field", func(t *testing.T) {
		f := newFixture(t, nil)
		f.model.loadSession()()
		f.nextSession(t)

		f.model.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
		if !f.model.registering || f.model.focus != nameInput {
			t.Fatalf("expected register mode focused on name, got %v/%d", f.model.registering, f.model.focus)
		}

		for _, want := range []int{emailInput, passwordInput, nameInput} {
			f.model.Update(tea.KeyMsg{Type: tea.KeyTab})
			if f.model.focus != want {
				t.Errorf("expected focus %d, got %d", want, f.model.focus)
			}
		}
	})

	t.Run("login moves to browse and fetches the popular tab", func(t *testing.T) {
		f := newFixture(t, nil)
		f.login(t)

		if f.model.view != BrowseView {
			t.Fatalf("expected BrowseView, got %v", f.model.view)
		}

		msg := f.model.fetchTab(PopularTab)()
		f.model.Update(msg)

		if got := len(f.model.list.Items()); got != 2 {
			t.Errorf("expected 2 items, got %d", got)
		}
		if f.model.loading {
			t.Error("expected loading cleared")
		}
	})

	t.Run("logout returns to login", func(t *testing.T) {
		f := newFixture(t, nil)
		f.login(t)

		_, cmd := f.model.Update(keyRunes("L"))
		if cmd == nil {
			t.Fatal("expected logout command")
		}
		f.model.Update(cmd())
		f.nextSession(t)

		if f.model.view != LoginView {
			t.Errorf("expected LoginView, got %v", f.model.view)
		}
		if _, ok, _ := f.store.Get(store.KeyAuthToken); ok {
			t.Error("expected token removed")
		}
	})
}

func TestSearch(t *testing.T) {
	t.Run("typing schedules a debounced search", func(t *testing.T) {
		f := newFixture(t, nil)
		f.login(t)

		f.model.Update(keyRunes("/"))
		if f.model.tab != SearchTab || !f.model.search.Focused() {
			t.Fatalf("expected focused search tab, got tab %v", f.model.tab)
		}

		_, cmd := f.model.Update(keyRunes("m"))
		if cmd == nil {
			t.Fatal("expected debounce command")
		}
		if f.model.query != "m" || f.model.searchSeq != 1 {
			t.Errorf("unexpected query %q seq %d", f.model.query, f.model.searchSeq)
		}

		got := f.model.debounceSearch(f.model.query, f.model.searchSeq)()
		ready, ok := got.(searchReadyMsg)
		if !ok {
			t.Fatalf("expected searchReadyMsg, got %#v", got)
		}

		_, fetch := f.model.Update(ready)
		if fetch == nil {
			t.Fatal("expected fetch command")
		}
		f.model.Update(fetch())

		if got := len(f.model.list.Items()); got != 1 {
			t.Errorf("expected 1 match for %q, got %d", f.model.query, got)
		}
	})

	t.Run("stale sequence is ignored", func(t *testing.T) {
		f := newFixture(t, nil)
		f.login(t)
		f.model.searchSeq = 3

		_, cmd := f.model.Update(searchReadyMsg{query: "old", seq: 2})
		if cmd != nil {
			t.Error("expected no fetch for stale search")
		}
	})

	t.Run("results for an old query are dropped", func(t *testing.T) {
		f := newFixture(t, nil)
		f.login(t)
		f.model.selectTab(SearchTab)
		f.model.query = "matrix"

		page := &models.Page[models.Movie]{Page: 1, Results: []models.Movie{{ID: 1, Title: "Old"}}}
		f.model.Update(moviesFetchedMsg{tab: SearchTab, query: "mat", page: page})

		if f.model.results[SearchTab] != nil {
			t.Error("expected stale results dropped")
		}
	})

	t.Run("clearing the query empties results without a request", func(t *testing.T) {
		f := newFixture(t, nil)
		f.login(t)
		f.model.selectTab(SearchTab)
		f.model.results[SearchTab] = &models.Page[models.Movie]{Page: 1, Results: []models.Movie{{ID: 1}}}
		f.model.query = ""
		calls := f.catalog.CallCount()

		if cmd := f.model.fetchTab(SearchTab); cmd != nil {
			t.Error("expected no command for blank query")
		}
		if f.catalog.CallCount() != calls {
			t.Error("expected no catalog call")
		}
		if len(f.model.list.Items()) != 0 {
			t.Errorf("expected empty list, got %d", len(f.model.list.Items()))
		}
	})
}

func TestFavorites(t *testing.T) {
	t.Run("toggle from the list updates the favorites tab", func(t *testing.T) {
		f := newFixture(t, nil)
		f.login(t)
		f.model.Update(f.model.fetchTab(PopularTab)())

		_, cmd := f.model.Update(keyRunes("s"))
		if cmd == nil {
			t.Fatal("expected toggle command")
		}
		res, ok := cmd().(toggledMsg)
		if !ok || res.err != nil || !res.added {
			t.Fatalf("unexpected toggle result %#v", res)
		}
		f.model.Update(res)
		f.nextFavorites(t)

		if !f.favs.IsFavorite(550) {
			t.Error("expected 550 to be a favorite")
		}
		if !strings.Contains(f.model.status, "Added") {
			t.Errorf("expected added status, got %q", f.model.status)
		}

		f.model.selectTab(FavoritesTab)
		items := f.model.list.Items()
		if len(items) != 1 {
			t.Fatalf("expected 1 favorite, got %d", len(items))
		}
		if item := items[0].(movieItem); !strings.HasPrefix(item.Title(), "♥") {
			t.Errorf("expected favorite marker, got %q", item.Title())
		}
	})

	t.Run("failed persist surfaces an error", func(t *testing.T) {
		f := newFixture(t, nil)
		f.model.Update(toggledMsg{movie: models.Movie{ID: 1}, err: errors.New("write failed")})
		if f.model.err == nil {
			t.Error("expected error shown")
		}
	})
}

func TestDetails(t *testing.T) {
	t.Run("enter opens details", func(t *testing.T) {
		f := newFixture(t, nil)
		f.login(t)
		f.model.Update(f.model.fetchTab(PopularTab)())

		_, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if f.model.view != DetailsView || !f.model.loading {
			t.Fatalf("expected loading DetailsView, got %v", f.model.view)
		}
		f.model.Update(cmd())

		if f.model.details == nil || f.model.details.ID != 550 {
			t.Fatalf("expected details for 550, got %+v", f.model.details)
		}
		if view := f.model.View(); !strings.Contains(view, "Fight Club (1999)") {
			t.Errorf("expected title in view, got %q", view)
		}

		f.model.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if f.model.view != BrowseView {
			t.Errorf("expected BrowseView after esc, got %v", f.model.view)
		}
	})

	t.Run("missing movie shows an error", func(t *testing.T) {
		f := newFixture(t, nil)
		f.login(t)
		f.model.view = DetailsView

		f.model.Update(f.model.fetchDetails(999)())
		if f.model.err == nil {
			t.Error("expected not found error")
		}
	})
}

func TestMovieItem(t *testing.T) {
	item := movieItem{
		movie:  models.Movie{Title: "Heat", ReleaseDate: "1995-12-15", VoteAverage: 8.4, GenreIDs: []int{28, 80}},
		genres: []models.Genre{{ID: 28, Name: "Action"}, {ID: 80, Name: "Crime"}},
	}

	if item.Title() != "Heat" {
		t.Errorf("unexpected title %q", item.Title())
	}
	if got, want := item.Description(), "1995 • ★ 4.2 • Action, Crime"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if item.FilterValue() != "Heat" {
		t.Errorf("unexpected filter value %q", item.FilterValue())
	}
}

func TestTab(t *testing.T) {
	if PopularTab.String() != "Popular" || FavoritesTab.String() != "Favorites" {
		t.Error("unexpected tab names")
	}
	if Tab(42).String() != "Unknown" {
		t.Error("expected Unknown for out of range tab")
	}
}

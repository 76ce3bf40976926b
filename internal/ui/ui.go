package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/marquee/internal/auth"
	"github.com/desertthunder/marquee/internal/favorites"
	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/services"
	"github.com/desertthunder/marquee/internal/shared"
	"github.com/desertthunder/marquee/internal/state"
	"github.com/desertthunder/marquee/internal/tasks"
)

// ViewState represents the current screen.
type ViewState int

const (
	LoadingView ViewState = iota
	LoginView
	BrowseView
	DetailsView
)

// Tab is a movie list shown in [BrowseView].
type Tab int

const (
	PopularTab Tab = iota
	TopRatedTab
	NowPlayingTab
	SearchTab
	FavoritesTab
)

var tabNames = []string{"Popular", "Top Rated", "Now Playing", "Search", "Favorites"}

func (t Tab) String() string {
	if int(t) < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

const (
	nameInput = iota
	emailInput
	passwordInput
)

const movieURLFormat = "https://www.themoviedb.org/movie/%d"

// Deps are the collaborators the [Model] drives.
type Deps struct {
	Catalog       services.Catalog
	Session       *auth.Session
	Favorites     *favorites.Store
	Authenticator *auth.Authenticator
	Debouncer     *tasks.Debouncer
	Logger        *log.Logger
}

// Model is the bubbletea model for the movie browser.
type Model struct {
	ctx  context.Context
	deps Deps

	view   ViewState
	width  int
	height int

	session   auth.State
	favorites []models.Movie
	genres    []models.Genre

	inputs      []textinput.Model
	focus       int
	registering bool
	pending     bool

	tab     Tab
	pages   map[Tab]int
	results map[Tab]*models.Page[models.Movie]
	list    list.Model
	loading bool

	search    textinput.Model
	query     string
	searchSeq int

	details *models.MovieDetails
	status  string
	err     error

	sessionCh   <-chan auth.State
	favoritesCh <-chan []models.Movie
	subs        []*state.Subscription

	spinner spinner.Model
	help    help.Model
	keys    keyMap
}

// NewModel creates a [Model] subscribed to the session and favorites stores.
// Call [Model.Close] once the program exits.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Debouncer == nil {
		deps.Debouncer = tasks.NewDebouncer(tasks.DefaultDebounce)
	}
	if deps.Authenticator == nil {
		deps.Authenticator = auth.NewAuthenticator(auth.AuthenticatorOpts{})
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.title.UnsetMarginBottom()

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	search := textinput.New()
	search.Placeholder = "Search movies"
	search.Prompt = "/ "
	search.CharLimit = 100

	m := &Model{
		ctx:     ctx,
		deps:    deps,
		view:    LoadingView,
		session: auth.State{Loading: true},
		pages:   map[Tab]int{},
		results: map[Tab]*models.Page[models.Movie]{},
		list:    l,
		search:  search,
		spinner: s,
		help:    help.New(),
		keys:    newKeyMap(),
		inputs:  newCredentialInputs(),
	}

	sessionCh, sessionSub := state.Channel[auth.State](deps.Session, 4)
	favoritesCh, favoritesSub := state.Channel[[]models.Movie](deps.Favorites, 4)
	m.sessionCh, m.favoritesCh = sessionCh, favoritesCh
	m.subs = []*state.Subscription{sessionSub, favoritesSub}
	return m
}

func newCredentialInputs() []textinput.Model {
	inputs := make([]textinput.Model, 3)

	inputs[nameInput] = textinput.New()
	inputs[nameInput].Placeholder = "Name"
	inputs[nameInput].CharLimit = 64

	inputs[emailInput] = textinput.New()
	inputs[emailInput].Placeholder = "Email"
	inputs[emailInput].CharLimit = 128

	inputs[passwordInput] = textinput.New()
	inputs[passwordInput].Placeholder = "Password"
	inputs[passwordInput].EchoMode = textinput.EchoPassword
	inputs[passwordInput].EchoCharacter = '•'
	inputs[passwordInput].CharLimit = 128
	return inputs
}

// Close stops the store subscriptions.
func (m *Model) Close() {
	for _, sub := range m.subs {
		sub.Unsubscribe()
	}
	m.deps.Debouncer.Stop()
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForSession(),
		m.waitForFavorites(),
		m.loadSession(),
		m.loadFavorites(),
		textinput.Blink,
	)
}

// waitForSession blocks on the next session snapshot and re-queues itself from Update.
func (m *Model) waitForSession() tea.Cmd {
	ch := m.sessionCh
	return func() tea.Msg {
		return sessionChangedMsg(<-ch)
	}
}

func (m *Model) waitForFavorites() tea.Cmd {
	ch := m.favoritesCh
	return func() tea.Msg {
		return favoritesChangedMsg(<-ch)
	}
}

func (m *Model) loadSession() tea.Cmd {
	session := m.deps.Session
	return func() tea.Msg {
		return loadedMsg{what: "session", err: session.Load()}
	}
}

func (m *Model) loadFavorites() tea.Cmd {
	favs := m.deps.Favorites
	return func() tea.Msg {
		return loadedMsg{what: "favorites", err: favs.Load()}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		switch m.view {
		case LoginView:
			return m.updateLogin(msg)
		case BrowseView:
			return m.updateBrowse(msg)
		case DetailsView:
			return m.updateDetails(msg)
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case sessionChangedMsg:
		return m, tea.Batch(m.applySession(auth.State(msg)), m.waitForSession())
	case favoritesChangedMsg:
		m.favorites = []models.Movie(msg)
		m.refreshItems()
		return m, m.waitForFavorites()
	case loadedMsg:
		if msg.err != nil {
			m.deps.Logger.Warn("load failed", "what", msg.what, "error", msg.err)
			m.setError(fmt.Errorf("could not load %s: %w", msg.what, msg.err))
		}
		return m, nil
	case authResultMsg:
		m.pending = false
		if msg.err != nil {
			m.setError(msg.err)
		}
		return m, nil
	case genresFetchedMsg:
		if msg.err != nil {
			m.deps.Logger.Warn("genre fetch failed", "error", msg.err)
			return m, nil
		}
		m.genres = msg.genres
		m.refreshItems()
		return m, nil
	case searchReadyMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.pages[SearchTab] = 1
		return m, m.fetchTab(SearchTab)
	case moviesFetchedMsg:
		return m, m.applyMovies(msg)
	case detailsFetchedMsg:
		m.loading = false
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.details = msg.details
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		if msg.added {
			m.setStatus(fmt.Sprintf("Added %q to favorites", msg.movie.Title))
		} else {
			m.setStatus(fmt.Sprintf("Removed %q from favorites", msg.movie.Title))
		}
		return m, nil
	case statusMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else if msg.text != "" {
			m.setStatus(msg.text)
		}
		return m, nil
	}
	return m, nil
}

// applySession moves between the login and browse screens as the session changes.
func (m *Model) applySession(st auth.State) tea.Cmd {
	m.session = st
	switch st.Phase() {
	case auth.Initializing:
		m.view = LoadingView
		return nil
	case auth.Anonymous:
		m.view = LoginView
		m.pending = false
		m.details = nil
		m.inputs = newCredentialInputs()
		m.focus = m.firstInput()
		return m.inputs[m.focus].Focus()
	}

	if m.view == LoadingView || m.view == LoginView {
		m.view = BrowseView
		m.pending = false
		m.setStatus("Welcome, " + st.User.Name)
		return tea.Batch(m.fetchGenres(), m.selectTab(m.tab))
	}
	return nil
}

func (m *Model) setStatus(s string) {
	m.status, m.err = s, nil
}

func (m *Model) setError(err error) {
	m.status, m.err = "", err
}

func (m *Model) resize() {
	h := m.height - 8
	if m.tab == SearchTab {
		h -= 2
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width, h)
	m.search.Width = max(m.width-4, 10)
}

func (m *Model) isFavorite(id int) bool {
	for _, f := range m.favorites {
		if f.ID == id {
			return true
		}
	}
	return false
}

// refreshItems rebuilds the list for the current tab, keeping the cursor in place.
func (m *Model) refreshItems() {
	var movies []models.Movie
	if m.tab == FavoritesTab {
		movies = m.favorites
	} else if page := m.results[m.tab]; page != nil {
		movies = page.Results
	}

	idx := m.list.Index()
	m.list.SetItems(movieItems(movies, m.isFavorite, m.genres))
	if idx >= len(movies) {
		idx = len(movies) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

func (m *Model) selectedMovie() (models.Movie, bool) {
	item, ok := m.list.SelectedItem().(movieItem)
	if !ok {
		return models.Movie{}, false
	}
	return item.movie, true
}

func (m *Model) firstInput() int {
	if m.registering {
		return nameInput
	}
	return emailInput
}

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.register):
		m.registering = !m.registering
		m.err = nil
		return m, m.focusInput(m.firstInput())
	case key.Matches(msg, m.keys.nextTab), msg.String() == "down":
		return m, m.focusInput(m.nextInput(1))
	case key.Matches(msg, m.keys.prevTab), msg.String() == "up":
		return m, m.focusInput(m.nextInput(-1))
	case key.Matches(msg, m.keys.enter):
		if m.focus != passwordInput {
			return m, m.focusInput(m.nextInput(1))
		}
		m.pending = true
		m.err = nil
		return m, m.submitCredentials()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) nextInput(step int) int {
	first := m.firstInput()
	n := passwordInput - first + 1
	return first + ((m.focus-first+step)%n+n)%n
}

func (m *Model) focusInput(i int) tea.Cmd {
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	m.focus = i
	return m.inputs[i].Focus()
}

// submitCredentials authenticates and hands the result to the session, which publishes the change.
func (m *Model) submitCredentials() tea.Cmd {
	ctx, deps := m.ctx, m.deps
	registering := m.registering
	name := m.inputs[nameInput].Value()
	email := m.inputs[emailInput].Value()
	password := m.inputs[passwordInput].Value()

	return func() tea.Msg {
		var (
			res *auth.Result
			err error
		)
		if registering {
			res, err = deps.Authenticator.Register(ctx, name, email, password)
		} else {
			res, err = deps.Authenticator.Login(ctx, email, password)
		}
		if err != nil {
			return authResultMsg{err: err}
		}
		return authResultMsg{err: deps.Session.Login(res.User, res.Token)}
	}
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Focused() {
		return m.updateSearch(msg)
	}

	switch {
	case key.Matches(msg, m.keys.nextTab):
		return m, m.selectTab((m.tab + 1) % Tab(len(tabNames)))
	case key.Matches(msg, m.keys.prevTab):
		return m, m.selectTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
	case key.Matches(msg, m.keys.search):
		if m.tab != SearchTab {
			cmd := m.selectTab(SearchTab)
			return m, tea.Batch(cmd, m.search.Focus())
		}
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.enter):
		movie, ok := m.selectedMovie()
		if !ok {
			return m, nil
		}
		m.view = DetailsView
		m.details = nil
		m.loading = true
		return m, m.fetchDetails(movie.ID)
	case key.Matches(msg, m.keys.favorite):
		if movie, ok := m.selectedMovie(); ok {
			return m, m.toggleFavorite(movie)
		}
		return m, nil
	case key.Matches(msg, m.keys.nextPage):
		if page := m.results[m.tab]; m.tab != FavoritesTab && page != nil && page.HasNext() {
			m.pages[m.tab] = page.Page + 1
			return m, m.fetchTab(m.tab)
		}
		return m, nil
	case key.Matches(msg, m.keys.prevPage):
		if page := m.results[m.tab]; m.tab != FavoritesTab && page != nil && page.Page > 1 {
			m.pages[m.tab] = page.Page - 1
			return m, m.fetchTab(m.tab)
		}
		return m, nil
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	case key.Matches(msg, m.keys.back):
		m.status, m.err = "", nil
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateSearch feeds keys to the search box and schedules a debounced query on every edit.
func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.enter):
		m.search.Blur()
		return m, nil
	case key.Matches(msg, m.keys.nextTab):
		m.search.Blur()
		return m, m.selectTab(FavoritesTab)
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	m.query = strings.TrimSpace(m.search.Value())
	m.searchSeq++
	return m, tea.Batch(cmd, m.debounceSearch(m.query, m.searchSeq))
}

func (m *Model) debounceSearch(query string, seq int) tea.Cmd {
	ctx, debouncer := m.ctx, m.deps.Debouncer
	return func() tea.Msg {
		if !debouncer.Wait(ctx) {
			return nil
		}
		return searchReadyMsg{query: query, seq: seq}
	}
}

func (m *Model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = BrowseView
		m.details = nil
		m.loading = false
		return m, nil
	case key.Matches(msg, m.keys.favorite):
		if m.details != nil {
			return m, m.toggleFavorite(m.details.AsMovie())
		}
	case key.Matches(msg, m.keys.open):
		if m.details != nil {
			return m, openMovie(m.details.ID)
		}
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	}
	return m, nil
}

// selectTab switches tabs and fetches the first page if the tab has none yet.
func (m *Model) selectTab(t Tab) tea.Cmd {
	if t != SearchTab {
		m.search.Blur()
	}
	m.tab = t
	m.list.ResetSelected()
	m.refreshItems()
	m.resize()

	if t == FavoritesTab || m.results[t] != nil {
		return nil
	}
	if t == SearchTab && m.query == "" {
		return nil
	}
	return m.fetchTab(t)
}

func (m *Model) fetchTab(t Tab) tea.Cmd {
	page := max(m.pages[t], 1)
	query := m.query
	if t == SearchTab && query == "" {
		m.results[SearchTab] = nil
		m.refreshItems()
		return nil
	}

	m.loading = true
	ctx, catalog := m.ctx, m.deps.Catalog
	return func() tea.Msg {
		var (
			res *models.Page[models.Movie]
			err error
		)
		switch t {
		case PopularTab:
			res, err = catalog.Popular(ctx, page)
		case TopRatedTab:
			res, err = catalog.TopRated(ctx, page)
		case NowPlayingTab:
			res, err = catalog.NowPlaying(ctx, page)
		case SearchTab:
			res, err = catalog.Search(ctx, query, page)
		}
		return moviesFetchedMsg{tab: t, query: query, page: res, err: err}
	}
}

// applyMovies stores a fetched page unless a newer search has replaced its query.
func (m *Model) applyMovies(msg moviesFetchedMsg) tea.Cmd {
	if msg.tab == SearchTab && msg.query != m.query {
		return nil
	}
	if msg.tab == m.tab {
		m.loading = false
	}
	if msg.err != nil {
		m.setError(msg.err)
		return nil
	}

	m.results[msg.tab] = msg.page
	if msg.tab == m.tab {
		m.list.ResetSelected()
		m.refreshItems()
	}
	return nil
}

func (m *Model) fetchDetails(id int) tea.Cmd {
	ctx, catalog := m.ctx, m.deps.Catalog
	return func() tea.Msg {
		d, err := catalog.Details(ctx, id)
		return detailsFetchedMsg{details: d, err: err}
	}
}

func (m *Model) fetchGenres() tea.Cmd {
	ctx, catalog := m.ctx, m.deps.Catalog
	return func() tea.Msg {
		g, err := catalog.Genres(ctx)
		return genresFetchedMsg{genres: g, err: err}
	}
}

func (m *Model) toggleFavorite(movie models.Movie) tea.Cmd {
	favs := m.deps.Favorites
	return func() tea.Msg {
		added, err := favs.Toggle(movie)
		return toggledMsg{movie: movie, added: added, err: err}
	}
}

func (m *Model) logout() tea.Cmd {
	session := m.deps.Session
	return func() tea.Msg {
		if err := session.Logout(); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "Logged out"}
	}
}

func openMovie(id int) tea.Cmd {
	return func() tea.Msg {
		url := fmt.Sprintf(movieURLFormat, id)
		if err := shared.OpenBrowser(url); err != nil {
			return statusMsg{err: err}
		}
		return statusMsg{text: "Opened " + url}
	}
}

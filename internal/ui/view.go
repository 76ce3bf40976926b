package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/marquee/internal/formatter"
	"github.com/desertthunder/marquee/internal/models"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("🎬 Marquee"))
	b.WriteString("\n")

	switch m.view {
	case LoadingView:
		b.WriteString(m.spinner.View() + " Restoring session...\n")
	case LoginView:
		b.WriteString(m.loginView())
	case BrowseView:
		b.WriteString(m.browseView())
	case DetailsView:
		b.WriteString(m.detailsView())
	}

	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.bindings()))
	return b.String()
}

func (m *Model) statusLine() string {
	switch {
	case m.err != nil:
		return "\n" + styles.err.Render("✗ "+m.err.Error()) + "\n"
	case m.status != "":
		return "\n" + styles.ok.Render(m.status) + "\n"
	}
	return "\n"
}

func (m *Model) bindings() []key.Binding {
	switch m.view {
	case LoginView:
		return []key.Binding{m.keys.nextTab, m.keys.enter, m.keys.register, m.keys.quit}
	case BrowseView:
		if m.search.Focused() {
			return []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
		}
		return []key.Binding{
			m.keys.up, m.keys.down, m.keys.enter, m.keys.nextTab, m.keys.search,
			m.keys.favorite, m.keys.nextPage, m.keys.prevPage, m.keys.logout, m.keys.quit,
		}
	case DetailsView:
		return []key.Binding{m.keys.favorite, m.keys.open, m.keys.back, m.keys.logout, m.keys.quit}
	}
	return []key.Binding{m.keys.quit}
}

func (m *Model) loginView() string {
	var b strings.Builder
	if m.registering {
		b.WriteString(styles.label.Render("Create an account") + "\n\n")
	} else {
		b.WriteString(styles.label.Render("Sign in") + "\n\n")
	}

	for i := m.firstInput(); i <= passwordInput; i++ {
		b.WriteString(m.inputs[i].View() + "\n")
	}

	if m.pending {
		label := "Signing in..."
		if m.registering {
			label = "Creating account..."
		}
		b.WriteString("\n" + m.spinner.View() + " " + label + "\n")
	}
	return b.String()
}

func (m *Model) tabsView() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == FavoritesTab {
			name = fmt.Sprintf("%s (%d)", name, len(m.favorites))
		}
		if Tab(i) == m.tab {
			tabs[i] = styles.activeTab.Render(name)
		} else {
			tabs[i] = styles.tab.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) browseView() string {
	var b strings.Builder
	if m.session.User != nil {
		b.WriteString(styles.help.Render("Signed in as "+m.session.User.Name) + "\n")
	}
	b.WriteString(m.tabsView() + "\n\n")

	if m.tab == SearchTab {
		b.WriteString(m.search.View() + "\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading " + m.tab.String() + "...\n")
	case len(m.list.Items()) == 0:
		b.WriteString(styles.help.Render(m.emptyText()) + "\n")
	default:
		b.WriteString(m.list.View() + "\n")
		if page := m.results[m.tab]; page != nil && m.tab != FavoritesTab {
			b.WriteString(styles.help.Render(fmt.Sprintf("Page %d of %d", page.Page, max(page.TotalPages, 1))) + "\n")
		}
	}
	return b.String()
}

func (m *Model) emptyText() string {
	switch m.tab {
	case SearchTab:
		if m.query == "" {
			return "Type / to search for movies"
		}
		return fmt.Sprintf("No results for %q", m.query)
	case FavoritesTab:
		return "No favorites yet. Press s on a movie to add it."
	}
	return "No movies found"
}

func (m *Model) detailsView() string {
	if m.loading || m.details == nil {
		if m.err != nil {
			return ""
		}
		return m.spinner.View() + " Loading details...\n"
	}
	return renderDetails(m.details, m.isFavorite(m.details.ID))
}

func renderDetails(d *models.MovieDetails, favorite bool) string {
	var b strings.Builder

	title := d.Title
	if y := d.Year(); y != "" {
		title = fmt.Sprintf("%s (%s)", title, y)
	}
	if favorite {
		title = "♥ " + title
	}
	b.WriteString(styles.ok.Render(title) + "\n")
	if d.Tagline != nil && *d.Tagline != "" {
		b.WriteString(styles.help.Render(*d.Tagline) + "\n")
	}
	b.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(styles.label.Render(label+": ") + value + "\n")
	}

	field("Rating", fmt.Sprintf("★ %s (%d votes)", formatter.FormatRating(d.VoteAverage), d.VoteCount))
	field("Released", formatter.FormatReleaseDate(d.ReleaseDate))
	field("Runtime", formatter.FormatRuntime(d.Runtime))
	names := make([]string, len(d.Genres))
	for i, g := range d.Genres {
		names[i] = g.Name
	}
	field("Genres", strings.Join(names, ", "))
	field("Status", d.Status)
	if d.Homepage != nil {
		field("Homepage", *d.Homepage)
	}

	if d.Overview != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Width(80).Render(d.Overview) + "\n")
	}
	return b.String()
}

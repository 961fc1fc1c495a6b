package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/st-doval17/myflix/internal/favorites"
	"github.com/st-doval17/myflix/internal/models"
	"github.com/st-doval17/myflix/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MovieListView ViewState = iota
	DetailView
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	svc       services.Service
	index     *favorites.Index
	width     int
	height    int
	movieList list.Model
	movies    []models.Movie
	selected  *models.Movie
	status    string
	err       error
	help      help.Model
	keys      keyMap
}

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	favorite key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.favorite, k.quit},
	}
}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie     *models.Movie
	favorited func(string) bool
}

func (i movieItem) FilterValue() string { return i.movie.Title }

func (i movieItem) Title() string {
	if i.favorited != nil && i.favorited(i.movie.ID) {
		return "♥ " + i.movie.Title
	}
	return i.movie.Title
}

func (i movieItem) Description() string {
	desc := i.movie.Director.Name
	if i.movie.Genre.Name != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.Genre.Name)
	}
	return desc
}

type moviesFetchedMsg struct {
	movies []models.Movie
	err    error
}

type favoriteToggledMsg struct {
	movieID   string
	favorited bool
	err       error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, svc services.Service, index *favorites.Index) *Model {
	return &Model{
		ctx:   ctx,
		view:  MovieListView,
		svc:   svc,
		index: index,
		help:  help.New(),
		keys:  newKeyMap(),
	}
}

// Init initializes the TUI by fetching the catalog.
func (m *Model) Init() tea.Cmd {
	return m.fetchMovies()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.movieList.Width() == 0 {
			m.movieList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MovieListView:
			return m.handleMovieListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case moviesFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.movies = msg.movies
		m.movieList = list.New(m.movieItems(), list.NewDefaultDelegate(), 0, 0)
		m.movieList.Title = "myFlix Catalog"
		m.movieList.SetSize(m.width-4, m.height-8)
		return m, nil

	case favoriteToggledMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("favorite failed: %v", msg.err))
			return m, nil
		}

		if msg.favorited {
			m.status = styles.ok.Render("added to favorites")
		} else {
			m.status = styles.warn.Render("removed from favorites")
		}

		// Re-render titles so the heart markers track the index.
		m.movieList.SetItems(m.movieItems())
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case MovieListView:
		return m.renderMovieList()
	case DetailView:
		return m.renderDetail()
	default:
		return ""
	}
}

func (m *Model) handleMovieListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if movie := m.selectedMovie(); movie != nil {
			m.selected = movie
			m.view = DetailView
		}
		return m, nil
	case "f":
		if movie := m.selectedMovie(); movie != nil {
			return m, m.toggleFavorite(movie.ID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.movieList, cmd = m.movieList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = MovieListView
		m.selected = nil
		return m, nil
	case "f":
		if m.selected != nil {
			return m, m.toggleFavorite(m.selected.ID)
		}
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.view == MovieListView {
		m.movieList, cmd = m.movieList.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectedMovie() *models.Movie {
	selected := m.movieList.SelectedItem()
	if selected == nil {
		return nil
	}
	if item, ok := selected.(movieItem); ok {
		return item.movie
	}
	return nil
}

func (m *Model) movieItems() []list.Item {
	items := make([]list.Item, len(m.movies))
	for i := range m.movies {
		items[i] = movieItem{movie: &m.movies[i], favorited: m.index.IsFavorite}
	}
	return items
}

func (m *Model) fetchMovies() tea.Cmd {
	return func() tea.Msg {
		movies, err := m.svc.Movies(m.ctx)
		return moviesFetchedMsg{movies: movies, err: err}
	}
}

func (m *Model) toggleFavorite(movieID string) tea.Cmd {
	return func() tea.Msg {
		favorited, err := m.index.Toggle(m.ctx, movieID)
		return favoriteToggledMsg{movieID: movieID, favorited: favorited, err: err}
	}
}

func (m *Model) renderMovieList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.favorite, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.status != "" {
		return fmt.Sprintf("%s\n%s\n\n%s", m.movieList.View(), m.status, helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.movieList.View(), helpView)
}

func (m *Model) renderDetail() string {
	movie := m.selected
	if movie == nil {
		return ""
	}

	var b strings.Builder

	title := movie.Title
	if m.index.IsFavorite(movie.ID) {
		title = "♥ " + title
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")

	if movie.Description != "" {
		b.WriteString(fmt.Sprintf("\n%s\n", movie.Description))
	}

	if movie.Genre.Name != "" {
		b.WriteString(fmt.Sprintf("\nGenre: %s", movie.Genre.Name))
		if movie.Genre.Description != "" {
			b.WriteString(fmt.Sprintf("\n  %s", movie.Genre.Description))
		}
		b.WriteString("\n")
	}

	if movie.Director.Name != "" {
		years := fmt.Sprintf("b. %d", movie.Director.BirthYear)
		if movie.Director.DeathYear != nil {
			years = fmt.Sprintf("%d-%d", movie.Director.BirthYear, *movie.Director.DeathYear)
		}
		b.WriteString(fmt.Sprintf("\nDirector: %s (%s)", movie.Director.Name, years))
		if movie.Director.Bio != "" {
			b.WriteString(fmt.Sprintf("\n  %s", movie.Director.Bio))
		}
		b.WriteString("\n")
	}

	if movie.Featured {
		b.WriteString("\n" + styles.ok.Render("Featured") + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	helpKeys := []key.Binding{m.keys.favorite, m.keys.back, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))

	return b.String()
}

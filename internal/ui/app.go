package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tgienger/kanban/internal/store"
	"github.com/tgienger/kanban/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewLanding View = iota
	ViewBoard
)

// SettingLastView remembers whether the board was open on exit
const SettingLastView = "last_view"

type App struct {
	store       *store.Store
	settings    views.Settings
	log         *log.Logger
	opts        views.BoardOptions
	currentView View
	landing     *views.LandingView
	board       *views.BoardView
	width       int
	height      int
}

// Creates a new application. settings may be nil.
func NewApp(s *store.Store, settings views.Settings, logger *log.Logger, opts views.BoardOptions) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts.Settings = settings
	opts.Logger = logger
	return &App{
		store:       s,
		settings:    settings,
		log:         logger,
		opts:        opts,
		currentView: ViewLanding,
		landing:     views.NewLandingView(s),
	}
}

func (a *App) Init() tea.Cmd {
	// Reopen the board if it was open last time
	if a.getSetting(SettingLastView) == "board" {
		return a.openBoard()
	}
	return a.landing.Init()
}

func (a *App) openBoard() tea.Cmd {
	a.currentView = ViewBoard
	a.board = views.NewBoardView(a.store, a.opts)
	a.setSetting(SettingLastView, "board")

	// Initialize board with window size
	return tea.Batch(
		a.board.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) getSetting(key string) string {
	if a.settings == nil {
		return ""
	}
	value, err := a.settings.GetSetting(key)
	if err != nil {
		a.log.Warn("reading setting", "key", key, "err", err)
		return ""
	}
	return value
}

func (a *App) setSetting(key, value string) {
	if a.settings == nil {
		return
	}
	if err := a.settings.SetSetting(key, value); err != nil {
		a.log.Warn("saving setting", "key", key, "err", err)
	}
}

// CurrentView reports which view is active
func (a *App) CurrentView() View {
	return a.currentView
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Always update landing size since it persists
		a.landing.Update(msg)

	case views.OpenBoard:
		return a, a.openBoard()

	case views.BackToLanding:
		a.currentView = ViewLanding
		a.setSetting(SettingLastView, "")
		return a, tea.Batch(
			a.landing.Init(),
			func() tea.Msg {
				return tea.WindowSizeMsg{Width: a.width, Height: a.height}
			},
		)
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewLanding:
		_, cmd = a.landing.Update(msg)
	case ViewBoard:
		_, cmd = a.board.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	switch a.currentView {
	case ViewBoard:
		if a.board != nil {
			return a.board.View()
		}
	}
	return a.landing.View()
}

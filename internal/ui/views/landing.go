package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/store"
	"github.com/tgienger/kanban/internal/ui/keys"
	"github.com/tgienger/kanban/internal/ui/styles"
)

type feature struct {
	title       string
	description string
}

var features = []feature{
	{"Organize Tasks", "Sort your work into Not Started, In Progress and Completed."},
	{"Track Progress", "Watch each column fill up on a visual board."},
	{"Move Between Stages", "Pick a task up and drop it into the next stage."},
}

// OpenBoard signals the app to switch to the board
type OpenBoard struct{}

// LandingView is the start screen
type LandingView struct {
	store  *store.Store
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	// Help popup (shown with ?)
	showHelpPopup bool
}

func NewLandingView(s *store.Store) *LandingView {
	return &LandingView{
		store:  s,
		styles: styles.NewStyles(),
		keys:   keys.DefaultKeyMap(),
	}
}

func (v *LandingView) Init() tea.Cmd {
	return nil
}

func (v *LandingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.Enter):
			return v, func() tea.Msg { return OpenBoard{} }
		}
	}
	return v, nil
}

// View renders the view
func (v *LandingView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	hero := lipgloss.JoinHorizontal(lipgloss.Bottom,
		s.Title.Render("Streamline Your "),
		s.Hero.Render("Workflow"),
	)

	content := lipgloss.JoinVertical(lipgloss.Center,
		hero,
		"",
		s.TitleMuted.Render("Manage. Prioritize. Conquer."),
		"",
		v.renderFeatures(contentWidth),
		"",
		v.renderCounts(),
		"",
		s.ButtonPrimary.Render(" Get Started "),
		"",
		v.renderHelp(),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *LandingView) renderFeatures(contentWidth int) string {
	s := v.styles
	narrow := contentWidth < 90
	cardWidth := clamp((contentWidth-8)/3, 20, 34)
	if narrow {
		cardWidth = clamp(contentWidth-6, 20, 60)
	}

	cards := make([]string, len(features))
	for i, f := range features {
		cards[i] = s.Card.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render(f.title),
			s.TitleMuted.Render(f.description),
		))
	}
	if narrow {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (v *LandingView) renderCounts() string {
	counts := board.Counts(v.store.Tasks())
	var parts []string
	for _, st := range models.Statuses {
		label := lipgloss.NewStyle().Foreground(styles.StatusColor(st)).Render("●")
		parts = append(parts, fmt.Sprintf("%s %s %d", label, st.Label(), counts[st]))
	}
	return v.styles.StatusBar.Render(lipgloss.JoinHorizontal(lipgloss.Center,
		parts[0], "   ", parts[1], "   ", parts[2],
	))
}

func (v *LandingView) renderHelp() string {
	return v.styles.Help.Render(
		fmt.Sprintf("%s open board • %s help • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("?"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *LandingView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("↵") + "      open the board",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

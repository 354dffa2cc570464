package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/store"
)

func TestLandingView(t *testing.T) {
	s := store.New([]models.Task{
		newTask(1, "A", models.StatusNotStarted, models.PriorityLow),
		newTask(2, "B", models.StatusCompleted, models.PriorityLow),
	})
	v := NewLandingView(s)
	v.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	out := v.View()
	for _, want := range []string{"Workflow", "Get Started", "Not Started 1", "In Progress 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("landing missing %q", want)
		}
	}

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter should return a command")
	}
	if _, ok := cmd().(OpenBoard); !ok {
		t.Error("enter should open the board")
	}
}

func TestLandingHelpPopup(t *testing.T) {
	v := NewLandingView(store.New(nil))

	v.Update(runes("?"))
	if !strings.Contains(v.View(), "Keyboard Shortcuts") {
		t.Fatal("help popup not rendered")
	}
	_, cmd := v.Update(runes("q"))
	if cmd != nil || v.showHelpPopup {
		t.Error("first key should only close the popup")
	}
}

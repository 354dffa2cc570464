package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/persist"
	"github.com/tgienger/kanban/internal/store"
	"github.com/tgienger/kanban/internal/ui/views"
)

func newTestApp(settings *persist.MemoryBackend) *App {
	return NewApp(store.New(nil), settings, nil, views.BoardOptions{DefaultSort: board.SortManual})
}

func TestAppStartsOnLanding(t *testing.T) {
	app := newTestApp(persist.NewMemoryBackend())
	app.Init()

	if app.CurrentView() != ViewLanding {
		t.Errorf("got view %d, want landing", app.CurrentView())
	}
}

func TestAppReopensBoard(t *testing.T) {
	settings := persist.NewMemoryBackend()
	settings.SetSetting(SettingLastView, "board")

	app := newTestApp(settings)
	if cmd := app.Init(); cmd == nil {
		t.Fatal("expected init command")
	}
	if app.CurrentView() != ViewBoard {
		t.Errorf("got view %d, want board", app.CurrentView())
	}
}

func TestAppSwitchesViews(t *testing.T) {
	settings := persist.NewMemoryBackend()
	app := newTestApp(settings)
	app.Init()
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	app.Update(views.OpenBoard{})
	if app.CurrentView() != ViewBoard {
		t.Fatalf("got view %d, want board", app.CurrentView())
	}
	if v, _ := settings.GetSetting(SettingLastView); v != "board" {
		t.Errorf("last view: got %q", v)
	}

	app.Update(views.BackToLanding{})
	if app.CurrentView() != ViewLanding {
		t.Fatalf("got view %d, want landing", app.CurrentView())
	}
	if v, _ := settings.GetSetting(SettingLastView); v != "" {
		t.Errorf("last view should be cleared, got %q", v)
	}
}

func TestAppWithoutSettings(t *testing.T) {
	app := NewApp(store.New(nil), nil, nil, views.BoardOptions{})
	app.Init()
	app.Update(views.OpenBoard{})

	if app.View() == "" {
		t.Error("board should render")
	}
}

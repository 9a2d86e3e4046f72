package tui

import (
	"testing"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < len(components.Tabs)-1 {
				pos++ // separator
			}
		}
		if got := a.tabAtX(pos + 10); got != -1 {
			t.Fatalf("x past the last tab -> %d, want -1", got)
		}
	}
}

func TestForecastMsgLoadsAndRenders(t *testing.T) {
	cfg := config.Default().WithLoan("actual_loan", "balanced")
	a := NewApp(cfg, "", nil)

	msg := runForecastCmd(cfg, nil)()
	fm, ok := msg.(ForecastMsg)
	if !ok {
		t.Fatalf("cmd returned %T", msg)
	}
	if fm.Err != nil {
		t.Fatalf("forecast: %v", fm.Err)
	}

	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	m, _ = m.(App).Update(fm)
	app := m.(App)
	if !app.loaded || app.running {
		t.Fatalf("loaded=%v running=%v", app.loaded, app.running)
	}
	if app.summary.Months != cfg.General.Months {
		t.Fatalf("summary months = %d", app.summary.Months)
	}

	for tab := range components.Tabs {
		app.activeTab = tab
		if app.View() == "" {
			t.Fatalf("tab %d rendered empty", tab)
		}
	}
}

func TestKeysSwitchTabsAndRerun(t *testing.T) {
	cfg := config.Default()
	a := NewApp(cfg, "", nil)
	a.loaded = true
	a.running = false

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	if got := m.(App).activeTab; got != 4 {
		t.Fatalf("activeTab = %d, want 4", got)
	}

	m, cmd := m.(App).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	app := m.(App)
	if !app.running || cmd == nil {
		t.Fatal("r should start a new run")
	}
	if app.cfg.General.Seed != cfg.General.Seed+1 {
		t.Fatalf("seed = %d, want %d", app.cfg.General.Seed, cfg.General.Seed+1)
	}

	// Keys that start runs are ignored while one is in flight.
	m, _ = app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.(App).cfg.Loan.Scenario != cfg.Loan.Scenario {
		t.Fatal("scenario changed during a run")
	}
}

func TestNextNameWraps(t *testing.T) {
	names := []string{"a", "b", "c"}
	if got := nextName(names, "c"); got != "a" {
		t.Fatalf("nextName(c) = %q", got)
	}
	if got := nextName(names, "missing"); got != "a" {
		t.Fatalf("nextName(missing) = %q", got)
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.Default()
	v := ValuesFrom(cfg)
	v.Scenario = "large_loan"
	v.Months = 24
	v.Seed = " 7 "
	v.Theme = "terminal"

	got := v.Apply(cfg)
	if got.Loan.Scenario != "large_loan" || got.General.Months != 24 || got.General.Seed != 7 {
		t.Fatalf("applied = %+v", got.General)
	}
	if got.Appearance.Theme != "terminal" {
		t.Fatalf("theme = %q", got.Appearance.Theme)
	}
	if err := config.Validate(got); err != nil {
		t.Fatalf("applied config invalid: %v", err)
	}
}

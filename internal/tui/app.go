// Package tui provides the interactive Bubble Tea dashboard for runway.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
	"github.com/theirongolddev/runway/internal/pipeline"
	"github.com/theirongolddev/runway/internal/tui/components"
	"github.com/theirongolddev/runway/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// ForecastMsg is sent when a simulation run finishes.
type ForecastMsg struct {
	Config  config.Config
	Records []model.MonthlyRecord
	Err     error
	Elapsed time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	// Inputs
	cfg        config.Config
	configPath string
	logger     *zap.Logger

	// Run output and the views derived from it
	records    []model.MonthlyRecord
	summary    model.Summary
	quarters   []model.QuarterStats
	channels   []model.ChannelStats
	tiers      []model.TierStats
	costTotals pipeline.CostTotals
	costLines  []model.CostLine
	runway     model.RunwayStats
	report     pipeline.Report
	plan       engine.Plan
	runErr     error

	loaded  bool
	running bool
	runTime time.Duration

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	spinner   spinner.Model

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *SetupValues // shared with the form across App copies
	needSetup bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5
)

// NewApp creates the dashboard for cfg. configPath is where the first-run
// wizard saves; the wizard only runs when no config file exists there.
func NewApp(cfg config.Config, configPath string, logger *zap.Logger) App {
	if logger == nil {
		logger = zap.NewNop()
	}
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		cfg:        cfg,
		configPath: configPath,
		logger:     logger,
		needSetup:  configPath != "" && !config.Exists(configPath),
		spinner:    sp,
		running:    true,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		runForecastCmd(a.cfg, a.logger),
	)
}

// runForecastCmd runs the simulation off the UI goroutine.
func runForecastCmd(cfg config.Config, logger *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		records, err := engine.Run(context.Background(), cfg, engine.NewRandom(cfg.General.Seed), engine.WithLogger(logger))
		return ForecastMsg{Config: cfg, Records: records, Err: err, Elapsed: time.Since(start)}
	}
}

func (a *App) recompute() {
	scenario, _ := a.cfg.ActiveScenario()
	a.summary = pipeline.Summarize(a.records, scenario.Amount)
	a.quarters = pipeline.AggregateQuarters(a.records)
	a.channels = pipeline.AggregateChannels(a.records)
	a.tiers = pipeline.AggregateTiers(a.records)
	a.costTotals, a.costLines = pipeline.AggregateCostBreakdown(a.records)
	a.runway = pipeline.Runway(a.records, a.cfg.General.RollingWindow)
	a.report = pipeline.Validate(a.cfg, a.records)
	a.plan, _ = engine.PlanFor(a.cfg)
}

// rerun starts a new simulation with cfg.
func (a App) rerun(cfg config.Config) (App, tea.Cmd) {
	a.cfg = cfg
	a.running = true
	return a, tea.Batch(a.spinner.Tick, runForecastCmd(cfg, a.logger))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			if a.running {
				return a, nil
			}
			cfg := a.cfg
			cfg.General.Seed++
			return a.rerun(cfg)
		case "n":
			if a.running {
				return a, nil
			}
			return a.rerun(a.cfg.WithLoan(nextName(scenarioNames(a.cfg), a.cfg.Loan.Scenario), a.cfg.Loan.Strategy))
		case "s":
			if a.running {
				return a, nil
			}
			return a.rerun(a.cfg.WithLoan(a.cfg.Loan.Scenario, nextName(strategyNames(a.cfg), a.cfg.Loan.Strategy)))
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		default:
			if r := []rune(key); len(r) == 1 {
				if idx := components.TabIdxByKey(r[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
		return a, nil

	case ForecastMsg:
		a.running = false
		a.runTime = msg.Elapsed
		a.cfg = msg.Config
		a.runErr = msg.Err
		if msg.Err == nil {
			a.records = msg.Records
			a.recompute()
		}
		first := !a.loaded
		a.loaded = true

		if first && a.needSetup {
			vals := ValuesFrom(a.cfg)
			a.setupVals = &vals
			a.setupForm = NewSetupForm(a.cfg, a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case spinner.TickMsg:
		if a.running {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		cfg := a.setupVals.Apply(a.cfg)
		if err := config.SaveFile(a.configPath, cfg); err != nil {
			a.logger.Warn("saving config", zap.String("path", a.configPath), zap.Error(err))
		}
		theme.SetActive(cfg.Appearance.Theme)
		a.needSetup = false
		a.setupForm = nil
		return a.rerun(cfg)
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  runway needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ runway"))
	b.WriteString(subtitleStyle.Render(" · cash-flow forecast"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(fmt.Sprintf(" Simulating %d months of %s / %s",
		a.cfg.General.Months, a.cfg.Loan.Scenario, a.cfg.Loan.Strategy)))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"o c f t l", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"r", "Re-run with the next seed"},
		{"n", "Next loan scenario"},
		{"s", "Next allocation strategy"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	runTime := ""
	if a.runTime > 0 {
		runTime = fmt.Sprintf("%.0fms", float64(a.runTime.Microseconds())/1000)
	}
	statusBar := components.RenderStatusBar(w, a.cfg.Loan.Scenario, a.cfg.Loan.Strategy, a.cfg.General.Seed, runTime, a.running)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case a.runErr != nil:
		content = components.ContentCard("Forecast failed", a.runErr.Error(), cw)
	case a.activeTab == 0:
		content = a.renderOverviewTab(cw)
	case a.activeTab == 1:
		content = a.renderCustomersTab(cw)
	case a.activeTab == 2:
		content = a.renderFinanceTab(cw)
	case a.activeTab == 3:
		content = a.renderTeamTab(cw)
	case a.activeTab == 4:
		content = a.renderLoanTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, strings.TrimSuffix(header, "\n"), content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func scenarioNames(cfg config.Config) []string {
	names := make([]string, len(cfg.Loan.Scenarios))
	for i, s := range cfg.Loan.Scenarios {
		names[i] = s.Name
	}
	return names
}

func strategyNames(cfg config.Config) []string {
	names := make([]string, len(cfg.Loan.Strategies))
	for i, s := range cfg.Loan.Strategies {
		names[i] = s.Name
	}
	return names
}

// nextName returns the entry after current, wrapping around.
func nextName(names []string, current string) string {
	if len(names) == 0 {
		return current
	}
	for i, n := range names {
		if strings.EqualFold(n, current) {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// monthLabels returns compact x-axis labels: the year on January, the month otherwise.
func monthLabels(records []model.MonthlyRecord) []string {
	labels := make([]string, len(records))
	for i, r := range records {
		if i == 0 || r.Date.Month() == time.January {
			labels[i] = r.Date.Format("Jan06")
		} else {
			labels[i] = r.Date.Format("Jan")
		}
	}
	return labels
}

func series(records []model.MonthlyRecord, f func(model.MonthlyRecord) float64) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = f(r)
	}
	return out
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes use the same widths as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos++ // separator
		}
	}
	return -1
}

package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/liquigraph/pkg/network"
	"github.com/dd0wney/liquigraph/pkg/report"
	"github.com/dd0wney/liquigraph/pkg/scenario"
	"github.com/dd0wney/liquigraph/pkg/sim"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	sparkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type keyMap struct {
	Rerun key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Rerun: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rerun sweep"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Rerun, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Rerun, k.Quit}}
}

// runSpec is one cell of the scenario x mode matrix.
type runSpec struct {
	scenario scenario.Scenario
	mode     sim.Mode
}

type runDoneMsg struct {
	result *sim.Result
	err    error
}

type model struct {
	network  *network.Network
	cfg      sim.MatrixConfig
	pairs    []runSpec
	results  []*sim.Result
	idx      int
	spinner  spinner.Model
	progress progress.Model
	help     help.Model
	keys     keyMap
	width    int
	done     bool
	err      error
	started  time.Time
	elapsed  time.Duration
}

func initialModel(n *network.Network, cfg sim.MatrixConfig) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF00FF"))

	pairs := make([]runSpec, 0, 2*len(scenario.All()))
	for _, s := range scenario.All() {
		pairs = append(pairs, runSpec{s, sim.Unassisted}, runSpec{s, sim.BankAssisted})
	}

	return model{
		network:  n,
		cfg:      cfg,
		pairs:    pairs,
		results:  make([]*sim.Result, len(pairs)),
		spinner:  sp,
		progress: progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
		keys:     keys,
		started:  time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runNext())
}

// runNext simulates the current matrix cell in the background.
func (m model) runNext() tea.Cmd {
	spec := m.pairs[m.idx]
	n := m.network
	cfg := m.cfg
	return func() tea.Msg {
		engine, err := sim.NewEngine(n, sim.Config{
			Scenario:      spec.scenario.Name,
			BaseSuspicion: spec.scenario.BaseSuspicion,
			Rounds:        cfg.Rounds,
			Mode:          spec.mode,
			Seed:          cfg.Seed,
			Sensitivity:   cfg.Sensitivity,
			Cycles:        cfg.Cycles,
		})
		if err != nil {
			return runDoneMsg{err: err}
		}
		result, err := engine.Run()
		return runDoneMsg{result: result, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.progress.Width = msg.Width - 8
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Rerun):
			if m.done || m.err != nil {
				m.results = make([]*sim.Result, len(m.pairs))
				m.idx = 0
				m.done = false
				m.err = nil
				m.started = time.Now()
				return m, tea.Batch(m.progress.SetPercent(0), m.runNext())
			}
		}

	case runDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.results[m.idx] = msg.result
		m.idx++
		percentCmd := m.progress.SetPercent(float64(m.idx) / float64(len(m.pairs)))
		if m.idx < len(m.pairs) {
			return m, tea.Batch(percentCmd, m.runNext())
		}
		m.done = true
		m.elapsed = time.Since(m.started)
		return m, percentCmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("🏦 Liquigraph — Liquidity Game Dashboard"))
	s.WriteString("\n\n")

	if m.err != nil {
		s.WriteString(contentStyle.Render(errorStyle.Render("✗ Sweep failed: " + m.err.Error())))
		s.WriteString("\n")
		s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
		return s.String()
	}

	if !m.done {
		spec := m.pairs[m.idx]
		s.WriteString(statusStyle.Render(fmt.Sprintf("%s Running %s / %s (%d/%d)",
			m.spinner.View(), spec.scenario.Name, spec.mode, m.idx+1, len(m.pairs))))
		s.WriteString("\n\n")
		s.WriteString(contentStyle.Render(m.progress.View()))
		s.WriteString("\n")
	} else {
		s.WriteString(contentStyle.Render(successStyle.Render(
			fmt.Sprintf("✓ Sweep finished in %v", m.elapsed.Round(time.Millisecond)))))
		s.WriteString("\n")
	}

	if rows := m.finishedRows(); len(rows) > 0 {
		s.WriteString(contentStyle.Render(report.ComparisonTable(rows)))
		if m.done {
			s.WriteString(contentStyle.Render(m.renderDynamics(rows)))
			s.WriteString("\n")
		}
	}

	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))
	return s.String()
}

// finishedRows pairs up completed runs, one row per scenario with both
// modes done.
func (m model) finishedRows() []sim.MatrixResult {
	var rows []sim.MatrixResult
	for i := 0; i+1 < len(m.pairs); i += 2 {
		unassisted, assisted := m.results[i], m.results[i+1]
		if unassisted == nil || assisted == nil {
			break
		}
		rows = append(rows, sim.MatrixResult{
			Scenario:   m.pairs[i].scenario,
			Unassisted: unassisted,
			Assisted:   assisted,
			Delta:      sim.Compare(unassisted, assisted),
		})
	}
	return rows
}

func (m model) renderDynamics(rows []sim.MatrixResult) string {
	var s strings.Builder
	s.WriteString("Per-round payment rate:\n")
	for _, row := range rows {
		s.WriteString(fmt.Sprintf("  %-10s %s\n", row.Scenario.Name,
			sparkStyle.Render(report.DynamicsSparkline(row.Assisted.History))))
	}
	return s.String()
}

func main() {
	rounds := flag.Int("rounds", 100, "Rounds to simulate per run")
	seed := flag.Int64("seed", 42, "Random seed shared by every run")
	dataset := flag.String("dataset", "", "JSON dataset path (default: built-in generator)")
	flag.Parse()

	var n *network.Network
	var err error
	if *dataset != "" {
		n, err = network.LoadDataset(*dataset)
	} else {
		n, err = network.GenerateBusinessNetwork(network.DefaultGeneratorConfig())
	}
	if err != nil {
		log.Fatalf("Failed to build network: %v", err)
	}

	cfg := sim.DefaultMatrixConfig()
	cfg.Rounds = *rounds
	cfg.Seed = *seed

	p := tea.NewProgram(initialModel(n, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}

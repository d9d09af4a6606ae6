package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/chromabench/pkg/dimacs"
	"github.com/matzehuels/chromabench/pkg/observability"
	"github.com/matzehuels/chromabench/pkg/optimal"
	"github.com/matzehuels/chromabench/pkg/pipeline"
)

// List styles
var (
	listDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
	listDoneStyle = lipgloss.NewStyle().Foreground(colorGreen)
	listBusyStyle = lipgloss.NewStyle().Foreground(colorCyan)
	listFailStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Messages
// =============================================================================

type searchStartMsg struct {
	graph           string
	vertices, edges int
	trials          int
}

type improvementMsg struct {
	graph         string
	trial, colors int
}

type searchDoneMsg struct {
	graph    string
	colors   int
	duration time.Duration
	err      error
}

type runDoneMsg struct {
	res *pipeline.Result
	err error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// =============================================================================
// Hooks
// =============================================================================

// tuiHooks forwards search events to a running program.
type tuiHooks struct {
	p *tea.Program
}

func (h tuiHooks) OnSearchStart(_ context.Context, graph string, vertices, edges, trials int) {
	h.p.Send(searchStartMsg{graph: graph, vertices: vertices, edges: edges, trials: trials})
}

func (h tuiHooks) OnImprovement(_ context.Context, graph string, trial, colors int) {
	h.p.Send(improvementMsg{graph: graph, trial: trial, colors: colors})
}

func (h tuiHooks) OnSearchComplete(_ context.Context, graph string, colors int, d time.Duration, err error) {
	h.p.Send(searchDoneMsg{graph: graph, colors: colors, duration: d, err: err})
}

// =============================================================================
// RunModel - live progress of a benchmark run
// =============================================================================

type graphState struct {
	name     string
	vertices int
	edges    int
	trials   int
	colors   int // best so far, 0 before the first trial
	bestAt   int
	duration time.Duration
	done     bool
	err      error
}

// RunModel is the bubbletea model for the run --tui progress view.
type RunModel struct {
	Total   int
	Table   optimal.Table
	Height  int
	Started time.Time
	Now     time.Time

	order  []string
	graphs map[string]*graphState
	done   int

	Result    *pipeline.Result
	Err       error
	Finished  bool
	Cancelled bool

	cancel context.CancelFunc
}

// NewRunModel creates a progress model for a run over total graphs.
// cancel is called when the user quits early.
func NewRunModel(total int, known optimal.Table, cancel context.CancelFunc) RunModel {
	now := time.Now()
	return RunModel{
		Total:   total,
		Table:   known,
		Height:  20,
		Started: now,
		Now:     now,
		graphs:  make(map[string]*graphState),
		cancel:  cancel,
	}
}

func (m RunModel) Init() tea.Cmd {
	return tick()
}

func (m RunModel) state(name string) *graphState {
	g, ok := m.graphs[name]
	if !ok {
		g = &graphState{name: name}
		m.graphs[name] = g
	}
	return g
}

func (m RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	case tickMsg:
		m.Now = time.Time(msg)
		if m.Finished {
			return m, nil
		}
		return m, tick()
	case searchStartMsg:
		if _, seen := m.graphs[msg.graph]; !seen {
			m.order = append(m.order, msg.graph)
		}
		g := m.state(msg.graph)
		g.vertices, g.edges, g.trials = msg.vertices, msg.edges, msg.trials
	case improvementMsg:
		g := m.state(msg.graph)
		g.colors, g.bestAt = msg.colors, msg.trial
	case searchDoneMsg:
		g := m.state(msg.graph)
		if !g.done {
			m.done++
		}
		g.done, g.err, g.duration = true, msg.err, msg.duration
		if msg.err == nil {
			g.colors = msg.colors
		}
	case runDoneMsg:
		m.Result, m.Err, m.Finished = msg.res, msg.err, true
		return m, tea.Quit
	}
	return m, nil
}

func (m RunModel) View() string {
	var b strings.Builder

	elapsed := m.Now.Sub(m.Started).Truncate(100 * time.Millisecond)
	b.WriteString(StyleTitle.Render("Colouring graphs"))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d/%d done · %s", m.done, m.Total, elapsed)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("q quit"))
	b.WriteString("\n\n")

	// Newest graphs last; older ones scroll off the top.
	names := m.order
	if len(names) > m.Height {
		names = names[len(names)-m.Height:]
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		g := m.graphs[name]
		best := "—"
		if g.colors > 0 {
			best = strconv.Itoa(g.colors)
		}
		optimum := "?"
		if k, ok := m.Table.Lookup(name); ok {
			optimum = strconv.Itoa(k)
		}
		status := "searching"
		switch {
		case g.err != nil:
			status = "failed"
		case g.done:
			status = g.duration.Round(time.Millisecond).String()
		}
		rows = append(rows, []string{name, strconv.Itoa(g.vertices), strconv.Itoa(g.edges), best, optimum, status})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Graph", "V", "E", "Best", "Optimal", "Status").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			if row >= len(names) {
				return styleCell
			}
			g := m.graphs[names[row]]
			switch {
			case g.err != nil:
				return listFailStyle.Padding(0, 1)
			case g.done && m.Table.Solved(g.name, g.colors):
				return listDoneStyle.Padding(0, 1)
			case !g.done && col == 3:
				return listBusyStyle.Padding(0, 1)
			}
			return styleCell
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// runWithTUI executes the run while a progress view renders on stderr.
func runWithTUI(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	names, err := dimacs.ListDir(opts.InputDir)
	if err != nil {
		return nil, err
	}
	known, err := optimal.LoadWithDefault(opts.OptimalFile)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewRunModel(len(names), known, cancel), tea.WithOutput(os.Stderr))

	prev := observability.Search()
	observability.SetSearchHooks(tuiHooks{p: p})
	defer observability.SetSearchHooks(prev)

	done := make(chan runDoneMsg, 1)
	go func() {
		res, err := runner.Execute(ctx, opts)
		done <- runDoneMsg{res: res, err: err}
		p.Send(runDoneMsg{res: res, err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, err
	}
	// The run goroutine finishes promptly once the context is cancelled.
	cancel()
	out := <-done
	return out.res, out.err
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/chromabench/pkg/optimal"
	"github.com/matzehuels/chromabench/pkg/pipeline"
)

func update(t *testing.T, m RunModel, msgs ...tea.Msg) RunModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(RunModel)
	}
	return m
}

func TestRunModel_Progress(t *testing.T) {
	m := NewRunModel(2, optimal.Table{"a.col": 3}, nil)
	m = update(t, m,
		searchStartMsg{graph: "a.col", vertices: 10, edges: 20, trials: 100},
		improvementMsg{graph: "a.col", trial: 0, colors: 5},
		improvementMsg{graph: "a.col", trial: 7, colors: 3},
		searchStartMsg{graph: "b.col", vertices: 4, edges: 4, trials: 100},
	)

	if got := m.graphs["a.col"].colors; got != 3 {
		t.Errorf("best colours = %d, want 3", got)
	}
	if m.done != 0 {
		t.Errorf("done = %d before any completion", m.done)
	}

	m = update(t, m,
		searchDoneMsg{graph: "a.col", colors: 3, duration: 12 * time.Millisecond},
		searchDoneMsg{graph: "b.col", err: errors.New("boom")},
	)
	if m.done != 2 {
		t.Errorf("done = %d, want 2", m.done)
	}

	view := m.View()
	for _, want := range []string{"2/2 done", "a.col", "b.col", "failed", "12ms"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Index(view, "a.col") > strings.Index(view, "b.col") {
		t.Error("graphs should be listed in start order")
	}
}

func TestRunModel_DuplicateDone(t *testing.T) {
	m := NewRunModel(1, nil, nil)
	m = update(t, m,
		searchStartMsg{graph: "a.col"},
		searchDoneMsg{graph: "a.col", colors: 2},
		searchDoneMsg{graph: "a.col", colors: 2},
	)
	if m.done != 1 {
		t.Errorf("done = %d, want 1", m.done)
	}
}

func TestRunModel_Quit(t *testing.T) {
	cancelled := false
	m := NewRunModel(1, nil, context.CancelFunc(func() { cancelled = true }))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if !next.(RunModel).Cancelled || !cancelled {
		t.Error("q should cancel the run")
	}
	if cmd == nil {
		t.Error("q should quit the program")
	}
}

func TestRunModel_RunDone(t *testing.T) {
	m := NewRunModel(0, nil, nil)
	res := &pipeline.Result{}
	next, cmd := m.Update(runDoneMsg{res: res})
	got := next.(RunModel)
	if !got.Finished || got.Result != res {
		t.Errorf("model = %+v, want finished with result", got)
	}
	if cmd == nil {
		t.Error("run completion should quit the program")
	}

	// A finished model stops ticking.
	if _, cmd := got.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("finished model should not schedule another tick")
	}
}

func TestRunModel_Scroll(t *testing.T) {
	m := NewRunModel(30, nil, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 14})
	for i := 0; i < 30; i++ {
		m = update(t, m, searchStartMsg{graph: fmt.Sprintf("g%02d.col", i)})
	}
	view := m.View()
	if strings.Contains(view, "g00.col") {
		t.Error("oldest graph should have scrolled off")
	}
	if !strings.Contains(view, "g29.col") {
		t.Error("newest graph should be visible")
	}
}

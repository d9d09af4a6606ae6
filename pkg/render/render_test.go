package render

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/chromabench/pkg/coloring"
	"github.com/matzehuels/chromabench/pkg/graph"
)

func square(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build(4, []graph.Edge{{U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 4}, {U: 4, V: 1}})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestToDOT(t *testing.T) {
	g := square(t)
	c := coloring.Coloring{Classes: [][]int{{0, 2}, {1, 3}}}

	dot := ToDOT(g, c, Options{})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`1 [label="1", fillcolor="` + ClassColor(0) + `"];`,
		`2 [label="2", fillcolor="` + ClassColor(1) + `"];`,
		"1 -- 2;",
		"1 -- 4;",
		"3 -- 4;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Count(dot, " -- ") != 4 {
		t.Errorf("want 4 edges in:\n%s", dot)
	}
}

func TestToDOT_Options(t *testing.T) {
	g := square(t)
	c := coloring.Coloring{Classes: [][]int{{0, 2}, {1}}}

	dot := ToDOT(g, c, Options{Engine: EngineCirco, Detailed: true})

	if !strings.Contains(dot, "layout=circo;") {
		t.Error("engine not applied")
	}
	if !strings.Contains(dot, `label="3\nc0"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	// Vertex 4 is not coloured.
	if !strings.Contains(dot, `4 [label="4", fillcolor="white"];`) {
		t.Errorf("uncoloured vertex should be white:\n%s", dot)
	}
}

func TestClassColor(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 40; i++ {
		c := ClassColor(i)
		if seen[c] {
			t.Errorf("ClassColor(%d) = %q repeats", i, c)
		}
		seen[c] = true
	}
}

func TestRender_DOTPassthrough(t *testing.T) {
	out, err := Render(context.Background(), "graph G {}", FormatDOT, 1)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "graph G {}" {
		t.Errorf("Render(dot) = %q", out)
	}
	if _, err := Render(context.Background(), "graph G {}", "gif", 1); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", out, want)
	}
}

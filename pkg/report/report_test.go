package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/chromabench/pkg/coloring"
	"github.com/matzehuels/chromabench/pkg/optimal"
	"github.com/matzehuels/chromabench/pkg/search"
)

func best(colors int, classes [][]int) *search.Best {
	return &search.Best{
		Trial: search.Trial{
			Index:    7,
			Coloring: coloring.Coloring{Classes: classes},
			Colors:   colors,
			Elapsed:  1500 * time.Microsecond,
			Outcome:  coloring.Pass,
		},
		Trials: 5000,
	}
}

func TestNewRow(t *testing.T) {
	tbl := optimal.Default()

	tests := []struct {
		name       string
		file       string
		colors     int
		wantKnown  bool
		wantSolved bool
	}{
		{"solved", "myciel3.col.txt", 4, true, true},
		{"not solved", "myciel3.col.txt", 5, true, false},
		{"unknown", "mystery.col", 1, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRow(tt.file, best(tt.colors, [][]int{{0, 2}, {1}}), tbl)
			if r.OptimalKnown != tt.wantKnown {
				t.Errorf("OptimalKnown = %v, want %v", r.OptimalKnown, tt.wantKnown)
			}
			if r.Solved != tt.wantSolved {
				t.Errorf("Solved = %v, want %v", r.Solved, tt.wantSolved)
			}
			if got := FormatGroups(r.Groups); got != "[0, 2, 1]" {
				t.Errorf("GROUPS = %s, want every class flattened in colour order", got)
			}
			if r.BestAt != 7 || r.Trials != 5000 {
				t.Errorf("BestAt/Trials = %d/%d, want 7/5000", r.BestAt, r.Trials)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	tbl := optimal.Default()
	rows := []Row{
		NewRow("myciel3.col.txt", best(4, [][]int{{0, 2}, {1, 3}}), tbl),
		NewRow("mystery.col", best(2, [][]int{{1}, {0}}), tbl),
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if strings.Join(records[0], ",") != "FILENAME,AMOUNT_COLORS,TIME,GROUPS,TEST,OPTIMAL_SOLUTION,SOLVED" {
		t.Errorf("header = %v", records[0])
	}

	want := [][]string{
		{"myciel3.col.txt", "4", "0.0015", "[0, 2, 1, 3]", "PASS", "4", "true"},
		{"mystery.col", "2", "0.0015", "[1, 0]", "PASS", "unknown", "false"},
	}
	for i, w := range want {
		got := records[i+1]
		if strings.Join(got, "|") != strings.Join(w, "|") {
			t.Errorf("record %d = %q, want %q", i+1, got, w)
		}
	}
}

func TestFormatGroups(t *testing.T) {
	tests := []struct {
		in   []int
		want string
	}{
		{nil, "[]"},
		{[]int{5}, "[5]"},
		{[]int{0, 10, 3}, "[0, 10, 3]"},
	}
	for _, tt := range tests {
		if got := FormatGroups(tt.in); got != tt.want {
			t.Errorf("FormatGroups(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSortRows(t *testing.T) {
	rows := []Row{{Filename: "c"}, {Filename: "a"}, {Filename: "b"}}
	SortRows(rows)
	for i, want := range []string{"a", "b", "c"} {
		if rows[i].Filename != want {
			t.Errorf("rows[%d] = %q, want %q", i, rows[i].Filename, want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	s := &Summary{
		RunID:    "run-1",
		Trials:   10,
		Seed:     42,
		Rows:     []Row{NewRow("myciel3.col.txt", best(4, [][]int{{0}, {1}}), optimal.Default())},
		Failures: []Failure{{Filename: "bad.col", Code: "PARSE_ERROR", Error: "line 1: missing problem line"}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, s); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got struct {
		RunID   string `json:"run_id"`
		Results []struct {
			Filename string `json:"filename"`
			Test     string `json:"test"`
			Solved   bool   `json:"solved"`
		} `json:"results"`
		Failures []Failure `json:"failures"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.RunID != "run-1" {
		t.Errorf("run_id = %q", got.RunID)
	}
	if len(got.Results) != 1 || got.Results[0].Test != "PASS" || !got.Results[0].Solved {
		t.Errorf("results = %+v", got.Results)
	}
	if len(got.Failures) != 1 || got.Failures[0].Code != "PARSE_ERROR" {
		t.Errorf("failures = %+v", got.Failures)
	}
	if s.SolvedCount() != 1 {
		t.Errorf("SolvedCount = %d, want 1", s.SolvedCount())
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultCSVName)
	if err := ExportCSV(nil, path); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != strings.Join(Header, ",")+"\n" {
		t.Errorf("file = %q", data)
	}
}

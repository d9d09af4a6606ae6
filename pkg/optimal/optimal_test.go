package optimal

import (
	"os"
	"path/filepath"
	"testing"

	errs "github.com/matzehuels/chromabench/pkg/errors"
)

func TestDefault(t *testing.T) {
	tbl := Default()
	if len(tbl) != 14 {
		t.Fatalf("len(Default()) = %d, want 14", len(tbl))
	}

	tests := []struct {
		name string
		want int
	}{
		{"myciel3.col.txt", 4},
		{"latin_square_10.col.txt", 97},
		{"le450_5a.col", 11},
		{"school1_nsh.col.txt", 21},
	}
	for _, tt := range tests {
		if got, ok := tbl.Lookup(tt.name); !ok || got != tt.want {
			t.Errorf("Lookup(%q) = %d, %v; want %d, true", tt.name, got, ok, tt.want)
		}
	}
}

func TestDefault_ReturnsCopy(t *testing.T) {
	a := Default()
	a["myciel3.col.txt"] = 99
	if got, _ := Default().Lookup("myciel3.col.txt"); got != 4 {
		t.Errorf("mutation leaked into default table: got %d", got)
	}
}

func TestSolved(t *testing.T) {
	tbl := Default()
	tests := []struct {
		name   string
		file   string
		colors int
		want   bool
	}{
		{"at optimum", "myciel3.col.txt", 4, true},
		{"above optimum", "myciel3.col.txt", 5, false},
		{"unknown instance", "random.col", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tbl.Solved(tt.file, tt.colors); got != tt.want {
				t.Errorf("Solved(%q, %d) = %v, want %v", tt.file, tt.colors, got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not toml", "[optimal\n"},
		{"wrong type", "[optimal]\n\"a.col\" = \"four\"\n"},
		{"zero optimum", "[optimal]\n\"a.col\" = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errs.Is(err, errs.ErrCodeInvalidConfig) {
				t.Errorf("Parse error = %v, want code %s", err, errs.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestLoadWithDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "optimal.toml")
	data := "[optimal]\n\"myciel3.col.txt\" = 3\n\"mine.col\" = 7\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	tbl, err := LoadWithDefault(path)
	if err != nil {
		t.Fatalf("LoadWithDefault: %v", err)
	}
	if got, _ := tbl.Lookup("myciel3.col.txt"); got != 3 {
		t.Errorf("override = %d, want 3", got)
	}
	if got, _ := tbl.Lookup("mine.col"); got != 7 {
		t.Errorf("added = %d, want 7", got)
	}
	if got, _ := tbl.Lookup("anna.col"); got != 11 {
		t.Errorf("default kept = %d, want 11", got)
	}
	if len(tbl) != 15 {
		t.Errorf("len = %d, want 15", len(tbl))
	}
}

func TestLoadWithDefault_EmptyPath(t *testing.T) {
	tbl, err := LoadWithDefault("")
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl) != 14 {
		t.Errorf("len = %d, want 14", len(tbl))
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("Load error = %v, want code %s", err, errs.ErrCodeFileNotFound)
	}
}

func TestNames(t *testing.T) {
	tbl := Table{"b": 1, "a": 2, "c": 3}
	got := tbl.Names()
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}

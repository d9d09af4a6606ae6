// Package optimal holds the table of known chromatic numbers used to judge
// whether a search solved a benchmark instance.
//
// The default table is embedded TOML. Users can overlay their own file with
// the same layout:
//
//	[optimal]
//	"myciel3.col.txt" = 4
//	"anna.col" = 11
package optimal

import (
	_ "embed"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/chromabench/pkg/errors"
)

//go:embed default.toml
var defaultTOML []byte

// Table maps an instance file name to its known chromatic number.
type Table map[string]int

type tableFile struct {
	Optimal map[string]int `toml:"optimal"`
}

var (
	defaultTable     Table
	defaultTableOnce sync.Once
)

// Default returns a copy of the built-in table.
func Default() Table {
	defaultTableOnce.Do(func() {
		t, err := Parse(defaultTOML)
		if err != nil {
			panic("optimal: embedded table: " + err.Error())
		}
		defaultTable = t
	})
	return maps.Clone(defaultTable)
}

// Parse decodes a TOML table. Optima must be positive.
func Parse(data []byte) (Table, error) {
	var f tableFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode optimal table")
	}
	t := make(Table, len(f.Optimal))
	for name, k := range f.Optimal {
		if k <= 0 {
			return nil, errs.New(errs.ErrCodeInvalidConfig, "optimum for %q must be positive, got %d", name, k)
		}
		t[name] = k
	}
	return t, nil
}

// Load reads a TOML table from path.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "read optimal table %s", path)
	}
	return Parse(data)
}

// LoadWithDefault returns the built-in table overlaid with the file at path.
// An empty path returns the built-in table.
func LoadWithDefault(path string) (Table, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	user, err := Load(path)
	if err != nil {
		return nil, err
	}
	return t.Merge(user), nil
}

// Merge returns a new table with the entries of other overriding t.
func (t Table) Merge(other Table) Table {
	out := make(Table, len(t)+len(other))
	maps.Copy(out, t)
	maps.Copy(out, other)
	return out
}

// Lookup returns the known optimum for name.
func (t Table) Lookup(name string) (int, bool) {
	k, ok := t[name]
	return k, ok
}

// Solved reports whether colors reaches the known optimum of name.
// It is always false when the optimum is unknown.
func (t Table) Solved(name string, colors int) bool {
	k, ok := t[name]
	return ok && colors <= k
}

// Names returns the instance names in sorted order.
func (t Table) Names() []string {
	return slices.Sorted(maps.Keys(t))
}

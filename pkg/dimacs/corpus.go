package dimacs

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	errs "github.com/matzehuels/chromabench/pkg/errors"
)

// ListDir returns the names of the regular files directly inside dir, sorted.
// Every file is treated as one graph instance keyed by its name; hidden files
// and subdirectories are skipped.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "read input directory %s", dir)
	}

	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !e.Type().IsRegular() {
			// Follow symlinks to regular files.
			info, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}

package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/chromabench/pkg/report"
)

// WriteOutputs writes the result in every requested format and returns the
// paths written. The CSV goes to opts.Output; the JSON summary goes next to
// it with a .json extension.
func WriteOutputs(res *Result, opts Options) ([]string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var paths []string
	if opts.WantsFormat(FormatCSV) {
		if err := report.ExportCSV(res.Rows, opts.Output); err != nil {
			return paths, err
		}
		paths = append(paths, opts.Output)
	}
	if opts.WantsFormat(FormatJSON) {
		path := jsonPath(opts.Output)
		if err := report.ExportJSON(&res.Summary, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func jsonPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".json"
}

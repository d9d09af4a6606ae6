package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Header is the CSV header row.
var Header = []string{"FILENAME", "AMOUNT_COLORS", "TIME", "GROUPS", "TEST", "OPTIMAL_SOLUTION", "SOLVED"}

// WriteCSV writes the header and one record per row, in the given order.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return fmt.Errorf("write %s: %w", r.Filename, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes rows to a CSV file at path.
func ExportCSV(rows []Row, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (r Row) record() []string {
	opt := UnknownOptimum
	if r.OptimalKnown {
		opt = strconv.Itoa(r.Optimal)
	}
	return []string{
		r.Filename,
		strconv.Itoa(r.Colors),
		strconv.FormatFloat(r.Time.Seconds(), 'f', -1, 64),
		FormatGroups(r.Groups),
		r.Test.String(),
		opt,
		strconv.FormatBool(r.Solved),
	}
}

// FormatGroups renders vertices as "[a, b, c]".
func FormatGroups(vs []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range vs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(']')
	return b.String()
}

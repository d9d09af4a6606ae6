package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Summary is the JSON document of a whole run.
type Summary struct {
	RunID    string    `json:"run_id"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
	Trials   int       `json:"trials"`
	Seed     uint64    `json:"seed"`
	Rows     []Row     `json:"results"`
	Failures []Failure `json:"failures,omitempty"`
}

// SolvedCount returns the number of rows that reached their known optimum.
func (s *Summary) SolvedCount() int {
	n := 0
	for _, r := range s.Rows {
		if r.Solved {
			n++
		}
	}
	return n
}

// WriteJSON encodes s as indented JSON to w.
func WriteJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes s to a JSON file at path.
func ExportJSON(s *Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

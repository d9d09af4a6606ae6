package errors

import (
	"testing"
)

func TestValidateGraphName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"dimacs name", "myciel3.col", false},
		{"txt suffix", "school1.col.txt", false},
		{"dotted", "inithx.i.1.col", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"slash", "dir/anna.col", true},
		{"backslash", "dir\\anna.col", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"null byte", "anna\x00.col", true},
		{"newline", "anna\n.col", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGraphName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGraphName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateGraphName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateTrials(t *testing.T) {
	tests := []struct {
		name    string
		trials  int
		limit   int
		wantErr bool
	}{
		{"positive no limit", 5000, 0, false},
		{"at limit", 100, 100, false},
		{"zero", 0, 0, true},
		{"negative", -1, 0, true},
		{"over limit", 101, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTrials(tt.trials, tt.limit)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTrials(%d, %d) error = %v, wantErr %v", tt.trials, tt.limit, err, tt.wantErr)
			}
		})
	}
}

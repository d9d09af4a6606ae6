package cli

import (
	"bytes"
	"context"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chromabench/pkg/pipeline"
	"github.com/matzehuels/chromabench/pkg/render"
)

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := New(io.Discard, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetErr(io.Discard)
			root.SetArgs([]string{"completion", shell})
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), "chromabench") {
				t.Errorf("%s script does not mention chromabench", shell)
			}
		})
	}
}

func TestCompleteValues(t *testing.T) {
	tests := []struct {
		name       string
		valid      map[string]bool
		list       bool
		toComplete string
		want       []string
	}{
		{"all engines", render.ValidEngines, false, "", []string{"circo", "dot", "fdp", "neato", "sfdp"}},
		{"prefix", render.ValidFormats, false, "p", []string{"pdf", "png"}},
		{"no match", pipeline.ValidCacheBackends, false, "x", nil},
		{"list tail", pipeline.ValidFormats, true, "csv,j", []string{"csv,json"}},
		{"list head", pipeline.ValidFormats, true, "c", []string{"csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, directive := completeValues(tt.valid, tt.list)(nil, nil, tt.toComplete)
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if directive != cobra.ShellCompDirectiveNoFileComp {
				t.Errorf("directive = %v, want NoFileComp", directive)
			}
		})
	}
}

func TestFlagCompletion_Registered(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{cobra.ShellCompRequestCmd, "render", "in.col", "--engine", "ci"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("__complete: %v", err)
	}
	if !strings.Contains(out.String(), "circo") {
		t.Errorf("completion output %q should offer circo", out.String())
	}
}

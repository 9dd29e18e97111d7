package cli

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompletionScripts(t *testing.T) {
	tests := []struct {
		shell    string
		contains []string
	}{
		{
			shell: "bash",
			contains: []string{
				"# bash completion for sortpool",
				`commands+=("sort")`,
				`commands+=("bench")`,
				`commands+=("config")`,
				"--chunk-size",
				"--workers",
			},
		},
		{
			shell:    "zsh",
			contains: []string{"#compdef sortpool"},
		},
		{
			shell:    "fish",
			contains: []string{"fish completion for sortpool"},
		},
		{
			shell:    "powershell",
			contains: []string{"Register-ArgumentCompleter", "sortpool"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			rootCmd := newRootCmd()
			rootCmd.SetArgs([]string{"completion", tt.shell})

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}
			rootCmd.SetOut(stdout)
			rootCmd.SetErr(stderr)

			if err := rootCmd.Execute(); err != nil {
				t.Fatalf("unexpected error: %v\nStderr: %s", err, stderr.String())
			}

			for _, want := range tt.contains {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("expected %s script to contain %q", tt.shell, want)
				}
			}
		})
	}
}

func TestCompletionCommand_InvalidArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		errContains string
	}{
		{
			name:        "unknown shell",
			args:        []string{"completion", "tcsh"},
			errContains: "invalid argument",
		},
		{
			name:        "no shell",
			args:        []string{"completion"},
			errContains: "accepts 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd := newRootCmd()
			rootCmd.SetArgs(tt.args)
			rootCmd.SetOut(&bytes.Buffer{})
			rootCmd.SetErr(&bytes.Buffer{})

			err := rootCmd.Execute()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.errContains)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
			}
		})
	}
}

func TestCompleteOutputFormats(t *testing.T) {
	tests := []struct {
		toComplete string
		expected   []string
	}{
		{toComplete: "", expected: []string{"table", "json", "yaml"}},
		{toComplete: "j", expected: []string{"json"}},
		{toComplete: "x", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run("prefix="+tt.toComplete, func(t *testing.T) {
			got, directive := completeOutputFormats(nil, nil, tt.toComplete)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
			if directive != cobra.ShellCompDirectiveNoFileComp {
				t.Errorf("expected NoFileComp directive, got %v", directive)
			}
		})
	}
}

func TestWorkerCounts(t *testing.T) {
	tests := []struct {
		name       string
		cpus       int
		toComplete string
		expected   []string
	}{
		{name: "single cpu", cpus: 1, expected: []string{"0", "1"}},
		{name: "power of two", cpus: 8, expected: []string{"0", "1", "2", "4", "8"}},
		{name: "odd count", cpus: 12, expected: []string{"0", "1", "2", "4", "8", "12"}},
		{name: "prefix", cpus: 16, toComplete: "1", expected: []string{"1", "16"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := workerCounts(tt.cpus, tt.toComplete)
			if !slices.Equal(got, tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCompletionCommand_Help(t *testing.T) {
	cmd := newCompletionCmd()
	cmd.SetArgs([]string{"--help"})

	output := &bytes.Buffer{}
	cmd.SetOut(output)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	help := output.String()
	for _, want := range []string{"Generate a shell completion script", "--output", "--workers", "Bash:", "Zsh:", "Fish:", "PowerShell:"} {
		if !strings.Contains(help, want) {
			t.Errorf("expected help to contain %q", want)
		}
	}
}

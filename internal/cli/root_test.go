package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aryankumar/sortpool/internal/util"
)

// runCLI executes the root command with a config path in a temp dir so the
// user's home config is never read
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--config", cfg}, args...))

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "sortpool" {
		t.Errorf("expected use 'sortpool', got %q", cmd.Use)
	}

	expectedCommands := []string{
		"sort",
		"bench",
		"config",
		"version",
		"completion",
	}

	for _, cmdName := range expectedCommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == cmdName {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", cmdName)
		}
	}
}

func TestRootCommandHelp(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--help"})

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	help := output.String()
	for _, want := range []string{"Sortpool", "merge sort", "sort", "bench", "config", "version"} {
		if !strings.Contains(help, want) {
			t.Errorf("expected help to contain %q", want)
		}
	}
}

func TestRootCommandFlagDefaults(t *testing.T) {
	cmd := newRootCmd()

	tests := []struct {
		flag     string
		expected string
	}{
		{flag: "config", expected: ""},
		{flag: "output", expected: ""},
		{flag: "verbose", expected: "false"},
		{flag: "no-color", expected: "false"},
		{flag: "workers", expected: "0"},
		{flag: "chunk-size", expected: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			flag := cmd.PersistentFlags().Lookup(tt.flag)
			if flag == nil {
				t.Fatalf("flag %q not found", tt.flag)
			}
			if flag.DefValue != tt.expected {
				t.Errorf("expected default value %q, got %q", tt.expected, flag.DefValue)
			}
		})
	}
}

func TestRootCommandShortFlags(t *testing.T) {
	cmd := newRootCmd()

	shortFlags := map[string]string{
		"o": "output",
		"v": "verbose",
		"w": "workers",
	}

	for short, long := range shortFlags {
		shortFlag := cmd.PersistentFlags().ShorthandLookup(short)
		if shortFlag == nil {
			t.Errorf("expected short flag -%s for %s", short, long)
			continue
		}
		if shortFlag.Name != long {
			t.Errorf("expected short flag -%s to map to %s, got %s", short, long, shortFlag.Name)
		}
	}
}

func TestRootCommandSilenceFlags(t *testing.T) {
	cmd := newRootCmd()

	if !cmd.SilenceUsage {
		t.Error("expected SilenceUsage to be true")
	}
	if !cmd.SilenceErrors {
		t.Error("expected SilenceErrors to be true")
	}
}

func TestSortCommand(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		expected string
	}{
		{
			name:     "stdin across chunks",
			stdin:    "9 3 7 1 8 2 6 4 5\n",
			args:     []string{"sort", "-w", "3", "--chunk-size", "2"},
			expected: "1\n2\n3\n4\n5\n6\n7\n8\n9\n",
		},
		{
			name:     "negatives and duplicates",
			stdin:    "5\n-1\n5\n0\n-1\n",
			args:     []string{"sort", "--workers", "2", "--chunk-size", "1"},
			expected: "-1\n-1\n0\n5\n5\n",
		},
		{
			name:     "empty input",
			stdin:    "",
			args:     []string{"sort", "-w", "1"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := runCLI(t, tt.stdin, tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v\nStderr: %s", err, stderr)
			}
			if stdout != tt.expected {
				t.Errorf("stdout = %q, want %q", stdout, tt.expected)
			}
		})
	}
}

func TestSortCommandFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.txt")
	second := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(first, []byte("30 10\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte("20\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "", "sort", "-w", "2", "--chunk-size", "1", "-o", "json", first, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []int64
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(got) != 3 || got[0] != 10 || got[1] != 20 || got[2] != 30 {
		t.Errorf("got %v, want [10 20 30]", got)
	}
}

func TestSortCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr error
	}{
		{
			name:    "not an integer",
			stdin:   "1 two 3",
			args:    []string{"sort"},
			wantErr: util.ErrInvalidInput,
		},
		{
			name:    "missing file",
			args:    []string{"sort", "/nonexistent/numbers.txt"},
			wantErr: util.ErrInvalidInput,
		},
		{
			name:    "negative workers",
			stdin:   "1",
			args:    []string{"sort", "-w", "-2"},
			wantErr: util.ErrInvalidConfig,
		},
		{
			name:    "unknown output format",
			stdin:   "1",
			args:    []string{"sort", "-o", "xml"},
			wantErr: util.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.stdin, tt.args...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBenchCommand(t *testing.T) {
	stdout, stderr, err := runCLI(t, "",
		"bench", "--size", "2000", "--threads", "1,2", "--seed", "7", "--chunk-size", "100", "-o", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v\nStderr: %s", err, stderr)
	}

	var report struct {
		DataSize     int    `json:"dataSize"`
		ChunkSize    int    `json:"chunkSize"`
		Seed         uint64 `json:"seed"`
		Measurements []struct {
			Threads  int  `json:"threads"`
			Verified bool `json:"verified"`
		} `json:"measurements"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}

	if report.DataSize != 2000 || report.ChunkSize != 100 || report.Seed != 7 {
		t.Errorf("unexpected report config: %+v", report)
	}
	if len(report.Measurements) != 2 {
		t.Fatalf("got %d measurements, want 2", len(report.Measurements))
	}
	for i, m := range report.Measurements {
		if m.Threads != i+1 {
			t.Errorf("measurement %d threads = %d, want %d", i, m.Threads, i+1)
		}
		if !m.Verified {
			t.Errorf("measurement %d not verified", i)
		}
	}
}

func TestBenchCommandNoVerify(t *testing.T) {
	stdout, _, err := runCLI(t, "",
		"bench", "--size", "500", "--threads", "2", "--chunk-size", "50", "--no-verify", "--no-color", "--wide")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"THREADS", "VERIFIED", "no", "Summary: 500 elements, chunk size 50"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected output to contain %q:\n%s", want, stdout)
		}
	}
}

func TestBenchCommandInvalidThreads(t *testing.T) {
	_, _, err := runCLI(t, "", "bench", "--size", "10", "--threads", "0")
	if !errors.Is(err, util.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestConfigCommands(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "sortpool", "config.yaml")

	run := func(args ...string) (string, error) {
		cmd := newRootCmd()
		cmd.SetArgs(append([]string{"--config", cfg}, args...))
		out := &bytes.Buffer{}
		cmd.SetOut(out)
		cmd.SetErr(&bytes.Buffer{})
		err := cmd.ExecuteContext(context.Background())
		return out.String(), err
	}

	out, err := run("config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, cfg) {
		t.Errorf("expected init output to name %s, got %q", cfg, out)
	}
	if _, err := os.Stat(cfg); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	if _, err := run("config", "init"); err == nil {
		t.Error("expected second init without --force to fail")
	}
	if _, err := run("config", "init", "--force"); err != nil {
		t.Errorf("config init --force: %v", err)
	}

	out, err = run("config", "view", "-w", "5")
	if err != nil {
		t.Fatalf("config view: %v", err)
	}
	for _, want := range []string{"sort:", "workers: 5", "chunkSize: 10000", "bench:", "output:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected config view to contain %q:\n%s", want, out)
		}
	}

	out, err = run("config", "view", "-o", "json")
	if err != nil {
		t.Fatalf("config view -o json: %v", err)
	}
	var view map[string]interface{}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("config view output is not JSON: %v\n%s", err, out)
	}
	if _, ok := view["sort"]; !ok {
		t.Errorf("expected sort section in %v", view)
	}
}

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		format   string
		contains string
	}{
		{format: "", contains: "Sortpool CLI"},
		{format: "json", contains: `"version"`},
		{format: "yaml", contains: "version:"},
		{format: "table", contains: "COMPONENT"},
	}

	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			args := []string{"version"}
			if tt.format != "" {
				args = append(args, "-o", tt.format)
			}

			stdout, _, err := runCLI(t, "", args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(stdout, tt.contains) {
				t.Errorf("expected output to contain %q, got %q", tt.contains, stdout)
			}
		})
	}
}

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/kahadb-trace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const traceLinePrefix = "2024-05-02 10:00:00,000 | TRACE | "
const traceLineSuffix = " | org.apache.activemq.store.kahadb.MessageDatabase | ActiveMQ Journal Checkpoint Worker"

func traceLine(message string) string {
	return traceLinePrefix + message + traceLineSuffix
}

var (
	scenarioOneLog = []string{
		traceLine("gc candidates set: [1, 2, 3, 4, 5]"),
		traceLine("gc candidates after first tx:3, [1, 2, 3]"),
		traceLine("gc candidates after producerSequenceIdTrackerLocation:3, [1, 2, 3]"),
		traceLine("gc candidates after dest:0:foo, [1]"),
	}
	scenarioTwoLog = append(append([]string{}, scenarioOneLog...),
		traceLine("not removing data file: 1 as contained ack(s) refer to referenced file: [4]"),
		traceLine("Checkpoint done."),
	)
)

func TestAnalyzeWithoutAcksOrCheckpoint(t *testing.T) {
	home := t.TempDir()
	logPath := writeLogFixture(t, home, scenarioOneLog...)

	stdout, _, err := executeCLI(t, home, logPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Using log file: "+logPath)
	assert.Contains(t, stdout, "Acquiring Full Set...\n\nFull journal set: 5\n")
	assert.Contains(t, stdout, "2 --- after first tx\n")
	assert.Contains(t, stdout, "0 --- producerSequenceIdTrackerLocation\n")
	assert.Contains(t, stdout, "2 --- foo (Queue)\n")
	assert.NotContains(t, stdout, "Journals containing acks")
	assert.Contains(t, stdout, "Candidates for cleanup: 1\n")
	assert.Contains(t, stdout, "Unable to determine if checkpoint is done")
}

func TestAnalyzeWithAckAndCheckpoint(t *testing.T) {
	home := t.TempDir()
	logPath := writeLogFixture(t, home, scenarioTwoLog...)

	stdout, _, err := executeCLI(t, home, logPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Journals containing acks: 1\n")
	assert.Contains(t, stdout, "Candidates for cleanup: 0\n")
	assert.Contains(t, stdout, "Analysis is complete")
	assert.NotContains(t, stdout, "Unable to determine if checkpoint is done")
}

func TestAnalyzeTwoSessionsPrintsTwoSummaries(t *testing.T) {
	home := t.TempDir()
	logPath := writeLogFixture(t, home, append(append([]string{}, scenarioTwoLog...), scenarioOneLog...)...)

	stdout, _, err := executeCLI(t, home, logPath)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(stdout, "Acquiring Full Set..."))
	assert.Equal(t, 2, strings.Count(stdout, "Candidates for cleanup:"))
	assert.Equal(t, 1, strings.Count(stdout, "Journals containing acks: 1"))
	assert.Equal(t, 1, strings.Count(stdout, "Analysis is complete"))
	assert.Equal(t, 1, strings.Count(stdout, "Unable to determine if checkpoint is done"))
	assert.Less(t, strings.Index(stdout, "Analysis is complete"), strings.Index(stdout, "Candidates for cleanup: 1"))
}

func TestAnalyzeConciseFlagSuppressesZeroRemovals(t *testing.T) {
	home := t.TempDir()
	logPath := writeLogFixture(t, home, scenarioOneLog...)

	stdout, _, err := executeCLI(t, home, "--concise", logPath)
	require.NoError(t, err)

	assert.NotContains(t, stdout, "producerSequenceIdTrackerLocation")
	assert.Contains(t, stdout, "2 --- after first tx")
	assert.Contains(t, stdout, "2 --- foo (Queue)")
}

func TestAnalyzeConciseFromEnvironment(t *testing.T) {
	home := t.TempDir()
	logPath := writeLogFixture(t, home, scenarioOneLog...)
	t.Setenv("KTA_CONCISE", "True")

	stdout, _, err := executeCLI(t, home, logPath)
	require.NoError(t, err)
	assert.NotContains(t, stdout, "0 --- producerSequenceIdTrackerLocation")
}

func TestAnalyzeDefaultLogFromConfiguredDirectory(t *testing.T) {
	home := t.TempDir()
	logDir := t.TempDir()
	logPath := filepath.Join(logDir, "kahadb.log")
	require.NoError(t, os.WriteFile(logPath, []byte(strings.Join(scenarioOneLog, "\n")), 0o644))
	t.Setenv("KTA_LOG_DIR", logDir)

	stdout, _, err := executeCLI(t, home)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Using log file: "+logPath)
	assert.Contains(t, stdout, "Candidates for cleanup: 1")
}

func TestAnalyzeReadsStdin(t *testing.T) {
	home := t.TempDir()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	t.Setenv("HOME", home)
	root.SetOut(stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(strings.Join(scenarioTwoLog, "\n") + "\n"))
	root.SetArgs([]string{"-"})

	require.NoError(t, root.Execute())
	assert.Contains(t, stdout.String(), "Using log file: -")
	assert.Contains(t, stdout.String(), "Candidates for cleanup: 0")
}

func TestAnalyzeWithoutFullSet(t *testing.T) {
	home := t.TempDir()
	logPath := writeLogFixture(t, home, traceLine("Checkpoint done."))

	stdout, _, err := executeCLI(t, home, logPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Unable to determine full log set")
	assert.NotContains(t, stdout, "Candidates for cleanup")
}

func TestAnalyzeSkipsMalformedLine(t *testing.T) {
	home := t.TempDir()
	logPath := writeLogFixture(t, home,
		traceLine("gc candidates set: [1, 2, 3, 4, 5]"),
		traceLine("gc candidates after first tx:3, [1, 2, 3"),
		traceLine("gc candidates after dest:0:foo, [1]"),
		traceLine("Checkpoint done."),
	)

	stdout, stderr, err := executeCLI(t, home, logPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "4 --- foo (Queue)")
	assert.Contains(t, stdout, "Candidates for cleanup: 1")
	assert.Contains(t, stdout, "Analysis is complete")
	assert.Contains(t, stderr, "skipping malformed trace line")
	assert.Contains(t, stderr, "line=2")
	assert.Contains(t, stdout, "Skipped malformed line 2: missing closing bracket")
}

func TestAnalyzeMissingLogFile(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, filepath.Join(home, "missing.log"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLogNotFound)
	assert.Contains(t, err.Error(), "unable to locate log file")
	assert.Contains(t, stdout, "Using log file:")
	assert.Equal(t, exitLogNotFound, ExitCode(err))
}

func TestAnalyzeRejectsExtraArguments(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "a.log", "b.log")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts at most 1 arg(s)")
}

func TestAnalyzeWithMissingExplicitConfig(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "--config", filepath.Join(home, "nope.toml"), "kahadb.log")
	require.Error(t, err)
	assert.Equal(t, exitConfig, ExitCode(err))
}

func TestConfigCommandPrintsEffectiveConfig(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, writeConfigFixture(home, "concise = true\n\n[log]\ndir = \"/opt/activemq/data\"\n"))

	stdout, _, err := executeCLI(t, home, "config", "--marker", "PListStoreImpl")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# source: "+filepath.Join(home, ".kahadb-trace", "config.toml"))
	assert.Contains(t, stdout, "concise = true")
	assert.Contains(t, stdout, "[log]")
	assert.Contains(t, stdout, "PListStoreImpl")
	assert.Contains(t, stdout, "/opt/activemq/data")
	assert.Contains(t, stdout, "kahadb.log")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: exitOK},
		{name: "log not found", err: fmt.Errorf("%w: kahadb.log", domain.ErrLogNotFound), want: exitLogNotFound},
		{name: "path resolution", err: fmt.Errorf("%w: bad", domain.ErrPathResolution), want: exitPathResolution},
		{name: "config", err: fmt.Errorf("%w: bad", domain.ErrConfig), want: exitConfig},
		{name: "stream read", err: fmt.Errorf("%w: eio", domain.ErrStreamRead), want: exitFailure},
		{name: "other", err: errors.New("boom"), want: exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeLogFixture(t *testing.T, dir string, lines ...string) string {
	t.Helper()

	path := filepath.Join(dir, "kahadb.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func writeConfigFixture(home, contents string) error {
	configDir := filepath.Join(home, ".kahadb-trace")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(contents), 0o644)
}

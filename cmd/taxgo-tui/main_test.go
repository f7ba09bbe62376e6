package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/taxgo/internal/tui"
)

func writeProfile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("employment_periods:\n  - gross_salary: 800000\n"), 0o644))
	return path
}

// stubProgram records the model instead of starting a terminal program
func stubProgram(t *testing.T, err error) *tea.Model {
	t.Helper()
	var started tea.Model
	orig := runProgram
	runProgram = func(m tea.Model) error {
		started = m
		return err
	}
	t.Cleanup(func() { runProgram = orig })
	return &started
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv(taxConfigEnv, "")
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "taxgo-tui", cmd.Name())
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("tax-config"))
	assert.NotNil(t, cmd.Flags().Lookup("fiscal-year"))
}

func TestRun_StartsProgram(t *testing.T) {
	started := stubProgram(t, nil)
	path := writeProfile(t)

	require.NoError(t, execute(t, path))

	_, ok := (*started).(tui.Model)
	assert.True(t, ok, "started %T", *started)
}

func TestRun_Errors(t *testing.T) {
	stubProgram(t, nil)
	path := writeProfile(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no profile", nil, "accepts 1 arg"},
		{"missing profile", []string{filepath.Join(t.TempDir(), "nope.yaml")}, "profile file not found"},
		{"unknown fiscal year", []string{"--fiscal-year", "1999-00", path}, "1999-00"},
		{"missing tax config", []string{"--tax-config", filepath.Join(t.TempDir(), "none.yaml"), path}, "none.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_ProgramFailure(t *testing.T) {
	stubProgram(t, errors.New("no tty"))

	err := execute(t, writeProfile(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error running TUI: no tty")
}

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalRunCmd_Use(t *testing.T) {
	assert.Equal(t, "run [questions-file]", evalRunCmd.Use)
}

func TestEvalRunCmd_HasJudgeFlag(t *testing.T) {
	flag := evalRunCmd.Flags().Lookup("judge")
	require.NotNil(t, flag, "judge flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}

func TestEvalRunCmd_ReportsRunSummary(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"eval", "run", "questions.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Run run-1 complete: 2 answered, 1 failed")
	assert.Contains(t, out, "sara eval results run-1")
}

func TestEvalRunCmd_ServiceNotConfigured(t *testing.T) {
	oldService := evalService
	evalService = nil
	defer func() {
		evalService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"eval", "run", "questions.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "eval service not configured")
}

func TestEvalRunsCmd_ListsRuns(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"eval", "runs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "answered=2 failed=1")
	assert.Contains(t, out, "questions.txt")
}

func TestEvalRunsCmd_StoreNotConfigured(t *testing.T) {
	oldStore := evalStore
	evalStore = nil
	defer func() {
		evalStore = oldStore
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"eval", "runs"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "eval store not configured")
}

func TestEvalResultsCmd_RequiresRunID(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"eval", "results"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestEvalResultsCmd_ListsResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"eval", "results", "run-1"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Q: Who researches machine learning?")
	assert.Contains(t, out, "A: Anna Kowalska.")
	assert.Contains(t, out, "Score: accuracy=2 completeness=1")
	assert.Contains(t, out, "Notes: search failed: empty dataset")
}

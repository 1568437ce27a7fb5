package integration_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/linguaflow/test/integration/testutils"
)

const exampleTask = "../../examples/tasks/cafe-order.yaml"

// requireIntegration skips the test unless integration tests are enabled.
func requireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("LINGUAFLOW_INTEGRATION") != "true" {
		t.Skip("Skipping integration test: LINGUAFLOW_INTEGRATION is not set to 'true'")
	}
}

// buildTestBinary builds the linguaflow binary for the test and returns its path.
func buildTestBinary(t *testing.T) string {
	t.Helper()

	binary := filepath.Join(t.TempDir(), "linguaflow-test")
	cmd := exec.Command("go", "build", "-o", binary, "../../cmd/linguaflow")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "Failed to build test binary: %s", out)

	return binary
}

func TestInfoCommand(t *testing.T) {
	requireIntegration(t)
	binary := buildTestBinary(t)

	tests := map[string]struct {
		args      string
		expErr    bool
		expStdout []string
	}{
		"Info on the example task should print the summary": {
			args: "info " + exampleTask,
			expStdout: []string{
				"cafe-order",
				"Ordering at a cafe",
				"Phases:",
				"Flow items:",
			},
		},
		"Info on a missing file should fail": {
			args:   "info does-not-exist.yaml",
			expErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			stdout, stderr, err := testutils.RunLinguaflow(context.Background(), nil, binary, tc.args, true)

			if tc.expErr {
				require.Error(t, err, "stderr: %s", stderr)
				return
			}

			require.NoError(t, err, "stderr: %s", stderr)
			for _, exp := range tc.expStdout {
				assert.Contains(t, string(stdout), exp)
			}
		})
	}
}

func TestFlattenCommand(t *testing.T) {
	requireIntegration(t)
	binary := buildTestBinary(t)

	t.Run("Flatten with JSON format should produce an ordered item list", func(t *testing.T) {
		stdout, stderr, err := testutils.RunLinguaflow(context.Background(), nil, binary, "flatten --format json "+exampleTask, true)
		require.NoError(t, err, "stderr: %s", stderr)

		var items []struct {
			Index      int    `json:"index"`
			Kind       string `json:"kind"`
			PhaseIndex int    `json:"phase_index"`
		}
		require.NoError(t, json.Unmarshal(stdout, &items))
		require.NotEmpty(t, items)

		// Indexes are contiguous and phases never go backwards.
		for i, item := range items {
			assert.Equal(t, i, item.Index)
			if i > 0 {
				assert.GreaterOrEqual(t, item.PhaseIndex, items[i-1].PhaseIndex)
			}
		}

		assert.Equal(t, "question", items[0].Kind)
		assert.Equal(t, "phase6_roleplay", items[len(items)-1].Kind)
	})
}

func TestCheckCommand(t *testing.T) {
	requireIntegration(t)
	binary := buildTestBinary(t)

	t.Run("Check on the example task should pass", func(t *testing.T) {
		stdout, stderr, err := testutils.RunLinguaflow(context.Background(), nil, binary, "check "+exampleTask, true)
		require.NoError(t, err, "stderr: %s", stderr)
		assert.Contains(t, string(stdout), "0 errors")
	})
}

func TestSessionCommands(t *testing.T) {
	requireIntegration(t)
	binary := buildTestBinary(t)

	dbPath := filepath.Join(t.TempDir(), "test.db")

	t.Run("Session list on a fresh database should be empty", func(t *testing.T) {
		stdout, stderr, err := testutils.RunLinguaflow(context.Background(), nil, binary, "session list --format json --db-path "+dbPath, true)
		require.NoError(t, err, "stderr: %s", stderr)

		var sessions []map[string]any
		require.NoError(t, json.Unmarshal(stdout, &sessions))
		assert.Empty(t, sessions)
	})

	t.Run("Session rm on a missing session should fail", func(t *testing.T) {
		_, _, err := testutils.RunLinguaflow(context.Background(), nil, binary, "session rm does-not-exist --db-path "+dbPath, true)
		require.Error(t, err)
	})
}

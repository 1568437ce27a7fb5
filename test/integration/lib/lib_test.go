package lib_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sdklib "github.com/slok/linguaflow/pkg/lib"
)

const exampleTask = "../../../examples/tasks/cafe-order.yaml"

func requireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("LINGUAFLOW_INTEGRATION") != "true" {
		t.Skip("Skipping integration test: LINGUAFLOW_INTEGRATION is not set to 'true'")
	}
}

func newTestClient(t *testing.T) *sdklib.Client {
	t.Helper()

	client, err := sdklib.New(context.Background(), sdklib.Config{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestSDKLoadFlattenCheck(t *testing.T) {
	requireIntegration(t)

	ctx := context.Background()
	client := newTestClient(t)

	task, err := client.LoadTask(ctx, exampleTask)
	require.NoError(t, err)
	assert.Equal(t, "cafe-order", task.ID)
	assert.Len(t, task.Phases, 6)

	flow, err := client.Flatten(ctx, *task)
	require.NoError(t, err)
	assert.NotEmpty(t, flow.Items)
	assert.Len(t, flow.GuidanceItems, 6)
	assert.Len(t, flow.ItemsByPhase, 6)

	results, err := client.Check(ctx, *task)
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, sdklib.CheckStatusError, r.Status, "check %s: %s", r.ID, r.Message)
	}
}

func TestSDKSessionWalk(t *testing.T) {
	requireIntegration(t)

	ctx := context.Background()
	client := newTestClient(t)

	task, err := client.LoadTask(ctx, exampleTask)
	require.NoError(t, err)

	session, err := client.NewSession(*task)
	require.NoError(t, err)

	require.NoError(t, session.Start())

	// Walk the whole flow answering every question. Bound the loop so a
	// navigation bug cannot hang the test.
	maxSteps := len(session.Items())*2 + len(task.Phases) + 10
	for steps := 0; session.Screen() != sdklib.ScreenComplete; steps++ {
		require.Less(t, steps, maxSteps, "session did not complete")

		switch session.Screen() {
		case sdklib.ScreenPhaseGuidance:
			require.NoError(t, session.ContinueFromGuidance())
		case sdklib.ScreenQuestion:
			item, ok := session.CurrentItem()
			require.True(t, ok)
			if item.Kind() == sdklib.FlowKindQuestion {
				require.NoError(t, session.RecordAnswer())
			}
			require.NoError(t, session.ContinueFromFlow())
		default:
			t.Fatalf("unexpected screen: %s", session.Screen())
		}
	}

	assert.Equal(t, len(session.Items())-1, session.FlowIndex())
}

func TestSDKSessionStore(t *testing.T) {
	requireIntegration(t)

	ctx := context.Background()
	client := newTestClient(t)

	sessions, err := client.ListSessions(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	err = client.RemoveSession(ctx, "does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, sdklib.ErrNotFound)
}

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yuchhuang/dodo/internal/cli/task"
	"github.com/yuchhuang/dodo/internal/testutil"
)

func addTask(t *testing.T, args ...string) {
	t.Helper()
	cmd := task.AddCmd()
	testutil.SetupCobraCommand(cmd, append(args, "--quiet"))
	if _, err := testutil.ExecuteCommand(t, cmd); err != nil {
		t.Fatalf("add command failed: %v", err)
	}
}

func TestStatsCommand(t *testing.T) {
	testutil.SetupTestEnv(t)

	addTask(t, "Write report", "--category=work")
	addTask(t, "Buy groceries", "--category=life")

	t.Run("human output", func(t *testing.T) {
		cmd := StatsCmd()
		testutil.SetupCobraCommand(cmd, []string{})
		output, err := testutil.ExecuteCommand(t, cmd)

		assert.NoError(t, err)
		assert.Contains(t, output, "Total:     2")
		assert.Contains(t, output, "Pending:   2")
		assert.Contains(t, output, "By category:")
		assert.Contains(t, output, "work")
		assert.Contains(t, output, "life")
	})

	t.Run("json output", func(t *testing.T) {
		cmd := StatsCmd()
		testutil.SetupCobraCommand(cmd, []string{"--json"})
		output, err := testutil.ExecuteCommand(t, cmd)

		assert.NoError(t, err)
		result := testutil.ParseJSON(t, output)
		assert.Equal(t, true, result["success"])
		stats := result["stats"].(map[string]interface{})
		assert.Equal(t, float64(2), stats["total"])
		assert.Equal(t, float64(0), stats["completed"])
	})

	t.Run("archive stats included on request", func(t *testing.T) {
		cmd := StatsCmd()
		testutil.SetupCobraCommand(cmd, []string{"--archive", "--json"})
		output, err := testutil.ExecuteCommand(t, cmd)

		assert.NoError(t, err)
		result := testutil.ParseJSON(t, output)
		archive := result["archive"].(map[string]interface{})
		assert.Equal(t, float64(0), archive["total"])
	})
}

package reminders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yuchhuang/dodo/internal/testutil"
)

func TestStatusCommand(t *testing.T) {
	testutil.SetupTestEnv(t)

	t.Run("no reminders", func(t *testing.T) {
		cmd := StatusCmd()
		testutil.SetupCobraCommand(cmd, []string{})
		output, err := testutil.ExecuteCommand(t, cmd)

		assert.NoError(t, err)
		assert.Contains(t, output, "No reminders scheduled")
	})

	t.Run("counts scheduled reminders", func(t *testing.T) {
		addTask(t, "Call dentist", "--remind-time=23:59")

		cmd := StatusCmd()
		testutil.SetupCobraCommand(cmd, []string{})
		output, err := testutil.ExecuteCommand(t, cmd)

		assert.NoError(t, err)
		assert.Contains(t, output, "Reminder schedule:")
		assert.Contains(t, output, "Scheduled: 1")
	})

	t.Run("json output", func(t *testing.T) {
		cmd := StatusCmd()
		testutil.SetupCobraCommand(cmd, []string{"--json"})
		output, err := testutil.ExecuteCommand(t, cmd)

		assert.NoError(t, err)
		result := testutil.ParseJSON(t, output)
		assert.Equal(t, true, result["success"])
		status := result["status"].(map[string]interface{})
		assert.Equal(t, float64(1), status["total"])
	})
}

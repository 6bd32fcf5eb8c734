package flow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/onestep/internal/flow"
	"github.com/sandeepkv93/onestep/internal/model"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 5, 4, 15, 0, 0, 0, time.Local)
	yesterday := now.Add(-24 * time.Hour)
	earlier := now.Add(-time.Hour)

	tasks := []model.Task{
		{ID: "open", Steps: []model.TaskStep{{IsComplete: true}, {}}},
		{ID: "done-today", CompletedAt: &earlier, Steps: []model.TaskStep{{IsComplete: true}}},
		{ID: "done-yesterday", CompletedAt: &yesterday, Steps: []model.TaskStep{{IsComplete: true}}},
	}
	sessions := []model.Session{model.NewSession("s1", "open", earlier, 1)}
	wins := []model.MicroWin{
		model.NewMicroWin("w1", model.WinJustStarted, "open", yesterday),
		model.NewMicroWin("w2", model.WinStepComplete, "open", earlier),
		model.NewMicroWin("w3", model.WinTaskComplete, "done-today", earlier),
	}

	sum := flow.Summarize(tasks, sessions, wins, now)
	assert.Equal(t, 1, sum.CompletedToday)
	assert.Equal(t, 2, sum.WinsToday)
	require.Len(t, sum.ActiveTasks, 1)
	assert.Equal(t, "open", sum.ActiveTasks[0].Task.ID)
	assert.Equal(t, 1, sum.ActiveTasks[0].Done)
	assert.Equal(t, 2, sum.ActiveTasks[0].Total)
	assert.True(t, sum.ActiveTasks[0].HasSession)
}

package flow

import (
	"time"

	"github.com/sandeepkv93/onestep/internal/model"
)

type TaskProgress struct {
	Task       model.Task
	Done       int
	Total      int
	HasSession bool
}

// Summary is what the dashboard shows.
type Summary struct {
	ActiveTasks    []TaskProgress
	CompletedToday int
	WinsToday      int
}

// Summarize counts since local midnight of now.
func Summarize(tasks []model.Task, sessions []model.Session, wins []model.MicroWin, now time.Time) Summary {
	midnight := model.StartOfDay(now)
	sum := Summary{
		ActiveTasks: []TaskProgress{},
		WinsToday:   model.CountWinsSince(wins, midnight),
	}
	for _, t := range tasks {
		if t.CompletedAt != nil {
			if !t.CompletedAt.Before(midnight) {
				sum.CompletedToday++
			}
			continue
		}
		done, total := t.Progress()
		_, open := model.FindOpenSession(sessions, t.ID)
		sum.ActiveTasks = append(sum.ActiveTasks, TaskProgress{
			Task:       t.Clone(),
			Done:       done,
			Total:      total,
			HasSession: open,
		})
	}
	return sum
}

package model

import "time"

type StuckPattern struct {
	TaskID          string
	StepDescription string
	Frequency       int
	LastOccurred    time.Time
	SuggestedHelp   string
}

// RecordStuck bumps the pattern for (taskID, step) or starts a new one.
func RecordStuck(patterns []StuckPattern, taskID, step, help string, at time.Time) []StuckPattern {
	out := make([]StuckPattern, 0, len(patterns)+1)
	found := false
	for _, p := range patterns {
		if p.TaskID == taskID && p.StepDescription == step {
			p.Frequency++
			p.LastOccurred = at
			if help != "" {
				p.SuggestedHelp = help
			}
			found = true
		}
		out = append(out, p)
	}
	if !found {
		out = append(out, StuckPattern{
			TaskID:          taskID,
			StepDescription: step,
			Frequency:       1,
			LastOccurred:    at,
			SuggestedHelp:   help,
		})
	}
	return out
}

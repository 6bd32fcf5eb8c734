package storage

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/onestep/internal/model"
)

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatNullableTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func parseRequiredTime(field, raw string) (time.Time, error) {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q: %v", ErrCorruptRecord, field, raw, err)
	}
	return t, nil
}

func parseNullableTime(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := parseRequiredTime(field, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func profileToRecord(p model.UserProfile) profileRecord {
	return profileRecord{
		ID:              p.ID,
		NeuroProfile:    string(p.NeuroProfile),
		MotivationStyle: string(p.MotivationStyle),
		Preferences: preferencesRecord{
			VoiceEnabled:        p.Preferences.VoiceEnabled,
			ReadingMode:         p.Preferences.ReadingMode,
			LowSensoryMode:      p.Preferences.LowSensoryMode,
			FocusBubbleDefault:  p.Preferences.FocusBubbleDefault,
			CelebrationStyle:    string(p.Preferences.CelebrationStyle),
			SessionLimitMinutes: p.Preferences.SessionLimitMinutes,
			DyslexiaFont:        p.Preferences.DyslexiaFont,
		},
		CreatedAt:  formatTime(p.CreatedAt),
		LastActive: formatTime(p.LastActive),
	}
}

func profileFromRecord(r profileRecord) (model.UserProfile, error) {
	createdAt, err := parseRequiredTime("profile.createdAt", r.CreatedAt)
	if err != nil {
		return model.UserProfile{}, err
	}
	lastActive, err := parseRequiredTime("profile.lastActive", r.LastActive)
	if err != nil {
		return model.UserProfile{}, err
	}
	return model.UserProfile{
		ID:              r.ID,
		NeuroProfile:    model.NeuroProfile(r.NeuroProfile),
		MotivationStyle: model.MotivationStyle(r.MotivationStyle),
		Preferences: model.Preferences{
			VoiceEnabled:        r.Preferences.VoiceEnabled,
			ReadingMode:         r.Preferences.ReadingMode,
			LowSensoryMode:      r.Preferences.LowSensoryMode,
			FocusBubbleDefault:  r.Preferences.FocusBubbleDefault,
			CelebrationStyle:    model.CelebrationStyle(r.Preferences.CelebrationStyle),
			SessionLimitMinutes: r.Preferences.SessionLimitMinutes,
			DyslexiaFont:        r.Preferences.DyslexiaFont,
		},
		CreatedAt:  createdAt,
		LastActive: lastActive,
	}, nil
}

func taskToRecord(t model.Task) taskRecord {
	steps := make([]stepRecord, 0, len(t.Steps))
	for _, s := range t.Steps {
		steps = append(steps, stepRecord{
			ID:                    s.ID,
			Description:           s.Description,
			IsComplete:            s.IsComplete,
			SimplifiedDescription: s.SimplifiedDescription,
			VoiceGuidance:         s.VoiceGuidance,
			CompletedAt:           formatNullableTime(s.CompletedAt),
			StuckAt:               formatNullableTime(s.StuckAt),
		})
	}
	return taskRecord{
		ID:               t.ID,
		Title:            t.Title,
		Description:      t.Description,
		EnergyLevel:      string(t.EnergyLevel),
		EstimatedMinutes: t.EstimatedMinutes,
		Steps:            steps,
		IsJustStart:      t.IsJustStart,
		CompletedAt:      formatNullableTime(t.CompletedAt),
		CreatedAt:        formatTime(t.CreatedAt),
		StuckCount:       t.StuckCount,
		PauseCount:       t.PauseCount,
		EaseRating:       t.EaseRating,
	}
}

func taskFromRecord(r taskRecord) (model.Task, error) {
	createdAt, err := parseRequiredTime("task.createdAt", r.CreatedAt)
	if err != nil {
		return model.Task{}, err
	}
	completedAt, err := parseNullableTime("task.completedAt", r.CompletedAt)
	if err != nil {
		return model.Task{}, err
	}
	steps := make([]model.TaskStep, 0, len(r.Steps))
	for _, s := range r.Steps {
		stepDone, err := parseNullableTime("step.completedAt", s.CompletedAt)
		if err != nil {
			return model.Task{}, err
		}
		stuckAt, err := parseNullableTime("step.stuckAt", s.StuckAt)
		if err != nil {
			return model.Task{}, err
		}
		steps = append(steps, model.TaskStep{
			ID:                    s.ID,
			Description:           s.Description,
			IsComplete:            s.IsComplete,
			SimplifiedDescription: s.SimplifiedDescription,
			VoiceGuidance:         s.VoiceGuidance,
			CompletedAt:           stepDone,
			StuckAt:               stuckAt,
		})
	}
	return model.Task{
		ID:               r.ID,
		Title:            r.Title,
		Description:      r.Description,
		EnergyLevel:      model.EnergyLevel(r.EnergyLevel),
		EstimatedMinutes: r.EstimatedMinutes,
		Steps:            steps,
		IsJustStart:      r.IsJustStart,
		CompletedAt:      completedAt,
		CreatedAt:        createdAt,
		StuckCount:       r.StuckCount,
		PauseCount:       r.PauseCount,
		EaseRating:       r.EaseRating,
	}, nil
}

func sessionToRecord(s model.Session) sessionRecord {
	pauses := make([]pauseRecord, 0, len(s.Pauses))
	for _, p := range s.Pauses {
		pauses = append(pauses, pauseRecord{
			StartedAt: formatTime(p.StartedAt),
			ResumedAt: formatNullableTime(p.ResumedAt),
			Reason:    string(p.Reason),
		})
	}
	checkins := make([]checkinRecord, 0, len(s.EmotionCheckins))
	for _, c := range s.EmotionCheckins {
		checkins = append(checkins, checkinRecord{
			Timestamp:    formatTime(c.Timestamp),
			Emotion:      string(c.Emotion),
			AutoDetected: c.AutoDetected,
		})
	}
	return sessionRecord{
		ID:                  s.ID,
		TaskID:              s.TaskID,
		StartedAt:           formatTime(s.StartedAt),
		EndedAt:             formatNullableTime(s.EndedAt),
		CurrentStepIndex:    s.CurrentStepIndex,
		Pauses:              pauses,
		EmotionCheckins:     checkins,
		OverwhelmDetections: s.OverwhelmDetections,
		ElapsedMinutes:      s.ElapsedMinutes,
	}
}

func sessionFromRecord(r sessionRecord) (model.Session, error) {
	startedAt, err := parseRequiredTime("session.startedAt", r.StartedAt)
	if err != nil {
		return model.Session{}, err
	}
	endedAt, err := parseNullableTime("session.endedAt", r.EndedAt)
	if err != nil {
		return model.Session{}, err
	}
	pauses := make([]model.SessionPause, 0, len(r.Pauses))
	for _, p := range r.Pauses {
		ps, err := parseRequiredTime("pause.startedAt", p.StartedAt)
		if err != nil {
			return model.Session{}, err
		}
		pr, err := parseNullableTime("pause.resumedAt", p.ResumedAt)
		if err != nil {
			return model.Session{}, err
		}
		pauses = append(pauses, model.SessionPause{StartedAt: ps, ResumedAt: pr, Reason: model.PauseReason(p.Reason)})
	}
	checkins := make([]model.EmotionCheckin, 0, len(r.EmotionCheckins))
	for _, c := range r.EmotionCheckins {
		ts, err := parseRequiredTime("checkin.timestamp", c.Timestamp)
		if err != nil {
			return model.Session{}, err
		}
		checkins = append(checkins, model.EmotionCheckin{Timestamp: ts, Emotion: model.Emotion(c.Emotion), AutoDetected: c.AutoDetected})
	}
	return model.Session{
		ID:                  r.ID,
		TaskID:              r.TaskID,
		StartedAt:           startedAt,
		EndedAt:             endedAt,
		CurrentStepIndex:    r.CurrentStepIndex,
		Pauses:              pauses,
		EmotionCheckins:     checkins,
		OverwhelmDetections: r.OverwhelmDetections,
		ElapsedMinutes:      r.ElapsedMinutes,
	}, nil
}

func microWinToRecord(w model.MicroWin) microWinRecord {
	return microWinRecord{
		ID:         w.ID,
		Type:       string(w.Type),
		TaskID:     w.TaskID,
		Timestamp:  formatTime(w.Timestamp),
		Celebrated: w.Celebrated,
	}
}

func microWinFromRecord(r microWinRecord) (model.MicroWin, error) {
	ts, err := parseRequiredTime("microWin.timestamp", r.Timestamp)
	if err != nil {
		return model.MicroWin{}, err
	}
	return model.MicroWin{
		ID:         r.ID,
		Type:       model.MicroWinType(r.Type),
		TaskID:     r.TaskID,
		Timestamp:  ts,
		Celebrated: r.Celebrated,
	}, nil
}

func stuckPatternToRecord(p model.StuckPattern) stuckPatternRecord {
	return stuckPatternRecord{
		TaskID:          p.TaskID,
		StepDescription: p.StepDescription,
		Frequency:       p.Frequency,
		LastOccurred:    formatTime(p.LastOccurred),
		SuggestedHelp:   p.SuggestedHelp,
	}
}

func stuckPatternFromRecord(r stuckPatternRecord) (model.StuckPattern, error) {
	last, err := parseRequiredTime("stuckPattern.lastOccurred", r.LastOccurred)
	if err != nil {
		return model.StuckPattern{}, err
	}
	return model.StuckPattern{
		TaskID:          r.TaskID,
		StepDescription: r.StepDescription,
		Frequency:       r.Frequency,
		LastOccurred:    last,
		SuggestedHelp:   r.SuggestedHelp,
	}, nil
}

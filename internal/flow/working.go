package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/onestep/internal/coach"
	"github.com/sandeepkv93/onestep/internal/model"
)

// CompleteStep marks the current step done. Completing the final incomplete
// step finishes the task and closes the session, adding elapsed to its
// working time.
func (c *Controller) CompleteStep(ctx context.Context, elapsed time.Duration) (Screen, error) {
	w, ok := c.screen.(Working)
	if !ok {
		return c.invalid("complete step")
	}
	idx := w.Session.CurrentStepIndex
	now := c.now()

	task, err := w.Task.CompleteStep(idx, now)
	if err != nil {
		return c.screen, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}

	if task.IsComplete() {
		session := w.Session.AtStep(len(task.Steps)).AddElapsed(elapsed).End(now)
		tasks := model.ReplaceTask(c.tasks, task)
		sessions := model.UpsertSession(c.sessions, session)
		wins := c.recordWin(model.WinTaskComplete, task.ID, now)
		if err := c.commit(ctx, tasks, sessions, wins, nil); err != nil {
			return c.screen, err
		}
		c.logger.Infof("Task %q complete", task.Title)
		return c.transition(Celebration{Task: task.Clone(), Session: session.Clone(), TaskComplete: true}), nil
	}

	next := idx + 1
	if next >= len(task.Steps) {
		// Last index done while a skipped step is still open.
		next = task.FirstIncompleteStepIndex()
	}
	session := w.Session.AtStep(next)
	tasks := model.ReplaceTask(c.tasks, task)
	sessions := model.UpsertSession(c.sessions, session)
	wins := c.recordWin(model.WinStepComplete, task.ID, now)
	if err := c.commit(ctx, tasks, sessions, wins, nil); err != nil {
		return c.screen, err
	}
	return c.transition(Celebration{Task: task.Clone(), Session: session.Clone()}), nil
}

// RateEase records the 1-5 ease rating once per task completion.
func (c *Controller) RateEase(ctx context.Context, rating int) (Screen, error) {
	cel, ok := c.screen.(Celebration)
	if !ok || !cel.TaskComplete || cel.Rated {
		return c.invalid("rate ease")
	}
	task, err := cel.Task.WithEaseRating(rating)
	if err != nil {
		return c.screen, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}
	if err := c.commit(ctx, model.ReplaceTask(c.tasks, task), nil, nil, nil); err != nil {
		return c.screen, err
	}
	cel.Task = task.Clone()
	cel.Rated = true
	return c.transition(cel), nil
}

func (c *Controller) ContinueFromCelebration(_ context.Context) (Screen, error) {
	cel, ok := c.screen.(Celebration)
	if !ok {
		return c.invalid("continue")
	}
	if cel.TaskComplete {
		return c.transition(Dashboard{}), nil
	}
	return c.transition(Working{Task: cel.Task, Session: cel.Session}), nil
}

// MarkStuck opens stuck-help for the current step.
func (c *Controller) MarkStuck(ctx context.Context) (Screen, error) {
	w, ok := c.screen.(Working)
	if !ok {
		return c.invalid("mark stuck")
	}
	idx := w.Session.CurrentStepIndex
	now := c.now()

	task, err := w.Task.MarkStuck(idx, now)
	if err != nil {
		return c.screen, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}
	step, _ := task.Step(idx)
	help := coach.StuckHelp(step.Description, c.neuroProfile())

	tasks := model.ReplaceTask(c.tasks, task)
	wins := c.recordWin(model.WinAskedForHelp, task.ID, now)
	patterns := model.RecordStuck(c.patterns, task.ID, step.Description, help[0], now)
	if err := c.commit(ctx, tasks, nil, wins, patterns); err != nil {
		return c.screen, err
	}
	c.logger.Debugf("Stuck on step %d of task %s", idx, task.ID)
	return c.transition(StuckHelp{Task: task.Clone(), Session: w.Session, Suggestions: help}), nil
}

// SimplifyStep returns to the step showing its simplified text.
func (c *Controller) SimplifyStep(_ context.Context) (Screen, error) {
	s, ok := c.screen.(StuckHelp)
	if !ok {
		return c.invalid("simplify step")
	}
	return c.transition(Working{Task: s.Task, Session: s.Session, Simplified: true}), nil
}

// SkipStep moves past the current step without completing it. The last step
// cannot be skipped; the session stays where it is.
func (c *Controller) SkipStep(ctx context.Context) (Screen, error) {
	s, ok := c.screen.(StuckHelp)
	if !ok {
		return c.invalid("skip step")
	}
	if s.Task.IsLastStep(s.Session.CurrentStepIndex) {
		return c.transition(Working{Task: s.Task, Session: s.Session}), nil
	}
	session := s.Session.Advance(len(s.Task.Steps))
	if err := c.commit(ctx, nil, model.UpsertSession(c.sessions, session), nil, nil); err != nil {
		return c.screen, err
	}
	return c.transition(Working{Task: s.Task, Session: session.Clone()}), nil
}

func (c *Controller) BackToWorking(_ context.Context) (Screen, error) {
	s, ok := c.screen.(StuckHelp)
	if !ok {
		return c.invalid("back to working")
	}
	return c.transition(Working{Task: s.Task, Session: s.Session}), nil
}

// StepBack shows the previous step. On the first step it does nothing.
func (c *Controller) StepBack(ctx context.Context) (Screen, error) {
	w, ok := c.screen.(Working)
	if !ok {
		return c.invalid("step back")
	}
	if w.Session.CurrentStepIndex == 0 {
		return c.screen, nil
	}
	session := w.Session.StepBack()
	if err := c.commit(ctx, nil, model.UpsertSession(c.sessions, session), nil, nil); err != nil {
		return c.screen, err
	}
	return c.transition(Working{Task: w.Task, Session: session.Clone()}), nil
}

// Pause records a pause on the session and returns to the dashboard. The
// session stays open so a later resume picks it up.
func (c *Controller) Pause(ctx context.Context, reason model.PauseReason, elapsed time.Duration) (Screen, error) {
	var (
		task    model.Task
		session model.Session
	)
	switch s := c.screen.(type) {
	case Working:
		task, session = s.Task, s.Session
	case StuckHelp:
		task, session = s.Task, s.Session
	default:
		return c.invalid("pause")
	}
	if !reason.IsValid() {
		return c.screen, fmt.Errorf("%w: %w", ErrInvalidTransition, model.ErrInvalidPauseReason)
	}
	now := c.now()
	task = task.WithPause()
	session = session.Pause(now, reason, elapsed)

	tasks := model.ReplaceTask(c.tasks, task)
	sessions := model.UpsertSession(c.sessions, session)
	if err := c.commit(ctx, tasks, sessions, nil, nil); err != nil {
		return c.screen, err
	}
	c.logger.Debugf("Paused task %s (%s)", task.ID, reason)
	return c.transition(Dashboard{}), nil
}

// CheckIn appends an emotion check-in to the active session.
func (c *Controller) CheckIn(ctx context.Context, emotion model.Emotion, auto bool) (Screen, error) {
	if !emotion.IsValid() {
		return c.screen, fmt.Errorf("%w: %w", ErrInvalidTransition, model.ErrInvalidEmotion)
	}
	now := c.now()
	switch s := c.screen.(type) {
	case Working:
		s.Session = s.Session.CheckIn(emotion, auto, now)
		if err := c.commit(ctx, nil, model.UpsertSession(c.sessions, s.Session), nil, nil); err != nil {
			return c.screen, err
		}
		return c.transition(s), nil
	case StuckHelp:
		s.Session = s.Session.CheckIn(emotion, auto, now)
		if err := c.commit(ctx, nil, model.UpsertSession(c.sessions, s.Session), nil, nil); err != nil {
			return c.screen, err
		}
		return c.transition(s), nil
	default:
		return c.invalid("check in")
	}
}

func (c *Controller) neuroProfile() model.NeuroProfile {
	if c.profile == nil {
		return model.NeuroGeneral
	}
	return c.profile.NeuroProfile
}

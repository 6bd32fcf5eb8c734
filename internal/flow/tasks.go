package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/onestep/internal/model"
	"github.com/sandeepkv93/onestep/internal/templates"
)

var errEmptyTitle = errors.New("task title is required")

// CreateCustomTask breaks title down with the keyword templates and starts it.
func (c *Controller) CreateCustomTask(ctx context.Context, title string, energy model.EnergyLevel) (Screen, error) {
	if !c.canCreate() {
		return c.invalid("create task")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return c.screen, fmt.Errorf("%w: %w", ErrInvalidTransition, errEmptyTitle)
	}
	if !energy.IsValid() {
		return c.screen, fmt.Errorf("%w: %w", ErrInvalidTransition, model.ErrInvalidEnergy)
	}

	now := c.now()
	descriptions := templates.BreakDownTask(title)
	steps := make([]model.TaskStep, 0, len(descriptions))
	for _, d := range descriptions {
		steps = append(steps, model.TaskStep{
			ID:                    c.newID(),
			Description:           d,
			SimplifiedDescription: templates.SimplifyCustom(d),
		})
	}
	task := model.Task{
		ID:               c.newID(),
		Title:            title,
		Description:      title,
		EnergyLevel:      energy,
		EstimatedMinutes: energy.DefaultMinutes(),
		Steps:            steps,
		CreatedAt:        now,
	}
	return c.createTask(ctx, task)
}

// CreateJustStartTask starts entry index of the just-start catalog.
func (c *Controller) CreateJustStartTask(ctx context.Context, index int) (Screen, error) {
	if !c.canCreate() {
		return c.invalid("create task")
	}
	catalog := templates.JustStartTasks()
	if index < 0 || index >= len(catalog) {
		return c.screen, fmt.Errorf("%w: just-start index %d", ErrInvalidTransition, index)
	}
	js := catalog[index]

	steps := make([]model.TaskStep, 0, len(js.Steps))
	for _, d := range js.Steps {
		steps = append(steps, model.TaskStep{
			ID:                    c.newID(),
			Description:           d,
			SimplifiedDescription: templates.SimplifyJustStart(d),
		})
	}
	task := model.Task{
		ID:               c.newID(),
		Title:            js.Title,
		EnergyLevel:      model.EnergyLow,
		EstimatedMinutes: js.Minutes,
		Steps:            steps,
		IsJustStart:      true,
		CreatedAt:        c.now(),
	}
	return c.createTask(ctx, task)
}

func (c *Controller) canCreate() bool {
	if c.profile == nil {
		return false
	}
	switch c.screen.(type) {
	case TaskCreator, Dashboard:
		return true
	default:
		return false
	}
}

func (c *Controller) createTask(ctx context.Context, task model.Task) (Screen, error) {
	if err := task.Validate(); err != nil {
		return c.screen, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}
	now := c.now()
	session := model.NewSession(c.newID(), task.ID, now, 0)

	tasks := model.ReplaceTask(c.tasks, task)
	sessions := model.UpsertSession(c.sessions, session)
	wins := c.recordWin(model.WinJustStarted, task.ID, now)
	if err := c.commit(ctx, tasks, sessions, wins, nil); err != nil {
		return c.screen, err
	}
	c.logger.Infof("Task %q created with %d steps", task.Title, len(task.Steps))
	return c.transition(Working{Task: task.Clone(), Session: session.Clone()}), nil
}

// ResumeTask continues an incomplete task. An open session for the task is
// reused at its stored step; otherwise a new one starts after the last
// completed step.
func (c *Controller) ResumeTask(ctx context.Context, taskID string) (Screen, error) {
	if _, ok := c.screen.(Dashboard); !ok {
		return c.invalid("resume task")
	}
	task, ok := model.FindTask(c.tasks, taskID)
	if !ok {
		return c.screen, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if task.CompletedAt != nil || task.IsComplete() {
		return c.screen, fmt.Errorf("%w: task %s is complete", ErrInvalidTransition, taskID)
	}

	now := c.now()
	sessions := c.sessions
	session, found := model.FindOpenSession(sessions, taskID)
	if found {
		// Only an index outside the task is corrected; any other stored
		// index is where the user left off.
		if _, ok := task.Step(session.CurrentStepIndex); !ok {
			session = session.AtStep(resumeIndex(task, session.CurrentStepIndex))
		}
		if err := session.Validate(len(task.Steps)); err != nil {
			c.logger.Warningf("Closing unusable session %s: %s", session.ID, err)
			sessions = model.UpsertSession(sessions, session.End(now))
			found = false
		}
	}
	if found {
		session = session.Resume(now)
	} else {
		session = model.NewSession(c.newID(), taskID, now, resumeIndex(task, task.LastCompletedStepIndex()+1))
	}

	sessions = model.UpsertSession(sessions, session)
	wins := c.recordWin(model.WinReturnedAfterBreak, taskID, now)
	if err := c.commit(ctx, nil, sessions, wins, nil); err != nil {
		return c.screen, err
	}
	c.logger.Debugf("Resumed task %s at step %d (existing session: %t)", taskID, session.CurrentStepIndex, found)
	return c.transition(Working{Task: task.Clone(), Session: session.Clone()}), nil
}

// resumeIndex keeps idx when it points at an incomplete step and otherwise
// falls back to the first incomplete step.
func resumeIndex(task model.Task, idx int) int {
	if step, ok := task.Step(idx); ok && !step.IsComplete {
		return idx
	}
	if first := task.FirstIncompleteStepIndex(); first >= 0 {
		return first
	}
	return idx
}

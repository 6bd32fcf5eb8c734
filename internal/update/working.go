package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/onestep/internal/coach"
	"github.com/sandeepkv93/onestep/internal/flow"
	"github.com/sandeepkv93/onestep/internal/imagery"
	"github.com/sandeepkv93/onestep/internal/model"
)

const tickInterval = time.Second

func workingTickCmd(generation int) tea.Cmd {
	return tea.Tick(tickInterval, func(at time.Time) tea.Msg {
		return WorkingTickMsg{Generation: generation, At: at}
	})
}

func fetchImageCmd(ctx context.Context, finder imagery.Finder, stepID, text string) tea.Cmd {
	return func() tea.Msg {
		url, err := finder.Find(ctx, text)
		return ImageResultMsg{StepID: stepID, URL: url, Err: err}
	}
}

// enterWorking starts the single tick chain for a fresh visit to the
// working screen.
func (m Model) enterWorking(w flow.Working) (Model, tea.Cmd) {
	now := m.now()
	m.Work.Generation++
	if m.Work.SessionID != w.Session.ID {
		m.Work.SessionID = w.Session.ID
		m.Work.Elapsed = 0
		m.Work.LimitOffered = false
		m.Work.Bubble = m.profile().Preferences.FocusBubbleDefault
	}
	m.Work.LastTick = now
	m.Work.LastInput = now
	m.Work.Prompt = PromptNone
	m.Work.IdlePrompted = false
	m.Work.ShowSimplified = w.Simplified
	return m, workingTickCmd(m.Work.Generation)
}

// leaveWorking invalidates the live tick chain.
func (m Model) leaveWorking() Model {
	m.Work.Generation++
	m.Work.Prompt = PromptNone
	m.Work.ImageLoading = false
	return m
}

func (m Model) onWorkingTick(msg WorkingTickMsg) (tea.Model, tea.Cmd) {
	w, ok := m.ctrl.Screen().(flow.Working)
	if !ok || msg.Generation != m.Work.Generation {
		return m, nil
	}
	now := m.now()
	if delta := now.Sub(m.Work.LastTick); delta > 0 {
		m.Work.Elapsed += delta
	}
	m.Work.LastTick = now

	if m.Work.Prompt == PromptNone && !m.Work.IdlePrompted && now.Sub(m.Work.LastInput) >= m.idleAfter {
		m.Work.Prompt = PromptIdle
		m.Work.IdlePrompted = true
		if _, err := m.ctrl.CheckIn(m.ctx, model.EmotionStuck, true); err != nil {
			next, cmd := m.handleIntentErr(err)
			if next.Quitting {
				return next, cmd
			}
		}
	}

	limit := time.Duration(m.profile().Preferences.SessionLimitMinutes) * time.Minute
	spent := time.Duration(w.Session.ElapsedMinutes)*time.Minute + m.Work.Elapsed
	if limit > 0 && !m.Work.LimitOffered && spent >= limit {
		m.Work.Prompt = PromptLimit
		m.Work.LimitOffered = true
	}
	return m, workingTickCmd(m.Work.Generation)
}

// maybeFetchImage starts a lookup when the visible step changed.
func (m Model) maybeFetchImage(w flow.Working) (Model, tea.Cmd) {
	step, ok := w.CurrentStep()
	if !ok || m.finder == nil || !m.profile().NeuroProfile.WantsVisuals() {
		m.Work.ImageStepID = ""
		m.Work.ImageURL = ""
		m.Work.ImageLoading = false
		return m, nil
	}
	if step.ID == m.Work.ImageStepID {
		return m, nil
	}
	m.Work.ImageStepID = step.ID
	m.Work.ImageURL = ""
	m.Work.ImageLoading = true
	return m, tea.Batch(fetchImageCmd(m.ctx, m.finder, step.ID, step.Description), m.imageSpinner.Tick)
}

func (m Model) onImageResult(msg ImageResultMsg) (tea.Model, tea.Cmd) {
	if _, ok := m.ctrl.Screen().(flow.Working); !ok || msg.StepID != m.Work.ImageStepID {
		m.logger.Debugf("Discarding stale image for step %s", msg.StepID)
		return m, nil
	}
	m.Work.ImageLoading = false
	if msg.Err != nil {
		m.logger.Debugf("Image lookup failed: %s", msg.Err)
		m.Work.ImageURL = ""
		return m, nil
	}
	m.Work.ImageURL = msg.URL
	return m, nil
}

func (m Model) handleWorkingKey(msg tea.KeyMsg, w flow.Working) (Model, tea.Cmd) {
	m.Work.LastInput = m.now()

	switch m.Work.Prompt {
	case PromptLimit:
		m.Work.Prompt = PromptNone
		if msg.String() == "y" {
			return m.pause(model.PauseTimeLimit)
		}
		return m, nil
	case PromptIdle:
		m.Work.Prompt = PromptNone
		if msg.String() != "x" {
			return m, nil
		}
	}

	switch msg.String() {
	case "enter", " ":
		elapsed := m.Work.Elapsed
		next, cmd := m.dispatch(func(ctx context.Context) (flow.Screen, error) {
			return m.ctrl.CompleteStep(ctx, elapsed)
		})
		if c, ok := next.ctrl.Screen().(flow.Celebration); ok && c.TaskComplete {
			next.Work.Elapsed = 0
		}
		return next, cmd
	case "x":
		return m.dispatch(m.ctrl.MarkStuck)
	case "b":
		return m.dispatch(m.ctrl.StepBack)
	case "p":
		return m.pause(model.PauseUser)
	case "o":
		if _, err := m.ctrl.CheckIn(m.ctx, model.EmotionOverwhelmed, false); err != nil {
			return m.handleIntentErr(err)
		}
		return m.pause(model.PauseOverwhelm)
	case "v":
		m.Work.ShowSimplified = !m.Work.ShowSimplified
	case "f":
		m.Work.Bubble = !m.Work.Bubble
	}
	return m, nil
}

// pause hands the locally measured time to the session and leaves working.
func (m Model) pause(reason model.PauseReason) (Model, tea.Cmd) {
	elapsed := m.Work.Elapsed
	next, cmd := m.dispatch(func(ctx context.Context) (flow.Screen, error) {
		return m.ctrl.Pause(ctx, reason, elapsed)
	})
	if next.ctrl.Screen().Kind() == flow.KindDashboard {
		next.Work.Elapsed = 0
		next.Status = StatusBar{Text: next.coach(coach.ContextPause).Message}
	}
	return next, cmd
}

package update

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/onestep/internal/coach"
	"github.com/sandeepkv93/onestep/internal/flow"
	"github.com/sandeepkv93/onestep/internal/views"
)

type intent func(ctx context.Context) (flow.Screen, error)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(typed)
	case WorkingTickMsg:
		return m.onWorkingTick(typed)
	case ImageResultMsg:
		return m.onImageResult(typed)
	case spinner.TickMsg:
		if m.Work.ImageLoading {
			var cmd tea.Cmd
			m.imageSpinner, cmd = m.imageSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err == nil {
			return m, nil
		}
		m.logger.Errorf("Fatal error: %s", typed.Err)
		m.err = typed.Err
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		if keyStr == "?" {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		return m.handlePaletteKey(msg)
	}

	screen := m.ctrl.Screen()
	typing := screen.Kind() == flow.KindTaskCreator && m.Creator.InputActive
	if !typing {
		switch keyStr {
		case "?":
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			return m, nil
		}
	}

	var next Model
	var cmd tea.Cmd
	switch s := screen.(type) {
	case flow.Welcome:
		next, cmd = m.handleWelcomeKey(msg)
	case flow.ProfileSetup:
		next, cmd = m.handleFormKey(msg, m.ctrl.CompleteProfile)
	case flow.Dashboard:
		next, cmd = m.handleDashboardKey(msg)
	case flow.TaskCreator:
		next, cmd = m.handleCreatorKey(msg)
	case flow.Settings:
		next, cmd = m.handleSettingsKey(msg)
	case flow.Working:
		next, cmd = m.handleWorkingKey(msg, s)
	case flow.Celebration:
		next, cmd = m.handleCelebrationKey(msg, s)
	case flow.StuckHelp:
		next, cmd = m.handleStuckKey(msg)
	default:
		next = m
	}
	return next, cmd
}

// apply runs one controller intent and syncs the local state with the
// screen it produced. The intent's error is returned after being handled.
func (m Model) apply(fn intent) (Model, tea.Cmd, error) {
	prev := m.ctrl.Screen()
	if _, err := fn(m.ctx); err != nil {
		next, cmd := m.handleIntentErr(err)
		return next, cmd, err
	}
	next, cmd := m.afterTransition(prev)
	return next, cmd, nil
}

func (m Model) dispatch(fn intent) (Model, tea.Cmd) {
	next, cmd, _ := m.apply(fn)
	return next, cmd
}

// handleIntentErr quits on persistence failures. Anything else is an intent
// that does not apply on this screen and is ignored.
func (m Model) handleIntentErr(err error) (Model, tea.Cmd) {
	if errors.Is(err, flow.ErrPersistence) {
		m.logger.Errorf("Persistence failure, quitting: %s", err)
		m.err = err
		m.Quitting = true
		return m, tea.Quit
	}
	m.logger.Debugf("Ignored intent: %s", err)
	return m, nil
}

func (m Model) afterTransition(prev flow.Screen) (Model, tea.Cmd) {
	screen := m.ctrl.Screen()
	_, wasWorking := prev.(flow.Working)
	if wasWorking && screen.Kind() != flow.KindWorking {
		m = m.leaveWorking()
	}

	var cmds []tea.Cmd
	switch s := screen.(type) {
	case flow.ProfileSetup:
		if prev.Kind() != flow.KindProfileSetup {
			m.Form = NewProfileForm(flow.DefaultProfileInput())
		}
	case flow.Settings:
		if prev.Kind() != flow.KindSettings {
			if p := m.ctrl.Profile(); p != nil {
				m.Form = FormFromProfile(*p)
			}
			m.ConfirmClear = false
		}
	case flow.TaskCreator:
		m.Creator = CreatorState{Energy: m.Creator.Energy, InputActive: true}
		if m.Creator.Energy == "" {
			m.Creator.Energy = defaultEnergy
		}
		m.titleInput.SetValue("")
		m.titleInput.Focus()
	case flow.Dashboard:
		m.clampDashCursor()
	case flow.Working:
		if !wasWorking {
			var cmd tea.Cmd
			m, cmd = m.enterWorking(s)
			cmds = append(cmds, cmd)
		}
		var cmd tea.Cmd
		m, cmd = m.maybeFetchImage(s)
		cmds = append(cmds, cmd)
	case flow.Celebration:
		if prev.Kind() != flow.KindCelebration {
			m.LastRating = 0
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) coach(ctx coach.Context) coach.Response {
	p := m.profile()
	return coach.Respond(coach.Options{
		MotivationStyle: p.MotivationStyle,
		NeuroProfile:    p.NeuroProfile,
		Context:         ctx,
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	screen := m.ctrl.Screen()
	lowSensory := m.profile().Preferences.LowSensoryMode

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = m.Status.Text
		}
	}

	notification := views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value())
	if m.HelpVisible {
		notification = joinNonEmpty(notification, m.renderHelpView())
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("onestep | %s", screen.Kind()),
		Body:         m.renderBody(screen, lowSensory),
		StatusLine:   status,
		Notification: notification,
		Footer:       "keys: ? help | / command | ctrl+c quit",
		LowSensory:   lowSensory,
		Width:        m.width,
	})
}

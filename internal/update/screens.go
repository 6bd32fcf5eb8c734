package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/onestep/internal/coach"
	"github.com/sandeepkv93/onestep/internal/flow"
	"github.com/sandeepkv93/onestep/internal/model"
	"github.com/sandeepkv93/onestep/internal/templates"
	"github.com/sandeepkv93/onestep/internal/views"
)

const defaultEnergy = model.EnergyMedium

var energyLevels = []model.EnergyLevel{model.EnergyLow, model.EnergyMedium, model.EnergyHigh}

const welcomeMarkdown = `# One step at a time

Tell me what you need to do and I will break it into small, doable steps.
Get help when you are stuck and take breaks without losing your place.`

func (m Model) handleWelcomeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		return m.dispatch(m.ctrl.GetStarted)
	case "q":
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleFormKey(msg tea.KeyMsg, submit func(context.Context, flow.ProfileInput) (flow.Screen, error)) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.Form = m.Form.Move(1)
	case "k", "up":
		m.Form = m.Form.Move(-1)
	case "l", "right", " ":
		m.Form = m.Form.Change(1)
	case "h", "left":
		m.Form = m.Form.Change(-1)
	case "enter":
		in := m.Form.Input
		return m.dispatch(func(ctx context.Context) (flow.Screen, error) {
			return submit(ctx, in)
		})
	case "esc":
		return m.dispatch(m.ctrl.Back)
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.ConfirmClear {
		m.ConfirmClear = false
		if msg.String() == "y" {
			next, cmd := m.dispatch(m.ctrl.ClearAllData)
			if next.ctrl.Screen().Kind() == flow.KindWelcome {
				next.Status = StatusBar{Text: "all data cleared"}
			}
			return next, cmd
		}
		m.Status = StatusBar{}
		return m, nil
	}
	if msg.String() == "D" {
		m.ConfirmClear = true
		m.Status = StatusBar{Text: "erase every task, session and your profile? [y/n]", IsError: true}
		return m, nil
	}
	next, cmd := m.handleFormKey(msg, m.ctrl.UpdateProfile)
	if msg.String() == "enter" && next.ctrl.Screen().Kind() == flow.KindDashboard {
		next.Status = StatusBar{Text: "settings saved"}
	}
	return next, cmd
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	active := m.ctrl.Summary().ActiveTasks
	switch msg.String() {
	case "j", "down":
		if m.DashCursor < len(active)-1 {
			m.DashCursor++
		}
	case "k", "up":
		if m.DashCursor > 0 {
			m.DashCursor--
		}
	case "enter":
		if m.DashCursor >= len(active) {
			return m, nil
		}
		id := active[m.DashCursor].Task.ID
		next, cmd := m.dispatch(func(ctx context.Context) (flow.Screen, error) {
			return m.ctrl.ResumeTask(ctx, id)
		})
		if next.ctrl.Screen().Kind() == flow.KindWorking {
			next.Status = StatusBar{Text: next.coach(coach.ContextReEntry).Message}
		}
		return next, cmd
	case "n":
		return m.dispatch(m.ctrl.StartNewTask)
	case "s":
		return m.dispatch(m.ctrl.OpenSettings)
	case "w":
		return m.dispatch(m.ctrl.StartOver)
	case "q":
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) clampDashCursor() {
	n := len(m.ctrl.Summary().ActiveTasks)
	if m.DashCursor >= n {
		m.DashCursor = n - 1
	}
	if m.DashCursor < 0 {
		m.DashCursor = 0
	}
}

func (m Model) handleCreatorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Creator.InputActive {
		switch msg.String() {
		case "enter":
			title, energy := m.titleInput.Value(), m.Creator.Energy
			return m.startTask(func(ctx context.Context) (flow.Screen, error) {
				return m.ctrl.CreateCustomTask(ctx, title, energy)
			})
		case "tab":
			m.Creator.Energy = cycle(energyLevels, m.Creator.Energy, 1)
		case "down":
			m.Creator.InputActive = false
			m.titleInput.Blur()
		case "esc":
			return m.dispatch(m.ctrl.Back)
		default:
			if msg.Type == tea.KeyRunes {
				m.titleInput.SetValue(m.titleInput.Value() + string(msg.Runes))
				return m, nil
			}
			var cmd tea.Cmd
			m.titleInput, cmd = m.titleInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	catalog := templates.JustStartTasks()
	switch msg.String() {
	case "j", "down":
		if m.Creator.Cursor < len(catalog)-1 {
			m.Creator.Cursor++
		}
	case "k", "up":
		if m.Creator.Cursor > 0 {
			m.Creator.Cursor--
			return m, nil
		}
		m.Creator.InputActive = true
		m.titleInput.Focus()
	case "i":
		m.Creator.InputActive = true
		m.titleInput.Focus()
	case "enter":
		idx := m.Creator.Cursor
		return m.startTask(func(ctx context.Context) (flow.Screen, error) {
			return m.ctrl.CreateJustStartTask(ctx, idx)
		})
	case "esc":
		return m.dispatch(m.ctrl.Back)
	}
	return m, nil
}

func (m Model) startTask(fn intent) (Model, tea.Cmd) {
	next, cmd := m.dispatch(fn)
	if next.ctrl.Screen().Kind() == flow.KindWorking {
		next.Status = StatusBar{Text: next.coach(coach.ContextStarting).Message}
	}
	return next, cmd
}

func (m Model) handleCelebrationKey(msg tea.KeyMsg, c flow.Celebration) (Model, tea.Cmd) {
	switch k := msg.String(); k {
	case "1", "2", "3", "4", "5":
		rating := int(k[0] - '0')
		next, cmd, err := m.apply(func(ctx context.Context) (flow.Screen, error) {
			return m.ctrl.RateEase(ctx, rating)
		})
		if err == nil {
			next.LastRating = rating
		}
		return next, cmd
	case "enter", " ":
		next, cmd := m.dispatch(m.ctrl.ContinueFromCelebration)
		if c.TaskComplete {
			next.Status = StatusBar{}
		}
		return next, cmd
	}
	return m, nil
}

func (m Model) handleStuckKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "v":
		return m.dispatch(m.ctrl.SimplifyStep)
	case "s":
		return m.dispatch(m.ctrl.SkipStep)
	case "p":
		return m.pause(model.PauseUser)
	case "esc", "enter":
		return m.dispatch(m.ctrl.BackToWorking)
	}
	return m, nil
}

func (m Model) renderBody(screen flow.Screen, lowSensory bool) string {
	switch s := screen.(type) {
	case flow.Welcome:
		return views.RenderWelcome(views.WelcomeData{Markdown: welcomeMarkdown, LowSensory: lowSensory})
	case flow.ProfileSetup:
		return views.RenderForm(views.FormData{
			Title:  "Let's set things up the way that works for you",
			Fields: m.Form.Fields(),
			Hint:   "[j/k]move [h/l]change [enter]save [esc]back",
		})
	case flow.Settings:
		return views.RenderForm(views.FormData{
			Title:  "Settings",
			Fields: m.Form.Fields(),
			Hint:   "[j/k]move [h/l]change [enter]save [D]clear all data [esc]back",
		})
	case flow.Dashboard:
		return m.renderDashboard()
	case flow.TaskCreator:
		return m.renderCreator()
	case flow.Working:
		return m.renderWorking(s)
	case flow.Celebration:
		return views.RenderCelebration(views.CelebrationData{
			Style:        string(m.profile().Preferences.CelebrationStyle),
			Message:      m.coach(coach.ContextCompleting).Message,
			TaskComplete: s.TaskComplete,
			Rated:        s.Rated,
			Rating:       m.LastRating,
		})
	case flow.StuckHelp:
		text := ""
		if step, ok := s.CurrentStep(); ok {
			text = step.Description
		}
		return views.RenderStuckHelp(views.StuckHelpData{
			StepText:    text,
			Message:     m.coach(coach.ContextStuck).Message,
			Suggestions: s.Suggestions,
		})
	}
	return ""
}

func (m Model) renderDashboard() string {
	summary := m.ctrl.Summary()
	greeting := m.coach(coach.ContextStarting).Message
	if len(summary.ActiveTasks) > 0 {
		greeting = m.coach(coach.ContextReEntry).Message
	}
	tasks := make([]views.DashboardTaskData, 0, len(summary.ActiveTasks))
	for i, tp := range summary.ActiveTasks {
		tasks = append(tasks, views.DashboardTaskData{
			Title:       tp.Task.Title,
			Energy:      string(tp.Task.EnergyLevel),
			Done:        tp.Done,
			Total:       tp.Total,
			IsJustStart: tp.Task.IsJustStart,
			Selected:    i == m.DashCursor,
		})
	}
	return views.RenderDashboard(views.DashboardData{
		Greeting:       greeting,
		WinsToday:      summary.WinsToday,
		CompletedToday: summary.CompletedToday,
		Tasks:          tasks,
	})
}

func (m Model) renderCreator() string {
	catalog := templates.JustStartTasks()
	items := make([]views.JustStartItemData, 0, len(catalog))
	for i, js := range catalog {
		items = append(items, views.JustStartItemData{
			Title:    js.Title,
			Minutes:  js.Minutes,
			Steps:    len(js.Steps),
			Selected: i == m.Creator.Cursor,
		})
	}
	var preview []string
	if title := m.titleInput.Value(); trimmed(title) != "" {
		preview = templates.BreakDownTask(title)
	}
	return views.RenderTaskCreator(views.TaskCreatorData{
		InputView:   m.titleInput.View(),
		Energy:      string(m.Creator.Energy),
		InputActive: m.Creator.InputActive,
		JustStart:   items,
		Preview:     preview,
	})
}

func (m Model) renderWorking(w flow.Working) string {
	step, _ := w.CurrentStep()
	done, total := w.Task.Progress()
	ratio := 0.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}

	data := views.WorkingData{
		TaskTitle:    w.Task.Title,
		StepNumber:   w.Session.CurrentStepIndex + 1,
		StepCount:    total,
		StepText:     step.DisplayText(m.Work.ShowSimplified),
		Simplified:   m.Work.ShowSimplified,
		IsLastStep:   w.Task.IsLastStep(w.Session.CurrentStepIndex),
		ProgressView: m.stepProgress.ViewAs(ratio),
		Elapsed:      formatDuration(int(m.Work.Elapsed.Seconds())),
		ImageURL:     m.Work.ImageURL,
		Bubble:       m.Work.Bubble,
	}
	if m.Work.ImageLoading {
		data.ImageLoading = m.imageSpinner.View()
	}
	switch m.Work.Prompt {
	case PromptIdle:
		data.Prompt = m.coach(coach.ContextStuck).Message + " [x]get help, any other key to keep going"
	case PromptLimit:
		data.Prompt = fmt.Sprintf("You've been at this for %d minutes. Take a break? [y/n]", m.profile().Preferences.SessionLimitMinutes)
	}
	return views.RenderWorking(data)
}

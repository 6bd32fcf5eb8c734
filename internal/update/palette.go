package update

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/onestep/internal/commands"
	"github.com/sandeepkv93/onestep/internal/flow"
	"github.com/sandeepkv93/onestep/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()

	parsed, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	next := m
	var cmd tea.Cmd
	run := func(fn intent, done string) (commands.Result, error) {
		var err error
		next, cmd, err = next.apply(fn)
		if err != nil {
			if errors.Is(err, flow.ErrInvalidTransition) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("%s is not available on the %s screen", parsed.Type, m.ctrl.Screen().Kind())}
			}
			return commands.Result{}, err
		}
		return commands.Result{Message: done}, nil
	}

	res, err := commands.Execute(parsed, commands.Handlers{
		New: func(a commands.NewArgs) (commands.Result, error) {
			return run(func(ctx context.Context) (flow.Screen, error) {
				return m.ctrl.CreateCustomTask(ctx, a.Title, a.Energy)
			}, fmt.Sprintf("started: %s", a.Title))
		},
		Start: func(a commands.StartArgs) (commands.Result, error) {
			return run(func(ctx context.Context) (flow.Screen, error) {
				return m.ctrl.CreateJustStartTask(ctx, a.Number-1)
			}, "let's just start")
		},
		Resume: func(a commands.ResumeArgs) (commands.Result, error) {
			active := m.ctrl.Summary().ActiveTasks
			if a.Number > len(active) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no active task #%d", a.Number)}
			}
			id := active[a.Number-1].Task.ID
			return run(func(ctx context.Context) (flow.Screen, error) {
				return m.ctrl.ResumeTask(ctx, id)
			}, fmt.Sprintf("welcome back to %s", active[a.Number-1].Task.Title))
		},
		Rate: func(a commands.RateArgs) (commands.Result, error) {
			res, err := run(func(ctx context.Context) (flow.Screen, error) {
				return m.ctrl.RateEase(ctx, a.Rating)
			}, fmt.Sprintf("rated %d/5", a.Rating))
			if err == nil {
				next.LastRating = a.Rating
			}
			return res, err
		},
		Stuck: func() (commands.Result, error) {
			return run(m.ctrl.MarkStuck, "here are some ideas")
		},
		Pause: func() (commands.Result, error) {
			switch m.ctrl.Screen().Kind() {
			case flow.KindWorking, flow.KindStuckHelp:
				next, cmd = next.pause(model.PauseUser)
				return commands.Result{Message: next.Status.Text}, nil
			}
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "nothing to pause"}
		},
	})
	if next.Quitting {
		return next, cmd
	}
	if err != nil {
		next.Status = StatusBar{Text: err.Error(), IsError: true}
		return next, cmd
	}
	next.Status = StatusBar{Text: res.Message}
	return next, cmd
}

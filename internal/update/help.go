package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/onestep/internal/flow"
	"github.com/sandeepkv93/onestep/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	return views.RenderHelpPanel(string(m.ctrl.Screen().Kind()), m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	}))
}

func globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "/", Action: "command palette"},
		{Key: "?", Action: "toggle help"},
		{Key: "ctrl+c", Action: "quit"},
	}
}

func screenBindings(kind flow.ScreenKind) []KeyBinding {
	switch kind {
	case flow.KindWelcome:
		return []KeyBinding{{Key: "enter", Action: "get started"}}
	case flow.KindProfileSetup, flow.KindSettings:
		out := []KeyBinding{
			{Key: "j/k", Action: "move"},
			{Key: "h/l", Action: "change"},
			{Key: "enter", Action: "save"},
			{Key: "esc", Action: "back"},
		}
		if kind == flow.KindSettings {
			out = append(out, KeyBinding{Key: "D", Action: "clear all data"})
		}
		return out
	case flow.KindDashboard:
		return []KeyBinding{
			{Key: "n", Action: "new task"},
			{Key: "enter", Action: "resume"},
			{Key: "s", Action: "settings"},
			{Key: "w", Action: "welcome"},
		}
	case flow.KindTaskCreator:
		return []KeyBinding{
			{Key: "enter", Action: "create / start"},
			{Key: "tab", Action: "energy"},
			{Key: "down/i", Action: "list / type"},
			{Key: "esc", Action: "back"},
		}
	case flow.KindWorking:
		return []KeyBinding{
			{Key: "enter", Action: "done"},
			{Key: "x", Action: "stuck"},
			{Key: "v", Action: "simplify"},
			{Key: "b", Action: "previous step"},
			{Key: "p", Action: "pause"},
			{Key: "o", Action: "overwhelmed"},
			{Key: "f", Action: "focus bubble"},
		}
	case flow.KindCelebration:
		return []KeyBinding{
			{Key: "1-5", Action: "rate ease"},
			{Key: "enter", Action: "continue"},
		}
	case flow.KindStuckHelp:
		return []KeyBinding{
			{Key: "v", Action: "simplify"},
			{Key: "s", Action: "skip for now"},
			{Key: "p", Action: "take a break"},
			{Key: "esc", Action: "back to step"},
		}
	default:
		return nil
	}
}

func (m Model) helpBindings() []key.Binding {
	screen := screenBindings(m.ctrl.Screen().Kind())
	out := make([]key.Binding, 0, len(screen)+len(globalBindings()))
	for _, kb := range append(screen, globalBindings()...) {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}

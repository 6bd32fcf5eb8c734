package views

import (
	"fmt"
	"strings"
)

type WelcomeData struct {
	Markdown   string
	LowSensory bool
}

type FieldData struct {
	Label    string
	Value    string
	Selected bool
}

type FormData struct {
	Title  string
	Fields []FieldData
	Hint   string
}

type DashboardTaskData struct {
	Title       string
	Energy      string
	Done        int
	Total       int
	IsJustStart bool
	Selected    bool
}

type DashboardData struct {
	Greeting       string
	WinsToday      int
	CompletedToday int
	Tasks          []DashboardTaskData
}

type JustStartItemData struct {
	Title    string
	Minutes  int
	Steps    int
	Selected bool
}

type TaskCreatorData struct {
	InputView   string
	Energy      string
	InputActive bool
	JustStart   []JustStartItemData
	Preview     []string
}

type WorkingData struct {
	TaskTitle    string
	StepNumber   int
	StepCount    int
	StepText     string
	Simplified   bool
	IsLastStep   bool
	ProgressView string
	Elapsed      string
	ImageURL     string
	ImageLoading string
	Prompt       string
	// Bubble shows only the step, hiding title and progress.
	Bubble bool
}

type CelebrationData struct {
	Style        string
	Message      string
	TaskComplete bool
	Rated        bool
	Rating       int
}

type StuckHelpData struct {
	StepText    string
	Message     string
	Suggestions []string
}

func RenderWelcome(data WelcomeData) string {
	var b strings.Builder
	b.WriteString(RenderMarkdown(data.Markdown, data.LowSensory))
	b.WriteString("\n\n[enter] set up your experience")
	return strings.TrimSpace(b.String())
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(data.Title + "\n\n")
	for _, f := range data.Fields {
		cursor := " "
		if f.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-22s %s\n", cursor, f.Label+":", f.Value))
	}
	if data.Hint != "" {
		b.WriteString("\n" + data.Hint)
	}
	return strings.TrimSpace(b.String())
}

func RenderDashboard(data DashboardData) string {
	var b strings.Builder
	b.WriteString(data.Greeting + "\n\n")
	b.WriteString(fmt.Sprintf("micro-wins today: %d   completed today: %d\n", data.WinsToday, data.CompletedToday))

	b.WriteString("\ncontinue where you left off:\n")
	if len(data.Tasks) == 0 {
		b.WriteString("  (nothing in progress)\n")
	}
	for i, t := range data.Tasks {
		cursor := " "
		if t.Selected {
			cursor = ">"
		}
		badge := fmt.Sprintf("[%s]", strings.ToUpper(t.Energy))
		if t.IsJustStart {
			badge += " [JUST START]"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s %s  %d/%d\n", cursor, i+1, badge, t.Title, t.Done, t.Total))
	}
	b.WriteString("\nactions: [n]new task [enter]resume [j/k]move [s]settings [w]welcome")
	return strings.TrimSpace(b.String())
}

func RenderTaskCreator(data TaskCreatorData) string {
	var b strings.Builder
	b.WriteString("what do you want to do?\n")
	b.WriteString(data.InputView + "\n")
	b.WriteString(fmt.Sprintf("energy: %s  ([tab] to change)\n", data.Energy))
	if len(data.Preview) > 0 {
		b.WriteString("\nsteps:\n")
		for i, s := range data.Preview {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, s))
		}
	}

	b.WriteString("\nor just start:\n")
	for i, js := range data.JustStart {
		cursor := " "
		if js.Selected && !data.InputActive {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %d. %s (%dm, %d steps)\n", cursor, i+1, js.Title, js.Minutes, js.Steps))
	}
	if data.InputActive {
		b.WriteString("\nactions: [enter]create [down]just start [esc]back")
	} else {
		b.WriteString("\nactions: [enter]start [j/k]move [i]type a task [esc]back")
	}
	return strings.TrimSpace(b.String())
}

func RenderWorking(data WorkingData) string {
	var b strings.Builder
	if !data.Bubble {
		b.WriteString(data.TaskTitle + "\n")
		b.WriteString(fmt.Sprintf("step %d of %d  %s\n", data.StepNumber, data.StepCount, data.ProgressView))
		if data.Elapsed != "" {
			b.WriteString("time: " + data.Elapsed + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString("> " + data.StepText + "\n")

	switch {
	case data.ImageLoading != "":
		b.WriteString("\n" + data.ImageLoading + " loading visual...\n")
	case data.ImageURL != "":
		b.WriteString("\nvisual: " + data.ImageURL + "\n")
	}

	if data.Prompt != "" {
		b.WriteString("\n" + data.Prompt + "\n")
	}

	done := "done with this step"
	if data.IsLastStep {
		done = "complete task"
	}
	simplify := "simplify"
	if data.Simplified {
		simplify = "show detailed"
	}
	b.WriteString(fmt.Sprintf("\nactions: [enter]%s [x]stuck [v]%s [b]back a step [p]pause [f]focus bubble", done, simplify))
	return strings.TrimSpace(b.String())
}

func RenderCelebration(data CelebrationData) string {
	var b strings.Builder
	title := "Step Complete!"
	if data.TaskComplete {
		title = "Task Complete!"
	}
	switch data.Style {
	case "none":
		b.WriteString("Done\n")
	case "subtle":
		b.WriteString(title + "\n")
	case "enthusiastic":
		b.WriteString("* * * " + title + " * * *\n")
	default:
		b.WriteString("* " + title + "\n")
	}
	if data.Style != "none" && data.Message != "" {
		b.WriteString("\n" + data.Message + "\n")
	}

	if data.TaskComplete {
		if data.Rated {
			b.WriteString(fmt.Sprintf("\nthanks, you rated it %d/5\n", data.Rating))
		} else {
			b.WriteString("\nhow did this feel? [1]very hard ... [5]very easy\n")
		}
	}
	next := "next step"
	if data.TaskComplete {
		next = "back to dashboard"
	}
	b.WriteString(fmt.Sprintf("\nactions: [enter]%s", next))
	return strings.TrimSpace(b.String())
}

func RenderStuckHelp(data StuckHelpData) string {
	var b strings.Builder
	b.WriteString("stuck on: " + data.StepText + "\n")
	if data.Message != "" {
		b.WriteString("\n" + data.Message + "\n")
	}
	if len(data.Suggestions) > 0 {
		b.WriteString("\nthings that might help:\n")
		for _, s := range data.Suggestions {
			b.WriteString("- " + s + "\n")
		}
	}
	b.WriteString("\nactions: [v]simplify [s]skip for now [p]take a break [esc]back to step")
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("[%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(screen string, helpView string) string {
	return fmt.Sprintf("help (%s):\n%s", strings.ToLower(screen), helpView)
}

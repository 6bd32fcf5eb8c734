// Package templates holds the fixed step breakdowns and the "just start"
// catalog. Every function here is pure and returns fresh slices.
package templates

import "strings"

type category struct {
	keywords []string
	steps    []string
}

// Checked in order; the first category with a keyword in the title wins.
var categories = []category{
	{
		keywords: []string{"email", "message"},
		steps: []string{
			"Open email/messaging app",
			"Click compose or new message",
			"Type the recipient name",
			"Write one sentence of what you want to say",
			"Review and send",
		},
	},
	{
		keywords: []string{"clean", "tidy"},
		steps: []string{
			"Set a 10-minute timer",
			"Pick up 5 items and put them away",
			"Wipe one surface",
			"Take out any trash",
			"Stop when timer ends",
		},
	},
	{
		keywords: []string{"call", "phone"},
		steps: []string{
			"Write down 3 points you want to cover",
			"Find the phone number",
			"Take a breath",
			"Press call",
			"Say hello and first point",
		},
	},
	{
		keywords: []string{"write", "draft"},
		steps: []string{
			"Open document",
			"Write a terrible first sentence (seriously, make it bad)",
			"Write 2-3 more sentences without editing",
			"Read what you wrote",
			"Fix one thing if you want to",
		},
	},
}

var genericSteps = []string{
	"Decide on the very first physical action",
	"Do that one action only",
	"Decide on the next tiny action",
	"Do that action",
	"Continue one action at a time",
}

// BreakDownTask returns the step list for title using case-insensitive
// keyword matching.
func BreakDownTask(title string) []string {
	lower := strings.ToLower(title)
	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return clone(c.steps)
			}
		}
	}
	return clone(genericSteps)
}

type JustStart struct {
	Title   string
	Steps   []string
	Minutes int
}

var justStartCatalog = []JustStart{
	{Title: "Open the file", Steps: []string{"Find the file location", "Double-click to open"}, Minutes: 2},
	{Title: "Write one sentence", Steps: []string{"Open document", "Write any sentence at all", "Done"}, Minutes: 3},
	{Title: "Set up workspace", Steps: []string{"Clear desk surface", "Place one needed item in front of you", "Done"}, Minutes: 2},
	{Title: "Read first paragraph", Steps: []string{"Open document", "Read only the first paragraph", "Close document"}, Minutes: 3},
	{Title: "List three small steps", Steps: []string{"Open notes", "Write three tiny steps for your task", "Pick the easiest one"}, Minutes: 4},
	{Title: "Gather materials", Steps: []string{"List what you need", "Put items in one place", "Done"}, Minutes: 3},
	{Title: "Set a timer", Steps: []string{"Decide on 5 or 10 minutes", "Start timer", "Begin anything"}, Minutes: 1},
	{Title: "Delete one thing", Steps: []string{"Open document", "Delete one sentence or item", "Save and close"}, Minutes: 2},
}

// JustStartTasks returns the catalog in its fixed order.
func JustStartTasks() []JustStart {
	out := make([]JustStart, 0, len(justStartCatalog))
	for _, js := range justStartCatalog {
		js.Steps = clone(js.Steps)
		out = append(out, js)
	}
	return out
}

const simplifyLimit = 40

// SimplifyCustom shortens long step text; short text has no simplified form.
func SimplifyCustom(step string) string {
	if len(step) <= simplifyLimit {
		return ""
	}
	return step[:simplifyLimit] + "..."
}

// SimplifyJustStart keeps the first four words.
func SimplifyJustStart(step string) string {
	words := strings.Split(step, " ")
	if len(words) > 4 {
		words = words[:4]
	}
	return strings.Join(words, " ")
}

func clone(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

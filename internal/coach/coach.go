// Package coach returns the canned supportive copy shown around a task.
package coach

import (
	"fmt"

	"github.com/sandeepkv93/onestep/internal/model"
)

type Context string

const (
	ContextStuck       Context = "stuck"
	ContextOverwhelmed Context = "overwhelmed"
	ContextStarting    Context = "starting"
	ContextCompleting  Context = "completing"
	ContextReEntry     Context = "re-entry"
	ContextPause       Context = "pause"
)

type Tone string

const (
	ToneCalming     Tone = "calming"
	ToneSupportive  Tone = "supportive"
	ToneEncouraging Tone = "encouraging"
	TonePractical   Tone = "practical"
)

type Options struct {
	MotivationStyle model.MotivationStyle
	NeuroProfile    model.NeuroProfile
	Context         Context
}

type Response struct {
	Message           string
	Tone              Tone
	Suggestions       []string
	SimplifiedVersion string
}

var responses = map[Context]map[model.MotivationStyle]Response{
	ContextStuck: {
		model.MotivationCalm: {
			Message: "It's okay to pause here. Sometimes our brains need a different approach.",
			Tone:    ToneCalming,
			Suggestions: []string{
				"Break this into even smaller steps",
				"Take a 2-minute movement break",
				"Try the task at a different time",
			},
			SimplifiedVersion: "Let's try something different.",
		},
		model.MotivationFriendly: {
			Message: "Hey, I notice you've been here a bit. Want some help figuring out what's in the way?",
			Tone:    ToneSupportive,
			Suggestions: []string{
				"Tell me what feels hard about this",
				"Skip this part and come back later",
				"Get a smaller version of this step",
			},
			SimplifiedVersion: "Stuck? Let's find a way through.",
		},
		model.MotivationDirect: {
			Message:           "You're stuck. Let's solve it.",
			Tone:              TonePractical,
			Suggestions:       []string{"Break down this step", "Skip and continue", "Change the approach"},
			SimplifiedVersion: "Stuck. What next?",
		},
	},
	ContextOverwhelmed: {
		model.MotivationCalm: {
			Message: "I'm noticing this might be feeling like a lot right now. You can stop, pause, or simplify.",
			Tone:    ToneCalming,
			Suggestions: []string{
				"Save progress and take a real break",
				"Do just one tiny thing, then stop",
				"Switch to a lower-energy task",
			},
			SimplifiedVersion: "Feeling overwhelmed? Let's pause.",
		},
		model.MotivationFriendly: {
			Message: "Whoa, this seems like it's getting heavy. Let's dial it back a bit, yeah?",
			Tone:    ToneSupportive,
			Suggestions: []string{
				"Take a breather - it's totally okay",
				"Do one small thing, celebrate, done",
				"Switch to something easier",
			},
			SimplifiedVersion: "Too much? Let's make it easier.",
		},
		model.MotivationDirect: {
			Message:           "Overwhelm detected. Reduce load now.",
			Tone:              TonePractical,
			Suggestions:       []string{"Pause and return later", "Complete one micro-step only", "Stop for today"},
			SimplifiedVersion: "Overwhelm. Pause or simplify.",
		},
	},
	ContextStarting: {
		model.MotivationCalm: {
			Message:           "You're here. That's the hardest part. Let's take just one tiny step together.",
			Tone:              ToneEncouraging,
			SimplifiedVersion: "You're here. That counts.",
		},
		model.MotivationFriendly: {
			Message:           "You showed up! That's already a win. Ready for the smallest possible first move?",
			Tone:              ToneEncouraging,
			SimplifiedVersion: "You're here! Let's start small.",
		},
		model.MotivationDirect: {
			Message:           "Starting is the hard part. You're doing it. First step now.",
			Tone:              ToneEncouraging,
			SimplifiedVersion: "Starting now.",
		},
	},
	ContextCompleting: {
		model.MotivationCalm: {
			Message:           "You did it. Notice how that feels. You moved through something hard.",
			Tone:              ToneSupportive,
			SimplifiedVersion: "Done. You did it.",
		},
		model.MotivationFriendly: {
			Message:           "Yes! You actually did the thing! That's worth celebrating, for real.",
			Tone:              ToneEncouraging,
			SimplifiedVersion: "Done! Nice work!",
		},
		model.MotivationDirect: {
			Message:           "Task complete. Well done.",
			Tone:              TonePractical,
			SimplifiedVersion: "Complete.",
		},
	},
	ContextReEntry: {
		model.MotivationCalm: {
			Message: "Welcome back. There's no guilt here. Breaks are part of the process. Ready to ease back in?",
			Tone:    ToneSupportive,
			Suggestions: []string{
				"Quick recap of where you left off",
				"Start with something very small",
				"Choose a lower-energy task first",
			},
			SimplifiedVersion: "Welcome back. No guilt.",
		},
		model.MotivationFriendly: {
			Message: "Hey again! So glad you're back. Let's make re-entry super gentle, okay?",
			Tone:    ToneSupportive,
			Suggestions: []string{
				"See what you were working on",
				"Pick the easiest next bit",
				"Warm up with something small",
			},
			SimplifiedVersion: "Welcome back! Let's ease in.",
		},
		model.MotivationDirect: {
			Message:           "Back to work. No judgment. Continue where you left off.",
			Tone:              TonePractical,
			Suggestions:       []string{"Resume previous task", "Start new task", "Review progress"},
			SimplifiedVersion: "Continuing.",
		},
	},
	ContextPause: {
		model.MotivationCalm: {
			Message:           "Taking a pause is wise. Your brain knows what it needs.",
			Tone:              ToneSupportive,
			SimplifiedVersion: "Pausing is good.",
		},
		model.MotivationFriendly: {
			Message:           "Break time! You're listening to yourself, and that's awesome.",
			Tone:              ToneSupportive,
			SimplifiedVersion: "Break time!",
		},
		model.MotivationDirect: {
			Message:           "Pause registered. Return when ready.",
			Tone:              TonePractical,
			SimplifiedVersion: "Paused.",
		},
	},
}

// Respond returns the copy for the given context and style. Unknown styles
// fall back to friendly; unknown contexts yield an empty response.
func Respond(opts Options) Response {
	byStyle, ok := responses[opts.Context]
	if !ok {
		return Response{}
	}
	r, ok := byStyle[opts.MotivationStyle]
	if !ok {
		r = byStyle[model.MotivationFriendly]
	}
	r.Suggestions = append([]string(nil), r.Suggestions...)
	return r
}

const maxStuckHelp = 4

// StuckHelp returns up to four suggestions for a step the user is stuck on.
// Profile-specific suggestions follow the break-it-down suggestion.
func StuckHelp(step string, neuro model.NeuroProfile) []string {
	helpers := []string{fmt.Sprintf("Break %q into even smaller actions", step)}

	switch neuro {
	case model.NeuroADHD:
		helpers = append(helpers,
			"Set a 5-minute sprint timer",
			"Add background music or sound",
			"Make it a game or race against yourself",
		)
	case model.NeuroAutism:
		helpers = append(helpers,
			"Write down each micro-step visually",
			"Create a clear checklist format",
			"Remove sensory distractions first",
		)
	}

	helpers = append(helpers,
		"Change location or time for this step",
		"Do the easiest 10% of this step, then stop",
		"Get body movement first, then try again",
		"Use a timer: just 2 minutes on this",
		"Ask: what's the actual hard part here?",
	)
	return helpers[:maxStuckHelp]
}

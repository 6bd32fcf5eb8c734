package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/onestep/internal/flow"
	"github.com/sandeepkv93/onestep/internal/imagery"
	"github.com/sandeepkv93/onestep/internal/log"
	"github.com/sandeepkv93/onestep/internal/model"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type CreatorState struct {
	Energy      model.EnergyLevel
	InputActive bool
	Cursor      int
}

type PromptKind string

const (
	PromptNone  PromptKind = ""
	PromptIdle  PromptKind = "idle"
	PromptLimit PromptKind = "limit"
)

// WorkState is the working view's local runtime. None of it is persisted
// except the elapsed time handed over on pause.
type WorkState struct {
	// Generation identifies the live tick chain. Ticks carrying any other
	// value are dropped.
	Generation     int
	SessionID      string
	Elapsed        time.Duration
	LastTick       time.Time
	LastInput      time.Time
	Prompt         PromptKind
	IdlePrompted   bool
	LimitOffered   bool
	ShowSimplified bool
	Bubble         bool
	ImageStepID    string
	ImageURL       string
	ImageLoading   bool
}

type Options struct {
	Context    context.Context
	Logger     log.Logger
	Finder     imagery.Finder
	IdlePrompt time.Duration
	Now        func() time.Time
}

func (o *Options) defaults() {
	if o.Context == nil {
		o.Context = context.Background()
	}
	if o.Logger == nil {
		o.Logger = log.Noop
	}
	o.Logger = o.Logger.WithValues(log.Kv{"svc": "update.Model"})
	if o.IdlePrompt <= 0 {
		o.IdlePrompt = 120 * time.Second
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

type Model struct {
	ctx       context.Context
	ctrl      *flow.Controller
	logger    log.Logger
	finder    imagery.Finder
	now       func() time.Time
	idleAfter time.Duration

	Status       StatusBar
	Palette      CommandPaletteState
	HelpVisible  bool
	Quitting     bool
	Creator      CreatorState
	Form         ProfileForm
	Work         WorkState
	DashCursor   int
	ConfirmClear bool
	LastRating   int
	// err is set when a persistence failure ended the program.
	err error

	titleInput   textinput.Model
	commandInput textinput.Model
	stepProgress progress.Model
	imageSpinner spinner.Model
	helpModel    help.Model
	width        int
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

// AppErrorMsg reports a fatal error; the program quits.
type AppErrorMsg struct {
	Err error
}

type WorkingTickMsg struct {
	Generation int
	At         time.Time
}

type ImageResultMsg struct {
	StepID string
	URL    string
	Err    error
}

func NewModel(ctrl *flow.Controller, opts Options) Model {
	opts.defaults()
	m := Model{
		ctx:       opts.Context,
		ctrl:      ctrl,
		logger:    opts.Logger,
		finder:    opts.Finder,
		now:       opts.Now,
		idleAfter: opts.IdlePrompt,
		Creator:   CreatorState{Energy: model.EnergyMedium, InputActive: true},
		Form:      NewProfileForm(flow.DefaultProfileInput()),
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "e.g. Email my manager"
	m.titleInput.CharLimit = 120

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "new | start | resume | rate | stuck | pause"

	m.stepProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(24))
	m.imageSpinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.helpModel = help.New()
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Screen() flow.Screen {
	return m.ctrl.Screen()
}

func (m Model) profile() model.UserProfile {
	if p := m.ctrl.Profile(); p != nil {
		return *p
	}
	in := flow.DefaultProfileInput()
	return model.UserProfile{NeuroProfile: in.NeuroProfile, MotivationStyle: in.MotivationStyle, Preferences: in.Preferences}
}

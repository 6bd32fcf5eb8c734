package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	New    func(NewArgs) (Result, error)
	Start  func(StartArgs) (Result, error)
	Resume func(ResumeArgs) (Result, error)
	Rate   func(RateArgs) (Result, error)
	Stuck  func() (Result, error)
	Pause  func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeNew:
		if handlers.New == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.New(*cmd.New)
	case TypeStart:
		if handlers.Start == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Start(*cmd.Start)
	case TypeResume:
		if handlers.Resume == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Resume(*cmd.Resume)
	case TypeRate:
		if handlers.Rate == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Rate(*cmd.Rate)
	case TypeStuck:
		if handlers.Stuck == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Stuck()
	case TypePause:
		if handlers.Pause == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Pause()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}

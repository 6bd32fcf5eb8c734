package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/onestep/internal/model"
)

type Type string

const (
	TypeNew    Type = "new"
	TypeStart  Type = "start"
	TypeResume Type = "resume"
	TypeRate   Type = "rate"
	TypeStuck  Type = "stuck"
	TypePause  Type = "pause"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewArgs creates a custom task. Energy defaults to medium.
type NewArgs struct {
	Energy model.EnergyLevel
	Title  string
}

// StartArgs picks a just-start entry; Number is 1-based as typed.
type StartArgs struct {
	Number int
}

// ResumeArgs picks an active task from the dashboard list; 1-based.
type ResumeArgs struct {
	Number int
}

type RateArgs struct {
	Rating int
}

type Command struct {
	Type   Type
	Raw    string
	New    *NewArgs
	Start  *StartArgs
	Resume *ResumeArgs
	Rate   *RateArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeNew:
		return parseNew(input, args)
	case TypeStart:
		n, err := parseNumber("start", args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeStart, Raw: input, Start: &StartArgs{Number: n}}, nil
	case TypeResume:
		n, err := parseNumber("resume", args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeResume, Raw: input, Resume: &ResumeArgs{Number: n}}, nil
	case TypeRate:
		return parseRate(input, args)
	case TypeStuck, TypePause:
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseNew(raw string, args []string) (Command, error) {
	energy := model.EnergyMedium
	if len(args) > 0 {
		if e, err := model.ParseEnergyLevel(args[0]); err == nil {
			energy = e
			args = args[1:]
		}
	}
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "new requires a title"}
	}
	return Command{Type: TypeNew, Raw: raw, New: &NewArgs{Energy: energy, Title: title}}, nil
}

func parseNumber(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a number", name)}
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a positive number, got %q", name, args[0])}
	}
	return n, nil
}

func parseRate(raw string, args []string) (Command, error) {
	n, err := parseNumber("rate", args)
	if err != nil {
		return Command{}, err
	}
	if n > 5 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "rate must be between 1 and 5"}
	}
	return Command{Type: TypeRate, Raw: raw, Rate: &RateArgs{Rating: n}}, nil
}

package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAsk     Type = "ask"
	TypeEnergy  Type = "energy"
	TypeWindow  Type = "window"
	TypeAnother Type = "another"
	TypeAccept  Type = "accept"
	TypeDismiss Type = "dismiss"
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

type EnergyArgs struct {
	Level string
}

// WindowArgs carries either a preset extension in minutes ("+40") or a
// clock end time ("15:30"); exactly one is set.
type WindowArgs struct {
	PresetMinutes int
	EndClock      string
}

type Command struct {
	Type   Type
	Raw    string
	Energy *EnergyArgs
	Window *WindowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
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
	case TypeAsk, TypeAnother, TypeAccept, TypeDismiss:
		if len(args) != 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments", head)}
		}
		return Command{Type: Type(head), Raw: input}, nil
	case TypeEnergy:
		return parseEnergy(input, args)
	case TypeWindow:
		return parseWindow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseEnergy(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "energy requires a level: low, medium, or high"}
	}
	level := strings.ToLower(args[0])
	switch level {
	case "low", "medium", "high":
		return Command{Type: TypeEnergy, Raw: raw, Energy: &EnergyArgs{Level: level}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown energy level: %s", level)}
	}
}

func parseWindow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "window requires +minutes or HH:MM"}
	}
	arg := args[0]
	if strings.HasPrefix(arg, "+") {
		minutes, err := strconv.Atoi(strings.TrimPrefix(arg, "+"))
		if err != nil || minutes <= 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid preset: %s", arg)}
		}
		return Command{Type: TypeWindow, Raw: raw, Window: &WindowArgs{PresetMinutes: minutes}}, nil
	}
	if !isClockTime(arg) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid end time: %s", arg)}
	}
	return Command{Type: TypeWindow, Raw: raw, Window: &WindowArgs{EndClock: arg}}, nil
}

func isClockTime(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || len(parts[1]) != 2 {
		return false
	}
	return true
}

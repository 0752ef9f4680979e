package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Ask     func() (Result, error)
	Energy  func(EnergyArgs) (Result, error)
	Window  func(WindowArgs) (Result, error)
	Another func() (Result, error)
	Accept  func() (Result, error)
	Dismiss func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAsk:
		if handlers.Ask == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "ask handler not configured"}
		}
		return handlers.Ask()
	case TypeEnergy:
		if handlers.Energy == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "energy handler not configured"}
		}
		return handlers.Energy(*cmd.Energy)
	case TypeWindow:
		if handlers.Window == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "window handler not configured"}
		}
		return handlers.Window(*cmd.Window)
	case TypeAnother:
		if handlers.Another == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "another handler not configured"}
		}
		return handlers.Another()
	case TypeAccept:
		if handlers.Accept == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "accept handler not configured"}
		}
		return handlers.Accept()
	case TypeDismiss:
		if handlers.Dismiss == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "dismiss handler not configured"}
		}
		return handlers.Dismiss()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

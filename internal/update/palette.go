package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/nextup/internal/commands"
	"github.com/sandeepkv93/nextup/internal/model"
	"github.com/sandeepkv93/nextup/internal/session"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Ask: func() (commands.Result, error) {
			m.CurrentView = ViewRecommend
			m.NegotiationErr = ""
			m.windowInput.SetValue("")
			m.windowInput.Focus()
			m.LastSuggestion = m.Session.Ask(context.Background())
			if m.LastSuggestion != nil {
				return commands.Result{Message: fmt.Sprintf("free until %s (%s), confirm or adjust", m.LastSuggestion.Start.Format("3:04 PM"), m.LastSuggestion.Name)}, nil
			}
			return commands.Result{Message: "how long do you have?"}, nil
		},
		Energy: func(a commands.EnergyArgs) (commands.Result, error) {
			m.trace.Reset()
			rec := m.Session.SetEnergy(model.EnergyLevel(a.Level))
			if rec != nil {
				return commands.Result{Message: fmt.Sprintf("energy %s, next up: %s", a.Level, rec.Task.Title)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("energy set to %s", a.Level)}, nil
		},
		Window: func(a commands.WindowArgs) (commands.Result, error) {
			if m.Session.State() != session.StateAwaitingConfirmation {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no window negotiation in progress, run ask first"}
			}
			if a.PresetMinutes > 0 {
				if err := m.Session.Negotiator().PickPreset(a.PresetMinutes); err != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
				}
				return commands.Result{Message: fmt.Sprintf("window set to %d minutes", a.PresetMinutes)}, nil
			}
			end, parseErr := parseClockToday(m.clock(), a.EndClock)
			if parseErr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: parseErr.Error()}
			}
			if err := m.Session.Negotiator().SetEndTime(end); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			return commands.Result{Message: fmt.Sprintf("window ends at %s", end.Format("3:04 PM"))}, nil
		},
		Another: func() (commands.Result, error) {
			if m.Session.Current() == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no recommendation on screen"}
			}
			m.trace.Reset()
			if rec := m.Session.SuggestAnother(); rec != nil {
				return commands.Result{Message: fmt.Sprintf("how about: %s", rec.Task.Title)}, nil
			}
			return commands.Result{Message: "no other tasks fit this window"}, nil
		},
		Accept: func() (commands.Result, error) {
			if m.Session.Current() == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no recommendation on screen"}
			}
			m.Session.Accept()
			m.trace.Reset()
			return commands.Result{Message: "sounds good, session ended"}, nil
		},
		Dismiss: func() (commands.Result, error) {
			m.Session.Dismiss()
			m.trace.Reset()
			m.NegotiationErr = ""
			return commands.Result{Message: "dismissed"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

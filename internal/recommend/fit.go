package recommend

import "github.com/sandeepkv93/nextup/internal/model"

// EnergyFit scores how well a task's estimated duration suits the user's
// declared energy level. Low energy favors short tasks, medium favors the
// 20-45 minute middle band, high energy favors longer focused work.
func EnergyFit(estimatedMinutes int, energy model.EnergyLevel) float64 {
	m := estimatedMinutes
	switch energy {
	case model.EnergyLow:
		switch {
		case m <= 20:
			return 100
		case m <= 30:
			return 70
		case m <= 45:
			return 40
		default:
			return 10
		}
	case model.EnergyMedium:
		switch {
		case m >= 20 && m <= 45:
			return 100
		case m >= 15 && m <= 60:
			return 80
		default:
			return 50
		}
	case model.EnergyHigh:
		switch {
		case m >= 30:
			return 100
		case m >= 20:
			return 80
		default:
			return 60
		}
	default:
		return 50
	}
}

// DurationFit scores a task against the available window. Tasks that leave
// ten percent headroom score full marks; tasks that barely fit score 70.
// Over-budget tasks degrade linearly instead of being excluded, so a slightly
// oversized task can still surface when nothing else competes.
func DurationFit(estimatedMinutes, availableMinutes int) float64 {
	task := float64(estimatedMinutes)
	avail := float64(availableMinutes)
	switch {
	case task <= 0.9*avail:
		return 100
	case task <= avail:
		return 70
	default:
		penalized := 60 - 2*(task-avail)
		if penalized < 10 {
			return 10
		}
		return penalized
	}
}

package recommend

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/nextup/internal/model"
)

const (
	pressureFloor = 20.0
	pressureCurve = 2.0

	noDeadlineCorePressure = 20.0
	growthPressure         = 10.0
	generalPressure        = 5.0
)

var explicitDuePattern = regexp.MustCompile(`due\s+(\d{1,2})/(\d{1,2})/(\d{4})`)

// ParseDeadline turns free-text deadline descriptions into an estimated
// days-until-due. The second return is false when the text signals no
// deadline at all ("when you have time", "someday"). Unrecognized text maps
// to a moderate seven days rather than an error.
func ParseDeadline(text string, now time.Time) (float64, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if m := explicitDuePattern.FindStringSubmatch(normalized); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		endOfDay := time.Date(year, time.Month(month), day, 23, 59, 59, 0, now.Location())
		return endOfDay.Sub(now).Hours() / 24, true
	}
	if strings.Contains(normalized, "today") {
		return 0.5, true
	}
	if strings.Contains(normalized, "tomorrow") {
		return 1, true
	}
	if strings.Contains(normalized, "friday") {
		return float64(daysUntilFriday(now)), true
	}
	if strings.Contains(normalized, "this week") {
		days := 7 - int(now.Weekday())
		if days < 1 {
			days = 1
		}
		return float64(days), true
	}
	if strings.Contains(normalized, "when you have time") || strings.Contains(normalized, "someday") {
		return 0, false
	}
	return 7, true
}

// A deadline of "friday" on a Friday means next Friday, not today.
func daysUntilFriday(now time.Time) int {
	days := (int(time.Friday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return days
}

// Pressure maps a task to a 0-100 urgency signal. Growth and general tasks
// carry small constants so a core obligation with any deadline can outrank
// them on pressure alone. Core obligations follow a smooth curve in
// days-until-due; there is deliberately no step at day boundaries, so the
// signal never jumps at midnight.
func Pressure(task model.Task, now time.Time) float64 {
	switch task.Type {
	case model.TaskTypeGrowth:
		return growthPressure
	case model.TaskTypeGeneral:
		return generalPressure
	}

	days, hasDeadline := ParseDeadline(task.Deadline, now)
	if !hasDeadline {
		return noDeadlineCorePressure
	}

	d := days
	if d < 0.1 {
		d = 0.1
	}
	pressure := pressureFloor + (100-pressureFloor)/(1+pressureCurve*d*d)
	if pressure < pressureFloor {
		pressure = pressureFloor
	}
	if pressure > 100 {
		pressure = 100
	}
	return pressure
}

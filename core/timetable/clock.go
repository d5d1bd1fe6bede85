package timetable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

var (
	ErrInvalidTimeFormat = errors.New("invalid time, expected HH:MM")
	ErrNegativeMinutes   = errors.New("minutes must not be negative")
)

// parseClock converts an "HH:MM" string to minutes since midnight.
func parseClock(t string) (int, error) {
	parts := strings.Split(t, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidTimeFormat
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, ErrInvalidTimeFormat
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil || mins < 0 || mins > 59 {
		return 0, ErrInvalidTimeFormat
	}
	return hours*60 + mins, nil
}

// AddMinutes adds `minutes` to an "HH:MM" clock time, wrapping past midnight.
func AddMinutes(t string, minutes int) (string, error) {
	if minutes < 0 {
		return "", ErrNegativeMinutes
	}
	total, err := parseClock(t)
	if err != nil {
		return "", err
	}
	total = (total + minutes) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}

// Package timecodec converts between "HH:MM" time-of-day strings and
// minute-of-day integers.
package timecodec

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

const (
	// MinutesPerDay is the number of distinct minute-of-day values.
	MinutesPerDay = 24 * 60
	// MaxMinute is the last valid minute of a day (23:59).
	MaxMinute = MinutesPerDay - 1
)

// ErrInvalidTimeFormat is returned when a value is not a valid 24-hour HH:MM time.
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

var pattern = regexp.MustCompile(`^([0-9]{2}):([0-9]{2})$`)

// Parse converts "HH:MM" into minutes elapsed since 00:00.
func Parse(text string) (int, error) {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}
	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, text)
	}
	return hour*60 + minute, nil
}

// Format renders a minute-of-day as "HH:MM". Values outside [0, MaxMinute]
// are clamped.
func Format(minute int) string {
	if minute < 0 {
		minute = 0
	}
	if minute > MaxMinute {
		minute = MaxMinute
	}
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// Valid reports whether minute is a representable minute-of-day.
func Valid(minute int) bool {
	return minute >= 0 && minute <= MaxMinute
}

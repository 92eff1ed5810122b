package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekDay numbers days from Sunday (0) to Saturday (6), matching time.Weekday.
type WeekDay int

const (
	Sunday WeekDay = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Valid reports whether d is within 0..6.
func (d WeekDay) Valid() bool {
	return d >= Sunday && d <= Saturday
}

func (d WeekDay) String() string {
	if !d.Valid() {
		return "WeekDay(invalid)"
	}
	return time.Weekday(d).String()
}

// ScheduleSlot is a recurring weekly window during which a class is available.
// The window is half-open: FromMinute is included, ToMinute is not.
type ScheduleSlot struct {
	ID         string  `db:"id" json:"id"`
	ClassID    string  `db:"class_id" json:"class_id"`
	WeekDay    WeekDay `db:"week_day" json:"week_day"`
	FromMinute int     `db:"from_minute" json:"from_minute"`
	ToMinute   int     `db:"to_minute" json:"to_minute"`
}

// Covers reports whether the slot is open at minute on day.
func (s ScheduleSlot) Covers(day WeekDay, minute int) bool {
	return s.WeekDay == day && s.FromMinute <= minute && minute < s.ToMinute
}

// Valid checks the day range and that the window is non-empty.
func (s ScheduleSlot) Valid() bool {
	return s.WeekDay.Valid() && s.FromMinute >= 0 && s.FromMinute < s.ToMinute && s.ToMinute < 24*60
}

// UnmarshalJSON accepts both numbers and numeric strings, as sent by form-based clients.
func (d *WeekDay) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("week_day must be an integer: %w", err)
	}
	*d = WeekDay(value)
	return nil
}

// ParseWeekDay converts query text into a WeekDay, rejecting values outside 0..6.
func ParseWeekDay(raw string) (WeekDay, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("week_day must be an integer: %w", err)
	}
	day := WeekDay(value)
	if !day.Valid() {
		return 0, fmt.Errorf("week_day must be between 0 and 6, got %d", value)
	}
	return day, nil
}

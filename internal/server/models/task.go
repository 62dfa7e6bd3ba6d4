package models

import (
	"fmt"
	"time"
)

// Priority is the urgency label of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts low, medium or high.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Task is a to-do item owned by a single user. ScheduledAt combines the
// task's date and time of day in UTC.
type Task struct {
	ID          string
	UserID      string
	Name        string
	ScheduledAt time.Time
	Priority    Priority
	Completed   bool
	CreatedAt   time.Time
}

// Date and clock layouts used on the wire.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Schedule combines a date ("2006-01-02") and a time of day ("15:04" or
// "15:04:05") into a UTC instant.
func Schedule(date, clock string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	c, err := time.Parse(TimeLayout, clock)
	if err != nil {
		c, err = time.Parse("15:04:05", clock)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q", clock)
		}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC), nil
}

// Reschedule moves t to date while keeping its time of day.
func Reschedule(t time.Time, date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	t = t.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid is returned when a status, priority or sort criteria string
// is not one of the known values
var ErrInvalid = errors.New("invalid value")

// Status determines which column a task belongs to
type Status string

const (
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in column order
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the three columns
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns the column title
func (s Status) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	}
	return string(s)
}

// Index returns the column position of s, or -1
func (s Status) Index() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// ParseStatus parses a status wire value such as "in-progress"
func ParseStatus(v string) (Status, error) {
	s := Status(normalize(v))
	if !s.Valid() {
		return "", fmt.Errorf("status %q: %w", v, ErrInvalid)
	}
	return s, nil
}

// Priority of a task
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	return p.Rank() >= 0
}

// Rank orders priorities Low < Medium < High. Unknown priorities rank -1.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	}
	return -1
}

// ParsePriority parses a priority case-insensitively
func ParsePriority(v string) (Priority, error) {
	for _, p := range Priorities {
		if strings.EqualFold(strings.TrimSpace(v), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("priority %q: %w", v, ErrInvalid)
}

// SortCriteria selects the key of a global sort
type SortCriteria string

const (
	SortByStatus   SortCriteria = "status"
	SortByDate     SortCriteria = "date"
	SortByPriority SortCriteria = "priority"
)

// Valid reports whether c is a known criteria
func (c SortCriteria) Valid() bool {
	switch c {
	case SortByStatus, SortByDate, SortByPriority:
		return true
	}
	return false
}

// ParseSortCriteria parses "status", "date" or "priority"
func ParseSortCriteria(v string) (SortCriteria, error) {
	c := SortCriteria(normalize(v))
	if !c.Valid() {
		return "", fmt.Errorf("sort criteria %q: %w", v, ErrInvalid)
	}
	return c, nil
}

// Task represents a single task on the board
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Status    Status    `json:"status"`
	Completed bool      `json:"completed"` // independent of Status
	Priority  Priority  `json:"priority"`
	Date      time.Time `json:"date"` // due date
}

// NormalizeDate strips the monotonic reading and converts to UTC so a
// date survives an encode/decode cycle unchanged
func NormalizeDate(t time.Time) time.Time {
	return t.Round(0).UTC()
}

// ValidDate reports whether t can be stored. Zero is allowed and means "now"
// to the store. Years outside 0-9999 cannot be written as RFC 3339.
func ValidDate(t time.Time) bool {
	if t.IsZero() {
		return true
	}
	y := NormalizeDate(t).Year()
	return y >= 0 && y <= 9999
}

func normalize(v string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(v)), "_", "-")
}

// Package board builds the read-only column layout the UI renders. Nothing
// here changes the order stored in the task store.
package board

import (
	"fmt"
	"slices"

	"github.com/tgienger/kanban/internal/models"
)

// Filter limits which columns show tasks. The zero value shows everything.
type Filter struct {
	Status models.Status // empty means all
}

// FilterAll shows every column
var FilterAll = Filter{}

// Filters lists the filter choices in cycling order
var Filters = []Filter{
	FilterAll,
	{Status: models.StatusNotStarted},
	{Status: models.StatusInProgress},
	{Status: models.StatusCompleted},
}

// Match reports whether a task passes the filter
func (f Filter) Match(t models.Task) bool {
	return f.Status == "" || t.Status == f.Status
}

func (f Filter) String() string {
	if f.Status == "" {
		return "all"
	}
	return string(f.Status)
}

// Label is the human readable name of the filter
func (f Filter) Label() string {
	if f.Status == "" {
		return "All Tasks"
	}
	return f.Status.Label()
}

// Next returns the filter after f in Filters
func (f Filter) Next() Filter {
	i := slices.Index(Filters, f)
	return Filters[(i+1)%len(Filters)]
}

// ParseFilter parses "all" or a status
func ParseFilter(v string) (Filter, error) {
	if v == "" || v == "all" {
		return FilterAll, nil
	}
	s, err := models.ParseStatus(v)
	if err != nil {
		return FilterAll, err
	}
	return Filter{Status: s}, nil
}

// Sort is a column-local display order
type Sort string

const (
	SortDateNewest   Sort = "date-newest"
	SortDateOldest   Sort = "date-oldest"
	SortPriorityHigh Sort = "priority-high"
	SortPriorityLow  Sort = "priority-low"
	SortManual       Sort = "manual" // store order
)

// Sorts lists the sort choices in cycling order
var Sorts = []Sort{SortDateNewest, SortDateOldest, SortPriorityHigh, SortPriorityLow, SortManual}

// Label is the human readable name of the sort
func (s Sort) Label() string {
	switch s {
	case SortDateNewest:
		return "Newest First"
	case SortDateOldest:
		return "Oldest First"
	case SortPriorityHigh:
		return "High Priority First"
	case SortPriorityLow:
		return "Low Priority First"
	case SortManual:
		return "Manual"
	}
	return string(s)
}

// Next returns the sort after s in Sorts
func (s Sort) Next() Sort {
	i := slices.Index(Sorts, s)
	return Sorts[(i+1)%len(Sorts)]
}

// ParseSort parses one of the Sorts values
func ParseSort(v string) (Sort, error) {
	for _, s := range Sorts {
		if string(s) == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("column sort %q: %w", v, models.ErrInvalid)
}

func (s Sort) compare(a, b models.Task) int {
	switch s {
	case SortDateNewest:
		return b.Date.Compare(a.Date)
	case SortDateOldest:
		return a.Date.Compare(b.Date)
	case SortPriorityHigh:
		return b.Priority.Rank() - a.Priority.Rank()
	case SortPriorityLow:
		return a.Priority.Rank() - b.Priority.Rank()
	}
	return 0
}

// Apply returns a sorted copy of tasks. Ties keep their input order.
func (s Sort) Apply(tasks []models.Task) []models.Task {
	out := slices.Clone(tasks)
	if s != SortManual {
		slices.SortStableFunc(out, s.compare)
	}
	return out
}

// Column is one rendered column
type Column struct {
	Status models.Status
	Tasks  []models.Task
}

// Columns partitions tasks into the three status columns, applying the
// filter and then the column-local sort
func Columns(tasks []models.Task, f Filter, s Sort) []Column {
	cols := make([]Column, len(models.Statuses))
	for i, st := range models.Statuses {
		cols[i].Status = st
	}
	for _, t := range tasks {
		i := t.Status.Index()
		if i < 0 || !f.Match(t) {
			continue
		}
		cols[i].Tasks = append(cols[i].Tasks, t)
	}
	for i := range cols {
		cols[i].Tasks = s.Apply(cols[i].Tasks)
	}
	return cols
}

// Counts returns the number of tasks per status
func Counts(tasks []models.Task) map[models.Status]int {
	counts := make(map[models.Status]int, len(models.Statuses))
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

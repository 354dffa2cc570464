package store

import (
	"time"

	"github.com/tgienger/kanban/internal/models"
)

// Intent is a request to mutate the store
type Intent interface {
	apply(s *Store) bool
}

// AddIntent appends a task, see Store.Add
type AddIntent struct {
	Text     string
	Status   models.Status
	Priority models.Priority
	Date     time.Time
}

// DeleteIntent removes a task by id
type DeleteIntent struct {
	ID int64
}

// EditIntent changes text, priority and date of a task
type EditIntent struct {
	ID       int64
	Text     string
	Priority models.Priority
	Date     time.Time // zero keeps the current date
}

// ToggleIntent flips the completed flag
type ToggleIntent struct {
	ID int64
}

// MoveIntent relocates a task, see Store.Move
type MoveIntent struct {
	ID          int64
	Source      models.Status
	Destination models.Status
	Index       int
}

// SortIntent reorders the whole sequence
type SortIntent struct {
	Criteria models.SortCriteria
}

func (i AddIntent) apply(s *Store) bool {
	_, ok := s.Add(i.Text, i.Status, i.Priority, i.Date)
	return ok
}

func (i DeleteIntent) apply(s *Store) bool { return s.Delete(i.ID) }

func (i EditIntent) apply(s *Store) bool { return s.Edit(i.ID, i.Text, i.Priority, i.Date) }

func (i ToggleIntent) apply(s *Store) bool { return s.ToggleComplete(i.ID) }

func (i MoveIntent) apply(s *Store) bool {
	return s.Move(i.ID, i.Source, i.Destination, i.Index)
}

func (i SortIntent) apply(s *Store) bool { return s.SortBy(i.Criteria) }

// Dispatch applies an intent and reports whether the store changed
func (s *Store) Dispatch(in Intent) bool {
	if in == nil {
		return false
	}
	return in.apply(s)
}

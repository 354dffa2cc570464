// Package store holds the ordered task sequence of the board and every
// mutation that can be applied to it.
package store

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tgienger/kanban/internal/models"
)

// Persister receives the full task sequence after every state change
type Persister interface {
	Save(tasks []models.Task)
}

// Option configures a Store
type Option func(*Store)

// WithPersister sets the collaborator that is handed each new sequence
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persist = p }
}

// WithClock overrides the time source used for ids and default dates
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger for mutation traces
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store owns the task sequence. A task's position only matters relative to
// tasks of the same status; columns are filtered views of the one sequence.
//
// Store is not safe for concurrent use. The program has a single writer.
type Store struct {
	tasks   []models.Task
	lastID  int64
	persist Persister
	now     func() time.Time
	log     *log.Logger
}

// New creates a store seeded with initial. Tasks with an invalid status or
// an id already seen are dropped.
func New(initial []models.Task, opts ...Option) *Store {
	s := &Store{
		now: time.Now,
		log: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	seen := make(map[int64]bool, len(initial))
	s.tasks = make([]models.Task, 0, len(initial))
	for _, t := range initial {
		if !t.Status.Valid() || seen[t.ID] {
			s.log.Warn("dropping task", "id", t.ID, "status", t.Status)
			continue
		}
		seen[t.ID] = true
		if !t.Priority.Valid() {
			t.Priority = models.PriorityMedium
		}
		t.Date = models.NormalizeDate(t.Date)
		s.tasks = append(s.tasks, t)
		s.lastID = max(s.lastID, t.ID)
	}
	return s
}

// Tasks returns a copy of the full sequence
func (s *Store) Tasks() []models.Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks
func (s *Store) Len() int {
	return len(s.tasks)
}

// Get returns the task with the given id
func (s *Store) Get(id int64) (models.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i], true
}

// Column returns the tasks with the given status in sequence order
func (s *Store) Column(status models.Status) []models.Task {
	var col []models.Task
	for _, t := range s.tasks {
		if t.Status == status {
			col = append(col, t)
		}
	}
	return col
}

// Add appends a new task and returns it. Blank text, an invalid status or a
// date that cannot be stored rejects the task.
func (s *Store) Add(text string, status models.Status, priority models.Priority, date time.Time) (models.Task, bool) {
	if strings.TrimSpace(text) == "" || !status.Valid() || !models.ValidDate(date) {
		return models.Task{}, false
	}
	if !priority.Valid() {
		priority = models.PriorityMedium
	}
	if date.IsZero() {
		date = s.now()
	}

	t := models.Task{
		ID:       s.nextID(),
		Text:     text,
		Status:   status,
		Priority: priority,
		Date:     models.NormalizeDate(date),
	}
	s.tasks = append(s.tasks, t)
	s.log.Debug("task added", "id", t.ID, "status", t.Status)
	s.changed()
	return t, true
}

// Delete removes the task with the given id
func (s *Store) Delete(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.log.Debug("task deleted", "id", id)
	s.changed()
	return true
}

// Edit updates text, priority and date of a task. A zero date keeps the
// previous date and an invalid priority keeps the previous priority. A date
// that cannot be stored rejects the edit.
func (s *Store) Edit(id int64, text string, priority models.Priority, date time.Time) bool {
	i := s.indexOf(id)
	if i < 0 || strings.TrimSpace(text) == "" || !models.ValidDate(date) {
		return false
	}

	t := &s.tasks[i]
	t.Text = text
	if priority.Valid() {
		t.Priority = priority
	}
	if !date.IsZero() {
		t.Date = models.NormalizeDate(date)
	}
	s.log.Debug("task edited", "id", id)
	s.changed()
	return true
}

// ToggleComplete flips the completed flag of a task
func (s *Store) ToggleComplete(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.log.Debug("task toggled", "id", id, "completed", s.tasks[i].Completed)
	s.changed()
	return true
}

// Move relocates a task to position destIndex of the destination column.
// destIndex counts tasks of the destination status only, in sequence order,
// after the moved task has been taken out. An index at or past the end of
// the column appends the task to the end of the sequence.
func (s *Store) Move(id int64, source, dest models.Status, destIndex int) bool {
	i := s.indexOf(id)
	if i < 0 || !dest.Valid() {
		return false
	}

	t := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	if source != dest {
		t.Status = dest
	}

	destIndex = max(destIndex, 0)
	at := -1
	n := 0
	for j, other := range s.tasks {
		if other.Status != dest {
			continue
		}
		if n == destIndex {
			at = j
			break
		}
		n++
	}

	if at < 0 {
		s.tasks = append(s.tasks, t)
	} else {
		s.tasks = slices.Insert(s.tasks, at, t)
	}
	s.log.Debug("task moved", "id", id, "from", source, "to", dest, "index", destIndex)
	s.changed()
	return true
}

// SortBy reorders the entire sequence by criteria. The sort is stable.
func (s *Store) SortBy(criteria models.SortCriteria) bool {
	var cmp func(a, b models.Task) int
	switch criteria {
	case models.SortByStatus:
		cmp = func(a, b models.Task) int { return strings.Compare(string(a.Status), string(b.Status)) }
	case models.SortByDate:
		cmp = func(a, b models.Task) int { return a.Date.Compare(b.Date) }
	case models.SortByPriority:
		cmp = func(a, b models.Task) int { return a.Priority.Rank() - b.Priority.Rank() }
	default:
		return false
	}

	slices.SortStableFunc(s.tasks, cmp)
	s.log.Debug("tasks sorted", "criteria", criteria)
	s.changed()
	return true
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
}

// nextID derives an id from the clock but never reuses or goes below an
// id the store has already seen.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) changed() {
	if s.persist != nil {
		s.persist.Save(s.Tasks())
	}
}

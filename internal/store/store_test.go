package store

import (
	"slices"
	"testing"
	"time"

	"github.com/tgienger/kanban/internal/models"
)

type recordingPersister struct {
	saves [][]models.Task
}

func (r *recordingPersister) Save(tasks []models.Task) {
	r.saves = append(r.saves, tasks)
}

func frozenClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var base = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func task(id int64, status models.Status) models.Task {
	return models.Task{ID: id, Text: "task", Status: status, Priority: models.PriorityMedium, Date: base}
}

func ids(tasks []models.Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestAddUniqueIDs(t *testing.T) {
	s := New(nil, WithClock(frozenClock(base)))

	seen := make(map[int64]bool)
	for i := 0; i < 50; i++ {
		task, ok := s.Add("write report", models.StatusNotStarted, models.PriorityLow, base)
		if !ok {
			t.Fatalf("Add %d rejected", i)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %d", task.ID)
		}
		seen[task.ID] = true
		if task.Completed {
			t.Errorf("new task should not be completed")
		}
	}
	if s.Len() != 50 {
		t.Errorf("Len: got %d, want 50", s.Len())
	}
}

func TestAddIDsAboveLoaded(t *testing.T) {
	future := base.Add(time.Hour).UnixMilli()
	s := New([]models.Task{task(future, models.StatusCompleted)}, WithClock(frozenClock(base)))

	got, ok := s.Add("next", models.StatusNotStarted, models.PriorityHigh, time.Time{})
	if !ok {
		t.Fatal("Add rejected")
	}
	if got.ID <= future {
		t.Errorf("id %d should exceed loaded id %d", got.ID, future)
	}
	if !got.Date.Equal(base) {
		t.Errorf("zero date should default to now: got %v", got.Date)
	}
}

func TestAddRejects(t *testing.T) {
	p := &recordingPersister{}
	s := New(nil, WithPersister(p))

	if _, ok := s.Add("   ", models.StatusNotStarted, models.PriorityLow, base); ok {
		t.Error("blank text should be rejected")
	}
	if _, ok := s.Add("x", models.Status("archived"), models.PriorityLow, base); ok {
		t.Error("invalid status should be rejected")
	}
	if s.Len() != 0 || len(p.saves) != 0 {
		t.Errorf("rejected adds changed state: len=%d saves=%d", s.Len(), len(p.saves))
	}

	got, _ := s.Add("x", models.StatusInProgress, models.Priority("Urgent"), base)
	if got.Priority != models.PriorityMedium {
		t.Errorf("invalid priority: got %q, want Medium", got.Priority)
	}
}

func TestAddDeleteRoundTrip(t *testing.T) {
	s := New([]models.Task{task(1, models.StatusNotStarted), task(2, models.StatusCompleted)})
	before := s.Tasks()

	added, _ := s.Add("temp", models.StatusInProgress, models.PriorityHigh, base)
	if !s.Delete(added.ID) {
		t.Fatal("Delete of added task reported no change")
	}
	if !slices.Equal(ids(s.Tasks()), ids(before)) {
		t.Errorf("got %v, want %v", ids(s.Tasks()), ids(before))
	}
}

func TestMissingIDIsNoop(t *testing.T) {
	p := &recordingPersister{}
	s := New([]models.Task{task(1, models.StatusNotStarted)}, WithPersister(p))

	if s.Delete(99) || s.Edit(99, "x", models.PriorityLow, base) || s.ToggleComplete(99) ||
		s.Move(99, models.StatusNotStarted, models.StatusCompleted, 0) {
		t.Error("operations on a missing id should report no change")
	}
	if len(p.saves) != 0 {
		t.Errorf("no-ops should not persist, got %d saves", len(p.saves))
	}
}

func TestEdit(t *testing.T) {
	s := New([]models.Task{task(1, models.StatusInProgress)})
	later := base.Add(48 * time.Hour)

	s.Edit(1, "renamed", models.PriorityHigh, later)
	once := s.Tasks()
	s.Edit(1, "renamed", models.PriorityHigh, later)
	if !slices.Equal(once, s.Tasks()) {
		t.Error("editing twice with the same payload changed the result")
	}

	got, _ := s.Get(1)
	if got.Text != "renamed" || got.Priority != models.PriorityHigh || !got.Date.Equal(later) {
		t.Errorf("unexpected task after edit: %+v", got)
	}
	if got.Status != models.StatusInProgress || got.Completed {
		t.Errorf("edit should not touch status/completed: %+v", got)
	}

	s.Edit(1, "again", models.PriorityLow, time.Time{})
	got, _ = s.Get(1)
	if !got.Date.Equal(later) {
		t.Errorf("zero date should keep previous date, got %v", got.Date)
	}

	if s.Edit(1, "  ", models.PriorityLow, base) {
		t.Error("blank text edit should be a no-op")
	}
}

func TestToggleCompleteIndependentOfStatus(t *testing.T) {
	s := New([]models.Task{task(1, models.StatusCompleted)})

	s.ToggleComplete(1)
	got, _ := s.Get(1)
	if !got.Completed || got.Status != models.StatusCompleted {
		t.Errorf("after toggle: %+v", got)
	}
	s.ToggleComplete(1)
	got, _ = s.Get(1)
	if got.Completed {
		t.Error("second toggle should clear completed")
	}
}

func TestMoveDestinationIndex(t *testing.T) {
	// column D = in-progress with [A=10, B=11, C=12]; X=1 starts in not-started
	s := New([]models.Task{
		task(1, models.StatusNotStarted),
		task(10, models.StatusInProgress),
		task(2, models.StatusCompleted),
		task(11, models.StatusInProgress),
		task(12, models.StatusInProgress),
	})

	s.Move(1, models.StatusNotStarted, models.StatusInProgress, 1)

	col := ids(s.Column(models.StatusInProgress))
	if want := []int64{10, 1, 11, 12}; !slices.Equal(col, want) {
		t.Errorf("column order: got %v, want %v", col, want)
	}
	got, _ := s.Get(1)
	if got.Status != models.StatusInProgress {
		t.Errorf("status not updated: %s", got.Status)
	}
}

func TestMoveAppend(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{"at length", 2},
		{"past length", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New([]models.Task{
				task(10, models.StatusCompleted),
				task(11, models.StatusCompleted),
				task(1, models.StatusNotStarted),
				task(2, models.StatusNotStarted),
			})
			s.Move(1, models.StatusNotStarted, models.StatusCompleted, tt.index)

			col := ids(s.Column(models.StatusCompleted))
			if want := []int64{10, 11, 1}; !slices.Equal(col, want) {
				t.Errorf("got %v, want %v", col, want)
			}
			all := ids(s.Tasks())
			if all[len(all)-1] != 1 {
				t.Errorf("appended task should be last in sequence: %v", all)
			}
		})
	}
}

func TestMoveWithinColumn(t *testing.T) {
	s := New([]models.Task{
		task(1, models.StatusNotStarted),
		task(5, models.StatusCompleted),
		task(2, models.StatusNotStarted),
		task(3, models.StatusNotStarted),
	})

	s.Move(3, models.StatusNotStarted, models.StatusNotStarted, 0)

	if got, want := ids(s.Column(models.StatusNotStarted)), []int64{3, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("column: got %v, want %v", got, want)
	}
	if got, want := ids(s.Column(models.StatusCompleted)), []int64{5}; !slices.Equal(got, want) {
		t.Errorf("other column disturbed: got %v, want %v", got, want)
	}
}

func TestMoveNegativeIndexAndInvalidDestination(t *testing.T) {
	s := New([]models.Task{
		task(1, models.StatusNotStarted),
		task(2, models.StatusInProgress),
	})

	if s.Move(1, models.StatusNotStarted, models.Status("archived"), 0) {
		t.Error("invalid destination should be a no-op")
	}

	s.Move(1, models.StatusNotStarted, models.StatusInProgress, -3)
	if got, want := ids(s.Column(models.StatusInProgress)), []int64{1, 2}; !slices.Equal(got, want) {
		t.Errorf("negative index: got %v, want %v", got, want)
	}
}

func TestMovePreservesCount(t *testing.T) {
	var initial []models.Task
	for i := int64(1); i <= 9; i++ {
		initial = append(initial, task(i, models.Statuses[i%3]))
	}
	s := New(initial)

	moves := []MoveIntent{
		{ID: 1, Source: models.StatusInProgress, Destination: models.StatusCompleted, Index: 0},
		{ID: 4, Source: models.StatusInProgress, Destination: models.StatusInProgress, Index: 5},
		{ID: 9, Source: models.StatusNotStarted, Destination: models.StatusInProgress, Index: 1},
		{ID: 2, Source: models.StatusCompleted, Destination: models.StatusNotStarted, Index: 2},
		{ID: 7, Source: models.StatusInProgress, Destination: models.StatusNotStarted, Index: 0},
	}
	for _, m := range moves {
		s.Dispatch(m)
		if s.Len() != 9 {
			t.Fatalf("after %+v: len %d", m, s.Len())
		}
	}

	got := ids(s.Tasks())
	slices.Sort(got)
	if want := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9}; !slices.Equal(got, want) {
		t.Errorf("ids changed: %v", got)
	}
}

func TestSortBy(t *testing.T) {
	mk := func(id int64, status models.Status, p models.Priority, d time.Time) models.Task {
		return models.Task{ID: id, Text: "t", Status: status, Priority: p, Date: d}
	}

	t.Run("priority", func(t *testing.T) {
		s := New([]models.Task{
			mk(1, models.StatusNotStarted, models.PriorityHigh, base),
			mk(2, models.StatusNotStarted, models.PriorityLow, base),
			mk(3, models.StatusNotStarted, models.PriorityMedium, base),
		})
		s.SortBy(models.SortByPriority)
		if got, want := ids(s.Tasks()), []int64{2, 3, 1}; !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("date", func(t *testing.T) {
		s := New([]models.Task{
			mk(1, models.StatusNotStarted, models.PriorityLow, base.Add(time.Hour)),
			mk(2, models.StatusCompleted, models.PriorityLow, base.Add(-time.Hour)),
			mk(3, models.StatusInProgress, models.PriorityLow, base),
		})
		s.SortBy(models.SortByDate)
		if got, want := ids(s.Tasks()), []int64{2, 3, 1}; !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("status is stable", func(t *testing.T) {
		s := New([]models.Task{
			mk(1, models.StatusNotStarted, models.PriorityLow, base),
			mk(2, models.StatusCompleted, models.PriorityLow, base),
			mk(3, models.StatusInProgress, models.PriorityLow, base),
			mk(4, models.StatusCompleted, models.PriorityLow, base),
		})
		s.SortBy(models.SortByStatus)
		if got, want := ids(s.Tasks()), []int64{2, 4, 3, 1}; !slices.Equal(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("unknown criteria", func(t *testing.T) {
		p := &recordingPersister{}
		s := New([]models.Task{task(1, models.StatusNotStarted)}, WithPersister(p))
		if s.SortBy(models.SortCriteria("title")) || len(p.saves) != 0 {
			t.Error("unknown criteria should be a no-op")
		}
	})
}

func TestNewDropsInvalidTasks(t *testing.T) {
	s := New([]models.Task{
		task(1, models.StatusNotStarted),
		task(1, models.StatusCompleted),
		task(2, models.Status("")),
		{ID: 3, Text: "p", Status: models.StatusInProgress, Priority: "Urgent"},
	})

	if got, want := ids(s.Tasks()), []int64{1, 3}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	got, _ := s.Get(3)
	if got.Priority != models.PriorityMedium {
		t.Errorf("invalid priority should become Medium, got %q", got.Priority)
	}
}

func TestPersistAfterEveryChange(t *testing.T) {
	p := &recordingPersister{}
	s := New(nil, WithPersister(p), WithClock(frozenClock(base)))

	a, _ := s.Add("a", models.StatusNotStarted, models.PriorityLow, base)
	b, _ := s.Add("b", models.StatusNotStarted, models.PriorityLow, base)
	s.ToggleComplete(a.ID)
	s.Move(b.ID, models.StatusNotStarted, models.StatusCompleted, 0)
	s.Delete(a.ID)

	if len(p.saves) != 5 {
		t.Fatalf("expected 5 saves, got %d", len(p.saves))
	}
	last := p.saves[len(p.saves)-1]
	if len(last) != 1 || last[0].ID != b.ID || last[0].Status != models.StatusCompleted {
		t.Errorf("last save: %+v", last)
	}

	// saved slices must not alias the store
	last[0].Text = "mutated"
	if got, _ := s.Get(b.ID); got.Text != "b" {
		t.Error("persisted snapshot aliases store state")
	}
}

func TestDispatch(t *testing.T) {
	s := New(nil, WithClock(frozenClock(base)))

	if !s.Dispatch(AddIntent{Text: "a", Status: models.StatusInProgress, Priority: models.PriorityHigh}) {
		t.Fatal("AddIntent reported no change")
	}
	id := s.Tasks()[0].ID

	steps := []struct {
		in   Intent
		want bool
	}{
		{EditIntent{ID: id, Text: "b", Priority: models.PriorityLow}, true},
		{ToggleIntent{ID: id}, true},
		{MoveIntent{ID: id, Source: models.StatusInProgress, Destination: models.StatusCompleted}, true},
		{SortIntent{Criteria: models.SortByDate}, true},
		{DeleteIntent{ID: id + 1}, false},
		{DeleteIntent{ID: id}, true},
		{nil, false},
	}
	for i, st := range steps {
		if got := s.Dispatch(st.in); got != st.want {
			t.Errorf("step %d (%T): got %v, want %v", i, st.in, got, st.want)
		}
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestDatesOutsideStorableRange(t *testing.T) {
	p := &recordingPersister{}
	s := New([]models.Task{task(1, models.StatusNotStarted)}, WithPersister(p), WithClock(frozenClock(base)))
	farFuture := time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)
	beforeZero := time.Date(-1, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
	}{
		{"year 10000", farFuture},
		{"negative year", beforeZero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := s.Add("later", models.StatusNotStarted, models.PriorityLow, tt.date); ok {
				t.Error("Add accepted an unstorable date")
			}
			if s.Edit(1, "later", models.PriorityLow, tt.date) {
				t.Error("Edit accepted an unstorable date")
			}
		})
	}

	if s.Len() != 1 || len(p.saves) != 0 {
		t.Errorf("store changed: len %d, saves %d", s.Len(), len(p.saves))
	}
	if got, _ := s.Get(1); got.Text != "task" || !got.Date.Equal(base) {
		t.Errorf("task 1 changed: %+v", got)
	}

	edge := time.Date(9999, 12, 31, 23, 59, 0, 0, time.UTC)
	if _, ok := s.Add("edge", models.StatusNotStarted, models.PriorityLow, edge); !ok {
		t.Error("Add rejected the last storable year")
	}
}

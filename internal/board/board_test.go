package board

import (
	"slices"
	"testing"
	"time"

	"github.com/tgienger/kanban/internal/models"
)

var day = time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

func fixture() []models.Task {
	return []models.Task{
		{ID: 1, Status: models.StatusNotStarted, Priority: models.PriorityLow, Date: day},
		{ID: 2, Status: models.StatusInProgress, Priority: models.PriorityHigh, Date: day.Add(2 * time.Hour)},
		{ID: 3, Status: models.StatusNotStarted, Priority: models.PriorityHigh, Date: day.Add(time.Hour)},
		{ID: 4, Status: models.StatusCompleted, Priority: models.PriorityMedium, Date: day.Add(-time.Hour)},
		{ID: 5, Status: models.StatusNotStarted, Priority: models.PriorityMedium, Date: day.Add(3 * time.Hour)},
	}
}

func columnIDs(c Column) []int64 {
	var out []int64
	for _, t := range c.Tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestColumnsSort(t *testing.T) {
	tests := []struct {
		sort Sort
		want []int64 // not-started column
	}{
		{SortManual, []int64{1, 3, 5}},
		{SortDateNewest, []int64{5, 3, 1}},
		{SortDateOldest, []int64{1, 3, 5}},
		{SortPriorityHigh, []int64{3, 5, 1}},
		{SortPriorityLow, []int64{1, 5, 3}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			cols := Columns(fixture(), FilterAll, tt.sort)
			if len(cols) != 3 {
				t.Fatalf("expected 3 columns, got %d", len(cols))
			}
			if got := columnIDs(cols[0]); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColumnsFilter(t *testing.T) {
	cols := Columns(fixture(), Filter{Status: models.StatusInProgress}, SortManual)

	for _, c := range cols {
		n := len(c.Tasks)
		if c.Status == models.StatusInProgress && n != 1 {
			t.Errorf("in-progress column: got %d tasks, want 1", n)
		}
		if c.Status != models.StatusInProgress && n != 0 {
			t.Errorf("%s column should be empty under filter, got %d", c.Status, n)
		}
	}
}

func TestColumnsDoNotMutateInput(t *testing.T) {
	in := fixture()
	before := slices.Clone(in)

	Columns(in, FilterAll, SortPriorityHigh)

	if !slices.Equal(in, before) {
		t.Error("Columns reordered its input")
	}
}

func TestCycling(t *testing.T) {
	f := FilterAll
	for range Filters {
		f = f.Next()
	}
	if f != FilterAll {
		t.Errorf("filter cycle did not wrap: %v", f)
	}

	s := SortDateNewest
	for range Sorts {
		s = s.Next()
	}
	if s != SortDateNewest {
		t.Errorf("sort cycle did not wrap: %v", s)
	}
}

func TestParse(t *testing.T) {
	if f, err := ParseFilter("completed"); err != nil || f.Status != models.StatusCompleted {
		t.Errorf("ParseFilter(completed): %v, %v", f, err)
	}
	if f, err := ParseFilter("all"); err != nil || f != FilterAll {
		t.Errorf("ParseFilter(all): %v, %v", f, err)
	}
	if _, err := ParseFilter("bogus"); err == nil {
		t.Error("ParseFilter(bogus) should fail")
	}
	if s, err := ParseSort("priority-low"); err != nil || s != SortPriorityLow {
		t.Errorf("ParseSort: %v, %v", s, err)
	}
	if _, err := ParseSort("alpha"); err == nil {
		t.Error("ParseSort(alpha) should fail")
	}
}

func TestCounts(t *testing.T) {
	c := Counts(fixture())
	if c[models.StatusNotStarted] != 3 || c[models.StatusInProgress] != 1 || c[models.StatusCompleted] != 1 {
		t.Errorf("unexpected counts: %v", c)
	}
}

package knowledge

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/lumen/internal/store"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestTracker(s store.Store) *Tracker {
	return NewTracker(s, WithClock(func() time.Time { return fixedNow }))
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		before  Item
		correct bool
		want    Item
	}{
		{
			name:    "new correct becomes reviewing",
			before:  Item{Status: StatusNew},
			correct: true,
			want:    Item{Status: StatusReviewing, Strength: 20},
		},
		{
			name:    "new incorrect stays new",
			before:  Item{Status: StatusNew},
			correct: false,
			want:    Item{Status: StatusNew, FailureCount: 1},
		},
		{
			name:    "second failure is struggling",
			before:  Item{Status: StatusReviewing, Strength: 20, FailureCount: 1},
			correct: false,
			want:    Item{Status: StatusStruggling, FailureCount: 2},
		},
		{
			name:    "struggling correct recovers to reviewing",
			before:  Item{Status: StatusStruggling, Strength: 0, FailureCount: 2},
			correct: true,
			want:    Item{Status: StatusReviewing, Strength: 20, FailureCount: 1},
		},
		{
			name:    "reaching 80 is mastered",
			before:  Item{Status: StatusReviewing, Strength: 60},
			correct: true,
			want:    Item{Status: StatusMastered, Strength: 80},
		},
		{
			name:    "strength capped at 100",
			before:  Item{Status: StatusMastered, Strength: 100},
			correct: true,
			want:    Item{Status: StatusMastered, Strength: 100},
		},
		{
			name:    "mastered miss demotes to reviewing",
			before:  Item{Status: StatusMastered, Strength: 100},
			correct: false,
			want:    Item{Status: StatusReviewing, Strength: 80, FailureCount: 1},
		},
		{
			name:    "mastered with prior failure becomes struggling",
			before:  Item{Status: StatusMastered, Strength: 80, FailureCount: 1},
			correct: false,
			want:    Item{Status: StatusStruggling, Strength: 60, FailureCount: 2},
		},
		{
			name:    "strength floored at 0",
			before:  Item{Status: StatusStruggling, FailureCount: 3},
			correct: false,
			want:    Item{Status: StatusStruggling, FailureCount: 4},
		},
		{
			name:    "reviewing correct below threshold stays reviewing",
			before:  Item{Status: StatusReviewing, Strength: 20, FailureCount: 0},
			correct: true,
			want:    Item{Status: StatusReviewing, Strength: 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(tt.before, tt.correct, fixedNow)
			tt.want.LastReviewed = fixedNow
			if got != tt.want {
				t.Errorf("apply(%+v, %v) = %+v, want %+v", tt.before, tt.correct, got, tt.want)
			}
		})
	}
}

func TestTracker_Update(t *testing.T) {
	tr := newTestTracker(nil)

	item := tr.Update("Photosynthesis", true)
	if item.ID != "Photosynthesis" || item.Status != StatusReviewing || item.Strength != 20 {
		t.Fatalf("unexpected item: %+v", item)
	}
	if !item.LastReviewed.Equal(fixedNow) {
		t.Errorf("LastReviewed = %v, want %v", item.LastReviewed, fixedNow)
	}

	for range 3 {
		item = tr.Update("Photosynthesis", true)
	}
	if item.Status != StatusMastered {
		t.Errorf("after 4 correct answers status = %s, want mastered", item.Status)
	}

	got, ok := tr.Get("Photosynthesis")
	if !ok || got != item {
		t.Errorf("Get = %+v, %v", got, ok)
	}
	if _, ok := tr.Get("Unknown"); ok {
		t.Error("Get of unknown concept should miss")
	}
}

func TestTracker_GraphIsCopy(t *testing.T) {
	tr := newTestTracker(nil)
	tr.Update("Cells", true)

	g := tr.Graph()
	delete(g, "Cells")
	if tr.Len() != 1 {
		t.Fatal("mutating the returned graph changed the tracker")
	}
}

func TestTracker_ConcurrentUpdates(t *testing.T) {
	tr := newTestTracker(nil)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Update(fmt.Sprintf("concept-%d", i%5), true)
		}()
	}
	wg.Wait()

	if tr.Len() != 5 {
		t.Fatalf("expected 5 concepts, got %d", tr.Len())
	}
	for id, item := range tr.Graph() {
		if item.Strength != 100 || item.Status != StatusMastered {
			t.Errorf("%s: %+v, want strength 100 mastered", id, item)
		}
	}
}

func TestTracker_ByStatus(t *testing.T) {
	tr := newTestTracker(nil)
	tr.Update("b-reviewing", true)
	tr.Update("a-new", false)
	tr.Update("struggle", false)
	tr.Update("struggle", false)
	for range 4 {
		tr.Update("master", true)
	}

	g := tr.ByStatus()
	if len(g.Struggling) != 1 || g.Struggling[0].ID != "struggle" {
		t.Errorf("Struggling = %+v", g.Struggling)
	}
	if len(g.Mastered) != 1 || g.Mastered[0].ID != "master" {
		t.Errorf("Mastered = %+v", g.Mastered)
	}
	if len(g.InProgress) != 2 || g.InProgress[0].ID != "a-new" || g.InProgress[1].ID != "b-reviewing" {
		t.Errorf("InProgress = %+v", g.InProgress)
	}
}

func TestTracker_SaveLoadReset(t *testing.T) {
	ctx := t.Context()
	s := store.NewMemory()

	tr := newTestTracker(s)
	tr.Update("Tides", true)
	tr.Update("Moon", false)
	if err := tr.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := newTestTracker(s)
	if err := loaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	item, ok := loaded.Get("Tides")
	if !ok || item.Strength != 20 || !item.LastReviewed.Equal(fixedNow) {
		t.Fatalf("loaded item = %+v, %v", item, ok)
	}

	if err := loaded.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if loaded.Len() != 0 {
		t.Error("Reset left concepts in memory")
	}
	if _, err := s.Get(ctx, store.KeyKnowledgeGraph); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Reset left stored graph: %v", err)
	}
}

func TestTracker_LoadCorrupt(t *testing.T) {
	ctx := t.Context()
	s := store.NewMemory()
	if err := s.Put(ctx, store.KeyKnowledgeGraph, []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	tr := newTestTracker(s)
	tr.Update("stale", true)
	if err := tr.Load(ctx); err != nil {
		t.Fatalf("Load should recover from corrupt data, got %v", err)
	}
	if tr.Len() != 0 {
		t.Errorf("expected empty graph, got %d concepts", tr.Len())
	}
	if _, err := s.Get(ctx, store.KeyKnowledgeGraph); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("corrupt key should be removed, got %v", err)
	}
}

package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/store"
)

var epoch = time.UnixMilli(1_700_000_000_000)

func lesson(title string, at time.Time) Item {
	return NewLesson(&content.Section{Title: title}, content.HighSchool, at)
}

func TestItemID(t *testing.T) {
	it := lesson("The  French\tRevolution", epoch)
	if it.ID != "1700000000000-The-French-Revolution" {
		t.Errorf("ID = %q", it.ID)
	}
	if !it.Time().Equal(epoch) {
		t.Errorf("Time = %v", it.Time())
	}
	c := NewCurriculum(&content.Curriculum{Title: "Linear Algebra"}, epoch)
	if c.Kind != KindCurriculum || c.ID != "1700000000000-Linear-Algebra" {
		t.Errorf("curriculum item = %+v", c)
	}
}

func TestInsert_DedupByTitle(t *testing.T) {
	h := New(nil, nil)
	h.Insert(lesson("Volcanoes", epoch))
	h.Insert(lesson("Glaciers", epoch.Add(time.Second)))
	h.Insert(lesson("Volcanoes", epoch.Add(2*time.Second)))

	got := h.List()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "Volcanoes" || got[0].Timestamp != epoch.Add(2*time.Second).UnixMilli() {
		t.Errorf("first = %+v, want newest Volcanoes", got[0])
	}
	if got[1].Title != "Glaciers" {
		t.Errorf("second = %q", got[1].Title)
	}
}

func TestInsert_Cap(t *testing.T) {
	h := New(nil, nil)
	for i := range MaxItems + 3 {
		h.Insert(lesson(fmt.Sprintf("Topic %d", i), epoch.Add(time.Duration(i)*time.Second)))
	}
	got := h.List()
	if len(got) != MaxItems {
		t.Fatalf("len = %d, want %d", len(got), MaxItems)
	}
	if got[0].Title != fmt.Sprintf("Topic %d", MaxItems+2) {
		t.Errorf("newest = %q", got[0].Title)
	}
	if got[MaxItems-1].Title != "Topic 3" {
		t.Errorf("oldest kept = %q", got[MaxItems-1].Title)
	}
}

func TestGet(t *testing.T) {
	h := New(nil, nil)
	it := lesson("Tides", epoch)
	h.Insert(it)
	got, ok := h.Get(it.ID)
	if !ok || got.Title != "Tides" {
		t.Errorf("Get = %+v, %v", got, ok)
	}
	if _, ok := h.Get("missing"); ok {
		t.Error("Get(missing) found an entry")
	}
}

func TestListIsCopy(t *testing.T) {
	h := New(nil, nil)
	h.Insert(lesson("Tides", epoch))
	l := h.List()
	l[0].Title = "changed"
	if h.List()[0].Title != "Tides" {
		t.Error("List exposed internal slice")
	}
}

func TestSaveLoadClear(t *testing.T) {
	ctx := t.Context()
	st := store.NewMemory()
	h := New(st, nil)
	h.Insert(lesson("Tides", epoch))
	h.Insert(NewCurriculum(&content.Curriculum{Title: "Oceans"}, epoch))
	if err := h.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	h2 := New(st, nil)
	if err := h2.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := h2.List()
	if len(got) != 2 || got[0].Kind != KindCurriculum || got[1].Lesson == nil || got[1].Difficulty != content.HighSchool {
		t.Fatalf("loaded = %+v", got)
	}

	if err := h2.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if h2.Len() != 0 {
		t.Error("Clear left entries")
	}
	if _, err := st.Get(ctx, store.KeyHistory); err != store.ErrNotFound {
		t.Errorf("stored history after clear: %v", err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	ctx := t.Context()
	st := store.NewMemory()
	if err := st.Put(ctx, store.KeyHistory, []byte(`{not json`)); err != nil {
		t.Fatal(err)
	}
	h := New(st, nil)
	if err := h.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("len = %d, want 0", h.Len())
	}
}

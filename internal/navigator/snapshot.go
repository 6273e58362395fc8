package navigator

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/store"
)

// Snapshot is the serializable navigator state.
type Snapshot struct {
	Modules []content.Curriculum `json:"modules"`
	Module  int                  `json:"moduleIndex"`
	Chapter int                  `json:"chapterIndex"`
	Section int                  `json:"sectionIndex"`
	Topic   string               `json:"topic"`
}

// positionKeys are every key the navigator persists.
var positionKeys = []string{
	store.KeyCurriculum,
	store.KeyChapterIndex,
	store.KeySectionIndex,
	store.KeyArticleModules,
	store.KeyModuleIndex,
}

// Snapshot captures the current state. ok is false when inactive.
func (n *Navigator) Snapshot() (Snapshot, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.modules == nil {
		return Snapshot{}, false
	}
	return Snapshot{
		Modules: slices.Clone(n.modules),
		Module:  n.module,
		Chapter: n.chapter,
		Section: n.section,
		Topic:   n.topic,
	}, true
}

// Restore replaces the state with snap after validating its indices.
// Outstanding module fetches become stale.
func (n *Navigator) Restore(snap Snapshot) error {
	if snap.Module < 0 || snap.Module >= len(snap.Modules) ||
		!hasSection(&snap.Modules[snap.Module], snap.Chapter, snap.Section) {
		return fmt.Errorf("%w: module %d chapter %d section %d",
			ErrInvalidPosition, snap.Module, snap.Chapter, snap.Section)
	}
	if err := checkModules(snap.Modules); err != nil {
		return err
	}
	topic := snap.Topic
	if topic == "" {
		topic = TopicFromModule(snap.Modules[snap.Module].Title)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen.Cancel()
	n.modules = slices.Clone(snap.Modules)
	n.module, n.chapter, n.section = snap.Module, snap.Chapter, snap.Section
	n.topic = topic
	return nil
}

// Save persists the current position. Article modules are stored under
// their own keys; a single curriculum under the curriculum key. Saving an
// inactive navigator clears the stored position.
func (n *Navigator) Save(ctx context.Context) error {
	if n.store == nil {
		return nil
	}
	snap, ok := n.Snapshot()
	if !ok {
		return n.Clear(ctx)
	}

	var stale []string
	if len(snap.Modules) > 1 {
		if err := store.SaveJSON(ctx, n.store, store.KeyArticleModules, snap.Modules); err != nil {
			return err
		}
		if err := store.SaveJSON(ctx, n.store, store.KeyModuleIndex, snap.Module); err != nil {
			return err
		}
		stale = []string{store.KeyCurriculum}
	} else {
		if err := store.SaveJSON(ctx, n.store, store.KeyCurriculum, snap.Modules[0]); err != nil {
			return err
		}
		stale = []string{store.KeyArticleModules, store.KeyModuleIndex}
	}
	if err := store.SaveJSON(ctx, n.store, store.KeyChapterIndex, snap.Chapter); err != nil {
		return err
	}
	if err := store.SaveJSON(ctx, n.store, store.KeySectionIndex, snap.Section); err != nil {
		return err
	}
	return n.store.Delete(ctx, stale...)
}

// Load restores a saved position. Missing state leaves the navigator
// inactive and returns nil. Corrupt or out-of-range state is removed from
// the store and also leaves it inactive.
func (n *Navigator) Load(ctx context.Context) error {
	if n.store == nil {
		return nil
	}
	snap, err := n.load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		n.deactivate()
		return nil
	}
	if err == nil {
		err = n.Restore(snap)
	}
	if err != nil {
		n.log.Warn("discarding saved curriculum position", "error", err)
		n.deactivate()
		return n.store.Delete(ctx, positionKeys...)
	}
	return nil
}

func (n *Navigator) load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	chapter, err := store.LoadJSON[int](ctx, n.store, store.KeyChapterIndex)
	if err != nil {
		return snap, err
	}
	section, err := store.LoadJSON[int](ctx, n.store, store.KeySectionIndex)
	if err != nil {
		return snap, err
	}
	snap.Chapter, snap.Section = chapter, section

	modules, err := store.LoadJSON[[]content.Curriculum](ctx, n.store, store.KeyArticleModules)
	switch {
	case err == nil:
		snap.Modules = modules
		snap.Module, err = store.LoadJSON[int](ctx, n.store, store.KeyModuleIndex)
		if errors.Is(err, store.ErrNotFound) {
			err = nil
		}
		return snap, err
	case !errors.Is(err, store.ErrNotFound):
		return snap, err
	}

	cur, err := store.LoadJSON[content.Curriculum](ctx, n.store, store.KeyCurriculum)
	if err != nil {
		return snap, err
	}
	snap.Modules = []content.Curriculum{cur}
	snap.Topic = cur.Title
	return snap, nil
}

// Clear forgets the position and removes it from the store.
func (n *Navigator) Clear(ctx context.Context) error {
	n.deactivate()
	if n.store == nil {
		return nil
	}
	return n.store.Delete(ctx, positionKeys...)
}

func (n *Navigator) deactivate() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen.Cancel()
	n.modules = nil
	n.module, n.chapter, n.section = 0, 0, 0
	n.topic = ""
}

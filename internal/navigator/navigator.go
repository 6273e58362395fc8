// Package navigator walks a learner through a curriculum, or a sequence of
// curriculum modules cut from an article, one section at a time.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/abhisek/lumen/internal/content"
	"github.com/abhisek/lumen/internal/logger"
	"github.com/abhisek/lumen/internal/store"
	"github.com/abhisek/lumen/internal/tutor"
)

var (
	// ErrInvalidPosition is returned when a jump or restore names a
	// module, chapter or section that does not exist. State is unchanged.
	ErrInvalidPosition = errors.New("navigator: invalid position")

	// ErrStaleResult is returned when a module arrives after the
	// navigator was reset or reloaded. The result is discarded.
	ErrStaleResult = errors.New("navigator: stale module result")

	// ErrInactive is returned when no curriculum is loaded.
	ErrInactive = errors.New("navigator: no curriculum loaded")
)

// Advance is the outcome of AdvanceSection.
type Advance int

const (
	NextSection Advance = iota // Moved within the chapter
	NextChapter                // Moved to the first section of the next chapter
	NextModule                 // Moved to the first section of the next module
	Complete                   // Nothing left; position unchanged
)

func (a Advance) String() string {
	switch a {
	case NextSection:
		return "next-section"
	case NextChapter:
		return "next-chapter"
	case NextModule:
		return "next-module"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// ModuleSource fills in a module that has no chapters yet. topic is the
// source topic the modules were cut from.
type ModuleSource interface {
	FetchModule(ctx context.Context, topic string, index int, outline content.Curriculum) (*content.Curriculum, error)
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the navigator logger.
func WithLogger(l *logger.Logger) Option {
	return func(n *Navigator) { n.log = l }
}

// Navigator holds the learner's position. It is safe for concurrent use.
type Navigator struct {
	store  store.Store
	source ModuleSource
	log    *logger.Logger
	gen    tutor.Generation

	mu      sync.Mutex
	modules []content.Curriculum
	module  int
	chapter int
	section int
	topic   string
}

// New returns an inactive navigator. st and src may be nil when
// persistence or module fetching is not needed.
func New(st store.Store, src ModuleSource, opts ...Option) *Navigator {
	n := &Navigator{
		store:  st,
		source: src,
		log:    logger.Nop(),
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Start loads modules and moves to the first section. A single curriculum
// is passed as one module.
func (n *Navigator) Start(modules []content.Curriculum, topic string) error {
	if len(modules) == 0 || !hasSection(&modules[0], 0, 0) {
		return ErrInvalidPosition
	}
	if err := checkModules(modules); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen.Cancel()
	n.modules = slices.Clone(modules)
	n.module, n.chapter, n.section = 0, 0, 0
	n.topic = topic
	return nil
}

// Active reports whether a curriculum is loaded.
func (n *Navigator) Active() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.modules != nil
}

// Position is a view of where the learner is. Curriculum and Current
// point into navigator state and must not be modified.
type Position struct {
	Module  int
	Chapter int
	Section int
	Topic   string

	Curriculum *content.Curriculum
	Current    *content.Section
}

// Position returns the current position. ok is false when inactive.
func (n *Navigator) Position() (Position, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.modules == nil {
		return Position{}, false
	}
	return Position{
		Module:     n.module,
		Chapter:    n.chapter,
		Section:    n.section,
		Topic:      n.topic,
		Curriculum: &n.modules[n.module],
		Current:    n.current(),
	}, true
}

// Section returns the materialized current section, or nil when inactive.
func (n *Navigator) Section() *content.Section {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.modules == nil {
		return nil
	}
	return n.current()
}

func (n *Navigator) current() *content.Section {
	return &n.modules[n.module].Chapters[n.chapter].Sections[n.section]
}

// checkModules rejects modules whose chapters cannot all be walked.
// Outline modules without chapters are fetched later and checked then.
func checkModules(modules []content.Curriculum) error {
	for i := range modules {
		if len(modules[i].Chapters) == 0 {
			continue
		}
		if err := modules[i].Validate(); err != nil {
			return fmt.Errorf("%w: module %d: %v", ErrInvalidPosition, i+1, err)
		}
	}
	return nil
}

func hasSection(c *content.Curriculum, chapter, section int) bool {
	if chapter < 0 || chapter >= len(c.Chapters) {
		return false
	}
	return section >= 0 && section < len(c.Chapters[chapter].Sections)
}

// AdvanceSection moves to the next section, chapter or module. When the
// next module is only an outline it is fetched from the ModuleSource; a
// fetch that is overtaken by Start, Restore, Load or Clear returns
// ErrStaleResult and changes nothing.
func (n *Navigator) AdvanceSection(ctx context.Context) (Advance, error) {
	n.mu.Lock()
	if n.modules == nil {
		n.mu.Unlock()
		return Complete, ErrInactive
	}
	cur := &n.modules[n.module]
	if n.section+1 < len(cur.Chapters[n.chapter].Sections) {
		n.section++
		n.mu.Unlock()
		return NextSection, nil
	}
	if n.chapter+1 < len(cur.Chapters) {
		n.chapter++
		n.section = 0
		n.mu.Unlock()
		return NextChapter, nil
	}
	if n.module+1 >= len(n.modules) {
		n.mu.Unlock()
		return Complete, nil
	}

	next := n.module + 1
	if hasSection(&n.modules[next], 0, 0) {
		n.module, n.chapter, n.section = next, 0, 0
		n.mu.Unlock()
		return NextModule, nil
	}
	if n.source == nil {
		n.mu.Unlock()
		return Complete, fmt.Errorf("module %d has no content and no source to fetch it", next+1)
	}
	outline := n.modules[next]
	topic := n.topic
	id := n.gen.Begin()
	n.mu.Unlock()

	mod, err := n.fetchModule(ctx, topic, next, outline)
	if err != nil {
		return Complete, err
	}
	if err := n.commitModule(id, next, mod); err != nil {
		return Complete, err
	}
	return NextModule, nil
}

func (n *Navigator) fetchModule(ctx context.Context, topic string, i int, outline content.Curriculum) (*content.Curriculum, error) {
	mod, err := n.source.FetchModule(ctx, topic, i, outline)
	if err != nil {
		return nil, fmt.Errorf("fetch module %d: %w", i+1, err)
	}
	if err := mod.Validate(); err != nil {
		return nil, fmt.Errorf("fetch module %d: %w", i+1, err)
	}
	return mod, nil
}

// commitModule installs a fetched module and moves to its first section
// unless generation id has been overtaken.
func (n *Navigator) commitModule(id uint64, i int, mod *content.Curriculum) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.gen.Current(id) || n.modules == nil || i >= len(n.modules) {
		n.log.Debug("discarding stale module", "module", i+1, "title", mod.Title)
		return ErrStaleResult
	}
	n.modules[i] = *mod
	n.module, n.chapter, n.section = i, 0, 0
	return nil
}

// JumpToModule moves to the first section of module i, fetching it from
// the ModuleSource when it is only an outline.
func (n *Navigator) JumpToModule(ctx context.Context, i int) error {
	n.mu.Lock()
	if n.modules == nil {
		n.mu.Unlock()
		return ErrInactive
	}
	if i < 0 || i >= len(n.modules) {
		n.mu.Unlock()
		return fmt.Errorf("%w: module %d", ErrInvalidPosition, i)
	}
	if hasSection(&n.modules[i], 0, 0) {
		n.module, n.chapter, n.section = i, 0, 0
		n.mu.Unlock()
		return nil
	}
	if n.source == nil {
		n.mu.Unlock()
		return fmt.Errorf("%w: module %d has no content", ErrInvalidPosition, i)
	}
	outline := n.modules[i]
	topic := n.topic
	id := n.gen.Begin()
	n.mu.Unlock()

	mod, err := n.fetchModule(ctx, topic, i, outline)
	if err != nil {
		return err
	}
	return n.commitModule(id, i, mod)
}

// ResetToSection moves to a section of the current module.
func (n *Navigator) ResetToSection(chapter, section int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.modules == nil {
		return ErrInactive
	}
	if !hasSection(&n.modules[n.module], chapter, section) {
		return fmt.Errorf("%w: chapter %d section %d", ErrInvalidPosition, chapter, section)
	}
	n.chapter, n.section = chapter, section
	return nil
}

// IsLastSection reports whether the current section ends the current
// module.
func (n *Navigator) IsLastSection() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.modules == nil {
		return false
	}
	cur := &n.modules[n.module]
	return n.chapter == len(cur.Chapters)-1 &&
		n.section == len(cur.Chapters[n.chapter].Sections)-1
}

// HasNextModule reports whether another module follows the current one.
func (n *Navigator) HasNextModule() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.modules != nil && n.module+1 < len(n.modules)
}

// Progress counts position within the current module, 1-based.
type Progress struct {
	Module   int
	Modules  int
	Chapter  int
	Chapters int
	Section  int
	Sections int
}

func (p Progress) String() string {
	s := fmt.Sprintf("Chapter %d/%d, section %d/%d", p.Chapter, p.Chapters, p.Section, p.Sections)
	if p.Modules > 1 {
		s = fmt.Sprintf("Module %d/%d, ", p.Module, p.Modules) + s
	}
	return s
}

// Progress returns the current counts. The zero value is returned when
// inactive.
func (n *Navigator) Progress() Progress {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.modules == nil {
		return Progress{}
	}
	cur := &n.modules[n.module]
	return Progress{
		Module:   n.module + 1,
		Modules:  len(n.modules),
		Chapter:  n.chapter + 1,
		Chapters: len(cur.Chapters),
		Section:  n.section + 1,
		Sections: len(cur.Chapters[n.chapter].Sections),
	}
}

// ModuleSummary describes the current module, shown when the learner
// reaches its end.
type ModuleSummary struct {
	Number    int
	Total     int
	Title     string
	Summary   string
	KeyPoints []string
}

// ModuleSummary returns the summary of the current module.
func (n *Navigator) ModuleSummary() (ModuleSummary, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.modules == nil {
		return ModuleSummary{}, false
	}
	cur := &n.modules[n.module]
	return ModuleSummary{
		Number:    n.module + 1,
		Total:     len(n.modules),
		Title:     cur.Title,
		Summary:   cur.Summary,
		KeyPoints: cur.KeyPoints,
	}, true
}

var partSuffix = regexp.MustCompile(` - Part \d+$`)

// TopicFromModule strips the " - Part N" suffix article modules carry.
func TopicFromModule(title string) string {
	return partSuffix.ReplaceAllString(title, "")
}

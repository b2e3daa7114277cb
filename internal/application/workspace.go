package application

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"cdrlink/internal/domain"
	"cdrlink/internal/filter"
	"cdrlink/internal/layout"
)

// Options configure a Workspace
type Options struct {
	Layout    layout.Config
	Zoom      layout.ZoomLimits
	Filter    filter.Spec
	MinWeight float64
	MaxWeight float64
	Workers   int
	Palette   int
	Location  *time.Location
	Clock     func() time.Time
}

// DefaultOptions mirrors the configuration defaults
func DefaultOptions() Options {
	return Options{
		Layout:    layout.DefaultConfig(),
		Zoom:      layout.DefaultZoomLimits(),
		Filter:    filter.DefaultSpec(),
		MinWeight: 1,
		MaxWeight: 5,
		Workers:   4,
		Palette:   8,
		Location:  time.Local,
		Clock:     time.Now,
	}
}

// Workspace is the single owner of graph state. Mutations take mu briefly;
// filter jobs work on copies taken at submission; the visible view is
// replaced wholesale through an atomic pointer; positions live in the layout
// engine, which has its own lock, so drags never wait on a job.
type Workspace struct {
	mu       sync.RWMutex
	graph    *domain.Graph
	registry *domain.Registry
	spec     filter.Spec

	vmu      sync.Mutex
	viewport layout.Viewport

	layout  *layout.Engine
	current atomic.Pointer[filter.FilteredGraph]
	latest  atomic.Uint64
	applyMu sync.Mutex

	opts Options
	log  *zap.Logger
}

func NewWorkspace(opts Options, log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultOptions()
	if opts.Clock == nil {
		opts.Clock = def.Clock
	}
	if opts.Location == nil {
		opts.Location = def.Location
	}
	if opts.Palette <= 0 {
		opts.Palette = def.Palette
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Zoom == (layout.ZoomLimits{}) {
		opts.Zoom = def.Zoom
	}
	if err := opts.Filter.Validate(); err != nil {
		log.Warn("invalid default filter, using built-in", zap.Error(err))
		opts.Filter = def.Filter
	}

	w := &Workspace{
		graph:    domain.NewGraph(),
		registry: domain.NewRegistry(),
		spec:     opts.Filter,
		viewport: layout.NewViewport(opts.Zoom),
		layout:   layout.NewEngine(opts.Layout, log.Named("layout")),
		opts:     opts,
		log:      log,
	}
	empty, _ := filter.Apply(domain.NewGraph(), nil, opts.Filter)
	w.current.Store(empty)
	return w
}

// Current returns the most recently applied view
func (w *Workspace) Current() *filter.FilteredGraph {
	return w.current.Load()
}

// Spec returns the most recently requested filter
func (w *Workspace) Spec() filter.Spec {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.spec
}

// Phones lists every phone in the unfiltered graph
func (w *Workspace) Phones() []domain.Phone {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.graph.Phones()
}

// Pairs lists every edge in the unfiltered graph
func (w *Workspace) Pairs() []domain.PairKey {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.graph.Pairs()
}

// PhoneInfo is the detail card of a phone
type PhoneInfo struct {
	Phone     domain.Phone
	Stats     domain.PhoneStats
	Owner     *domain.Person
	Placement layout.Placement
	Visible   bool
}

func (w *Workspace) PhoneInfo(id domain.PhoneID) (*PhoneInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.graph.Phone(id)
	if !ok {
		return nil, &domain.NotFoundError{Kind: "phone", ID: string(id)}
	}
	stats, err := w.graph.PhoneStats(id)
	if err != nil {
		return nil, err
	}
	info := &PhoneInfo{Phone: p, Stats: stats, Visible: w.Current().HasNode(id)}
	if owner, ok := w.registry.OwnerOf(id); ok {
		info.Owner = &owner
	}
	info.Placement, _ = w.layout.Placement(id)
	return info, nil
}

// EdgeStats aggregates a pair over the unfiltered graph
func (w *Workspace) EdgeStats(pair domain.PairKey) (domain.Aggregate, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	agg, ok := w.graph.EdgeStats(pair)
	if !ok {
		return domain.Aggregate{}, &domain.NotFoundError{Kind: "edge", ID: pair.String()}
	}
	return agg, nil
}

// Persons lists persons in creation order
func (w *Workspace) Persons() []domain.Person {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.registry.Persons()
}

// ResolvePerson finds a person by ID, then by name
func (w *Workspace) ResolvePerson(ref string) (domain.Person, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if p, ok := w.registry.Person(domain.PersonID(ref)); ok {
		return p, nil
	}
	if p, ok := w.registry.FindByName(ref); ok {
		return p, nil
	}
	return domain.Person{}, &domain.NotFoundError{Kind: "person", ID: ref}
}

// Totals summarizes the unfiltered graph
func (w *Workspace) Totals() domain.Summary {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return domain.Summarize(w.graph, w.registry.Len())
}

package hint

import (
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/callhint/callhint/render"
	"github.com/callhint/callhint/sig"
	"github.com/callhint/callhint/typeref"
)

// Entry is one registered hint: a compiled signature paired with the
// renderer to fire when it matches. Entries are immutable after insertion.
type Entry struct {
	ID        uuid.UUID
	Signature *sig.Signature
	Renderer  render.Renderer
	Options   render.Options
}

// Registry is an append-only store of hint entries. It is populated
// predominantly during single-threaded initialization, but registration
// and notification are safe to interleave: Notify matches against a
// snapshot taken under a read lock and never holds the lock while
// renderers run.
type Registry struct {
	mu       sync.RWMutex
	entries  []*Entry
	universe typeref.Universe
	strategy KeywordStrategy
	logger   *zap.Logger
}

// Option configures a Registry at construction time
type Option func(*Registry)

// WithUniverse sets the type universe signatures are compiled against
func WithUniverse(u typeref.Universe) Option {
	return func(r *Registry) { r.universe = u }
}

// WithKeywordStrategy fixes the keyword comparison for this registry.
// This is a deployment decision, made once, never per call.
func WithKeywordStrategy(ks KeywordStrategy) Option {
	return func(r *Registry) { r.strategy = ks }
}

// WithLogger attaches a logger for registration and match diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// New creates a Registry. Defaults: the process-wide type universe, the
// type-based keyword strategy, and no logging.
func New(opts ...Option) *Registry {
	r := &Registry{
		universe: typeref.Default(),
		strategy: TypeStrategy,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Universe returns the type universe this registry compiles against
func (r *Registry) Universe() typeref.Universe {
	return r.universe
}

// Strategy returns the keyword comparison strategy of this registry
func (r *Registry) Strategy() KeywordStrategy {
	return r.strategy
}

// Register parses and compiles a signature pattern and appends a hint
// entry. Registration either fully succeeds or has no effect; a
// malformed pattern surfaces a *sig.SignatureError immediately.
// Registering the same pattern twice produces two entries and both fire.
func (r *Registry) Register(pattern string, renderer render.Renderer, opts render.Options) (*Entry, error) {
	signature, err := sig.Parse(pattern, r.universe)
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:        uuid.New(),
		Signature: signature,
		Renderer:  renderer,
		Options:   opts,
	}

	r.mu.Lock()
	r.entries = append(r.entries, entry)
	total := len(r.entries)
	r.mu.Unlock()

	r.logger.Debug("registered hint",
		zap.String("id", entry.ID.String()),
		zap.String("pattern", signature.Pattern()),
		zap.String("function", signature.FuncName()),
		zap.Int("entries", total))

	return entry, nil
}

// RegisterText registers a fixed hint message for a pattern
func (r *Registry) RegisterText(pattern, message string, opts render.Options) (*Entry, error) {
	return r.Register(pattern, render.Text(message), opts)
}

// Notify evaluates a failed invocation against every registered entry in
// registration order and fires the renderer of each match against the
// sink. All matches fire, not just the first; independently registered
// hints for overlapping signatures all print. Returns the number of
// entries that fired. When nothing matches, nothing is written.
func (r *Registry) Notify(inv Invocation, sink io.Writer) int {
	r.mu.RLock()
	snapshot := make([]*Entry, len(r.entries))
	copy(snapshot, r.entries)
	strategy := r.strategy
	r.mu.RUnlock()

	fired := 0
	for _, entry := range snapshot {
		if Matches(entry.Signature, inv, strategy) {
			entry.Renderer.Render(sink, entry.Options)
			fired++
		}
	}

	r.logger.Debug("notified",
		zap.Int("entries", len(snapshot)),
		zap.Int("fired", fired))

	return fired
}

// Entries returns a snapshot of the registered entries in registration
// order. The returned slice is a copy; entries themselves are immutable.
func (r *Registry) Entries() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make([]*Entry, len(r.entries))
	copy(snapshot, r.entries)
	return snapshot
}

// EntriesFor returns the entries registered against a function name
func (r *Registry) EntriesFor(function string) []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*Entry
	for _, entry := range r.entries {
		if entry.Signature.FuncName() == function {
			result = append(result, entry)
		}
	}
	return result
}

// Len returns the number of registered entries
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Reset clears the registry (used for testing)
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// Global registry instance, for the load-time side-effect registration
// pattern: packages register hints in init() and hosts notify the
// default registry on dispatch failures.
var defaultRegistry = New()

// Default returns the process-wide registry
func Default() *Registry {
	return defaultRegistry
}

// Register appends a hint entry to the default registry
func Register(pattern string, renderer render.Renderer, opts render.Options) (*Entry, error) {
	return defaultRegistry.Register(pattern, renderer, opts)
}

// Notify evaluates a failed invocation against the default registry
func Notify(inv Invocation, sink io.Writer) int {
	return defaultRegistry.Notify(inv, sink)
}

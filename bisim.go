package bisim

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/bisim/internal/runtime"
	"github.com/aretw0/bisim/pkg/adapters/file"
	"github.com/aretw0/bisim/pkg/domain"
	"github.com/aretw0/bisim/pkg/ports"
	"github.com/google/uuid"
)

// Engine is the high-level entry point for the bisim library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	loader  ports.GraphLoader
	store   ports.ResultStore
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
	trace   bool
	now     func() time.Time
	Name    string
}

var _ ports.Refiner = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLoader injects a custom GraphLoader, bypassing the default file loader.
func WithLoader(l ports.GraphLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithStore persists every result in the given store.
func WithStore(s ports.ResultStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTrace keeps per-state signatures of every round in the result.
func WithTrace(enabled bool) Option {
	return func(e *Engine) {
		e.trace = enabled
	}
}

// New initializes a new bisim Engine.
// By default, it reads graph documents from the directory (or single file) at path.
// If WithLoader option is provided, path can be empty.
func New(path string, opts ...Option) (*Engine, error) {
	eng := &Engine{now: time.Now}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.loader == nil {
		if path == "" {
			return nil, fmt.Errorf("path is required when no custom loader is provided")
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		eng.Name = filepath.Base(absPath)
		eng.loader = file.NewLoader(absPath)
	} else if path != "" {
		eng.Name = filepath.Base(path)
	}

	// Never hand a nil logger to the runtime
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("source", eng.Name)
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithTrace(eng.trace),
	)

	return eng, nil
}

// Refine computes the coarsest stable refinement of initial (nil: a single block).
// The result is persisted when a store is configured.
func (e *Engine) Refine(ctx context.Context, ts *domain.TransitionSystem, initial domain.Partitioning) (*domain.Result, error) {
	return e.refine(ctx, "", ts, initial)
}

// RefineNamed is Refine with the graph name recorded on the result before it is persisted.
func (e *Engine) RefineNamed(ctx context.Context, graph string, ts *domain.TransitionSystem, initial domain.Partitioning) (*domain.Result, error) {
	return e.refine(ctx, graph, ts, initial)
}

// RefineGraph loads a named graph, with its declared initial partition if the loader
// provides one, and refines it.
func (e *Engine) RefineGraph(ctx context.Context, name string) (*domain.Result, error) {
	ts, initial, err := e.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.refine(ctx, name, ts, initial)
}

// Equivalent reports whether a and b end up in the same class of ts, starting from a
// single block. The returned result holds the full partition.
func (e *Engine) Equivalent(ctx context.Context, ts *domain.TransitionSystem, a, b domain.State) (bool, *domain.Result, error) {
	return e.equivalent(ctx, "", ts, nil, a, b)
}

// EquivalentGraph is Equivalent over a named graph, starting from its declared
// initial partition as RefineGraph does.
func (e *Engine) EquivalentGraph(ctx context.Context, name string, a, b domain.State) (bool, *domain.Result, error) {
	ts, initial, err := e.load(ctx, name)
	if err != nil {
		return false, nil, err
	}
	return e.equivalent(ctx, name, ts, initial, a, b)
}

func (e *Engine) equivalent(ctx context.Context, graph string, ts *domain.TransitionSystem, initial domain.Partitioning, a, b domain.State) (bool, *domain.Result, error) {
	for _, s := range []domain.State{a, b} {
		if ts == nil || !ts.HasState(s) {
			return false, nil, &domain.StateError{State: s, Err: domain.ErrUnknownState}
		}
	}

	result, err := e.refine(ctx, graph, ts, initial)
	if err != nil {
		return false, nil, err
	}
	return result.Partition[a] == result.Partition[b], result, nil
}

func (e *Engine) load(ctx context.Context, name string) (*domain.TransitionSystem, domain.Partitioning, error) {
	ts, err := e.loader.Load(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	var initial domain.Partitioning
	if ip, ok := e.loader.(ports.InitialPartitioner); ok {
		initial, err = ip.Initial(ctx, name)
		if err != nil {
			return nil, nil, err
		}
	}
	return ts, initial, nil
}

// Graphs lists the graphs available from the loader.
func (e *Engine) Graphs(ctx context.Context) ([]string, error) {
	return e.loader.List(ctx)
}

// Graph loads a named graph.
func (e *Engine) Graph(ctx context.Context, name string) (*domain.TransitionSystem, error) {
	return e.loader.Load(ctx, name)
}

// Result retrieves a stored result.
func (e *Engine) Result(ctx context.Context, id string) (*domain.Result, error) {
	if e.store == nil {
		return nil, domain.ErrResultNotFound
	}
	return e.store.Load(ctx, id)
}

// Loader returns the underlying GraphLoader.
func (e *Engine) Loader() ports.GraphLoader {
	return e.loader
}

// Store returns the configured ResultStore, or nil.
func (e *Engine) Store() ports.ResultStore {
	return e.store
}

func (e *Engine) refine(ctx context.Context, graph string, ts *domain.TransitionSystem, initial domain.Partitioning) (*domain.Result, error) {
	logger := e.logger
	if graph != "" {
		logger = logger.With("graph", graph)
	}

	out, err := e.runtime.Refine(ctx, ts, initial)
	if err != nil {
		logger.Error("refinement failed", "err", err)
		return nil, err
	}

	result := &domain.Result{
		ID:        uuid.NewString(),
		Graph:     graph,
		Partition: out.Partition,
		Rounds:    out.Rounds,
		Splits:    out.Splits,
		CreatedAt: e.now().UTC(),
		Trace:     out.Trace,
	}

	if e.store != nil {
		if err := e.store.Save(ctx, result); err != nil {
			return nil, fmt.Errorf("failed to save result: %w", err)
		}
		logger.Debug("result saved", "id", result.ID)
	}

	return result, nil
}

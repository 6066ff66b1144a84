package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/bisim/pkg/domain"
)

// Engine is the partition-refinement driver.
// It holds no per-run state and may be reused across runs.
type Engine struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	pick   picker
	trace  bool
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger. Round diagnostics are emitted at debug level.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithTrace keeps the per-state signatures of every round in the Outcome.
func WithTrace(enabled bool) EngineOption {
	return func(e *Engine) {
		e.trace = enabled
	}
}

// NewEngine creates a refinement engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		pick:   lifo,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RoundResult is the outcome of a single round.
type RoundResult struct {
	Partition  domain.Partitioning
	Conflicts  []domain.Conflict
	Counter    domain.PartitionID
	Signatures map[domain.State]domain.Signature
}

// Outcome is the result of a refinement run.
type Outcome struct {
	// Partition is the coarsest stable refinement of the initial partitioning.
	Partition domain.Partitioning
	// Rounds counts the rounds that split at least one block.
	Rounds int
	// Splits counts the blocks allocated over the whole run.
	Splits int
	// Trace holds every evaluated round, including the final stable one.
	Trace []domain.RoundTrace
}

// Round runs one refinement round over a snapshot of p.
// Signatures and aggregates are computed in full before any state is reassigned.
func (e *Engine) Round(ts *domain.TransitionSystem, p domain.Partitioning, counter domain.PartitionID) (*RoundResult, error) {
	order := ts.States()

	sigs := make(map[domain.State]domain.Signature, len(order))
	for _, s := range order {
		sig, err := signature(s, ts, p, e.pick)
		if err != nil {
			return nil, err
		}
		sigs[s] = sig
	}

	blocks := Aggregate(sigs, p)
	next, conflicts, counter := Split(order, p, sigs, blocks, counter)

	return &RoundResult{
		Partition:  next,
		Conflicts:  conflicts,
		Counter:    counter,
		Signatures: sigs,
	}, nil
}

// Refine computes the coarsest stable refinement of initial with respect to branching
// bisimilarity. A nil initial places every state in block 0.
//
// ctx is only handed to the lifecycle hooks; refinement runs to completion.
func (e *Engine) Refine(ctx context.Context, ts *domain.TransitionSystem, initial domain.Partitioning) (*Outcome, error) {
	if ts == nil {
		ts = domain.NewTransitionSystem()
	}
	if err := ts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transition system: %w", err)
	}

	p, err := e.initialPartition(ts, initial)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	counter := p.MaxID()
	out := &Outcome{}

	for round := 1; ; round++ {
		blocks := p.NumBlocks()
		e.emitRound(ctx, e.hooks.OnRoundStart, domain.EventRoundStart, round, blocks, 0)

		res, err := e.Round(ts, p, counter)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}

		out.Trace = append(out.Trace, e.traceRound(round, blocks, res))
		e.logRound(round, p, res)

		for _, c := range res.Conflicts {
			if e.hooks.OnSplit != nil {
				e.hooks.OnSplit(ctx, &domain.SplitEvent{
					EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSplit, Round: round},
					Block:     c.Block,
					Splitter:  c.Splitter,
					NewBlock:  c.NewBlock,
				})
			}
		}
		e.emitRound(ctx, e.hooks.OnRoundEnd, domain.EventRoundEnd, round, res.Partition.NumBlocks(), len(res.Conflicts))

		if len(res.Conflicts) == 0 {
			break
		}

		out.Rounds++
		out.Splits += len(res.Conflicts)
		counter = res.Counter
		p = res.Partition
	}

	out.Partition = p
	elapsed := time.Since(started)
	e.logger.Info("refinement reached fixpoint",
		"states", ts.Len(),
		"blocks", p.NumBlocks(),
		"rounds", out.Rounds,
		"splits", out.Splits,
		"duration", elapsed,
	)
	if e.hooks.OnFixpoint != nil {
		e.hooks.OnFixpoint(ctx, &domain.FixpointEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFixpoint, Round: len(out.Trace)},
			Blocks:    p.NumBlocks(),
			Splits:    out.Splits,
			Duration:  elapsed,
		})
	}

	return out, nil
}

// IsStable reports whether one more round over p splits nothing.
func (e *Engine) IsStable(ts *domain.TransitionSystem, p domain.Partitioning) (bool, error) {
	if err := p.Covers(ts); err != nil {
		return false, err
	}
	res, err := e.Round(ts, p, p.MaxID())
	if err != nil {
		return false, err
	}
	return len(res.Conflicts) == 0, nil
}

func (e *Engine) initialPartition(ts *domain.TransitionSystem, initial domain.Partitioning) (domain.Partitioning, error) {
	if initial == nil {
		return domain.NewPartitioning(ts.States(), 0), nil
	}
	if err := initial.Covers(ts); err != nil {
		return nil, fmt.Errorf("invalid initial partition: %w", err)
	}
	p := make(domain.Partitioning, ts.Len())
	for s, id := range initial {
		if !ts.HasState(s) {
			return nil, fmt.Errorf("invalid initial partition: %w", &domain.StateError{State: s, Err: domain.ErrUnknownState})
		}
		if id < 0 {
			return nil, fmt.Errorf("invalid initial partition: state %q has negative block %d", s, id)
		}
		p[s] = id
	}
	// A run allots at most one fresh id per state above the highest initial id.
	if highest := p.MaxID(); highest > domain.PartitionID(math.MaxInt-ts.Len()) {
		return nil, fmt.Errorf("invalid initial partition: block id %d leaves no room for %d new blocks", highest, ts.Len())
	}
	return p, nil
}

func (e *Engine) emitRound(ctx context.Context, hook func(context.Context, *domain.RoundEvent), typ domain.EventType, round, blocks, conflicts int) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.RoundEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ, Round: round},
		Blocks:    blocks,
		Conflicts: conflicts,
	})
}

func (e *Engine) traceRound(round, blocks int, res *RoundResult) domain.RoundTrace {
	rt := domain.RoundTrace{
		Round:     round,
		Blocks:    blocks,
		Conflicts: res.Conflicts,
	}
	if e.trace {
		rt.Signatures = make(map[domain.State][]domain.Observation, len(res.Signatures))
		for s, sig := range res.Signatures {
			rt.Signatures[s] = sig.Sorted()
		}
	}
	return rt
}

func (e *Engine) logRound(round int, p domain.Partitioning, res *RoundResult) {
	ctx := context.Background()
	if !e.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	e.logger.Debug("refinement round",
		"round", round,
		"blocks", p.NumBlocks(),
		"conflicts", len(res.Conflicts),
	)
	for _, c := range res.Conflicts {
		e.logger.Debug("block split",
			"round", round,
			"block", c.Block,
			"splitter", c.Splitter.String(),
			"new_block", c.NewBlock,
		)
	}
}

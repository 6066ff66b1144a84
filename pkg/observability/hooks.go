package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/bisim/pkg/domain"
)

// LoggingHooks returns lifecycle hooks that log every event at debug level,
// and the fixpoint at info level.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRoundStart: func(ctx context.Context, e *domain.RoundEvent) {
			logger.DebugContext(ctx, "round_start", "round", e.Round, "blocks", e.Blocks)
		},
		OnSplit: func(ctx context.Context, e *domain.SplitEvent) {
			logger.DebugContext(ctx, "split",
				"round", e.Round,
				"block", e.Block,
				"splitter", e.Splitter.String(),
				"new_block", e.NewBlock,
			)
		},
		OnRoundEnd: func(ctx context.Context, e *domain.RoundEvent) {
			logger.DebugContext(ctx, "round_end", "round", e.Round, "blocks", e.Blocks, "conflicts", e.Conflicts)
		},
		OnFixpoint: func(ctx context.Context, e *domain.FixpointEvent) {
			logger.InfoContext(ctx, "fixpoint",
				"rounds", e.Round,
				"blocks", e.Blocks,
				"splits", e.Splits,
				"duration", e.Duration,
			)
		},
	}
}

// Combine fans every event out to each hook set in order. Nil callbacks are skipped.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRoundStart: func(ctx context.Context, e *domain.RoundEvent) {
			for _, h := range sets {
				if h.OnRoundStart != nil {
					h.OnRoundStart(ctx, e)
				}
			}
		},
		OnSplit: func(ctx context.Context, e *domain.SplitEvent) {
			for _, h := range sets {
				if h.OnSplit != nil {
					h.OnSplit(ctx, e)
				}
			}
		},
		OnRoundEnd: func(ctx context.Context, e *domain.RoundEvent) {
			for _, h := range sets {
				if h.OnRoundEnd != nil {
					h.OnRoundEnd(ctx, e)
				}
			}
		},
		OnFixpoint: func(ctx context.Context, e *domain.FixpointEvent) {
			for _, h := range sets {
				if h.OnFixpoint != nil {
					h.OnFixpoint(ctx, e)
				}
			}
		},
	}
}

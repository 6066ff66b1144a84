package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRoundStart EventType = "round_start"
	EventSplit      EventType = "split"
	EventRoundEnd   EventType = "round_end"
	EventFixpoint   EventType = "fixpoint"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Round     int       `json:"round"`
}

// RoundEvent marks the start or end of a refinement round.
type RoundEvent struct {
	EventBase
	Blocks    int `json:"blocks"`
	Conflicts int `json:"conflicts,omitempty"`
}

// SplitEvent is emitted when a block is split on a contested observation.
type SplitEvent struct {
	EventBase
	Block    PartitionID `json:"block"`
	Splitter Observation `json:"splitter"`
	NewBlock PartitionID `json:"new_block"`
}

// FixpointEvent is emitted once the partitioning is stable.
type FixpointEvent struct {
	EventBase
	Blocks   int           `json:"blocks"`
	Splits   int           `json:"splits"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
// Any hook may be nil.
type LifecycleHooks struct {
	OnRoundStart func(context.Context, *RoundEvent)
	OnSplit      func(context.Context, *SplitEvent)
	OnRoundEnd   func(context.Context, *RoundEvent)
	OnFixpoint   func(context.Context, *FixpointEvent)
}

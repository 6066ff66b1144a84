package runtime

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/aretw0/bisim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomSystem builds a reproducible transition system with a mix of silent and
// visible transitions, including silent self-loops and cycles.
func randomSystem(seed int64, states, transitions int) *domain.TransitionSystem {
	rng := rand.New(rand.NewSource(seed))
	labels := []domain.Label{domain.Silent(), domain.Silent(), domain.Visible("a"), domain.Visible("b")}

	ts := domain.NewTransitionSystem()
	name := func(i int) domain.State { return domain.State(fmt.Sprintf("s%02d", i)) }
	for i := 0; i < states; i++ {
		ts.AddState(name(i))
	}
	for i := 0; i < transitions; i++ {
		from := name(rng.Intn(states))
		to := name(rng.Intn(states))
		ts.AddTransition(from, labels[rng.Intn(len(labels))], to)
	}
	return ts
}

func randomPartition(seed int64, ts *domain.TransitionSystem, blocks int) domain.Partitioning {
	rng := rand.New(rand.NewSource(seed))
	p := make(domain.Partitioning, ts.Len())
	for _, s := range ts.States() {
		p[s] = domain.PartitionID(rng.Intn(blocks))
	}
	return p
}

var seeds = []int64{1, 2, 3, 5, 8, 13, 21, 34, 55, 89}

func TestProperty_OutputIsFixpoint(t *testing.T) {
	eng := NewEngine()
	for _, seed := range seeds {
		ts := randomSystem(seed, 14, 30)
		out, err := eng.Refine(context.Background(), ts, nil)
		require.NoError(t, err)

		stable, err := eng.IsStable(ts, out.Partition)
		require.NoError(t, err)
		assert.True(t, stable, "seed %d", seed)
		assert.NoError(t, out.Partition.Covers(ts))
	}
}

func TestProperty_EveryRoundRefinesThePrevious(t *testing.T) {
	eng := NewEngine()
	for _, seed := range seeds {
		ts := randomSystem(seed, 12, 26)
		p := domain.NewPartitioning(ts.States(), 0)
		counter := p.MaxID()

		for round := 0; round <= ts.Len(); round++ {
			res, err := eng.Round(ts, p, counter)
			require.NoError(t, err)
			assert.True(t, res.Partition.Refines(p), "seed %d round %d", seed, round)
			if len(res.Conflicts) == 0 {
				break
			}
			assert.Greater(t, res.Partition.NumBlocks(), p.NumBlocks())
			p, counter = res.Partition, res.Counter
		}
	}
}

func TestProperty_SignatureIndependentOfWorkOrder(t *testing.T) {
	fifo := func(pending int) int { return 0 }
	rng := rand.New(rand.NewSource(42))
	random := func(pending int) int { return rng.Intn(pending) }

	for _, seed := range seeds {
		ts := randomSystem(seed, 10, 28)
		p := randomPartition(seed, ts, 3)

		for _, s := range ts.States() {
			want, err := signature(s, ts, p, lifo)
			require.NoError(t, err)
			for name, pick := range map[string]picker{"fifo": fifo, "random": random} {
				got, err := signature(s, ts, p, pick)
				require.NoError(t, err)
				assert.True(t, want.Equal(got), "seed %d state %s order %s", seed, s, name)
			}
		}
	}
}

func TestProperty_RoundCountBounded(t *testing.T) {
	eng := NewEngine()
	for _, seed := range seeds {
		ts := randomSystem(seed, 16, 34)
		initial := randomPartition(seed, ts, 2)

		out, err := eng.Refine(context.Background(), ts, initial)
		require.NoError(t, err)
		assert.LessOrEqual(t, out.Rounds, ts.Len()-initial.NumBlocks(), "seed %d", seed)
		assert.True(t, out.Partition.Refines(initial), "seed %d", seed)
	}
}

func TestProperty_RoundTripIsIdentity(t *testing.T) {
	eng := NewEngine()
	for _, seed := range seeds {
		ts := randomSystem(seed, 14, 30)
		first, err := eng.Refine(context.Background(), ts, nil)
		require.NoError(t, err)

		second, err := eng.Refine(context.Background(), ts, first.Partition)
		require.NoError(t, err)
		assert.Equal(t, first.Partition, second.Partition, "seed %d", seed)
		assert.Equal(t, 0, second.Rounds)
	}
}

func TestProperty_ResultIndependentOfWorkOrder(t *testing.T) {
	for _, seed := range seeds {
		ts := randomSystem(seed, 14, 30)

		want, err := NewEngine().Refine(context.Background(), ts, nil)
		require.NoError(t, err)

		eng := NewEngine()
		eng.pick = func(pending int) int { return 0 }
		got, err := eng.Refine(context.Background(), ts, nil)
		require.NoError(t, err)

		assert.Equal(t, want.Partition, got.Partition, "seed %d", seed)
	}
}

func TestSplit_ReusesChosenSplitterForWholeBlock(t *testing.T) {
	x := domain.Observation{Label: domain.Visible("x"), Block: 0}
	y := domain.Observation{Label: domain.Visible("y"), Block: 0}

	p := domain.Partitioning{"a": 0, "b": 0, "c": 0, "d": 0}
	sigs := map[domain.State]domain.Signature{
		"a": domain.NewSignature(y),
		"b": domain.NewSignature(x, y),
		"c": domain.NewSignature(x),
		"d": domain.NewSignature(),
	}
	blocks := Aggregate(sigs, p)

	next, conflicts, counter := Split([]domain.State{"a", "b", "c", "d"}, p, sigs, blocks, 0)

	// a lacks x, which becomes the splitter; c lacks y too but keeps x, so it stays.
	require.Len(t, conflicts, 1)
	assert.Equal(t, x, conflicts[0].Splitter)
	assert.Equal(t, domain.PartitionID(1), counter)
	assert.Equal(t, domain.Partitioning{"a": 1, "b": 0, "c": 0, "d": 1}, next)
	assert.Equal(t, domain.Partitioning{"a": 0, "b": 0, "c": 0, "d": 0}, p, "snapshot must not change")
}

func TestAggregate_UnionsMembers(t *testing.T) {
	x := domain.Observation{Label: domain.Visible("x"), Block: 1}
	tau := domain.Observation{Label: domain.Silent(), Block: 2}

	blocks := Aggregate(map[domain.State]domain.Signature{
		"a": domain.NewSignature(x),
		"b": domain.NewSignature(tau),
		"c": domain.NewSignature(),
	}, domain.Partitioning{"a": 0, "b": 0, "c": 1})

	assert.True(t, blocks[0].Equal(domain.NewSignature(x, tau)))
	assert.Equal(t, 0, blocks[1].Len())
}

func TestSignature_UnknownState(t *testing.T) {
	ts := domain.NewTransitionSystem()
	ts.AddTransition("a", domain.Silent(), "b")

	_, err := Signature("a", ts, domain.Partitioning{"a": 0})
	var stateErr *domain.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, domain.State("a"), stateErr.State)
	assert.Equal(t, domain.State("b"), stateErr.Target)

	_, err = Signature("zz", ts, domain.Partitioning{"a": 0, "b": 0})
	assert.ErrorIs(t, err, domain.ErrUnknownState)
}

func TestSignature_EmptyNamedTargetOutsidePartition(t *testing.T) {
	ts := domain.NewTransitionSystem()
	ts.AddTransition("a", domain.Visible("x"), "")

	_, err := Signature("a", ts, domain.Partitioning{"a": 0})
	var stateErr *domain.StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, domain.State("a"), stateErr.State)
	assert.Equal(t, domain.State(""), stateErr.Target)
	assert.ErrorIs(t, err, domain.ErrUnknownState)
}

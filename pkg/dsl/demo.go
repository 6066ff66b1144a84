package dsl

import "github.com/aretw0/bisim/pkg/domain"

// DemoName is the graph name under which the demonstration system is served.
const DemoName = "demo"

// Demo returns the demonstration system: a 4x4 grid where states are named by
// column and row. Moving right or down is mostly silent; visible b and c steps
// decide which states stay distinguishable.
func Demo() *domain.TransitionSystem {
	b := New()

	b.From("00").Tau("10").Tau("01")
	b.From("10").Tau("20").Tau("11")
	b.From("20").Do("b", "30").Tau("21")
	b.From("30").Tau("31")

	b.From("01").Tau("11").Tau("02")
	b.From("11").Tau("21").Tau("12")
	b.From("21").Do("c", "31").Tau("22")

	b.From("02").Tau("12").Do("c", "03")
	b.From("12").Tau("22").Do("c", "13")
	b.From("22").Do("b", "23")

	b.From("13").Tau("23")

	ts, _ := b.Build()
	return ts
}

/*
Package bisim computes branching-bisimulation equivalence classes of labelled transition systems.

It partitions the states of a finite transition system, whose transitions are either
silent (τ) or carry a visible action, into the coarsest partition that cannot tell
branching-bisimilar states apart. The engine is a partition-refinement fixpoint: every
round computes a signature per state, compares it to the aggregate of its block and splits
blocks whose members disagree, until a round splits nothing.

# Concept

Two states are equivalent when each can match the other's visible moves after any
number of silent steps that stay inside their own class. Silent steps that leave a class
are observable and are recorded like visible moves.

# Key Features

  - Deterministic Output: states are processed in ascending order and splitters are chosen by a total order, so identical input always yields identical block identifiers.
  - Hexagonal Architecture: the refinement core is decoupled from graph sources (YAML files, Loam repositories, memory) and result stores (files, Redis, memory).
  - Observability: lifecycle hooks per round and per split, with Prometheus metrics and structured logging built on them.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/bisim"
	)

	func main() {
		// Reads graph documents (*.yaml, *.yml, *.json) from ./graphs
		eng, err := bisim.New("./graphs")
		if err != nil {
			log.Fatal(err)
		}

		result, err := eng.RefineGraph(context.Background(), "vending")
		if err != nil {
			log.Fatal(err)
		}

		for _, class := range result.Classes() {
			fmt.Println(class)
		}
	}
*/
package bisim

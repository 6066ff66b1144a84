/*
Package domain contains the core models of the bisim refinement engine.

It defines labeled transition systems, the partitions computed over them and the
signatures used to decide whether a block must split. The package is kept pure and free
of I/O or persistence concerns, following Hexagonal Architecture principles.

# Key Entities

  - TransitionSystem: a finite graph of states with silent (τ) and visible transitions.
  - Partitioning: a total mapping from every state to the identifier of its block.
  - Signature: the set of (label, destination block) observations of one state in one round.
  - Result: the persisted record of a finished refinement run.
*/
package domain

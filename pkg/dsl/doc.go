/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing
labelled transition systems.

It allows developers to define systems using a fluent builder instead of relying on
external YAML or JSON files. This is particularly useful for tests, generated systems and
leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/bisim/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.From("idle").
			Tau("busy").
			Do("stop", "done")

		b.From("busy").
			Do("stop", "done")

		ts, err := b.Build()
		if err != nil {
			panic(err)
		}
		_ = ts
	}
*/
package dsl

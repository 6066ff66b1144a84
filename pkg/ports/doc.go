/*
Package ports defines the driven ports (interfaces) of the bisim engine.

These interfaces decouple the refinement core from external implementations, allowing
the engine to read transition systems from various sources and to persist results in
various backends.

# Key Interfaces

  - GraphLoader: Responsible for loading named transition systems (e.g., from YAML files, Loam or Memory).
  - ResultStore: Responsible for persisting and loading refinement Results.
  - Refiner: The engine surface consumed by the HTTP and MCP adapters.
*/
package ports

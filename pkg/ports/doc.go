/*
Package ports defines the driven ports (interfaces) for the circuit library.

These interfaces decouple the core simulation from where circuits live,
letting the same workbench run against a markdown library on disk, an
in-memory map, or a redis instance.

# Key Interfaces

  - CircuitRepository: read access to a named collection of circuits.
  - CircuitStore: a repository that can also save and delete circuits.
  - Watchable: repositories that can signal backend changes for hot reload.
*/
package ports

// Package manifest reads, writes and validates the JSON manifests the
// pipeline exchanges: the agent manifest the synchronizer emits next to each
// agent's documents, and the package manifest every bundle ships with. Both
// are checked against JSON schemas embedded from the schema/ directory.
package manifest

// Package diag defines the diagnostic model shared by the rule engine,
// the cache and the output formatters.
//
// Diagnostic is the central record: a Severity, a rule Code with a stable
// "SIM###" string form, a human message without the code prefix, a primary
// source.Span and optional Notes with secondary context.
//
// Producers emit through a Reporter so that storage stays decoupled:
// BagReporter aggregates into a Bag (sorting, merging, dedup),
// DedupReporter filters exact duplicates, NopReporter discards.
//
// The package performs no formatting or IO. Rendering lives in
// internal/diagfmt; orchestration in internal/runner. Keep the data model
// deterministic so diagnostics can be serialized for caching and testing.
package diag

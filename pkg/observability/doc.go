/*
Package observability turns engine hooks into Prometheus metrics.

Metrics registers its collectors on a prometheus.Registerer and exposes
domain.Hooks to pass to compact.WithHooks. Combine them with other hooks
through domain.Hooks.Merge.

Warnings come from two places. The engine reports actions it cannot route,
labelled source "engine" with the unreachable slice as path. Plugin reducers
report slices they cannot handle (remove of a missing item, update of a nil
object) only when built with plugins.WithHooks; those are labelled with the
plugin name as source and an empty path.
*/
package observability

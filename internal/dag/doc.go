// Package dag provides the small dependency graph used to order check
// execution. Order must be reproducible across runs regardless of plugin
// load order: nodes with no ordering constraints run in sorted-identifier
// order, and declared dependencies are honored through a stable topological
// sort with ties broken by identifier.
package dag

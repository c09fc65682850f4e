// Package registry provides the central catalog for the check engine.
//
// The Registry stores check definitions (default severity, default
// parameters, message templates, predicate) keyed by identifier, and data
// provider functions keyed by data key. It is populated at startup by check
// packages registering themselves through the Module interface, and is
// read-only for the duration of a validation run.
//
// Malformed definitions are rejected at registration time, not at run time,
// so a broken plugin can never reach execution.
package registry

package check

import (
	"context"
	"fmt"
)

// Severity classifies a check's findings for downstream consumers.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// DataSource is the read-through handle a predicate (or data provider) uses to
// obtain shared derived datasets. Values are computed at most once per run and
// must be treated as immutable by callers.
type DataSource interface {
	Require(ctx context.Context, key string) (any, error)
}

// Finding is a single reported instance of a check failing against a specific
// scene entity. Fields carries any extra named values the check's item
// message template may reference.
type Finding struct {
	Item     string
	Expected any
	Found    any
	Fields   map[string]any
}

// Context is the execution context handed to a predicate: the check's resolved
// parameters and the shared data cache.
type Context struct {
	Params map[string]any
	Data   DataSource
}

// Func is a check predicate. It inspects shared data and returns zero or more
// findings. A returned error (or a panic) is isolated to this check by the
// executor and surfaced as a synthetic execution-error finding.
type Func func(ctx context.Context, ec *Context) ([]Finding, error)

// Definition describes a single named validation rule: its defaults, message
// templates, declared data dependencies and predicate. Definitions are
// immutable once registered.
type Definition struct {
	// ID uniquely identifies the check, e.g. "triangleMaxCount".
	ID string

	// Enabled is the default enabled state; a profile may override it.
	Enabled bool

	// Severity is the default report type; a profile may override it.
	Severity Severity

	// Params holds the default parameter values, overridable per key.
	Params map[string]any

	// DataKeys lists the shared data keys this check reads.
	DataKeys []string

	// After lists identifiers of checks whose results must be produced before
	// this one runs. Rarely needed; execution order is otherwise the sorted
	// order of identifiers.
	After []string

	// Msg is the user-facing summary message for the report.
	Msg string

	// ItemMsg is the per-item message template. Placeholders like {item},
	// {expected} and {found} are substituted from each finding.
	ItemMsg string

	// Fn is the predicate. A definition without one is malformed.
	Fn Func
}

// Validate reports whether the definition is well formed. Malformed
// definitions must never reach execution.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("check definition has an empty identifier")
	}
	if d.Fn == nil {
		return fmt.Errorf("check %q: definition declares no predicate", d.ID)
	}
	if !d.Severity.Valid() {
		return fmt.Errorf("check %q: invalid severity %q", d.ID, d.Severity)
	}
	return nil
}

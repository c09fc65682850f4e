package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/assetcheck/internal/check"
)

// ErrUnknownCheck is returned when a check identifier is not in the catalog.
var ErrUnknownCheck = errors.New("unknown check identifier")

// Module is the interface all check packages implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the check definitions and data providers for a single
// application instance.
type Registry struct {
	checks    map[string]check.Definition
	providers map[string]Provider
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		checks:    make(map[string]check.Definition),
		providers: make(map[string]Provider),
	}
}

// RegisterCheck adds a check definition to the catalog. Re-registering an
// identifier overwrites the previous definition, so test fixtures may redefine
// a check. A malformed definition panics: that is a programmer error and must
// never reach execution.
func (r *Registry) RegisterCheck(def check.Definition) {
	if err := def.Validate(); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	if _, exists := r.checks[def.ID]; exists {
		slog.Debug("Replacing existing check definition.", "check", def.ID)
	}
	r.checks[def.ID] = def
}

// Check returns the definition for the given identifier, or ErrUnknownCheck.
func (r *Registry) Check(id string) (check.Definition, error) {
	def, ok := r.checks[id]
	if !ok {
		return check.Definition{}, fmt.Errorf("%w: %q", ErrUnknownCheck, id)
	}
	return def, nil
}

// Checks returns the full catalog sorted by identifier. Registration order is
// deliberately not preserved so that reports stay reproducible regardless of
// plugin load order.
func (r *Registry) Checks() []check.Definition {
	defs := make([]check.Definition, 0, len(r.checks))
	for _, def := range r.checks {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// Validate performs a consistency pass over the populated catalog: every
// After reference must name a registered check. Called once at bootstrap,
// after all modules have registered.
func (r *Registry) Validate() error {
	var errs []error
	for id, def := range r.checks {
		for _, after := range def.After {
			if _, ok := r.checks[after]; !ok {
				errs = append(errs, fmt.Errorf("check %q: After references unregistered check %q", id, after))
			}
			if after == id {
				errs = append(errs, fmt.Errorf("check %q: After references itself", id))
			}
		}
	}
	return errors.Join(errs...)
}

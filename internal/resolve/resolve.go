// Package resolve merges the registry's built-in check defaults with a
// user-supplied profile into the final per-check configuration for one run.
package resolve

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/assetcheck/internal/check"
	"github.com/vk/assetcheck/internal/config"
	"github.com/vk/assetcheck/internal/ctxlog"
	"github.com/vk/assetcheck/internal/registry"
)

// ResolvedCheck is the final {enabled, severity, parameters} triple for one
// check, produced fresh per run. Disabled checks are retained for
// introspection; the executor skips them.
type ResolvedCheck struct {
	Def      check.Definition
	Enabled  bool
	Severity check.Severity
	Params   map[string]any
}

// Warning is a non-fatal configuration problem, e.g. a profile referencing an
// identifier the registry does not know.
type Warning struct {
	Identifier string
	Detail     string
}

func (w Warning) String() string {
	return fmt.Sprintf("check %q: %s", w.Identifier, w.Detail)
}

// Resolve produces the full resolved check set, sorted by identifier, for
// every definition in the registry. Profile overrides win per field;
// parameter maps are merged shallowly per top-level key. Identifiers present
// in the profile but absent from the registry yield warnings and do not abort
// the run.
func Resolve(ctx context.Context, reg *registry.Registry, model *config.Model) ([]ResolvedCheck, []Warning) {
	logger := ctxlog.FromContext(ctx)

	var overrides map[string]config.Override
	if model != nil {
		overrides = model.Overrides
	}

	defs := reg.Checks()
	resolved := make([]ResolvedCheck, 0, len(defs))
	for _, def := range defs {
		rc := ResolvedCheck{
			Def:      def,
			Enabled:  def.Enabled,
			Severity: def.Severity,
			Params:   copyParams(def.Params),
		}

		if ov, ok := overrides[def.ID]; ok {
			if ov.Enabled != nil {
				rc.Enabled = *ov.Enabled
			}
			if ov.Severity != nil {
				sev := check.Severity(*ov.Severity)
				if sev.Valid() {
					rc.Severity = sev
				} else {
					logger.Warn("Ignoring invalid severity override.", "check", def.ID, "severity", *ov.Severity)
				}
			}
			for k, v := range ov.Params {
				rc.Params[k] = v
			}
		}

		resolved = append(resolved, rc)
	}

	unknown := make([]string, 0)
	for id := range overrides {
		if _, err := reg.Check(id); err != nil {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)

	var warnings []Warning
	for _, id := range unknown {
		w := Warning{Identifier: id, Detail: "profile references an unregistered check"}
		logger.Warn("Configuration warning.", "check", w.Identifier, "detail", w.Detail)
		warnings = append(warnings, w)
	}

	return resolved, warnings
}

// copyParams makes a fresh top-level copy so overrides never leak back into
// the immutable registry defaults.
func copyParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}

package config

// Override is the user-supplied adjustment for a single check. All fields are
// optional; a nil field means "keep the registry default". Params overrides
// only the named top-level keys, never whole nested structures.
type Override struct {
	Enabled  *bool
	Severity *string
	Params   map[string]any
}

// Model is the unified, format-agnostic representation of a check profile:
// a mapping from check identifier to its override record. Identifiers absent
// from the map use the registry defaults entirely.
type Model struct {
	Overrides map[string]Override
}

// NewModel returns an empty profile model.
func NewModel() *Model {
	return &Model{Overrides: make(map[string]Override)}
}

// Merge overlays other on top of m, later overrides winning per identifier.
// Used when a profile is split across several files.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	for id, ov := range other.Overrides {
		base, ok := m.Overrides[id]
		if !ok {
			m.Overrides[id] = ov
			continue
		}
		if ov.Enabled != nil {
			base.Enabled = ov.Enabled
		}
		if ov.Severity != nil {
			base.Severity = ov.Severity
		}
		if len(ov.Params) > 0 {
			if base.Params == nil {
				base.Params = make(map[string]any, len(ov.Params))
			}
			for k, v := range ov.Params {
				base.Params[k] = v
			}
		}
		m.Overrides[id] = base
	}
}

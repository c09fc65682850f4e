// Package schema holds the HCL block structures for check profile files.
package schema

import "github.com/hashicorp/hcl/v2"

// ParamsBlock represents the content of the 'parameters' block within a
// check block. Attributes are decoded generically, since parameter names are
// defined by each check, not by the profile syntax.
type ParamsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// Check represents a `check` block from a user's profile file: the override
// record for one check identifier. All fields are optional; whatever is
// absent keeps the registry default.
type Check struct {
	ID         string       `hcl:"identifier,label"`
	Enabled    *bool        `hcl:"enabled,optional"`
	Severity   *string      `hcl:"severity,optional"`
	Parameters *ParamsBlock `hcl:"parameters,block"`
}

// Profile represents the top-level structure of a profile file.
type Profile struct {
	Checks []*Check `hcl:"check,block"`
	Body   hcl.Body `hcl:",remain"`
}

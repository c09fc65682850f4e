// Package hcl provides the HCL implementation of the profile loading
// interface defined in the `config` package. It parses `check` blocks into
// the format-agnostic override model and converts HCL parameter values into
// plain Go values.
package hcl

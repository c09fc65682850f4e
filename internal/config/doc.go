// Package config defines the format-agnostic representation of a check
// profile: the per-check overrides a user supplies on top of the registry's
// built-in defaults. Format-specific loaders (HCL, YAML) translate their
// input into this model behind the Loader interface, so the engine never
// depends on any one configuration syntax.
package config

// Package config loads the control plane's one domain tunable —
// protection_level (F), the per-link protection depth — alongside the
// ambient runtime knobs log_level and log_format, from a YAML file.
//
// Load validates eagerly and returns a wrapped sentinel on violation rather
// than deferring the check to first use.
package config

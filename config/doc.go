// Package config loads run configuration from a YAML file with ${VAR}
// environment expansion, fills defaults, and validates the result.
package config

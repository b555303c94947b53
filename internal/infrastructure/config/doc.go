// Package config loads and validates sensorcore configuration.
//
// Configuration is layered: hardcoded defaults, then the YAML file,
// then SENSORCORE_* environment variable overrides. The result is
// validated before use.
//
//	cfg, err := config.Load("configs/config.yaml")
//
// The banner marker list lives here rather than in code: which lines
// a device emits at startup is a deployment detail, not a protocol
// rule, so deployments override it per device firmware.
package config

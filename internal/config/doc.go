// Package config loads smartvalue CLI configuration.
//
// Values are layered, later layers winning:
//
//  1. Built-in defaults (New)
//  2. An optional YAML file (smartvalue.yaml by default)
//  3. Environment variables with the SMARTVALUE_ prefix
//
// Environment variables map onto dotted keys, so SMARTVALUE_LOG_LEVEL sets
// log.level and SMARTVALUE_DEMO_USE_REF sets demo.use_ref.
package config

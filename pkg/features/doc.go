// Package features provides higher-level abstractions built on the reactive
// runtime in package vango.
//
// # Subsystems
//
//   - smartvalue: component values with reactive or silent storage
//
// Each subsystem is in its own sub-package and can be imported independently:
//
//	import "github.com/vango-dev/smartvalue/pkg/features/smartvalue"
package features

// Package model defines the value records kept by innkeep.
//
// This package contains type definitions only. Every other internal package
// imports model; model imports nothing internal.
//
// Key constraints:
//   - Zero values are valid records (default-constructible)
//   - Surrogate row ids never appear on these types
//   - Numbers are int64, never floats
//   - JSON and YAML tags use snake_case; db tags match the SQLite column names
package model

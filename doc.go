// Package zodiac is a declarative schema-validation engine: callers describe
// the shape of data once (primitives, objects, arrays, unions, literals,
// enums, coerced values) and then validate arbitrary runtime values against
// that description, getting back either a typed value or an aggregated list
// of Issues with JSON-Pointer paths.
//
// Schema trees are built via the dsl subpackage, are immutable once shared,
// and can be projected to and reconstructed from a Draft-07-style JSON Schema
// subset via the bridge subpackage.
package zodiac

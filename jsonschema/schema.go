// Package jsonschema holds the Draft-07-style document subset the engine
// emits and ingests. The struct stays flat; unsupported keywords are simply
// absent from it and rejected by the bridge importer.
package jsonschema

// Schema is the JSON Schema representation used for export and import.
type Schema struct {
	// Core
	Type        string `json:"type,omitempty"`
	Format      string `json:"format,omitempty"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`

	// Literal / enum
	Const *any  `json:"const,omitempty"`
	Enum  []any `json:"enum,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Number
	Minimum *float64 `json:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Union / nullable
	AnyOf []*Schema `json:"anyOf,omitempty"`
}

// ConstOf wraps a literal value for the Const field. The indirection keeps
// falsy constants (false, 0, "") from being dropped by omitempty.
func ConstOf(v any) *any { return &v }

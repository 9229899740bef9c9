// Package bridge converts between schema trees and JSON Schema documents in
// both directions. Export projects a schema into the Draft-07-style subset;
// Import reconstructs a runnable schema from such a document, reporting lossy
// mappings through Diag and rejecting constructs outside the subset loudly.
//
// The two directions are aligned so that exporting an imported schema
// reproduces the document: from the second conversion onward the cycle is a
// fixed point.
package bridge

import (
	json "github.com/goccy/go-json"

	js "github.com/unkai/zodiac/jsonschema"
)

// Exporter is satisfied by every schema node, including dsl.AnyAdapter.
type Exporter interface {
	JSONSchema() (*js.Schema, error)
}

// Export projects a schema into its JSON Schema representation.
func Export(s Exporter) (*js.Schema, error) {
	return s.JSONSchema()
}

// ExportJSON renders the schema's JSON Schema document as bytes.
func ExportJSON(s Exporter) ([]byte, error) {
	doc, err := s.JSONSchema()
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

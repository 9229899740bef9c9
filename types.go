package zodiac

// UnknownPolicy controls how object schemas handle undeclared keys.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Accept and drop unknown keys (default).
	UnknownStrict                           // Reject unknown keys with an error.
	UnknownPassthrough                      // Copy unknown keys into the output verbatim.
)

// ParseOpt bundles parsing options for the ParseJSON/ParseYAML entry points.
type ParseOpt struct {
	// FailFast stops composite traversal at the first issue instead of
	// collecting every failure.
	FailFast bool
}

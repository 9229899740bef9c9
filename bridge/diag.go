package bridge

import "fmt"

// Diag collects non-fatal findings from a schema import: constructs that were
// mapped with a loss of precision (integer narrowed to number, arrays with no
// items schema, and so on).
type Diag interface {
	// Warnings returns the accumulated messages in discovery order.
	Warnings() []string
}

type simpleDiag struct {
	warns []string
}

func (d *simpleDiag) Warnings() []string { return d.warns }

func (d *simpleDiag) warnf(format string, args ...any) {
	d.warns = append(d.warns, fmt.Sprintf(format, args...))
}

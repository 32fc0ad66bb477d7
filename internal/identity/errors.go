package identity

import (
	"fmt"
	"strings"
)

// Failure is one identifier that could not be resolved.
type Failure struct {
	Raw    string `json:"raw"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (f Failure) String() string {
	return fmt.Sprintf("row %d: %q %s", f.Row, f.Raw, f.Reason)
}

//
// ValidationError carries every identifier failure found in one sheet.
//
type ValidationError struct {
	Failures []Failure `json:"failures"`
}

func (e *ValidationError) add(f Failure) { e.Failures = append(e.Failures, f) }

// Len returns the number of failures.
func (e *ValidationError) Len() int { return len(e.Failures) }

// Raw lists the offending raw identifiers in sheet order.
func (e *ValidationError) Raw() []string {
	out := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		out[i] = f.Raw
	}
	return out
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d invalid student id(s)", len(e.Failures))
	for _, f := range e.Failures {
		b.WriteString("\n  ")
		b.WriteString(f.String())
	}
	return b.String()
}

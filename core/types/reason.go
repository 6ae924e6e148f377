package types

import (
	"errors"
	"fmt"
	"strings"
)

// ComplexityReason explains why a formula cannot be shown in the visual
// editor. The string codes are stable; banners and telemetry key on them.
type ComplexityReason int

const (
	ReasonEmptyFormula ComplexityReason = iota
	ReasonConditional
	ReasonMidpoint
	ReasonChainedOperations
	ReasonUnknownFunction
	ReasonUnknownSyntax
)

var reasonCodes = []string{
	ReasonEmptyFormula:      "empty_formula",
	ReasonConditional:       "conditional",
	ReasonMidpoint:          "midpoint",
	ReasonChainedOperations: "chained_operations",
	ReasonUnknownFunction:   "unknown_function",
	ReasonUnknownSyntax:     "unknown_syntax",
}

// Reasons returns every reason in declaration order
func Reasons() []ComplexityReason {
	out := make([]ComplexityReason, len(reasonCodes))
	for i := range reasonCodes {
		out[i] = ComplexityReason(i)
	}
	return out
}

func (r ComplexityReason) String() string {
	if int(r) >= 0 && int(r) < len(reasonCodes) {
		return reasonCodes[r]
	}
	return fmt.Sprintf("ComplexityReason(%d)", int(r))
}

// MarshalText encodes the stable reason code
func (r ComplexityReason) MarshalText() ([]byte, error) {
	if int(r) < 0 || int(r) >= len(reasonCodes) {
		return nil, fmt.Errorf("unknown complexity reason %d", int(r))
	}
	return []byte(reasonCodes[r]), nil
}

// UnmarshalText decodes a stable reason code
func (r *ComplexityReason) UnmarshalText(text []byte) error {
	for i, code := range reasonCodes {
		if code == string(text) {
			*r = ComplexityReason(i)
			return nil
		}
	}
	return fmt.Errorf("unknown complexity reason %q", text)
}

// ComplexityError is the only error Parse returns: the formula is text the
// visual editor cannot represent, classified by exactly one reason.
type ComplexityError struct {
	Reason      ComplexityReason `json:"reason"`
	Detail      string           `json:"detail"`
	Name        string           `json:"name,omitempty"`        // offending function, base or identifier
	Suggestions []string         `json:"suggestions,omitempty"` // nearest known names
}

func (e *ComplexityError) Error() string {
	var b strings.Builder
	b.WriteString(e.Reason.String())
	b.WriteString(": ")
	b.WriteString(e.Detail)
	if len(e.Suggestions) > 0 {
		b.WriteString(" (did you mean ")
		b.WriteString(strings.Join(e.Suggestions, ", "))
		b.WriteString("?)")
	}
	return b.String()
}

// Is matches any ComplexityError with the same reason, so callers can write
// errors.Is(err, &types.ComplexityError{Reason: types.ReasonMidpoint}).
func (e *ComplexityError) Is(target error) bool {
	var other *ComplexityError
	if !errors.As(target, &other) {
		return false
	}
	return other.Reason == e.Reason
}

// ReasonOf extracts the classification from err
func ReasonOf(err error) (ComplexityReason, bool) {
	var ce *ComplexityError
	if errors.As(err, &ce) {
		return ce.Reason, true
	}
	return 0, false
}

// Sentinel errors for decoding structured state.
var (
	ErrInvalidState = errors.New("invalid builder state")
	ErrNewerGrammar = errors.New("builder state written by a newer grammar")
)

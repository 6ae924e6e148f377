package parser

import (
	"github.com/aledsdavies/zmandsl/core/types"
	"github.com/aledsdavies/zmandsl/runtime/lexer"
)

// ParseTree represents the result of parsing one formula
type ParseTree struct {
	Source      string                 // Trimmed input
	Tokens      []lexer.Token          // Tokens from lexer
	State       types.State            // Recovered state, valid when Err is nil
	Err         *types.ComplexityError // Classification when no production matched
	Production  string                 // Name of the matching production, or the one that classified
	Telemetry   *ParseTelemetry        // Performance metrics (nil if disabled)
	DebugEvents []DebugEvent           // Debug events (nil if disabled)
}

// Result returns the tree as the (state, error) pair Parse exposes. The
// error is nil or a *types.ComplexityError, never a typed nil.
func (t *ParseTree) Result() (types.State, error) {
	if t.Err != nil {
		return types.State{}, t.Err
	}
	return t.State, nil
}

// Package editor drives a formula editing session.
//
// The mode is always supplied by the caller. A session in visual mode holds
// a builder state and derives the formula text from it; a session in
// advanced mode holds free text and, when the text cannot be shown
// visually, the classification explaining why.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aledsdavies/zmandsl/core/types"
	"github.com/aledsdavies/zmandsl/runtime/generator"
	"github.com/aledsdavies/zmandsl/runtime/parser"
)

// Mode selects how the formula is edited
type Mode int

const (
	ModeVisual Mode = iota
	ModeAdvanced
)

func (m Mode) String() string {
	switch m {
	case ModeVisual:
		return "visual"
	case ModeAdvanced:
		return "advanced"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode reads a mode name as written on the command line
func ParseMode(s string) (Mode, error) {
	switch s {
	case "visual":
		return ModeVisual, nil
	case "advanced":
		return ModeAdvanced, nil
	}
	return 0, fmt.Errorf("unknown editor mode %q (want visual or advanced)", s)
}

// ErrNotVisual is returned when a formula cannot be opened in visual mode.
// The wrapped *types.ComplexityError carries the reason.
var ErrNotVisual = errors.New("formula cannot be edited visually")

// Session is one formula being edited
type Session struct {
	Mode  Mode
	Text  string      // formula text; derived from State in visual mode
	State types.State // meaningful when Reason is nil

	// Reason is set when Text has no visual representation
	Reason *types.ComplexityError

	GeneratedText    string
	ValidationErrors []ValidationError
}

// New starts a visual session on a fresh state
func New() *Session {
	s := &Session{Mode: ModeVisual}
	s.Update(types.NewState())
	return s
}

// Load opens saved formula text. In visual mode, text the editor cannot
// represent opens in advanced mode with the reason attached; empty text
// opens a fresh state. A parsed state that fails validation keeps the saved
// text, so switching to advanced mode and saving returns it unchanged.
func Load(text string, mode Mode) *Session {
	state, err := parser.Parse(text)

	var ce *types.ComplexityError
	if err != nil && !errors.As(err, &ce) {
		ce = &types.ComplexityError{Reason: types.ReasonUnknownSyntax, Detail: err.Error()}
	}

	if mode == ModeVisual {
		switch {
		case ce == nil:
			// Text stays as written until the state is valid enough to generate
			s := &Session{Mode: ModeVisual, Text: text}
			s.Update(state)
			return s
		case ce.Reason == types.ReasonEmptyFormula:
			return New()
		}
	}

	s := &Session{Mode: ModeAdvanced, Text: text, Reason: ce}
	if ce == nil {
		s.State = state
	}
	return s
}

// Update replaces the builder state and recomputes the derived fields. Only
// valid in visual mode.
func (s *Session) Update(state types.State) {
	s.State = state
	s.Reason = nil
	ev := Evaluate(state)
	s.GeneratedText = ev.GeneratedText
	s.ValidationErrors = ev.ValidationErrors
	if ev.GeneratedText != "" {
		s.Text = ev.GeneratedText
	}
}

// SetText replaces the free text of an advanced session and reclassifies it
func (s *Session) SetText(text string) {
	loaded := Load(text, ModeAdvanced)
	*s = *loaded
}

// SwitchMode moves the session between modes. Switching to visual fails with
// ErrNotVisual when the text has no visual representation; the session is
// left unchanged.
func (s *Session) SwitchMode(mode Mode) error {
	if mode == s.Mode {
		return nil
	}

	if mode == ModeAdvanced {
		s.Mode = ModeAdvanced
		s.ValidationErrors = nil
		s.GeneratedText = ""
		return nil
	}

	loaded := Load(s.Text, ModeVisual)
	if loaded.Mode != ModeVisual {
		return fmt.Errorf("%w: %w", ErrNotVisual, loaded.Reason)
	}
	*s = *loaded
	return nil
}

// CanEditVisually reports whether the current text has a visual form
func (s *Session) CanEditVisually() bool {
	return s.Reason == nil
}

// Save returns the text to persist. A visual session with validation errors
// cannot be saved.
func (s *Session) Save() (string, error) {
	switch s.Mode {
	case ModeVisual:
		if len(s.ValidationErrors) > 0 {
			return "", fmt.Errorf("%w: %s", types.ErrInvalidState, joinErrors(s.ValidationErrors))
		}
		return s.GeneratedText, nil
	default:
		text := strings.TrimSpace(s.Text)
		if text == "" {
			return "", fmt.Errorf("%w: formula is empty", types.ErrInvalidState)
		}
		return text, nil
	}
}

// Evaluation holds the fields derived from a builder state
type Evaluation struct {
	GeneratedText    string
	ValidationErrors []ValidationError
}

// Evaluate validates state and, when it is valid, generates its text
func Evaluate(state types.State) Evaluation {
	errs := Validate(state)
	if len(errs) > 0 {
		return Evaluation{ValidationErrors: errs}
	}
	return Evaluation{GeneratedText: generator.Generate(state)}
}

func joinErrors(errs []ValidationError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

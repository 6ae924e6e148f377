package types

import (
	"encoding/json"
	"fmt"

	"github.com/aledsdavies/zmandsl/core/vocab"
)

// wireState is the flat JSON/CBOR form of State. Fields not meaningful to the
// active method are omitted.
type wireState struct {
	Method           string   `json:"method"`
	BaseTime         string   `json:"base_time,omitempty"`
	Degrees          *float64 `json:"degrees,omitempty"`
	Direction        string   `json:"direction,omitempty"`
	Minutes          *int     `json:"minutes,omitempty"`
	OffsetBase       string   `json:"offset_base,omitempty"`
	OffsetBaseIsZman bool     `json:"offset_base_is_zman,omitempty"`
	Hours            *float64 `json:"hours,omitempty"`
	Base             string   `json:"base,omitempty"`
	CustomStart      string   `json:"custom_start,omitempty"`
	CustomEnd        string   `json:"custom_end,omitempty"`
	ZmanKey          string   `json:"zman_key,omitempty"`
}

func (s State) toWire() wireState {
	w := wireState{Method: s.Kind().String()}
	switch m := s.Method.(type) {
	case nil:
		w.BaseTime = s.BaseTime
	case Solar:
		w.Degrees = &m.Degrees
		w.Direction = string(m.Direction)
	case FixedOffset:
		w.Minutes = &m.Minutes
		w.Direction = string(m.Direction)
		w.OffsetBase = m.Base.Name
		w.OffsetBaseIsZman = m.Base.IsFormula
	case ProportionalHours:
		w.Hours = &m.Hours
		w.Base = string(m.Base)
		if m.Custom != nil {
			w.CustomStart = m.Custom.Start
			w.CustomEnd = m.Custom.End
		}
	case FixedReference:
		w.ZmanKey = m.Zman.String()
	}
	return w
}

func (w wireState) toState() (State, error) {
	kind, ok := ParseMethodKind(w.Method)
	if !ok {
		return State{}, fmt.Errorf("%w: unknown method %q", ErrInvalidState, w.Method)
	}

	s := State{BaseTime: w.BaseTime}
	if s.BaseTime == "" {
		s.BaseTime = vocab.DefaultPrimitive
	}

	switch kind {
	case MethodNone:
	case MethodSolar:
		if w.Degrees == nil || w.Direction == "" {
			return State{}, fmt.Errorf("%w: solar requires degrees and direction", ErrInvalidState)
		}
		s.Method = Solar{Degrees: *w.Degrees, Direction: SolarDirection(w.Direction)}
	case MethodFixedOffset:
		if w.Minutes == nil || w.Direction == "" || w.OffsetBase == "" {
			return State{}, fmt.Errorf("%w: fixed_offset requires minutes, direction and offset_base", ErrInvalidState)
		}
		s.Method = FixedOffset{
			Minutes:   *w.Minutes,
			Direction: OffsetDirection(w.Direction),
			Base:      Ref{Name: w.OffsetBase, IsFormula: w.OffsetBaseIsZman},
		}
	case MethodProportionalHours:
		if w.Hours == nil || w.Base == "" {
			return State{}, fmt.Errorf("%w: proportional_hours requires hours and base", ErrInvalidState)
		}
		ph := ProportionalHours{Hours: *w.Hours, Base: ProportionalBase(w.Base)}
		if ph.Base == BaseCustom {
			ph.Custom = &CustomBounds{Start: w.CustomStart, End: w.CustomEnd}
		}
		s.Method = ph
	case MethodFixedReference:
		if w.ZmanKey == "" {
			return State{}, fmt.Errorf("%w: fixed_reference requires zman_key", ErrInvalidState)
		}
		s.Method = FixedReference{Zman: ParseRef(w.ZmanKey)}
	}
	return s, nil
}

// MarshalJSON encodes the flat wire form
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toWire())
}

// UnmarshalJSON decodes the flat wire form. It checks that the fields the
// method needs are present, not that their values are in range; that is
// editor validation.
func (s *State) UnmarshalJSON(data []byte) error {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	decoded, err := w.toState()
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}

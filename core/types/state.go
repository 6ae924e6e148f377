// Package types holds the structured, editor-facing form of a formula and the
// closed set of reasons a formula can fall outside it.
package types

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/zmandsl/core/vocab"
)

// MethodKind tags which builder method is active
type MethodKind int

const (
	MethodNone MethodKind = iota
	MethodSolar
	MethodFixedOffset
	MethodProportionalHours
	MethodFixedReference
)

var methodNames = map[MethodKind]string{
	MethodNone:              "none",
	MethodSolar:             "solar",
	MethodFixedOffset:       "fixed_offset",
	MethodProportionalHours: "proportional_hours",
	MethodFixedReference:    "fixed_reference",
}

func (k MethodKind) String() string {
	if name, ok := methodNames[k]; ok {
		return name
	}
	return fmt.Sprintf("MethodKind(%d)", int(k))
}

// ParseMethodKind is the inverse of MethodKind.String
func ParseMethodKind(s string) (MethodKind, bool) {
	for k, name := range methodNames {
		if name == s {
			return k, true
		}
	}
	return MethodNone, false
}

// SolarDirection is the side of the day a solar angle is measured on
type SolarDirection string

const (
	BeforeSunrise SolarDirection = "before_sunrise"
	AfterSunset   SolarDirection = "after_sunset"
	BeforeNoon    SolarDirection = "before_noon"
	AfterNoon     SolarDirection = "after_noon"
)

// SolarDirections lists the directions the visual editor offers
func SolarDirections() []SolarDirection {
	return []SolarDirection{BeforeSunrise, AfterSunset, BeforeNoon, AfterNoon}
}

// OffsetDirection is the sign of a fixed minute offset
type OffsetDirection string

const (
	Before OffsetDirection = "before" // written as "-"
	After  OffsetDirection = "after"  // written as "+"
)

// ProportionalBase is a day definition the visual editor can select
type ProportionalBase string

const (
	BaseGRA         ProportionalBase = "gra"
	BaseMGA         ProportionalBase = "mga"
	BaseMGA90       ProportionalBase = "mga_90"
	BaseBaalHatanya ProportionalBase = "baal_hatanya"
	BaseCustom      ProportionalBase = "custom"
)

// ProportionalBases lists the bases the visual editor offers
func ProportionalBases() []ProportionalBase {
	names := vocab.EditableBases()
	out := make([]ProportionalBase, len(names))
	for i, n := range names {
		out[i] = ProportionalBase(n)
	}
	return out
}

// Ref names either a primitive or another published formula. Formula
// references are written with the @ sigil.
type Ref struct {
	Name      string
	IsFormula bool
}

// PrimitiveRef refers to a named astronomical event
func PrimitiveRef(name string) Ref { return Ref{Name: name} }

// FormulaRef refers to another published formula
func FormulaRef(key string) Ref { return Ref{Name: key, IsFormula: true} }

// ParseRef splits an optional leading sigil off s
func ParseRef(s string) Ref {
	if strings.HasPrefix(s, vocab.Sigil) {
		return FormulaRef(strings.TrimPrefix(s, vocab.Sigil))
	}
	return PrimitiveRef(s)
}

func (r Ref) String() string {
	if r.IsFormula {
		return vocab.Sigil + r.Name
	}
	return r.Name
}

// Method is one of Solar, FixedOffset, ProportionalHours or FixedReference.
// A nil Method means no method has been chosen.
type Method interface {
	Kind() MethodKind
	isMethod()
}

// Solar is a solar depression angle on one side of the day
type Solar struct {
	Degrees   float64
	Direction SolarDirection
}

// FixedOffset is a whole number of minutes before or after a base event
type FixedOffset struct {
	Minutes   int
	Direction OffsetDirection
	Base      Ref
}

// ProportionalHours is a count of sha'os zmaniyos into a halachic day.
// Custom is set only when Base is BaseCustom.
type ProportionalHours struct {
	Hours  float64
	Base   ProportionalBase
	Custom *CustomBounds
}

// CustomBounds are the formula references that open and close a custom day
type CustomBounds struct {
	Start string
	End   string
}

// FixedReference is a bare primitive or formula reference
type FixedReference struct {
	Zman Ref
}

func (Solar) Kind() MethodKind             { return MethodSolar }
func (FixedOffset) Kind() MethodKind       { return MethodFixedOffset }
func (ProportionalHours) Kind() MethodKind { return MethodProportionalHours }
func (FixedReference) Kind() MethodKind    { return MethodFixedReference }

func (Solar) isMethod()             {}
func (FixedOffset) isMethod()       {}
func (ProportionalHours) isMethod() {}
func (FixedReference) isMethod()    {}

// State is the structured, editable form of one formula
type State struct {
	BaseTime string // primitive used when Method is nil
	Method   Method
}

// NewState returns the state a fresh editor session starts with
func NewState() State {
	return State{BaseTime: vocab.DefaultPrimitive}
}

// Kind returns the active method tag
func (s State) Kind() MethodKind {
	if s.Method == nil {
		return MethodNone
	}
	return s.Method.Kind()
}

// Equivalent compares two states on the fields that matter to the active
// method. BaseTime only matters when no method is chosen.
func (s State) Equivalent(o State) bool {
	if s.Kind() != o.Kind() {
		return false
	}
	if s.Method == nil {
		return s.BaseTime == o.BaseTime
	}
	return cmp.Equal(s.Method, o.Method)
}

func (s State) String() string {
	switch m := s.Method.(type) {
	case nil:
		return fmt.Sprintf("none{base=%s}", s.BaseTime)
	case Solar:
		return fmt.Sprintf("solar{degrees=%g, direction=%s}", m.Degrees, m.Direction)
	case FixedOffset:
		return fmt.Sprintf("fixed_offset{minutes=%d, direction=%s, base=%s}", m.Minutes, m.Direction, m.Base)
	case ProportionalHours:
		if m.Custom != nil {
			return fmt.Sprintf("proportional_hours{hours=%g, base=%s, start=@%s, end=@%s}", m.Hours, m.Base, m.Custom.Start, m.Custom.End)
		}
		return fmt.Sprintf("proportional_hours{hours=%g, base=%s}", m.Hours, m.Base)
	case FixedReference:
		return fmt.Sprintf("fixed_reference{zman=%s}", m.Zman)
	default:
		return fmt.Sprintf("%T", m)
	}
}

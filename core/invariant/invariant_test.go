package invariant_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aledsdavies/zmandsl/core/invariant"
)

// expectViolation runs fn and checks that it panics with the given kind and message
func expectViolation(t *testing.T, kind, message string, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected %s panic", kind)
		}
		msg := fmt.Sprintf("%v", r)
		if !strings.Contains(msg, kind+" VIOLATION") {
			t.Errorf("expected %s VIOLATION, got: %s", kind, msg)
		}
		if !strings.Contains(msg, message) {
			t.Errorf("expected message %q, got: %s", message, msg)
		}
		if !strings.Contains(msg, "at ") {
			t.Errorf("expected caller location, got: %s", msg)
		}
	}()

	fn()
}

func TestAssertionsPass(t *testing.T) {
	invariant.Precondition(true, "never shown")
	invariant.Postcondition(1+1 == 2, "never shown")
	invariant.Invariant(len("solar") == 5, "never shown")
}

func TestPreconditionFail(t *testing.T) {
	expectViolation(t, "PRECONDITION", "minutes must be >= 0, got -3", func() {
		invariant.Precondition(false, "minutes must be >= 0, got %d", -3)
	})
}

func TestPostconditionFail(t *testing.T) {
	expectViolation(t, "POSTCONDITION", "generated text must not be empty", func() {
		invariant.Postcondition(false, "generated text must not be empty")
	})
}

func TestInvariantFail(t *testing.T) {
	expectViolation(t, "INVARIANT", "lexer must advance", func() {
		invariant.Invariant(false, "lexer must advance")
	})
}

func TestUnreachable(t *testing.T) {
	expectViolation(t, "UNREACHABLE", "unknown method *foo", func() {
		invariant.Unreachable("unknown method %s", "*foo")
	})
}

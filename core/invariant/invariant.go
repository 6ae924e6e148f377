// Package invariant provides contract assertions for the formula compiler.
//
// A violation is a programming error inside the compiler, never a user error:
// user text is always classified, never panicked on. All functions panic on
// violation.
package invariant

import (
	"fmt"
	"runtime"
)

// Precondition checks an input contract at function entry.
//
//	func (l *Lexer) advance(n int) {
//	    invariant.Precondition(n > 0, "advance must move forward, got %d", n)
//	}
func Precondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("PRECONDITION", format, args...)
	}
}

// Postcondition checks an output contract before function return.
func Postcondition(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("POSTCONDITION", format, args...)
	}
}

// Invariant checks internal consistency during execution, e.g. that a
// scanning loop made progress.
func Invariant(condition bool, format string, args ...interface{}) {
	if !condition {
		fail("INVARIANT", format, args...)
	}
}

// Unreachable marks a branch that a closed set of variants makes impossible,
// such as the default arm of a switch over every builder method.
func Unreachable(format string, args ...interface{}) {
	fail("UNREACHABLE", format, args...)
}

func fail(kind, format string, args ...interface{}) {
	pc := make([]uintptr, 4)
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	msg := kind + " VIOLATION: " + fmt.Sprintf(format, args...)
	if frame, ok := frames.Next(); ok {
		msg += fmt.Sprintf("\n  at %s:%d", frame.File, frame.Line)
	}

	panic(msg)
}

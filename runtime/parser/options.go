package parser

import "time"

// ParserOpt configures one ParseDetailed or ParseTokens call
type ParserOpt func(*ParserConfig)

// TelemetryMode selects which parse metrics are collected. The zero value
// collects nothing and costs nothing.
type TelemetryMode int

const (
	TelemetryOff    TelemetryMode = iota
	TelemetryBasic                // token count, productions tried, classified or not
	TelemetryTiming               // basic plus lex and match durations
)

// DebugLevel selects how much of the production search is traced
type DebugLevel int

const (
	DebugOff      DebugLevel = iota
	DebugPaths                // try/match/reject per production and the final classify
	DebugDetailed             // also the token each missed production stopped at
)

// ParserConfig is assembled from ParserOpts; the fields are unexported so a
// config can only be built through options
type ParserConfig struct {
	telemetry TelemetryMode
	debug     DebugLevel
}

// WithTelemetryBasic counts tokens and production attempts
func WithTelemetryBasic() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryBasic
	}
}

// WithTelemetryTiming adds lexing and matching durations to the counts
func WithTelemetryTiming() ParserOpt {
	return func(c *ParserConfig) {
		c.telemetry = TelemetryTiming
	}
}

// WithDebugPaths records which productions were tried and which one claimed
// the formula
func WithDebugPaths() ParserOpt {
	return func(c *ParserConfig) {
		c.debug = DebugPaths
	}
}

// WithDebugDetailed records every production attempt, including where each
// miss stopped. Used by `zmandsl --debug`.
func WithDebugDetailed() ParserOpt {
	return func(c *ParserConfig) {
		c.debug = DebugDetailed
	}
}

// ParseTelemetry summarises how a formula was matched
type ParseTelemetry struct {
	LexTime    time.Duration // tokenizing the trimmed text
	MatchTime  time.Duration // walking the production list, classifier included
	TotalTime  time.Duration
	TokenCount int  // EOF included
	Attempts   int  // productions tried; 7 when every one missed
	Classified bool // the result is a ComplexityError rather than a state
}

// DebugEvent is one step of the production search
type DebugEvent struct {
	Timestamp time.Time
	Event     string // try_<production>, miss_, match_, reject_, classify, empty
	TokenPos  int    // index into the token stream when the event fired
	Context   string // method kind, reason code, or the token a miss stopped at
}

package types

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/mod/semver"
)

// GrammarVersion is stamped on every canonical encoding. Bump the minor
// version when the vocabulary grows and the major version when an existing
// spelling changes meaning.
const GrammarVersion = "v1.0.0"

// envelope is the canonical binary form of a State
type envelope struct {
	Grammar string    `cbor:"1,keyasint"`
	State   wireState `cbor:"2,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cbor canonical encoder: %v", err))
	}
	decMode, err = cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("cbor decoder: %v", err))
	}
}

// MarshalCanonical produces a deterministic CBOR encoding of s: equivalent
// states encode to identical bytes.
func (s State) MarshalCanonical() ([]byte, error) {
	env := envelope{Grammar: GrammarVersion, State: s.toWire()}
	data, err := encMode.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// UnmarshalCanonical decodes MarshalCanonical output. States written by a
// newer grammar, or by a different major version, are refused.
func UnmarshalCanonical(data []byte) (State, error) {
	var env envelope
	if err := decMode.Unmarshal(data, &env); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if !semver.IsValid(env.Grammar) {
		return State{}, fmt.Errorf("%w: bad grammar version %q", ErrInvalidState, env.Grammar)
	}
	if semver.Compare(env.Grammar, GrammarVersion) > 0 {
		return State{}, fmt.Errorf("%w: %s (this build reads %s)", ErrNewerGrammar, env.Grammar, GrammarVersion)
	}
	if semver.Major(env.Grammar) != semver.Major(GrammarVersion) {
		return State{}, fmt.Errorf("%w: unsupported grammar %s", ErrInvalidState, env.Grammar)
	}
	return env.State.toState()
}

// Fingerprint is a short content hash of the canonical encoding, used to tell
// whether a re-save would change anything.
func Fingerprint(s State) (string, error) {
	data, err := s.MarshalCanonical()
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:16]), nil
}

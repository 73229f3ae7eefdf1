package scheduling

import (
	"encoding"
	"fmt"
	"strings"
)

// Outcome is the recall quality reported for a single review.
type Outcome string

const (
	OutcomeAgain Outcome = "AGAIN"
	OutcomeHard  Outcome = "HARD"
	OutcomeGood  Outcome = "GOOD"
	OutcomeEasy  Outcome = "EASY"
)

var (
	_ encoding.TextMarshaler   = Outcome("")
	_ encoding.TextUnmarshaler = (*Outcome)(nil)
)

// Outcomes lists every valid outcome from worst to best recall.
var Outcomes = []Outcome{OutcomeAgain, OutcomeHard, OutcomeGood, OutcomeEasy}

// ParseOutcome normalizes a caller-supplied value into one of the closed set of outcomes.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseOutcome(s string) (Outcome, error) {
	o := Outcome(strings.ToUpper(strings.TrimSpace(s)))
	if err := o.Validate(); err != nil {
		return "", err
	}
	return o, nil
}

// Validate returns a *ValidationError wrapping ErrInvalidOutcome for values outside the enum.
func (o Outcome) Validate() error {
	switch o {
	case OutcomeAgain, OutcomeHard, OutcomeGood, OutcomeEasy:
		return nil
	}
	return &ValidationError{
		Field:  "outcome",
		Reason: fmt.Sprintf("%q is not one of AGAIN, HARD, GOOD, EASY", string(o)),
		Err:    ErrInvalidOutcome,
	}
}

// IsCorrect reports whether the outcome counts towards CorrectReviews.
func (o Outcome) IsCorrect() bool {
	return o == OutcomeGood || o == OutcomeEasy
}

func (o Outcome) String() string {
	return string(o)
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return []byte(o), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so JSON and YAML decoding reject unknown outcomes.
func (o *Outcome) UnmarshalText(text []byte) error {
	v, err := ParseOutcome(string(text))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

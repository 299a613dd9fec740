package models

import "fmt"

// Outcome is the result recorded for a single study attempt.
type Outcome string

const (
	OutcomePass Outcome = "pass"
	OutcomeFail Outcome = "fail"
)

// ParseOutcome converts a form or payload value into an Outcome.
func ParseOutcome(s string) (Outcome, error) {
	switch Outcome(s) {
	case OutcomePass, OutcomeFail:
		return Outcome(s), nil
	default:
		return "", fmt.Errorf("unknown outcome %q", s)
	}
}

// UnmarshalText rejects anything other than "pass" or "fail".
func (o *Outcome) UnmarshalText(b []byte) error {
	parsed, err := ParseOutcome(string(b))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

type Flashcard struct {
	ID      int       `json:"id"`
	Front   string    `json:"front"`
	Back    string    `json:"back"`
	History []Outcome `json:"history"`
}

// Attempts returns how many outcomes have been recorded for the card.
func (c Flashcard) Attempts() int {
	return len(c.History)
}

// Clone returns a copy of the card that shares no memory with the receiver.
func (c Flashcard) Clone() Flashcard {
	history := make([]Outcome, len(c.History))
	copy(history, c.History)
	c.History = history
	return c
}

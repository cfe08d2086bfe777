// Package advisor suggests password expiry dates. The decision is delegated
// to an external language model, so results are advisory and
// non-deterministic; callers must treat them as hints and never gate a save
// on them.
package advisor

import (
	"context"
	"errors"
	"time"
)

// Request carries the signals the model weighs. Password is the literal
// secret value, used only for strength analysis and never persisted here.
// LastChangedDate is an ISO-8601 timestamp; UsageFrequency is logins per week.
type Request struct {
	Password        string  `json:"password"`
	LastChangedDate string  `json:"lastChangedDate"`
	UsageFrequency  float64 `json:"usageFrequency"`
}

// Suggestion is the schema-constrained model output: a calendar date in
// YYYY-MM-DD form and a non-empty rationale.
type Suggestion struct {
	ExpiryDate string `json:"expiryDate"`
	Reason     string `json:"reason"`
}

// Validate checks the suggestion against its schema.
func (s *Suggestion) Validate() error {
	if _, err := time.Parse("2006-01-02", s.ExpiryDate); err != nil {
		return errors.New("expiryDate is not a YYYY-MM-DD date")
	}
	if s.Reason == "" {
		return errors.New("reason is empty")
	}
	return nil
}

// Advisor proposes an expiry date for a password. Implementations must return
// either a suggestion that passes Validate or an error; never both, never a
// partial result.
type Advisor interface {
	SuggestExpiry(ctx context.Context, req Request) (*Suggestion, error)
}

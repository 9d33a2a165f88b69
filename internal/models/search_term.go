package models

import (
	"time"

	"github.com/google/uuid"
)

// Search outcome constants
const (
	OutcomeLogged    = "logged"
	OutcomeCorrected = "corrected"
	OutcomeSkipped   = "skipped"
)

// TermRecord is one row of the search log: a canonical term, how often it
// was searched and when it was last seen.
type TermRecord struct {
	Term         string    `json:"term"`
	Count        int64     `json:"count"`
	LastSearched time.Time `json:"last_searched"`
}

// SearchOutcome describes what happened to a single search.
type SearchOutcome struct {
	EventID  uuid.UUID   `json:"event_id"`
	Status   string      `json:"status"`
	Original string      `json:"original"`
	Term     string      `json:"term,omitempty"`
	Score    int         `json:"score,omitempty"`
	Record   *TermRecord `json:"record,omitempty"`
}

// IsSkipped reports whether the search was blank and nothing was logged.
func (o *SearchOutcome) IsSkipped() bool {
	return o.Status == OutcomeSkipped
}

// IsCorrected reports whether the raw term was replaced by a historical one.
func (o *SearchOutcome) IsCorrected() bool {
	return o.Status == OutcomeCorrected
}

// TermSuggestion is a historical term scored against a query.
type TermSuggestion struct {
	Term  string `json:"term"`
	Score int    `json:"score"`
}

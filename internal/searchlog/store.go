// Package searchlog records what users search for: a persisted table of
// search terms with counts, and the session that corrects and logs each
// search.
package searchlog

import (
	"context"
	"strings"

	"canteen/internal/models"
)

// Store is a durable table of search terms keyed by exact term.
type Store interface {
	// LoadAll returns every record in insertion order. A missing table is
	// empty; an unreadable one returns an error matching ErrStoreCorrupted.
	LoadAll(ctx context.Context) ([]models.TermRecord, error)
	// Upsert increments the record for term, or inserts it with count 1.
	// The table is durable before Upsert returns.
	Upsert(ctx context.Context, term string) (models.TermRecord, error)
	// Reset discards the table and replaces it with an empty one.
	Reset(ctx context.Context) error
	// Recover resets the table only if it is still unreadable, checking and
	// discarding in one step. It reports whether anything was discarded.
	Recover(ctx context.Context) (bool, error)
}

// Terms projects the store's records to their terms.
func Terms(ctx context.Context, s Store) ([]string, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	terms := make([]string, len(records))
	for i, r := range records {
		terms[i] = r.Term
	}
	return terms, nil
}

// NormalizeTerm trims surrounding whitespace. Case is preserved.
func NormalizeTerm(term string) (string, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return "", ErrEmptyTerm
	}
	return term, nil
}

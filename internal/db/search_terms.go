package db

import (
	"context"
	"time"

	"canteen/internal/models"
	"canteen/internal/searchlog"
)

// storeName identifies the Postgres table in search log errors.
const storeName = "postgres:search_terms"

// TermStore keeps the search log in the search_terms table. The upsert is a
// single statement, so concurrent searches never lose an increment.
type TermStore struct {
	db  *DB
	now func() time.Time
}

// NewTermStore creates a Postgres-backed search log.
func NewTermStore(database *DB) *TermStore {
	return &TermStore{db: database, now: time.Now}
}

// LoadAll returns every search term in insertion order.
func (s *TermStore) LoadAll(ctx context.Context) ([]models.TermRecord, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT term, count, last_searched_at
		FROM search_terms
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.TermRecord
	for rows.Next() {
		var r models.TermRecord
		if err := rows.Scan(&r.Term, &r.Count, &r.LastSearched); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Upsert increments the count for term or inserts it with count 1.
func (s *TermStore) Upsert(ctx context.Context, term string) (models.TermRecord, error) {
	term, err := searchlog.NormalizeTerm(term)
	if err != nil {
		return models.TermRecord{}, err
	}

	var r models.TermRecord
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO search_terms (term, count, last_searched_at)
		VALUES ($1, 1, $2)
		ON CONFLICT (term) DO UPDATE
		SET count = search_terms.count + 1, last_searched_at = EXCLUDED.last_searched_at
		RETURNING term, count, last_searched_at
	`, term, s.now().Truncate(time.Second)).Scan(&r.Term, &r.Count, &r.LastSearched)
	if err != nil {
		return models.TermRecord{}, &searchlog.WriteError{Path: storeName, Err: err}
	}
	return r, nil
}

// Reset deletes every search term.
func (s *TermStore) Reset(ctx context.Context) error {
	if _, err := s.db.Pool.Exec(ctx, `TRUNCATE search_terms RESTART IDENTITY`); err != nil {
		return &searchlog.WriteError{Path: storeName, Err: err}
	}
	return nil
}

// Recover is a no-op: the table is never unreadable in the way a workbook
// file can be.
func (s *TermStore) Recover(ctx context.Context) (bool, error) {
	return false, nil
}

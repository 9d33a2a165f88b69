package searchlog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"canteen/internal/correction"
	"canteen/internal/metrics"
	"canteen/internal/models"
)

// Session logs searches: it corrects each raw term against the terms already
// in the store and upserts the result. A corrupted store is discarded rather
// than allowed to block logging.
type Session struct {
	store  Store
	engine *correction.Engine
}

// NewSession creates a session over store. A nil engine uses the default
// threshold and no aliases.
func NewSession(store Store, engine *correction.Engine) *Session {
	if engine == nil {
		engine = correction.New(correction.DefaultThreshold, nil)
	}
	return &Session{store: store, engine: engine}
}

// LogSearch records a single search. Blank input is skipped without touching
// the store. When the write-back fails the returned outcome still carries the
// corrected term, alongside an error matching ErrStoreWrite.
func (s *Session) LogSearch(ctx context.Context, raw string) (*models.SearchOutcome, error) {
	outcome := &models.SearchOutcome{
		EventID:  uuid.New(),
		Original: raw,
	}

	term := strings.TrimSpace(raw)
	if term == "" {
		outcome.Status = models.OutcomeSkipped
		slog.Debug("no search term provided, nothing logged", "event_id", outcome.EventID)
		metrics.RecordSearch(models.OutcomeSkipped)
		return outcome, nil
	}

	history, err := Terms(ctx, s.store)
	if errors.Is(err, ErrStoreCorrupted) {
		if err = s.discardCorrupted(ctx, outcome.EventID, err); err == nil {
			// Another search may have repaired and written to the store
			// in the meantime.
			history, err = Terms(ctx, s.store)
		}
	}
	if err != nil {
		metrics.RecordSearch(metrics.OutcomeFailed)
		return outcome, err
	}

	match := s.engine.Resolve(term, history)
	outcome.Term = match.Term
	outcome.Score = match.Score
	outcome.Status = models.OutcomeLogged
	if match.Term != term {
		outcome.Status = models.OutcomeCorrected
	}

	record, err := s.store.Upsert(ctx, match.Term)
	if errors.Is(err, ErrStoreCorrupted) {
		// Corrupted between the read and the write.
		if rerr := s.discardCorrupted(ctx, outcome.EventID, err); rerr != nil {
			metrics.RecordSearch(metrics.OutcomeFailed)
			return outcome, rerr
		}
		record, err = s.store.Upsert(ctx, match.Term)
	}
	if err != nil {
		slog.Error("failed to log search",
			"event_id", outcome.EventID,
			"term", match.Term,
			"error", err,
		)
		metrics.RecordSearch(metrics.OutcomeFailed)
		return outcome, err
	}

	outcome.Record = &record
	metrics.RecordSearch(outcome.Status)
	slog.Info("search logged",
		"event_id", outcome.EventID,
		"original", raw,
		"term", record.Term,
		"status", outcome.Status,
		"count", record.Count,
	)
	return outcome, nil
}

// Terms returns every logged term. A corrupted store reads as empty; it is
// reinitialized by the next LogSearch.
func (s *Session) Terms(ctx context.Context) ([]string, error) {
	terms, err := Terms(ctx, s.store)
	if errors.Is(err, ErrStoreCorrupted) {
		slog.Warn("search log is corrupted, reporting no terms", "error", err)
		return nil, nil
	}
	return terms, err
}

// Records returns every logged record, with the same corruption handling as Terms.
func (s *Session) Records(ctx context.Context) ([]models.TermRecord, error) {
	records, err := s.store.LoadAll(ctx)
	if errors.Is(err, ErrStoreCorrupted) {
		slog.Warn("search log is corrupted, reporting no records", "error", err)
		return nil, nil
	}
	return records, err
}

// Suggest ranks logged terms by similarity to query, best first.
func (s *Session) Suggest(ctx context.Context, query string, limit int) ([]models.TermSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.TermSuggestion{}, nil
	}

	terms, err := s.Terms(ctx)
	if err != nil {
		return nil, err
	}

	matches := s.engine.Rank(query, terms, limit)
	suggestions := make([]models.TermSuggestion, len(matches))
	for i, m := range matches {
		suggestions[i] = models.TermSuggestion{Term: m.Term, Score: m.Score}
	}
	return suggestions, nil
}

func (s *Session) discardCorrupted(ctx context.Context, eventID uuid.UUID, cause error) error {
	discarded, err := s.store.Recover(ctx)
	if err != nil {
		return err
	}
	if !discarded {
		slog.Info("search log was already recovered", "event_id", eventID)
		return nil
	}
	slog.Warn("search log is corrupted, discarded history",
		"event_id", eventID,
		"error", cause,
	)
	metrics.RecordRecovery()
	return nil
}

package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"canteen/internal/config"
	"canteen/internal/searchlog"
	"canteen/internal/validation"
)

// SearchHandler logs searches and suggests previously searched terms.
type SearchHandler struct {
	session *searchlog.Session
	cfg     *config.Config
}

// NewSearchHandler creates a new API search handler.
func NewSearchHandler(session *searchlog.Session, cfg *config.Config) *SearchHandler {
	return &SearchHandler{session: session, cfg: cfg}
}

// Search logs the query in ?q= and returns the term the stock table should be
// searched for.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	return h.logSearch(c, c.Query("q", ""))
}

// Log logs a search submitted as a JSON body.
func (h *SearchHandler) Log(c fiber.Ctx) error {
	var body struct {
		Term string `json:"term"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	return h.logSearch(c, body.Term)
}

func (h *SearchHandler) logSearch(c fiber.Ctx, raw string) error {
	if valid, msg := validation.ValidateSearchTerm(raw); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	outcome, err := h.session.LogSearch(c.Context(), raw)
	if err != nil {
		if errors.Is(err, searchlog.ErrStoreWrite) {
			// The corrected term is still usable for the stock lookup.
			return jsonErrorWithData(c, fiber.StatusServiceUnavailable, "search could not be logged", outcome)
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to log search")
	}

	return jsonSuccess(c, outcome)
}

// Suggest returns logged terms similar to ?q=, best first.
func (h *SearchHandler) Suggest(c fiber.Ctx) error {
	query := c.Query("q", "")
	if valid, msg := validation.ValidateSearchTerm(query); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	limit := validation.ParseLimit(c.Query("limit", ""), h.cfg.SuggestLimit)
	suggestions, err := h.session.Suggest(c.Context(), query, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load search terms")
	}

	return jsonSuccess(c, suggestions)
}

package api

import (
	"sort"

	"github.com/gofiber/fiber/v3"

	"canteen/internal/models"
	"canteen/internal/searchlog"
	"canteen/internal/validation"
)

// Sort orders accepted by the term listing.
const (
	SortInsertion = ""
	SortCount     = "count"
	SortRecent    = "recent"
	SortTerm      = "term"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TermHandler exposes the search log for reporting.
type TermHandler struct {
	session *searchlog.Session
}

// NewTermHandler creates a new API term handler.
func NewTermHandler(session *searchlog.Session) *TermHandler {
	return &TermHandler{session: session}
}

// List returns logged terms, optionally sorted and limited.
func (h *TermHandler) List(c fiber.Ctx) error {
	order := c.Query("sort", SortInsertion)
	if !validSort(order) {
		return jsonError(c, fiber.StatusBadRequest, "sort must be one of count, recent, term")
	}

	records, err := h.session.Records(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load search terms")
	}
	if records == nil {
		records = []models.TermRecord{}
	}

	sortRecords(records, order)

	limit := validation.ParseLimit(c.Query("limit", ""), validation.MaxListLimit)
	if len(records) > limit {
		records = records[:limit]
	}

	return jsonSuccess(c, records)
}

// Export downloads the search log as an .xlsx workbook.
func (h *TermHandler) Export(c fiber.Ctx) error {
	records, err := h.session.Records(c.Context())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load search terms")
	}

	buf, err := searchlog.EncodeWorkbook(records)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to build workbook")
	}

	c.Attachment("search_log.xlsx")
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}

func validSort(order string) bool {
	switch order {
	case SortInsertion, SortCount, SortRecent, SortTerm:
		return true
	}
	return false
}

// sortRecords orders records in place. Ties keep insertion order.
func sortRecords(records []models.TermRecord, order string) {
	switch order {
	case SortCount:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Count > records[j].Count
		})
	case SortRecent:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].LastSearched.After(records[j].LastSearched)
		})
	case SortTerm:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Term < records[j].Term
		})
	}
}

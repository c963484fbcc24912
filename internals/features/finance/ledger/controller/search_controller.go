// file: internals/features/finance/ledger/controller/search_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/finance/ledger/model"
	"sekolahku_backend/internals/features/finance/ledger/service"
	helper "sekolahku_backend/internals/helpers"
)

// -----------------------------------------
// Search (GET /ledger/search?q=...)
// Mencocokkan nomor transaksi, deskripsi, nama siswa, nomor induk.
// -----------------------------------------
func (h *LedgerHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "parameter q wajib diisi")
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	var f service.SearchFilter
	if v := c.Query("academic_year_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.AcademicYearID = &id
		}
	}
	if v := c.Query("entry_type"); v != "" {
		et := model.EntryType(v)
		f.EntryType = &et
	}

	rows, total, err := h.Query.Search(q, f, p)
	if err != nil {
		return WriteLedgerError(c, err)
	}
	return helper.JsonList(c, "", rows, helper.BuildMeta(total, p))
}

// -----------------------------------------
// Statistics (GET /ledger/statistics)
// Agregat sistem + rincian per entry type.
// -----------------------------------------
func (h *LedgerHandler) Statistics(c *fiber.Ctx) error {
	var yearID *uuid.UUID
	if v := c.Query("academic_year_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			yearID = &id
		}
	}
	stats, err := h.Query.GetStatistics(yearID)
	if err != nil {
		return WriteLedgerError(c, err)
	}
	return helper.JsonOK(c, "", stats)
}

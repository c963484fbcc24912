// file: internals/features/finance/ledger/controller/ledger_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/ledger/dto"
	"sekolahku_backend/internals/features/finance/ledger/model"
	"sekolahku_backend/internals/features/finance/ledger/service"
	helper "sekolahku_backend/internals/helpers"
)

var validate = validator.New()

type LedgerHandler struct {
	DB       *gorm.DB
	Store    *service.LedgerStore
	Manual   *service.ManualEntryService
	Reversal *service.ReversalEngine
	Query    *service.LedgerQueryService
}

func NewLedgerHandler(db *gorm.DB, store *service.LedgerStore) *LedgerHandler {
	return &LedgerHandler{
		DB:       db,
		Store:    store,
		Manual:   service.NewManualEntryService(store),
		Reversal: service.NewReversalEngine(store),
		Query:    service.NewLedgerQueryService(db, store),
	}
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// WriteLedgerError memetakan taksonomi error service ke status HTTP.
// Pesan error service diteruskan apa adanya: setiap kegagalan menyebut
// aturan yang dilanggar, bukan "save failed" generik.
func WriteLedgerError(c *fiber.Ctx, err error) error {
	var incomplete *service.IncompleteAllocationError
	var over *service.OverAllocationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrAlreadyReversed),
		errors.Is(err, service.ErrCannotReverseReversal),
		errors.Is(err, service.ErrConcurrencyConflict):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.As(err, &incomplete),
		errors.As(err, &over):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

// -----------------------------------------
// Create manual entry (POST /ledger/entries)
// -----------------------------------------
func (h *LedgerHandler) CreateManualEntry(c *fiber.Ctx) error {
	var in dto.ManualEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var createdBy *uuid.UUID
	if uid, err := helper.GetUserIDFromToken(c); err == nil {
		createdBy = &uid
	}

	txDate := time.Now()
	if in.TransactionDate != nil {
		txDate = *in.TransactionDate
	}

	txn, err := h.Manual.CreateManualEntry(service.ManualEntryInput{
		StudentID:        in.StudentID,
		AcademicYearID:   in.AcademicYearID,
		EntryType:        in.EntryType,
		AmountIDR:        in.AmountIDR,
		Description:      in.Description,
		Remarks:          in.Remarks,
		TransactionDate:  txDate,
		PaymentMethod:    in.PaymentMethod,
		PaymentReference: in.PaymentReference,
		CreatedBy:        createdBy,
	})
	if err != nil {
		return WriteLedgerError(c, err)
	}
	return helper.JsonCreated(c, "transaksi tercatat", dto.ToLedgerTransactionResponse(*txn))
}

// -----------------------------------------
// Reverse (POST /ledger/transactions/:id/reverse)
// -----------------------------------------
func (h *LedgerHandler) Reverse(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var in dto.ReverseRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}
	actingUserID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	reversal, err := h.Reversal.Reverse(id, in.Reason, actingUserID)
	if err != nil {
		return WriteLedgerError(c, err)
	}
	return helper.JsonCreated(c, "transaksi dibatalkan", dto.ToLedgerTransactionResponse(*reversal))
}

// -----------------------------------------
// Timeline (GET /ledger/students/:student_id/timeline)
// Query: academic_year_id, entry_type, date_from, date_to, page, per_page
// -----------------------------------------
func (h *LedgerHandler) Timeline(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	p := helper.ParseFiber(c, "sequence", "asc", helper.DefaultOpts)
	f := parseTimelineFilter(c)

	rows, total, err := h.Store.GetTimeline(studentID, f, p)
	if err != nil {
		return WriteLedgerError(c, err)
	}
	return helper.JsonList(c, "", dto.ToLedgerTransactionResponses(rows), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Summary (GET /ledger/students/:student_id/summary)
// -----------------------------------------
func (h *LedgerHandler) Summary(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	var yearID *uuid.UUID
	if v := c.Query("academic_year_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			yearID = &id
		}
	}
	summary, err := h.Query.GetSummary(studentID, yearID)
	if err != nil {
		return WriteLedgerError(c, err)
	}
	return helper.JsonOK(c, "", summary)
}

// -----------------------------------------
// Detail (GET /ledger/students/:student_id)
// summary + timeline dalam satu response
// -----------------------------------------
func (h *LedgerHandler) Detail(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	p := helper.ParseFiber(c, "sequence", "asc", helper.DefaultOpts)
	f := parseTimelineFilter(c)

	summary, rows, total, err := h.Query.GetStudentLedgerDetail(studentID, f, p)
	if err != nil {
		return WriteLedgerError(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{
		"summary":            summary,
		"timeline":           dto.ToLedgerTransactionResponses(rows),
		"total_transactions": total,
		"pagination":         helper.BuildMeta(total, p),
	})
}

// -----------------------------------------
// Entry type catalog (GET /ledger/entry-types)
// -----------------------------------------
func (h *LedgerHandler) EntryTypes(c *fiber.Ctx) error {
	return helper.JsonOK(c, "", model.AllEntryTypes())
}

func parseTimelineFilter(c *fiber.Ctx) service.TimelineFilter {
	var f service.TimelineFilter
	if v := c.Query("academic_year_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.AcademicYearID = &id
		}
	}
	if v := c.Query("entry_type"); v != "" {
		et := model.EntryType(v)
		f.EntryType = &et
	}
	if v := c.Query("date_from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.DateFrom = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			f.DateTo = &t
		}
	}
	return f
}

// file: internals/features/finance/fees/controller/fees_controller.go
package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/fees/dto"
	"sekolahku_backend/internals/features/finance/fees/service"
	ledgerController "sekolahku_backend/internals/features/finance/ledger/controller"
	ledgerService "sekolahku_backend/internals/features/finance/ledger/service"
	helper "sekolahku_backend/internals/helpers"
)

var validate = validator.New()

type FeesHandler struct {
	DB          *gorm.DB
	Charges     *service.ChargeService
	Outstanding *service.OutstandingService
}

func NewFeesHandler(db *gorm.DB, store *ledgerService.LedgerStore) *FeesHandler {
	return &FeesHandler{
		DB:          db,
		Charges:     service.NewChargeService(db, store),
		Outstanding: service.NewOutstandingService(db),
	}
}

// -----------------------------------------
// Create fee session (POST /fees/sessions)
// Membuat record tagihan + entri debit fee_assignment.
// -----------------------------------------
func (h *FeesHandler) CreateFeeSession(c *fiber.Ctx) error {
	var in dto.FeeSessionCreateRequest
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

	fee, txn, err := h.Charges.CreateFeeSession(service.FeeSessionInput{
		StudentID:      in.StudentID,
		AcademicYearID: in.AcademicYearID,
		Name:           in.Name,
		AmountIDR:      in.AmountIDR,
		DueDate:        in.DueDate,
		CreatedBy:      createdBy,
	})
	if err != nil {
		return ledgerController.WriteLedgerError(c, err)
	}
	return helper.JsonCreated(c, "tagihan dibuat", fiber.Map{
		"fee_session": fee,
		"transaction": txn,
	})
}

// -----------------------------------------
// Create adhoc fee (POST /fees/adhoc)
// -----------------------------------------
func (h *FeesHandler) CreateAdhocFee(c *fiber.Ctx) error {
	var in dto.AdhocFeeCreateRequest
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

	fee, txn, err := h.Charges.CreateAdhocFee(service.AdhocFeeInput{
		StudentID:      in.StudentID,
		AcademicYearID: in.AcademicYearID,
		Name:           in.Name,
		Reason:         in.Reason,
		AmountIDR:      in.AmountIDR,
		DueDate:        in.DueDate,
		CreatedBy:      createdBy,
	})
	if err != nil {
		return ledgerController.WriteLedgerError(c, err)
	}
	return helper.JsonCreated(c, "tagihan insidental dibuat", fiber.Map{
		"adhoc_fee":   fee,
		"transaction": txn,
	})
}

// -----------------------------------------
// Outstanding (GET /fees/students/:student_id/outstanding?academic_year_id=...)
// -----------------------------------------
func (h *FeesHandler) ListOutstanding(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	yearID, err := uuid.Parse(c.Query("academic_year_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "academic_year_id wajib diisi")
	}

	items, err := h.Outstanding.OutstandingFees(studentID, yearID, time.Now())
	if err != nil {
		return ledgerController.WriteLedgerError(c, err)
	}
	var totalOutstanding int64
	for _, it := range items {
		totalOutstanding += it.OutstandingIDR
	}
	return helper.JsonOK(c, "", fiber.Map{
		"items":                 items,
		"total_outstanding_idr": totalOutstanding,
	})
}

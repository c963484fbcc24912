// file: internals/features/finance/ledger/controller/allocation_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	feesService "sekolahku_backend/internals/features/finance/fees/service"
	"sekolahku_backend/internals/features/finance/ledger/dto"
	"sekolahku_backend/internals/features/finance/ledger/service"
	helper "sekolahku_backend/internals/helpers"
)

type AllocationHandler struct {
	DB          *gorm.DB
	Alloc       *service.AllocationEngine
	Outstanding *feesService.OutstandingService
}

func NewAllocationHandler(db *gorm.DB, store *service.LedgerStore) *AllocationHandler {
	return &AllocationHandler{
		DB:          db,
		Alloc:       service.NewAllocationEngine(store),
		Outstanding: feesService.NewOutstandingService(db),
	}
}

// -----------------------------------------
// Preview allocation (POST /ledger/students/:student_id/allocations/preview)
// Distribusi greedy tanpa menulis apa pun; admin lihat dulu sebelum commit.
// -----------------------------------------
func (h *AllocationHandler) Preview(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	var in dto.PreviewAllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	items, err := h.Outstanding.OutstandingFees(studentID, in.AcademicYearID, time.Now())
	if err != nil {
		return WriteLedgerError(c, err)
	}
	allocs := h.Alloc.AutoAllocate(in.AmountIDR, items)

	var allocated int64
	for _, a := range allocs {
		allocated += a.AmountIDR
	}
	return helper.JsonOK(c, "", fiber.Map{
		"allocations":     allocs,
		"allocated_idr":   allocated,
		"unallocated_idr": in.AmountIDR - allocated,
		"is_exact":        allocated == in.AmountIDR,
	})
}

// -----------------------------------------
// Commit allocation (POST /ledger/students/:student_id/allocations)
// Allocations kosong → auto-allocate; terisi → distribusi manual dari admin,
// item dicari di tampilan tunggakan saat ini. Dua-duanya lewat validasi
// jumlah-persis sebelum grup transaksi ditulis.
// -----------------------------------------
func (h *AllocationHandler) Commit(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	var in dto.CommitAllocationRequest
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

	items, err := h.Outstanding.OutstandingFees(studentID, in.AcademicYearID, time.Now())
	if err != nil {
		return WriteLedgerError(c, err)
	}

	var allocs []service.Allocation
	if len(in.Allocations) == 0 {
		allocs = h.Alloc.AutoAllocate(in.AmountIDR, items)
	} else {
		byID := make(map[uuid.UUID]service.OutstandingFeeItem, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}
		for _, a := range in.Allocations {
			item, ok := byID[a.FeeItemID]
			if !ok {
				return helper.JsonError(c, fiber.StatusUnprocessableEntity,
					"item tagihan tidak ditemukan di daftar tunggakan siswa")
			}
			allocs = append(allocs, service.Allocation{Item: item, AmountIDR: a.AmountIDR})
		}
	}

	txns, err := h.Alloc.CommitAllocation(service.PaymentInput{
		StudentID:        studentID,
		AcademicYearID:   in.AcademicYearID,
		AmountIDR:        in.AmountIDR,
		EntryType:        in.EntryType,
		PaymentMethod:    in.PaymentMethod,
		PaymentReference: in.PaymentReference,
		CreatedBy:        createdBy,
	}, allocs)
	if err != nil {
		return WriteLedgerError(c, err)
	}
	return helper.JsonCreated(c, "pembayaran dialokasikan", dto.ToLedgerTransactionResponsesPtr(txns))
}

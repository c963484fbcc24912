// file: internals/features/finance/payments/controller/payment_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicsService "sekolahku_backend/internals/features/academics/service"
	ledgerService "sekolahku_backend/internals/features/finance/ledger/service"
	"sekolahku_backend/internals/features/finance/payments/dto"
	"sekolahku_backend/internals/features/finance/payments/model"
	svc "sekolahku_backend/internals/features/finance/payments/service"
	helper "sekolahku_backend/internals/helpers"
)

type PaymentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Webhook   *svc.WebhookService
}

func NewPaymentController(db *gorm.DB, serverKey string, store *ledgerService.LedgerStore) *PaymentController {
	return &PaymentController{
		DB:        db,
		Validator: validator.New(),
		Webhook:   svc.NewWebhookService(db, serverKey, store),
	}
}

// -----------------------------------------
// Create gateway payment (POST /payments)
// Membuat record payment + Snap token; kredit buku besar menunggu settlement.
// -----------------------------------------
func (h *PaymentController) Create(c *fiber.Ctx) error {
	var in dto.CreateGatewayPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	student, err := academicsService.GetStudent(h.DB, in.StudentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if student == nil {
		return helper.JsonError(c, fiber.StatusNotFound, "siswa tidak ditemukan")
	}

	p := model.PaymentModel{
		PaymentID:             uuid.New(),
		PaymentStudentID:      in.StudentID,
		PaymentAcademicYearID: in.AcademicYearID,
		PaymentAmountIDR:      in.AmountIDR,
		PaymentStatus:         model.PaymentStatusPending,
	}
	p.PaymentOrderID = svc.BuildOrderID(p.PaymentID)

	token, redirectURL, err := svc.GenerateSnapToken(p, student.StudentName)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "gagal membuat transaksi gateway: "+err.Error())
	}
	p.PaymentSnapToken = &token
	p.PaymentRedirectURL = &redirectURL

	if err := h.DB.Create(&p).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonCreated(c, "payment dibuat", dto.GatewayPaymentResponse{
		PaymentID:   p.PaymentID,
		OrderID:     p.PaymentOrderID,
		AmountIDR:   p.PaymentAmountIDR,
		Status:      string(p.PaymentStatus),
		SnapToken:   token,
		RedirectURL: redirectURL,
	})
}

// -----------------------------------------
// Get payment (GET /payments/:id)
// -----------------------------------------
func (h *PaymentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	var p model.PaymentModel
	if err := h.DB.First(&p, "payment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "payment tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", p)
}

// -----------------------------------------
// List payments by student (GET /payments/students/:student_id)
// -----------------------------------------
func (h *PaymentController) ListByStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := h.DB.Model(&model.PaymentModel{}).Where("payment_student_id = ?", studentID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var rows []model.PaymentModel
	if err := q.Order("payment_created_at DESC").Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", rows, helper.BuildMeta(total, p))
}

// -----------------------------------------
// Midtrans webhook (POST /payments/midtrans/callback) — PUBLIC
// Balas 200 untuk notifikasi yang tidak bisa diproses supaya Midtrans
// berhenti retry; signature salah tetap 401.
// -----------------------------------------
func (h *PaymentController) MidtransCallback(c *fiber.Ctx) error {
	var n svc.MidtransNotification
	if err := c.BodyParser(&n); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if !h.Webhook.VerifySignature(n) {
		return helper.JsonError(c, fiber.StatusUnauthorized, "invalid signature")
	}
	if err := h.Webhook.HandleNotification(n); err != nil {
		return c.JSON(fiber.Map{"status": "ignored", "reason": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

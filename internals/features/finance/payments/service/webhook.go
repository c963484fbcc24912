// file: internals/features/finance/payments/service/webhook.go
package service

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	feesService "sekolahku_backend/internals/features/finance/fees/service"
	ledgerModel "sekolahku_backend/internals/features/finance/ledger/model"
	ledgerService "sekolahku_backend/internals/features/finance/ledger/service"
	"sekolahku_backend/internals/features/finance/payments/model"
)

// MidtransNotification: payload webhook yang kita pakai. Field lain diabaikan.
type MidtransNotification struct {
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
}

// WebhookService memproses notifikasi Midtrans: verifikasi tanda tangan,
// update status payment, dan saat settlement memposting kredit ke buku besar.
type WebhookService struct {
	DB          *gorm.DB
	ServerKey   string
	Store       *ledgerService.LedgerStore
	Alloc       *ledgerService.AllocationEngine
	Outstanding *feesService.OutstandingService
}

func NewWebhookService(db *gorm.DB, serverKey string, store *ledgerService.LedgerStore) *WebhookService {
	return &WebhookService{
		DB:          db,
		ServerKey:   serverKey,
		Store:       store,
		Alloc:       ledgerService.NewAllocationEngine(store),
		Outstanding: feesService.NewOutstandingService(db),
	}
}

// VerifySignature — SHA512(order_id + status_code + gross_amount + ServerKey).
func (s *WebhookService) VerifySignature(n MidtransNotification) bool {
	want := strings.ToLower(n.SignatureKey)
	if want == "" {
		return false
	}
	raw := n.OrderID + n.StatusCode + n.GrossAmount + s.ServerKey
	sum := sha512.Sum512([]byte(raw))
	return hex.EncodeToString(sum[:]) == want
}

// HandleNotification memproses satu notifikasi. Idempotent: notifikasi ulang
// untuk payment yang sudah paid tidak memposting kredit kedua kali.
func (s *WebhookService) HandleNotification(n MidtransNotification) error {
	var p model.PaymentModel
	if err := s.DB.First(&p, "payment_order_id = ?", n.OrderID).Error; err != nil {
		return fmt.Errorf("payment untuk order_id %s tidak ditemukan: %w", n.OrderID, err)
	}

	switch n.TransactionStatus {
	case "settlement", "capture":
		if n.FraudStatus == "deny" {
			return s.markStatus(&p, n, model.PaymentStatusFailed)
		}
		return s.settle(&p, n)
	case "pending":
		return nil
	case "expire":
		return s.markStatus(&p, n, model.PaymentStatusExpired)
	case "cancel":
		now := time.Now()
		p.PaymentCanceledAt = &now
		return s.markStatus(&p, n, model.PaymentStatusCanceled)
	case "deny", "failure":
		return s.markStatus(&p, n, model.PaymentStatusFailed)
	default:
		log.Printf("[WARN] webhook: transaction_status %q tidak dikenal (order_id=%s)", n.TransactionStatus, n.OrderID)
		return nil
	}
}

func (s *WebhookService) markStatus(p *model.PaymentModel, n MidtransNotification, status model.PaymentStatus) error {
	p.PaymentStatus = status
	if n.TransactionID != "" {
		p.PaymentGatewayTxID = &n.TransactionID
	}
	if n.PaymentType != "" {
		p.PaymentMethod = &n.PaymentType
	}
	return s.DB.Save(p).Error
}

// settle: posting kredit buku besar dan status paid dalam satu transaksi DB.
// Nominal didistribusikan greedy ke tunggakan; sisa yang tidak terserap
// diposting sebagai kredit uang muka supaya total kredit = nominal yang masuk.
// Kalau posting gagal, payment tetap pending dan notifikasi ulang dari
// gateway masih bisa diproses.
func (s *WebhookService) settle(p *model.PaymentModel, n MidtransNotification) error {
	if p.PaymentStatus == model.PaymentStatusPaid {
		return nil // notifikasi ulang
	}

	now := time.Now()
	items, err := s.Outstanding.OutstandingFees(p.PaymentStudentID, p.PaymentAcademicYearID, now)
	if err != nil {
		return err
	}
	allocs := s.Alloc.AutoAllocate(p.PaymentAmountIDR, items)

	var allocated int64
	for _, a := range allocs {
		allocated += a.AmountIDR
	}

	if n.TransactionID != "" {
		p.PaymentGatewayTxID = &n.TransactionID
	}
	if n.PaymentType != "" {
		p.PaymentMethod = &n.PaymentType
	}

	method := "midtrans"
	if p.PaymentMethod != nil && *p.PaymentMethod != "" {
		method = *p.PaymentMethod
	}
	refKind := ledgerModel.ReferenceKindPayment

	ins := make([]ledgerService.AppendInput, 0, len(allocs)+1)
	for _, a := range allocs {
		kind := a.Item.FeeKind
		refID := a.Item.ID
		ins = append(ins, ledgerService.AppendInput{
			StudentID:        p.PaymentStudentID,
			AcademicYearID:   p.PaymentAcademicYearID,
			EntryType:        ledgerModel.EntryTypePaymentOnline,
			CreditIDR:        a.AmountIDR,
			Description:      fmt.Sprintf("Pembayaran: %s", a.Item.Description),
			PaymentMethod:    &method,
			PaymentReference: &p.PaymentOrderID,
			ReferenceKind:    &kind,
			ReferenceID:      &refID,
			Date:             now,
		})
	}
	if remainder := p.PaymentAmountIDR - allocated; remainder > 0 {
		paymentID := p.PaymentID
		ins = append(ins, ledgerService.AppendInput{
			StudentID:        p.PaymentStudentID,
			AcademicYearID:   p.PaymentAcademicYearID,
			EntryType:        ledgerModel.EntryTypePaymentOnline,
			CreditIDR:        remainder,
			Description:      fmt.Sprintf("Kelebihan bayar %s (uang muka)", p.PaymentOrderID),
			PaymentMethod:    &method,
			PaymentReference: &p.PaymentOrderID,
			ReferenceKind:    &refKind,
			ReferenceID:      &paymentID,
			Date:             now,
		})
	}
	p.PaymentPaidAt = &now
	p.PaymentStatus = model.PaymentStatusPaid
	if len(ins) == 0 {
		return s.DB.Save(p).Error
	}

	err = s.Store.Serialized(p.PaymentStudentID, p.PaymentAcademicYearID, func(tx *gorm.DB) error {
		for i := range ins {
			if _, err := s.Store.AppendTx(tx, ins[i]); err != nil {
				return err
			}
		}
		return tx.Save(p).Error
	})
	if err != nil {
		return err
	}
	log.Printf("[INFO] webhook: order_id=%s settled, %d baris kredit diposting", p.PaymentOrderID, len(ins))
	return nil
}

// BuildOrderID: identitas order unik per payment.
func BuildOrderID(paymentID uuid.UUID) string {
	return "PAY-" + strings.ToUpper(strings.ReplaceAll(paymentID.String(), "-", "")[:16])
}

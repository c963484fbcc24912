// file: internals/features/finance/payments/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusExpired  PaymentStatus = "expired"
	PaymentStatusCanceled PaymentStatus = "canceled"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// PaymentModel: satu pembayaran via gateway. Ini bukti niat bayar; uang baru
// diakui di buku besar setelah webhook settlement memposting kreditnya.
type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"payment_id"`

	PaymentStudentID      uuid.UUID `gorm:"column:payment_student_id;type:uuid;not null;index:idx_payment_student_year" json:"payment_student_id"`
	PaymentAcademicYearID uuid.UUID `gorm:"column:payment_academic_year_id;type:uuid;not null;index:idx_payment_student_year" json:"payment_academic_year_id"`

	// OrderID = identitas transaksi di Midtrans; unik supaya webhook idempotent.
	PaymentOrderID   string `gorm:"column:payment_order_id;type:varchar(64);not null;uniqueIndex" json:"payment_order_id"`
	PaymentAmountIDR int64  `gorm:"column:payment_amount_idr;not null;check:payment_amount_idr > 0" json:"payment_amount_idr"`

	PaymentStatus          PaymentStatus `gorm:"column:payment_status;type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	PaymentMethod          *string       `gorm:"column:payment_method;type:varchar(50)" json:"payment_method,omitempty"`
	PaymentGatewayProvider string        `gorm:"column:payment_gateway_provider;type:varchar(30);not null;default:'midtrans'" json:"payment_gateway_provider"`
	PaymentGatewayTxID     *string       `gorm:"column:payment_gateway_tx_id;type:varchar(100)" json:"payment_gateway_tx_id,omitempty"`

	PaymentSnapToken   *string `gorm:"column:payment_snap_token;type:varchar(255)" json:"payment_snap_token,omitempty"`
	PaymentRedirectURL *string `gorm:"column:payment_redirect_url;type:text" json:"payment_redirect_url,omitempty"`

	PaymentPaidAt     *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`
	PaymentCanceledAt *time.Time `gorm:"column:payment_canceled_at" json:"payment_canceled_at,omitempty"`

	PaymentMeta datatypes.JSONMap `gorm:"column:payment_meta;type:jsonb" json:"payment_meta,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	return nil
}

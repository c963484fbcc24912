// file: internals/features/finance/payments/dto/payments_dto.go
package dto

import (
	"github.com/google/uuid"
)

type CreateGatewayPaymentRequest struct {
	StudentID      uuid.UUID `json:"student_id" validate:"required"`
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
	AmountIDR      int64     `json:"amount_idr" validate:"required,gt=0"`
}

type GatewayPaymentResponse struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	OrderID     string    `json:"order_id"`
	AmountIDR   int64     `json:"amount_idr"`
	Status      string    `json:"status"`
	SnapToken   string    `json:"snap_token"`
	RedirectURL string    `json:"redirect_url"`
}

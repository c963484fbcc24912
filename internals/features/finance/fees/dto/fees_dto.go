// file: internals/features/finance/fees/dto/fees_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type FeeSessionCreateRequest struct {
	StudentID      uuid.UUID `json:"student_id" validate:"required"`
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	AmountIDR      int64     `json:"amount_idr" validate:"required,gt=0"`
	DueDate        time.Time `json:"due_date" validate:"required"`
}

type AdhocFeeCreateRequest struct {
	StudentID      uuid.UUID `json:"student_id" validate:"required"`
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
	Name           string    `json:"name" validate:"required"`
	Reason         *string   `json:"reason,omitempty"`
	AmountIDR      int64     `json:"amount_idr" validate:"required,gt=0"`
	DueDate        time.Time `json:"due_date" validate:"required"`
}

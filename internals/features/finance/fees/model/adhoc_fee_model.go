// file: internals/features/finance/fees/model/adhoc_fee_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdhocFeeModel: tagihan insidental (study tour, seragam, dsb).
type AdhocFeeModel struct {
	// PK
	AdhocFeeID uuid.UUID `gorm:"column:adhoc_fee_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"adhoc_fee_id"`

	AdhocFeeStudentID      uuid.UUID `gorm:"column:adhoc_fee_student_id;type:uuid;not null;index:ix_adhoc_fee_student_year,priority:1" json:"adhoc_fee_student_id"`
	AdhocFeeAcademicYearID uuid.UUID `gorm:"column:adhoc_fee_academic_year_id;type:uuid;not null;index:ix_adhoc_fee_student_year,priority:2" json:"adhoc_fee_academic_year_id"`

	AdhocFeeName      string    `gorm:"column:adhoc_fee_name;type:varchar(120);not null" json:"adhoc_fee_name"`
	AdhocFeeReason    *string   `gorm:"column:adhoc_fee_reason" json:"adhoc_fee_reason,omitempty"`
	AdhocFeeAmountIDR int64     `gorm:"column:adhoc_fee_amount_idr;not null;check:adhoc_fee_amount_idr > 0" json:"adhoc_fee_amount_idr"`
	AdhocFeeDueDate   time.Time `gorm:"column:adhoc_fee_due_date;not null;index" json:"adhoc_fee_due_date"`

	AdhocFeeCreatedAt time.Time `gorm:"column:adhoc_fee_created_at;not null;default:now()" json:"adhoc_fee_created_at"`
	AdhocFeeUpdatedAt time.Time `gorm:"column:adhoc_fee_updated_at;not null;default:now()" json:"adhoc_fee_updated_at"`
}

func (AdhocFeeModel) TableName() string {
	return "adhoc_fees"
}

func (m *AdhocFeeModel) BeforeCreate(tx *gorm.DB) (err error) {
	if m.AdhocFeeID == uuid.Nil {
		m.AdhocFeeID = uuid.New()
	}
	now := time.Now()
	if m.AdhocFeeCreatedAt.IsZero() {
		m.AdhocFeeCreatedAt = now
	}
	m.AdhocFeeUpdatedAt = now
	return nil
}

// file: internals/features/finance/fees/model/fee_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeSessionModel: tagihan SPP per sesi/termin untuk satu siswa.
type FeeSessionModel struct {
	// PK
	FeeSessionID uuid.UUID `gorm:"column:fee_session_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_session_id"`

	FeeSessionStudentID      uuid.UUID `gorm:"column:fee_session_student_id;type:uuid;not null;index:ix_fee_session_student_year,priority:1" json:"fee_session_student_id"`
	FeeSessionAcademicYearID uuid.UUID `gorm:"column:fee_session_academic_year_id;type:uuid;not null;index:ix_fee_session_student_year,priority:2" json:"fee_session_academic_year_id"`

	// Label termin, mis. "SPP Juli 2025"
	FeeSessionName      string    `gorm:"column:fee_session_name;type:varchar(120);not null" json:"fee_session_name"`
	FeeSessionAmountIDR int64     `gorm:"column:fee_session_amount_idr;not null;check:fee_session_amount_idr > 0" json:"fee_session_amount_idr"`
	FeeSessionDueDate   time.Time `gorm:"column:fee_session_due_date;not null;index" json:"fee_session_due_date"`

	FeeSessionCreatedAt time.Time `gorm:"column:fee_session_created_at;not null;default:now()" json:"fee_session_created_at"`
	FeeSessionUpdatedAt time.Time `gorm:"column:fee_session_updated_at;not null;default:now()" json:"fee_session_updated_at"`
}

func (FeeSessionModel) TableName() string {
	return "fee_sessions"
}

func (m *FeeSessionModel) BeforeCreate(tx *gorm.DB) (err error) {
	if m.FeeSessionID == uuid.Nil {
		m.FeeSessionID = uuid.New()
	}
	now := time.Now()
	if m.FeeSessionCreatedAt.IsZero() {
		m.FeeSessionCreatedAt = now
	}
	m.FeeSessionUpdatedAt = now
	return nil
}

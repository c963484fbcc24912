// file: internals/features/academics/model/academic_year_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AcademicYearModel struct {
	// PK
	AcademicYearID uuid.UUID `gorm:"column:academic_year_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"academic_year_id"`

	// Label tampilan, mis. "2025/2026"
	AcademicYearName string `gorm:"column:academic_year_name;type:varchar(40);not null" json:"academic_year_name"`

	// Kode pendek untuk nomor transaksi, mis. "2025" → TXN/2025/000001
	AcademicYearCode string `gorm:"column:academic_year_code;type:varchar(12);not null;uniqueIndex" json:"academic_year_code"`

	AcademicYearStartDate time.Time `gorm:"column:academic_year_start_date;not null" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"column:academic_year_end_date;not null" json:"academic_year_end_date"`
	AcademicYearIsActive  bool      `gorm:"column:academic_year_is_active;not null;default:false" json:"academic_year_is_active"`

	AcademicYearCreatedAt time.Time `gorm:"column:academic_year_created_at;not null;default:now()" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time `gorm:"column:academic_year_updated_at;not null;default:now()" json:"academic_year_updated_at"`
}

func (AcademicYearModel) TableName() string {
	return "academic_years"
}

func (m *AcademicYearModel) BeforeCreate(tx *gorm.DB) (err error) {
	if m.AcademicYearID == uuid.Nil {
		m.AcademicYearID = uuid.New()
	}
	now := time.Now()
	if m.AcademicYearCreatedAt.IsZero() {
		m.AcademicYearCreatedAt = now
	}
	m.AcademicYearUpdatedAt = now
	return nil
}

func (m *AcademicYearModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.AcademicYearUpdatedAt = time.Now()
	return nil
}

// file: internals/features/academics/model/student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	// PK
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`

	StudentName            string  `gorm:"column:student_name;type:varchar(120);not null;index:ix_student_name" json:"student_name"`
	StudentAdmissionNumber string  `gorm:"column:student_admission_number;type:varchar(40);not null;uniqueIndex" json:"student_admission_number"`
	StudentClassName       *string `gorm:"column:student_class_name;type:varchar(60)" json:"student_class_name,omitempty"`
	StudentGuardianPhone   *string `gorm:"column:student_guardian_phone;type:varchar(24)" json:"student_guardian_phone,omitempty"`
	StudentIsActive        bool    `gorm:"column:student_is_active;not null;default:true" json:"student_is_active"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;not null;default:now()" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;not null;default:now()" json:"student_updated_at"`
}

func (StudentModel) TableName() string {
	return "students"
}

func (m *StudentModel) BeforeCreate(tx *gorm.DB) (err error) {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	now := time.Now()
	if m.StudentCreatedAt.IsZero() {
		m.StudentCreatedAt = now
	}
	m.StudentUpdatedAt = now
	return nil
}

func (m *StudentModel) BeforeUpdate(tx *gorm.DB) (err error) {
	m.StudentUpdatedAt = time.Now()
	return nil
}

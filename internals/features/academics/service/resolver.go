// file: internals/features/academics/service/resolver.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/academics/model"
)

// GetStudent mengambil satu siswa; (nil, nil) jika tidak ada.
func GetStudent(db *gorm.DB, id uuid.UUID) (*model.StudentModel, error) {
	var m model.StudentModel
	if err := db.First(&m, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// GetAcademicYear mengambil satu tahun ajaran; (nil, nil) jika tidak ada.
func GetAcademicYear(db *gorm.DB, id uuid.UUID) (*model.AcademicYearModel, error) {
	var m model.AcademicYearModel
	if err := db.First(&m, "academic_year_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

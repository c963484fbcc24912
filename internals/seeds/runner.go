// file: internals/seeds/runner.go
package seeds

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	academicsModel "sekolahku_backend/internals/features/academics/model"
	userModel "sekolahku_backend/internals/features/users/auth/model"
)

// SeedFile: data awal dari YAML. Idempotent: baris yang sudah ada
// (berdasarkan kode/nomor induk/email) dilewati, tidak ditimpa.
type SeedFile struct {
	AcademicYears []struct {
		Name      string    `yaml:"name"`
		Code      string    `yaml:"code"`
		StartDate time.Time `yaml:"start_date"`
		EndDate   time.Time `yaml:"end_date"`
		IsActive  bool      `yaml:"is_active"`
	} `yaml:"academic_years"`

	Students []struct {
		Name            string  `yaml:"name"`
		AdmissionNumber string  `yaml:"admission_number"`
		ClassName       *string `yaml:"class_name"`
		GuardianPhone   *string `yaml:"guardian_phone"`
	} `yaml:"students"`

	Users []struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
	} `yaml:"users"`
}

func Run(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("baca seed file: %w", err)
	}
	var f SeedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	for _, y := range f.AcademicYears {
		var count int64
		db.Model(&academicsModel.AcademicYearModel{}).
			Where("academic_year_code = ?", strings.ToUpper(y.Code)).Count(&count)
		if count > 0 {
			continue
		}
		row := academicsModel.AcademicYearModel{
			AcademicYearName:      y.Name,
			AcademicYearCode:      strings.ToUpper(y.Code),
			AcademicYearStartDate: y.StartDate,
			AcademicYearEndDate:   y.EndDate,
			AcademicYearIsActive:  y.IsActive,
		}
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("seed academic year %s: %w", y.Code, err)
		}
		log.Printf("[INFO] seed: tahun ajaran %s dibuat", y.Code)
	}

	for _, s := range f.Students {
		var count int64
		db.Model(&academicsModel.StudentModel{}).
			Where("student_admission_number = ?", s.AdmissionNumber).Count(&count)
		if count > 0 {
			continue
		}
		row := academicsModel.StudentModel{
			StudentName:            s.Name,
			StudentAdmissionNumber: s.AdmissionNumber,
			StudentClassName:       s.ClassName,
			StudentGuardianPhone:   s.GuardianPhone,
			StudentIsActive:        true,
		}
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("seed student %s: %w", s.AdmissionNumber, err)
		}
		log.Printf("[INFO] seed: siswa %s dibuat", s.AdmissionNumber)
	}

	for _, u := range f.Users {
		email := strings.ToLower(strings.TrimSpace(u.Email))
		var count int64
		db.Model(&userModel.UserModel{}).Where("user_email = ?", email).Count(&count)
		if count > 0 {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password untuk %s: %w", email, err)
		}
		role := u.Role
		if role == "" {
			role = userModel.RoleGuardian
		}
		row := userModel.UserModel{
			UserName:     u.Name,
			UserEmail:    email,
			UserPassword: string(hash),
			UserRole:     role,
			UserIsActive: true,
		}
		if err := db.Create(&row).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", email, err)
		}
		log.Printf("[INFO] seed: user %s (%s) dibuat", email, role)
	}

	return nil
}

// file: internals/features/finance/ledger/service/testutil_test.go
package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	academicsModel "sekolahku_backend/internals/features/academics/model"
)

// Skema uji ditulis eksplisit: DDL produksi (AutoMigrate di Postgres) memakai
// gen_random_uuid()/now() yang tidak dikenal sqlite.
var testSchema = []string{
	`CREATE TABLE academic_years (
		academic_year_id TEXT PRIMARY KEY,
		academic_year_name TEXT NOT NULL,
		academic_year_code TEXT NOT NULL UNIQUE,
		academic_year_start_date DATETIME NOT NULL,
		academic_year_end_date DATETIME NOT NULL,
		academic_year_is_active BOOLEAN NOT NULL DEFAULT 0,
		academic_year_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		academic_year_updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE students (
		student_id TEXT PRIMARY KEY,
		student_name TEXT NOT NULL,
		student_admission_number TEXT NOT NULL UNIQUE,
		student_class_name TEXT,
		student_guardian_phone TEXT,
		student_is_active BOOLEAN NOT NULL DEFAULT 1,
		student_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		student_updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE ledger_transactions (
		ledger_transaction_id TEXT PRIMARY KEY,
		ledger_transaction_number TEXT NOT NULL UNIQUE,
		ledger_transaction_sequence INTEGER NOT NULL,
		ledger_transaction_student_id TEXT NOT NULL,
		ledger_transaction_academic_year_id TEXT NOT NULL,
		ledger_transaction_entry_type TEXT NOT NULL,
		ledger_transaction_debit_idr INTEGER NOT NULL DEFAULT 0 CHECK (ledger_transaction_debit_idr >= 0),
		ledger_transaction_credit_idr INTEGER NOT NULL DEFAULT 0 CHECK (ledger_transaction_credit_idr >= 0),
		ledger_transaction_balance_after_idr INTEGER NOT NULL,
		ledger_transaction_description TEXT NOT NULL,
		ledger_transaction_remarks TEXT,
		ledger_transaction_payment_method TEXT,
		ledger_transaction_payment_reference TEXT,
		ledger_transaction_reference_kind TEXT,
		ledger_transaction_reference_id TEXT,
		ledger_transaction_is_reversed BOOLEAN NOT NULL DEFAULT 0,
		ledger_transaction_reversed_by TEXT,
		ledger_transaction_reversed_at DATETIME,
		ledger_transaction_reversal_id TEXT,
		ledger_transaction_reverses_id TEXT,
		ledger_transaction_date DATETIME NOT NULL,
		ledger_transaction_created_by TEXT,
		ledger_transaction_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		ledger_transaction_is_locked BOOLEAN NOT NULL DEFAULT 1,
		ledger_transaction_meta TEXT,
		UNIQUE (ledger_transaction_academic_year_id, ledger_transaction_sequence)
	)`,
	`CREATE TABLE fee_sessions (
		fee_session_id TEXT PRIMARY KEY,
		fee_session_student_id TEXT NOT NULL,
		fee_session_academic_year_id TEXT NOT NULL,
		fee_session_name TEXT NOT NULL,
		fee_session_amount_idr INTEGER NOT NULL CHECK (fee_session_amount_idr > 0),
		fee_session_due_date DATETIME NOT NULL,
		fee_session_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		fee_session_updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE adhoc_fees (
		adhoc_fee_id TEXT PRIMARY KEY,
		adhoc_fee_student_id TEXT NOT NULL,
		adhoc_fee_academic_year_id TEXT NOT NULL,
		adhoc_fee_name TEXT NOT NULL,
		adhoc_fee_reason TEXT,
		adhoc_fee_amount_idr INTEGER NOT NULL CHECK (adhoc_fee_amount_idr > 0),
		adhoc_fee_due_date DATETIME NOT NULL,
		adhoc_fee_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		adhoc_fee_updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, ddl := range testSchema {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func seedAcademicYear(t *testing.T, db *gorm.DB, code string) uuid.UUID {
	t.Helper()
	year := academicsModel.AcademicYearModel{
		AcademicYearName:      "Tahun Ajaran " + code,
		AcademicYearCode:      code,
		AcademicYearStartDate: time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		AcademicYearEndDate:   time.Date(2026, 6, 27, 0, 0, 0, 0, time.UTC),
		AcademicYearIsActive:  true,
	}
	if err := db.Create(&year).Error; err != nil {
		t.Fatalf("seed academic year: %v", err)
	}
	return year.AcademicYearID
}

func seedStudent(t *testing.T, db *gorm.DB, name, admissionNumber string) uuid.UUID {
	t.Helper()
	student := academicsModel.StudentModel{
		StudentName:            name,
		StudentAdmissionNumber: admissionNumber,
		StudentIsActive:        true,
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return student.StudentID
}

func strPtr(s string) *string { return &s }

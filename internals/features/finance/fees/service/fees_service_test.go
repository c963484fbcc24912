// file: internals/features/finance/fees/service/fees_service_test.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	academicsModel "sekolahku_backend/internals/features/academics/model"
	"sekolahku_backend/internals/features/finance/fees/model"
	ledgerModel "sekolahku_backend/internals/features/finance/ledger/model"
	ledgerService "sekolahku_backend/internals/features/finance/ledger/service"
)

// Skema uji ditulis eksplisit: DDL produksi (AutoMigrate di Postgres) memakai
// gen_random_uuid()/now() yang tidak dikenal sqlite.
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

	for _, ddl := range []string{
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
			ledger_transaction_debit_idr INTEGER NOT NULL DEFAULT 0,
			ledger_transaction_credit_idr INTEGER NOT NULL DEFAULT 0,
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
			fee_session_amount_idr INTEGER NOT NULL,
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
			adhoc_fee_amount_idr INTEGER NOT NULL,
			adhoc_fee_due_date DATETIME NOT NULL,
			adhoc_fee_created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			adhoc_fee_updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	} {
		if err := db.Exec(ddl).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}

func seedScope(t *testing.T, db *gorm.DB) (studentID, yearID uuid.UUID) {
	t.Helper()
	year := academicsModel.AcademicYearModel{
		AcademicYearName:      "Tahun Ajaran 2526",
		AcademicYearCode:      "2526",
		AcademicYearStartDate: time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
		AcademicYearEndDate:   time.Date(2026, 6, 27, 0, 0, 0, 0, time.UTC),
		AcademicYearIsActive:  true,
	}
	if err := db.Create(&year).Error; err != nil {
		t.Fatalf("seed academic year: %v", err)
	}
	student := academicsModel.StudentModel{
		StudentName:            "Ahmad Fauzi",
		StudentAdmissionNumber: "2025-100",
		StudentIsActive:        true,
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return student.StudentID, year.AcademicYearID
}

func TestCreateFeeSessionPostsDebit(t *testing.T) {
	db := newTestDB(t)
	studentID, yearID := seedScope(t, db)
	store := ledgerService.NewLedgerStore(db)
	charges := NewChargeService(db, store)

	fee, txn, err := charges.CreateFeeSession(FeeSessionInput{
		StudentID:      studentID,
		AcademicYearID: yearID,
		Name:           "SPP Juli",
		AmountIDR:      150000,
		DueDate:        time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create fee session: %v", err)
	}
	if txn.LedgerTransactionEntryType != ledgerModel.EntryTypeFeeAssignment {
		t.Errorf("entry type = %q, want fee_assignment", txn.LedgerTransactionEntryType)
	}
	if txn.LedgerTransactionDebitIDR != 150000 {
		t.Errorf("debit = %d, want 150000", txn.LedgerTransactionDebitIDR)
	}
	if txn.LedgerTransactionReferenceID == nil || *txn.LedgerTransactionReferenceID != fee.FeeSessionID {
		t.Error("entri debit tidak bereferensi ke fee session")
	}
	if txn.LedgerTransactionReferenceKind == nil || *txn.LedgerTransactionReferenceKind != ledgerModel.ReferenceKindFeeSession {
		t.Error("reference kind salah")
	}
}

func TestCreateFeeSessionRollsBackOnLedgerFailure(t *testing.T) {
	db := newTestDB(t)
	studentID, _ := seedScope(t, db)
	store := ledgerService.NewLedgerStore(db)
	charges := NewChargeService(db, store)

	// tahun ajaran tidak ada → posting debit gagal → transaksi rollback,
	// record tagihan ikut hilang
	_, _, err := charges.CreateFeeSession(FeeSessionInput{
		StudentID:      studentID,
		AcademicYearID: uuid.New(),
		Name:           "SPP Juli",
		AmountIDR:      150000,
		DueDate:        time.Now(),
	})
	if !errors.Is(err, ledgerService.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	var count int64
	db.Model(&model.FeeSessionModel{}).Count(&count)
	if count != 0 {
		t.Errorf("fee session tersisa %d, want 0 (pembuatan tagihan tidak atomik)", count)
	}
}

func TestOutstandingFees(t *testing.T) {
	db := newTestDB(t)
	studentID, yearID := seedScope(t, db)
	store := ledgerService.NewLedgerStore(db)
	manual := ledgerService.NewManualEntryService(store)
	charges := NewChargeService(db, store)
	outstanding := NewOutstandingService(db)
	asOf := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	// tiga tagihan: satu overdue, satu belum, satu akan lunas penuh
	overdueFee, _, err := charges.CreateFeeSession(FeeSessionInput{
		StudentID: studentID, AcademicYearID: yearID,
		Name: "SPP Juli", AmountIDR: 150000,
		DueDate: time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("fee 1: %v", err)
	}
	if _, _, err := charges.CreateFeeSession(FeeSessionInput{
		StudentID: studentID, AcademicYearID: yearID,
		Name: "SPP September", AmountIDR: 150000,
		DueDate: time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("fee 2: %v", err)
	}
	paidFee, _, err := charges.CreateAdhocFee(AdhocFeeInput{
		StudentID: studentID, AcademicYearID: yearID,
		Name: "Buku paket", AmountIDR: 80000,
		DueDate: time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("fee 3: %v", err)
	}

	// bayar sebagian SPP Juli, lunas untuk buku paket
	cash := "cash"
	juliKind := ledgerModel.ReferenceKindFeeSession
	if _, err := manual.CreateManualEntry(ledgerService.ManualEntryInput{
		StudentID: studentID, AcademicYearID: yearID,
		EntryType: ledgerModel.EntryTypePaymentCash, AmountIDR: 50000,
		Description: "Cicilan SPP Juli", PaymentMethod: &cash,
		TransactionDate: asOf,
		ReferenceKind:   &juliKind, ReferenceID: &overdueFee.FeeSessionID,
	}); err != nil {
		t.Fatalf("bayar cicilan: %v", err)
	}
	bukuKind := ledgerModel.ReferenceKindAdhocFee
	if _, err := manual.CreateManualEntry(ledgerService.ManualEntryInput{
		StudentID: studentID, AcademicYearID: yearID,
		EntryType: ledgerModel.EntryTypePaymentCash, AmountIDR: 80000,
		Description: "Lunas buku paket", PaymentMethod: &cash,
		TransactionDate: asOf,
		ReferenceKind:   &bukuKind, ReferenceID: &paidFee.AdhocFeeID,
	}); err != nil {
		t.Fatalf("bayar lunas: %v", err)
	}

	items, err := outstanding.OutstandingFees(studentID, yearID, asOf)
	if err != nil {
		t.Fatalf("outstanding: %v", err)
	}
	// item lunas tidak muncul; sisanya urut jatuh tempo naik
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Description != "SPP Juli" {
		t.Errorf("item pertama = %q, want SPP Juli", items[0].Description)
	}
	if items[0].OutstandingIDR != 100000 || items[0].PaidIDR != 50000 {
		t.Errorf("SPP Juli outstanding/paid = %d/%d, want 100000/50000",
			items[0].OutstandingIDR, items[0].PaidIDR)
	}
	if !items[0].IsOverdue {
		t.Error("SPP Juli harus overdue per asOf")
	}
	if items[1].Description != "SPP September" || items[1].IsOverdue {
		t.Errorf("item kedua = %q overdue=%v, want SPP September belum overdue",
			items[1].Description, items[1].IsOverdue)
	}
}

func TestOutstandingIgnoresReversedPayments(t *testing.T) {
	db := newTestDB(t)
	studentID, yearID := seedScope(t, db)
	store := ledgerService.NewLedgerStore(db)
	manual := ledgerService.NewManualEntryService(store)
	charges := NewChargeService(db, store)
	outstanding := NewOutstandingService(db)
	reversalEngine := ledgerService.NewReversalEngine(store)
	asOf := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	fee, _, err := charges.CreateFeeSession(FeeSessionInput{
		StudentID: studentID, AcademicYearID: yearID,
		Name: "SPP Juli", AmountIDR: 100000,
		DueDate: time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("fee: %v", err)
	}

	cash := "cash"
	kind := ledgerModel.ReferenceKindFeeSession
	payment, err := manual.CreateManualEntry(ledgerService.ManualEntryInput{
		StudentID: studentID, AcademicYearID: yearID,
		EntryType: ledgerModel.EntryTypePaymentCash, AmountIDR: 100000,
		Description: "Lunas", PaymentMethod: &cash,
		TransactionDate: asOf,
		ReferenceKind:   &kind, ReferenceID: &fee.FeeSessionID,
	})
	if err != nil {
		t.Fatalf("bayar: %v", err)
	}

	// lunas → tidak ada tunggakan
	items, err := outstanding.OutstandingFees(studentID, yearID, asOf)
	if err != nil {
		t.Fatalf("outstanding: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("len(items) = %d, want 0", len(items))
	}

	// pembayaran dibatalkan → tunggakan muncul lagi utuh
	if _, err := reversalEngine.Reverse(payment.LedgerTransactionID, "cek kosong", uuid.New()); err != nil {
		t.Fatalf("reverse: %v", err)
	}
	items, err = outstanding.OutstandingFees(studentID, yearID, asOf)
	if err != nil {
		t.Fatalf("outstanding 2: %v", err)
	}
	if len(items) != 1 || items[0].OutstandingIDR != 100000 {
		t.Fatalf("items = %+v, want satu item outstanding 100000", items)
	}
}

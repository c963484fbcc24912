// file: internals/features/finance/ledger/service/manual_entry_test.go
package service

import (
	"errors"
	"testing"
	"time"

	"sekolahku_backend/internals/features/finance/ledger/model"
)

func TestCreateManualEntryPolarity(t *testing.T) {
	db := newTestDB(t)
	yearID := seedAcademicYear(t, db, "2526")
	studentID := seedStudent(t, db, "Indah", "2025-020")
	svc := NewManualEntryService(NewLedgerStore(db))

	// jenis debit: nominal masuk ke sisi debit
	fine, err := svc.CreateManualEntry(ManualEntryInput{
		StudentID:       studentID,
		AcademicYearID:  yearID,
		EntryType:       model.EntryTypeFine,
		AmountIDR:       1500,
		Description:     "Denda buku hilang",
		TransactionDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("fine: %v", err)
	}
	if fine.LedgerTransactionDebitIDR != 1500 || fine.LedgerTransactionCreditIDR != 0 {
		t.Errorf("fine debit/credit = %d/%d, want 1500/0",
			fine.LedgerTransactionDebitIDR, fine.LedgerTransactionCreditIDR)
	}

	// jenis kredit non-pembayaran: tidak butuh metode
	discount, err := svc.CreateManualEntry(ManualEntryInput{
		StudentID:       studentID,
		AcademicYearID:  yearID,
		EntryType:       model.EntryTypeDiscount,
		AmountIDR:       500,
		Description:     "Diskon saudara kandung",
		TransactionDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("discount: %v", err)
	}
	if discount.LedgerTransactionCreditIDR != 500 || discount.LedgerTransactionDebitIDR != 0 {
		t.Errorf("discount debit/credit = %d/%d, want 0/500",
			discount.LedgerTransactionDebitIDR, discount.LedgerTransactionCreditIDR)
	}
	if discount.LedgerTransactionBalanceAfterIDR != 1000 {
		t.Errorf("balance = %d, want 1000", discount.LedgerTransactionBalanceAfterIDR)
	}

	// jenis pembayaran: metode ikut tersimpan
	payment, err := svc.CreateManualEntry(ManualEntryInput{
		StudentID:       studentID,
		AcademicYearID:  yearID,
		EntryType:       model.EntryTypePaymentCash,
		AmountIDR:       1000,
		Description:     "Bayar tunai di kasir",
		PaymentMethod:   strPtr("cash"),
		TransactionDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if payment.LedgerTransactionPaymentMethod == nil || *payment.LedgerTransactionPaymentMethod != "cash" {
		t.Error("payment method tidak tersimpan")
	}
}

func TestCreateManualEntryRejections(t *testing.T) {
	db := newTestDB(t)
	yearID := seedAcademicYear(t, db, "2526")
	studentID := seedStudent(t, db, "Joko", "2025-021")
	svc := NewManualEntryService(NewLedgerStore(db))

	base := ManualEntryInput{
		StudentID:       studentID,
		AcademicYearID:  yearID,
		EntryType:       model.EntryTypeFeeAssignment,
		AmountIDR:       1000,
		Description:     "x",
		TransactionDate: time.Now(),
	}

	zero := base
	zero.AmountIDR = 0
	if _, err := svc.CreateManualEntry(zero); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("amount 0: err = %v, want ErrInvalidAmount", err)
	}

	negative := base
	negative.AmountIDR = -100
	if _, err := svc.CreateManualEntry(negative); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("amount negatif: err = %v, want ErrInvalidAmount", err)
	}

	blank := base
	blank.Description = "  "
	if _, err := svc.CreateManualEntry(blank); !errors.Is(err, ErrValidation) {
		t.Errorf("deskripsi kosong: err = %v, want ErrValidation", err)
	}

	unknown := base
	unknown.EntryType = "transfer_antar_planet"
	if _, err := svc.CreateManualEntry(unknown); !errors.Is(err, ErrUnknownEntryType) {
		t.Errorf("entry type asing: err = %v, want ErrUnknownEntryType", err)
	}

	reversal := base
	reversal.EntryType = model.EntryTypeReversal
	if _, err := svc.CreateManualEntry(reversal); !errors.Is(err, ErrValidation) {
		t.Errorf("reversal manual: err = %v, want ErrValidation", err)
	}

	payment := base
	payment.EntryType = model.EntryTypePaymentBankTransfer
	if _, err := svc.CreateManualEntry(payment); !errors.Is(err, ErrMissingPaymentMethod) {
		t.Errorf("payment tanpa metode: err = %v, want ErrMissingPaymentMethod", err)
	}
}

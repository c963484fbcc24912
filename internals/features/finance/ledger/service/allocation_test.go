// file: internals/features/finance/ledger/service/allocation_test.go
package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/finance/ledger/model"
)

func feeItem(desc string, outstanding int64, dueDate time.Time, overdue bool) OutstandingFeeItem {
	return OutstandingFeeItem{
		ID:             uuid.New(),
		FeeKind:        model.ReferenceKindFeeSession,
		Description:    desc,
		TotalIDR:       outstanding,
		OutstandingIDR: outstanding,
		DueDate:        dueDate,
		IsOverdue:      overdue,
	}
}

func TestAutoAllocateOverdueFirst(t *testing.T) {
	engine := NewAllocationEngine(nil)
	now := time.Now()

	// input sengaja dibalik: item belum jatuh tempo duluan
	items := []OutstandingFeeItem{
		feeItem("SPP Agustus", 3000, now.Add(30*24*time.Hour), false),
		feeItem("SPP Juli", 3000, now.Add(-10*24*time.Hour), true),
	}

	allocs := engine.AutoAllocate(6000, items)
	if len(allocs) != 2 {
		t.Fatalf("len(allocs) = %d, want 2", len(allocs))
	}
	if allocs[0].Item.Description != "SPP Juli" {
		t.Errorf("alokasi pertama = %q, want SPP Juli (overdue duluan)", allocs[0].Item.Description)
	}
	if allocs[0].AmountIDR != 3000 || allocs[1].AmountIDR != 3000 {
		t.Errorf("alokasi = %d/%d, want 3000/3000", allocs[0].AmountIDR, allocs[1].AmountIDR)
	}
}

func TestAutoAllocatePartialAndOrdering(t *testing.T) {
	engine := NewAllocationEngine(nil)
	now := time.Now()

	items := []OutstandingFeeItem{
		feeItem("Seragam", 2000, now.Add(14*24*time.Hour), false),
		feeItem("SPP Juli", 3000, now.Add(-20*24*time.Hour), true),
		feeItem("SPP Agustus", 3000, now.Add(-5*24*time.Hour), true),
	}

	// 4.000: SPP Juli (overdue paling awal) penuh, SPP Agustus sebagian
	allocs := engine.AutoAllocate(4000, items)
	if len(allocs) != 2 {
		t.Fatalf("len(allocs) = %d, want 2", len(allocs))
	}
	if allocs[0].Item.Description != "SPP Juli" || allocs[0].AmountIDR != 3000 {
		t.Errorf("alokasi pertama %q/%d, want SPP Juli/3000", allocs[0].Item.Description, allocs[0].AmountIDR)
	}
	if allocs[1].Item.Description != "SPP Agustus" || allocs[1].AmountIDR != 1000 {
		t.Errorf("alokasi kedua %q/%d, want SPP Agustus/1000", allocs[1].Item.Description, allocs[1].AmountIDR)
	}

	// nominal melebihi seluruh tunggakan: alokasi berhenti di total item
	allocs = engine.AutoAllocate(100000, items)
	var sum int64
	for _, a := range allocs {
		sum += a.AmountIDR
	}
	if sum != 8000 {
		t.Errorf("total alokasi = %d, want 8000", sum)
	}

	// nominal 0: tidak ada alokasi
	if got := engine.AutoAllocate(0, items); len(got) != 0 {
		t.Errorf("alokasi nominal 0 = %d item, want 0", len(got))
	}
}

func TestValidateAllocation(t *testing.T) {
	engine := NewAllocationEngine(nil)
	now := time.Now()
	item := feeItem("SPP", 3000, now, true)

	// persis sama: valid
	if err := engine.ValidateAllocation(3000, []Allocation{{Item: item, AmountIDR: 3000}}); err != nil {
		t.Errorf("alokasi persis: err = %v, want nil", err)
	}

	// kurang: IncompleteAllocationError dengan sisa yang benar
	err := engine.ValidateAllocation(3000, []Allocation{{Item: item, AmountIDR: 2000}})
	var incomplete *IncompleteAllocationError
	if !errors.As(err, &incomplete) {
		t.Fatalf("err = %v, want IncompleteAllocationError", err)
	}
	if incomplete.UnallocatedIDR != 1000 {
		t.Errorf("UnallocatedIDR = %d, want 1000", incomplete.UnallocatedIDR)
	}

	// lebih: OverAllocationError — dua item masing-masing masih dalam batas
	other := feeItem("Seragam", 3000, now, false)
	err = engine.ValidateAllocation(3000, []Allocation{
		{Item: item, AmountIDR: 2000},
		{Item: other, AmountIDR: 2000},
	})
	var over *OverAllocationError
	if !errors.As(err, &over) {
		t.Fatalf("err = %v, want OverAllocationError", err)
	}
	if over.ExcessIDR != 1000 {
		t.Errorf("ExcessIDR = %d, want 1000", over.ExcessIDR)
	}

	// melebihi tunggakan per item
	err = engine.ValidateAllocation(5000, []Allocation{{Item: item, AmountIDR: 5000}})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("melebihi tunggakan: err = %v, want ErrValidation", err)
	}

	// dua alokasi ke item yang sama: batas tunggakan dihitung agregat,
	// masing-masing di bawah batas tidak cukup
	err = engine.ValidateAllocation(6000, []Allocation{
		{Item: item, AmountIDR: 3000},
		{Item: item, AmountIDR: 3000},
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("alokasi ganda melebihi tunggakan: err = %v, want ErrValidation", err)
	}

	// alokasi ganda yang totalnya masih dalam batas tetap valid
	if err := engine.ValidateAllocation(3000, []Allocation{
		{Item: item, AmountIDR: 1000},
		{Item: item, AmountIDR: 2000},
	}); err != nil {
		t.Errorf("alokasi ganda dalam batas: err = %v, want nil", err)
	}

	// alokasi nol
	err = engine.ValidateAllocation(3000, []Allocation{{Item: item, AmountIDR: 0}})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("alokasi 0: err = %v, want ErrValidation", err)
	}

	// set kosong tidak pernah valid
	err = engine.ValidateAllocation(3000, nil)
	if !errors.As(err, &incomplete) {
		t.Errorf("set kosong: err = %v, want IncompleteAllocationError", err)
	}

	// nominal tidak positif
	if err := engine.ValidateAllocation(0, nil); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("nominal 0: err = %v, want ErrInvalidAmount", err)
	}
}

func TestCommitAllocation(t *testing.T) {
	db := newTestDB(t)
	yearID := seedAcademicYear(t, db, "2526")
	studentID := seedStudent(t, db, "Nadia", "2025-040")
	store := NewLedgerStore(db)
	engine := NewAllocationEngine(store)
	now := time.Now()

	// dua tagihan debit sebagai konteks saldo
	if _, err := store.Append(debitInput(studentID, yearID, 3000, "SPP Juli")); err != nil {
		t.Fatalf("debit 1: %v", err)
	}
	if _, err := store.Append(debitInput(studentID, yearID, 3000, "SPP Agustus")); err != nil {
		t.Fatalf("debit 2: %v", err)
	}

	items := []OutstandingFeeItem{
		feeItem("SPP Juli", 3000, now.Add(-10*24*time.Hour), true),
		feeItem("SPP Agustus", 3000, now.Add(20*24*time.Hour), false),
	}
	allocs := engine.AutoAllocate(6000, items)

	in := PaymentInput{
		StudentID:      studentID,
		AcademicYearID: yearID,
		AmountIDR:      6000,
		EntryType:      model.EntryTypePaymentBankTransfer,
		PaymentMethod:  strPtr("bank_transfer"),
	}
	txns, err := engine.CommitAllocation(in, allocs)
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("len(txns) = %d, want 2 (satu kredit per item)", len(txns))
	}
	var totalCredit int64
	for _, txn := range txns {
		totalCredit += txn.LedgerTransactionCreditIDR
		if txn.LedgerTransactionReferenceID == nil {
			t.Error("kredit alokasi tanpa reference id")
		}
		if txn.LedgerTransactionEntryType != model.EntryTypePaymentBankTransfer {
			t.Errorf("entry type = %q", txn.LedgerTransactionEntryType)
		}
	}
	if totalCredit != 6000 {
		t.Errorf("total kredit = %d, want 6000", totalCredit)
	}
	if txns[1].LedgerTransactionBalanceAfterIDR != 0 {
		t.Errorf("saldo akhir = %d, want 0", txns[1].LedgerTransactionBalanceAfterIDR)
	}
}

func TestCommitAllocationRejections(t *testing.T) {
	db := newTestDB(t)
	yearID := seedAcademicYear(t, db, "2526")
	studentID := seedStudent(t, db, "Omar", "2025-041")
	engine := NewAllocationEngine(NewLedgerStore(db))
	now := time.Now()

	item := feeItem("SPP", 3000, now, true)
	allocs := []Allocation{{Item: item, AmountIDR: 3000}}

	// entry type bukan pembayaran
	_, err := engine.CommitAllocation(PaymentInput{
		StudentID: studentID, AcademicYearID: yearID,
		AmountIDR: 3000, EntryType: model.EntryTypeDiscount,
		PaymentMethod: strPtr("cash"),
	}, allocs)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("non-payment: err = %v, want ErrValidation", err)
	}

	// tanpa metode pembayaran
	_, err = engine.CommitAllocation(PaymentInput{
		StudentID: studentID, AcademicYearID: yearID,
		AmountIDR: 3000, EntryType: model.EntryTypePaymentCash,
	}, allocs)
	if !errors.Is(err, ErrMissingPaymentMethod) {
		t.Errorf("tanpa metode: err = %v, want ErrMissingPaymentMethod", err)
	}

	// jumlah tidak persis
	var incomplete *IncompleteAllocationError
	_, err = engine.CommitAllocation(PaymentInput{
		StudentID: studentID, AcademicYearID: yearID,
		AmountIDR: 5000, EntryType: model.EntryTypePaymentCash,
		PaymentMethod: strPtr("cash"),
	}, allocs)
	if !errors.As(err, &incomplete) {
		t.Errorf("kurang alokasi: err = %v, want IncompleteAllocationError", err)
	}

	// tidak ada baris yang sempat tertulis
	var count int64
	db.Table("ledger_transactions").Count(&count)
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

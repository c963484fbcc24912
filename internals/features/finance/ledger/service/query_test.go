// file: internals/features/finance/ledger/service/query_test.go
package service

import (
	"testing"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/finance/ledger/model"
	helper "sekolahku_backend/internals/helpers"
)

func TestGetSummaryIncludesReversalPair(t *testing.T) {
	db := newTestDB(t)
	yearID := seedAcademicYear(t, db, "2526")
	studentID := seedStudent(t, db, "Putri", "2025-050")
	store := NewLedgerStore(db)
	engine := NewReversalEngine(store)
	query := NewLedgerQueryService(db, store)

	if _, err := store.Append(debitInput(studentID, yearID, 10000, "SPP Juli")); err != nil {
		t.Fatalf("debit: %v", err)
	}
	payment, err := store.Append(creditInput(studentID, yearID, 4000, "Bayar tunai"))
	if err != nil {
		t.Fatalf("credit: %v", err)
	}
	if _, err := engine.Reverse(payment.LedgerTransactionID, "salah nominal", uuid.New()); err != nil {
		t.Fatalf("reverse: %v", err)
	}

	s, err := query.GetSummary(studentID, &yearID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	// kedua kaki pasangan reversal ikut dihitung: pembatalan kredit 4.000
	// menambah sisi debit, bukan menghapus baris
	if s.TotalDebitsIDR != 14000 {
		t.Errorf("total debit = %d, want 14000", s.TotalDebitsIDR)
	}
	if s.TotalCreditsIDR != 4000 {
		t.Errorf("total kredit = %d, want 4000", s.TotalCreditsIDR)
	}
	if s.CurrentBalanceIDR != 10000 {
		t.Errorf("saldo = %d, want 10000", s.CurrentBalanceIDR)
	}
	if s.TransactionCount != 3 {
		t.Errorf("jumlah transaksi = %d, want 3", s.TransactionCount)
	}

	// saldo summary konsisten dengan saldo berjalan baris terakhir
	balance, err := store.GetLatestBalance(studentID, yearID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != s.CurrentBalanceIDR {
		t.Errorf("saldo berjalan %d != saldo summary %d", balance, s.CurrentBalanceIDR)
	}
}

func TestSearch(t *testing.T) {
	db := newTestDB(t)
	yearID := seedAcademicYear(t, db, "2526")
	rina := seedStudent(t, db, "Rina Kusuma", "2025-051")
	sari := seedStudent(t, db, "Sari Dewi", "2025-052")
	store := NewLedgerStore(db)
	query := NewLedgerQueryService(db, store)

	if _, err := store.Append(debitInput(rina, yearID, 1000, "SPP Juli")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := store.Append(debitInput(sari, yearID, 2000, "Uang gedung")); err != nil {
		t.Fatalf("append: %v", err)
	}

	p := helper.Params{Page: 1, PerPage: 10, SortBy: "created_at", SortOrder: "desc"}

	// nama siswa, case-insensitive
	rows, total, err := query.Search("rina", SearchFilter{}, p)
	if err != nil {
		t.Fatalf("search nama: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("search nama: total=%d len=%d, want 1/1", total, len(rows))
	}
	if rows[0].StudentName != "Rina Kusuma" {
		t.Errorf("student name = %q", rows[0].StudentName)
	}

	// nomor transaksi
	rows, total, err = query.Search("txn/2526/000002", SearchFilter{}, p)
	if err != nil {
		t.Fatalf("search nomor: %v", err)
	}
	if total != 1 || rows[0].LedgerTransactionStudentID != sari {
		t.Errorf("search nomor: total=%d, want transaksi milik Sari", total)
	}

	// deskripsi
	_, total, err = query.Search("gedung", SearchFilter{}, p)
	if err != nil {
		t.Fatalf("search deskripsi: %v", err)
	}
	if total != 1 {
		t.Errorf("search deskripsi: total=%d, want 1", total)
	}

	// nomor induk
	_, total, err = query.Search("2025-051", SearchFilter{}, p)
	if err != nil {
		t.Fatalf("search nomor induk: %v", err)
	}
	if total != 1 {
		t.Errorf("search nomor induk: total=%d, want 1", total)
	}

	// tidak cocok
	_, total, err = query.Search("zzz-tidak-ada", SearchFilter{}, p)
	if err != nil {
		t.Fatalf("search kosong: %v", err)
	}
	if total != 0 {
		t.Errorf("search kosong: total=%d, want 0", total)
	}
}

func TestGetStatistics(t *testing.T) {
	db := newTestDB(t)
	yearID := seedAcademicYear(t, db, "2526")
	studentID := seedStudent(t, db, "Tia", "2025-053")
	store := NewLedgerStore(db)
	query := NewLedgerQueryService(db, store)

	if _, err := store.Append(debitInput(studentID, yearID, 5000, "SPP")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := store.Append(debitInput(studentID, yearID, 2000, "Seragam")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := store.Append(creditInput(studentID, yearID, 3000, "Bayar")); err != nil {
		t.Fatalf("append: %v", err)
	}

	stats, err := query.GetStatistics(&yearID)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	if stats.TotalDebitsIDR != 7000 || stats.TotalCreditsIDR != 3000 {
		t.Errorf("debit/kredit = %d/%d, want 7000/3000", stats.TotalDebitsIDR, stats.TotalCreditsIDR)
	}
	if stats.OutstandingIDR != 4000 {
		t.Errorf("outstanding = %d, want 4000", stats.OutstandingIDR)
	}
	if stats.TransactionCount != 3 {
		t.Errorf("count = %d, want 3", stats.TransactionCount)
	}

	byType := map[model.EntryType]EntryTypeBreakdown{}
	for _, b := range stats.ByEntryType {
		byType[b.EntryType] = b
	}
	if b := byType[model.EntryTypeFeeAssignment]; b.Count != 2 || b.TotalDebitsIDR != 7000 {
		t.Errorf("fee_assignment breakdown = %+v", b)
	}
	if b := byType[model.EntryTypePaymentCash]; b.Count != 1 || b.TotalCreditsIDR != 3000 {
		t.Errorf("payment_cash breakdown = %+v", b)
	}
}

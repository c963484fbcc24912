// file: internals/features/finance/ledger/service/query.go
package service

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/ledger/model"
	helper "sekolahku_backend/internals/helpers"
)

// LedgerQueryService: proyeksi read-only di atas store. Tidak pernah menulis;
// saldo selalu dibaca dari kolom balance_after, tidak dihitung ulang di klien.
type LedgerQueryService struct {
	DB    *gorm.DB
	Store *LedgerStore
}

func NewLedgerQueryService(db *gorm.DB, store *LedgerStore) *LedgerQueryService {
	return &LedgerQueryService{DB: db, Store: store}
}

// LedgerSummary dihitung dari SELURUH baris sebagaimana terposting. Pasangan
// transaksi + reversal-nya menaikkan total debit dan kredit dengan nominal
// yang sama sehingga saldo netral — keduanya tetap dihitung, tidak
// dikecualikan (mengecualikan pasangan justru mengurangi dua kali).
type LedgerSummary struct {
	TotalDebitsIDR    int64 `json:"total_debits_idr"`
	TotalCreditsIDR   int64 `json:"total_credits_idr"`
	CurrentBalanceIDR int64 `json:"current_balance_idr"`
	TransactionCount  int64 `json:"transaction_count"`
}

func (q *LedgerQueryService) GetSummary(studentID uuid.UUID, yearID *uuid.UUID) (LedgerSummary, error) {
	var s LedgerSummary
	db := q.DB.Model(&model.LedgerTransactionModel{}).
		Where("ledger_transaction_student_id = ?", studentID)
	if yearID != nil {
		db = db.Where("ledger_transaction_academic_year_id = ?", *yearID)
	}
	row := db.Select(
		"COALESCE(SUM(ledger_transaction_debit_idr), 0) AS total_debits_idr, " +
			"COALESCE(SUM(ledger_transaction_credit_idr), 0) AS total_credits_idr, " +
			"COUNT(*) AS transaction_count",
	).Row()
	if err := row.Scan(&s.TotalDebitsIDR, &s.TotalCreditsIDR, &s.TransactionCount); err != nil {
		return LedgerSummary{}, err
	}
	s.CurrentBalanceIDR = s.TotalDebitsIDR - s.TotalCreditsIDR
	return s, nil
}

// GetStudentLedgerDetail menggabungkan summary + timeline untuk layar detail siswa.
func (q *LedgerQueryService) GetStudentLedgerDetail(studentID uuid.UUID, f TimelineFilter, p helper.Params) (LedgerSummary, []model.LedgerTransactionModel, int64, error) {
	summary, err := q.GetSummary(studentID, f.AcademicYearID)
	if err != nil {
		return LedgerSummary{}, nil, 0, err
	}
	rows, total, err := q.Store.GetTimeline(studentID, f, p)
	if err != nil {
		return LedgerSummary{}, nil, 0, err
	}
	return summary, rows, total, nil
}

type SearchFilter struct {
	AcademicYearID *uuid.UUID
	EntryType      *model.EntryType
}

// SearchRow: transaksi + identitas siswa untuk hasil pencarian lintas siswa.
type SearchRow struct {
	model.LedgerTransactionModel
	StudentName            string `gorm:"column:student_name" json:"student_name"`
	StudentAdmissionNumber string `gorm:"column:student_admission_number" json:"student_admission_number"`
}

// Search mencocokkan substring (case-insensitive) pada nomor transaksi,
// deskripsi, nama siswa, atau nomor induk.
func (q *LedgerQueryService) Search(query string, f SearchFilter, p helper.Params) ([]SearchRow, int64, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	base := q.DB.Table("ledger_transactions").
		Joins("JOIN students ON students.student_id = ledger_transactions.ledger_transaction_student_id").
		Where(
			"LOWER(ledger_transactions.ledger_transaction_number) LIKE ? OR "+
				"LOWER(ledger_transactions.ledger_transaction_description) LIKE ? OR "+
				"LOWER(students.student_name) LIKE ? OR "+
				"LOWER(students.student_admission_number) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	if f.AcademicYearID != nil {
		base = base.Where("ledger_transactions.ledger_transaction_academic_year_id = ?", *f.AcademicYearID)
	}
	if f.EntryType != nil {
		base = base.Where("ledger_transactions.ledger_transaction_entry_type = ?", *f.EntryType)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []SearchRow
	if err := base.
		Select("ledger_transactions.*, students.student_name, students.student_admission_number").
		Order("ledger_transactions.ledger_transaction_created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

type EntryTypeBreakdown struct {
	EntryType       model.EntryType `gorm:"column:ledger_transaction_entry_type" json:"entry_type"`
	Count           int64           `gorm:"column:entry_count" json:"count"`
	TotalDebitsIDR  int64           `gorm:"column:total_debits_idr" json:"total_debits_idr"`
	TotalCreditsIDR int64           `gorm:"column:total_credits_idr" json:"total_credits_idr"`
}

type LedgerStatistics struct {
	TotalDebitsIDR   int64                `json:"total_debits_idr"`
	TotalCreditsIDR  int64                `json:"total_credits_idr"`
	OutstandingIDR   int64                `json:"outstanding_idr"`
	TransactionCount int64                `json:"transaction_count"`
	ByEntryType      []EntryTypeBreakdown `json:"by_entry_type"`
}

// GetStatistics: agregat sistem + rincian per entry type, opsional per tahun ajaran.
func (q *LedgerQueryService) GetStatistics(yearID *uuid.UUID) (LedgerStatistics, error) {
	var out LedgerStatistics

	db := q.DB.Model(&model.LedgerTransactionModel{})
	if yearID != nil {
		db = db.Where("ledger_transaction_academic_year_id = ?", *yearID)
	}

	row := db.Session(&gorm.Session{}).Select(
		"COALESCE(SUM(ledger_transaction_debit_idr), 0) AS total_debits_idr, " +
			"COALESCE(SUM(ledger_transaction_credit_idr), 0) AS total_credits_idr, " +
			"COUNT(*) AS transaction_count",
	).Row()
	if err := row.Scan(&out.TotalDebitsIDR, &out.TotalCreditsIDR, &out.TransactionCount); err != nil {
		return LedgerStatistics{}, err
	}
	out.OutstandingIDR = out.TotalDebitsIDR - out.TotalCreditsIDR

	if err := db.Session(&gorm.Session{}).
		Select(
			"ledger_transaction_entry_type, " +
				"COUNT(*) AS entry_count, " +
				"COALESCE(SUM(ledger_transaction_debit_idr), 0) AS total_debits_idr, " +
				"COALESCE(SUM(ledger_transaction_credit_idr), 0) AS total_credits_idr",
		).
		Group("ledger_transaction_entry_type").
		Order("ledger_transaction_entry_type ASC").
		Scan(&out.ByEntryType).Error; err != nil {
		return LedgerStatistics{}, err
	}
	return out, nil
}

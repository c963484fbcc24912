// file: internals/features/finance/ledger/service/store.go
package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	academicsService "sekolahku_backend/internals/features/academics/service"
	"sekolahku_backend/internals/features/finance/ledger/model"
	helper "sekolahku_backend/internals/helpers"
)

// LedgerStore: satu-satunya sumber kebenaran riwayat transaksi & saldo berjalan.
//
// Append adalah read-modify-write (urutan + saldo dari baris terakhir), jadi
// harus serial per (student, academic year). Serialisasi: mutex per pasangan
// di proses ini + unique index (academic_year_id, sequence) sebagai pagar
// lintas proses, dengan retry terbatas saat bentrok.
type LedgerStore struct {
	DB *gorm.DB

	locks sync.Map // "studentID|yearID" → *sync.Mutex
}

func NewLedgerStore(db *gorm.DB) *LedgerStore {
	return &LedgerStore{DB: db}
}

const maxAppendRetries = 3

type AppendInput struct {
	StudentID      uuid.UUID
	AcademicYearID uuid.UUID
	EntryType      model.EntryType

	DebitIDR  int64
	CreditIDR int64

	Description string
	Remarks     *string

	PaymentMethod    *string
	PaymentReference *string

	ReferenceKind *model.ReferenceKind
	ReferenceID   *uuid.UUID

	// hanya diisi oleh reversal engine
	ReversesID *uuid.UUID

	Date      time.Time
	CreatedBy *uuid.UUID
	Meta      datatypes.JSONMap
}

func (in *AppendInput) validate() error {
	if in.StudentID == uuid.Nil || in.AcademicYearID == uuid.Nil {
		return fmt.Errorf("%w: student dan academic year wajib diisi", ErrValidation)
	}
	if in.DebitIDR < 0 || in.CreditIDR < 0 {
		return fmt.Errorf("%w: nominal tidak boleh negatif", ErrValidation)
	}
	// invariant: tepat satu sisi yang > 0
	if (in.DebitIDR > 0) == (in.CreditIDR > 0) {
		return fmt.Errorf("%w: tepat satu dari debit/kredit harus lebih dari nol", ErrValidation)
	}
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("%w: deskripsi wajib diisi", ErrValidation)
	}
	if _, ok := model.LookupEntryType(in.EntryType); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEntryType, in.EntryType)
	}
	if in.ReferenceKind != nil && !in.ReferenceKind.Valid() {
		return fmt.Errorf("%w: reference kind %q tidak dikenal", ErrValidation, *in.ReferenceKind)
	}
	if (in.ReferenceKind == nil) != (in.ReferenceID == nil) {
		return fmt.Errorf("%w: reference kind dan reference id harus diisi berpasangan", ErrValidation)
	}
	return nil
}

func (s *LedgerStore) lockFor(studentID, yearID uuid.UUID) *sync.Mutex {
	key := studentID.String() + "|" + yearID.String()
	v, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return v.(*sync.Mutex)
}

// Serialized menjalankan fn dalam satu transaksi DB di bawah kunci per
// (student, academic year). Bentrok unique index di-retry terbatas; seluruh
// transaksi di-rollback sebelum retry, jadi tidak pernah ada hasil parsial.
func (s *LedgerStore) Serialized(studentID, yearID uuid.UUID, fn func(tx *gorm.DB) error) error {
	mu := s.lockFor(studentID, yearID)
	mu.Lock()
	defer mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxAppendRetries; attempt++ {
		lastErr = s.DB.Transaction(fn)
		if lastErr == nil {
			return nil
		}
		if !isUniqueViolation(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("%w: %v", ErrConcurrencyConflict, lastErr)
}

// AppendTx menambahkan satu baris di dalam transaksi DB milik pemanggil.
// Pemanggil wajib berada di dalam Serialized untuk scope yang sama.
func (s *LedgerStore) AppendTx(tx *gorm.DB, in AppendInput) (*model.LedgerTransactionModel, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	student, err := academicsService.GetStudent(tx, in.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("%w: student %s", ErrNotFound, in.StudentID)
	}
	year, err := academicsService.GetAcademicYear(tx, in.AcademicYearID)
	if err != nil {
		return nil, err
	}
	if year == nil {
		return nil, fmt.Errorf("%w: academic year %s", ErrNotFound, in.AcademicYearID)
	}

	seq, err := s.lastSequenceTx(tx, in.AcademicYearID)
	if err != nil {
		return nil, err
	}
	balance, err := s.latestBalanceTx(tx, in.StudentID, in.AcademicYearID)
	if err != nil {
		return nil, err
	}

	seq++
	balance += in.DebitIDR - in.CreditIDR

	row := model.LedgerTransactionModel{
		LedgerTransactionNumber:           model.FormatTransactionNumber(year.AcademicYearCode, seq),
		LedgerTransactionSequence:         seq,
		LedgerTransactionStudentID:        in.StudentID,
		LedgerTransactionAcademicYearID:   in.AcademicYearID,
		LedgerTransactionEntryType:        in.EntryType,
		LedgerTransactionDebitIDR:         in.DebitIDR,
		LedgerTransactionCreditIDR:        in.CreditIDR,
		LedgerTransactionBalanceAfterIDR:  balance,
		LedgerTransactionDescription:      strings.TrimSpace(in.Description),
		LedgerTransactionRemarks:          in.Remarks,
		LedgerTransactionPaymentMethod:    in.PaymentMethod,
		LedgerTransactionPaymentReference: in.PaymentReference,
		LedgerTransactionReferenceKind:    in.ReferenceKind,
		LedgerTransactionReferenceID:      in.ReferenceID,
		LedgerTransactionReversesID:       in.ReversesID,
		LedgerTransactionDate:             in.Date,
		LedgerTransactionCreatedBy:        in.CreatedBy,
		LedgerTransactionMeta:             in.Meta,
	}
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Append menambahkan satu transaksi (jalur umum).
func (s *LedgerStore) Append(in AppendInput) (*model.LedgerTransactionModel, error) {
	out, err := s.AppendGroup(in.StudentID, in.AcademicYearID, []AppendInput{in})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// AppendGroup menambahkan beberapa transaksi sebagai satu unit atomik
// (dipakai commit alokasi pembayaran). Semua masuk atau tidak sama sekali.
func (s *LedgerStore) AppendGroup(studentID, yearID uuid.UUID, ins []AppendInput) ([]*model.LedgerTransactionModel, error) {
	if len(ins) == 0 {
		return nil, fmt.Errorf("%w: tidak ada transaksi untuk ditambahkan", ErrValidation)
	}
	for i := range ins {
		if ins[i].StudentID != studentID || ins[i].AcademicYearID != yearID {
			return nil, fmt.Errorf("%w: seluruh grup harus untuk student dan tahun ajaran yang sama", ErrValidation)
		}
		if err := ins[i].validate(); err != nil {
			return nil, err
		}
	}

	var out []*model.LedgerTransactionModel
	err := s.Serialized(studentID, yearID, func(tx *gorm.DB) error {
		out = out[:0]
		for i := range ins {
			row, err := s.AppendTx(tx, ins[i])
			if err != nil {
				return err
			}
			out = append(out, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID memuat satu transaksi.
func (s *LedgerStore) GetByID(id uuid.UUID) (*model.LedgerTransactionModel, error) {
	var m model.LedgerTransactionModel
	if err := s.DB.First(&m, "ledger_transaction_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: transaksi %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &m, nil
}

// GetLatestBalance: saldo berjalan dari baris terakhir, bukan re-sum riwayat.
func (s *LedgerStore) GetLatestBalance(studentID, yearID uuid.UUID) (int64, error) {
	return s.latestBalanceTx(s.DB, studentID, yearID)
}

type TimelineFilter struct {
	AcademicYearID *uuid.UUID
	EntryType      *model.EntryType
	DateFrom       *time.Time
	DateTo         *time.Time
}

// GetTimeline: urut kronologis (sequence naik), halaman bebas diminta ulang —
// hasilnya snapshot saat dibaca, bukan cursor hidup. Sequence hanya unik per
// tahun ajaran, jadi tanpa filter tahun baris dikelompokkan per tahun dulu
// supaya urutannya tetap deterministik.
func (s *LedgerStore) GetTimeline(studentID uuid.UUID, f TimelineFilter, p helper.Params) ([]model.LedgerTransactionModel, int64, error) {
	q := s.timelineQuery(studentID, f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.LedgerTransactionModel
	if err := q.
		Order("ledger_transaction_academic_year_id ASC").
		Order("ledger_transaction_sequence ASC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *LedgerStore) timelineQuery(studentID uuid.UUID, f TimelineFilter) *gorm.DB {
	q := s.DB.Model(&model.LedgerTransactionModel{}).
		Where("ledger_transaction_student_id = ?", studentID)
	if f.AcademicYearID != nil {
		q = q.Where("ledger_transaction_academic_year_id = ?", *f.AcademicYearID)
	}
	if f.EntryType != nil {
		q = q.Where("ledger_transaction_entry_type = ?", *f.EntryType)
	}
	if f.DateFrom != nil {
		q = q.Where("ledger_transaction_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("ledger_transaction_date <= ?", *f.DateTo)
	}
	return q
}

// MarkReversedTx: satu-satunya jalur mutasi pasca-insert. Transisi
// is_reversed false→true tepat sekali; percobaan kedua gagal.
func (s *LedgerStore) MarkReversedTx(tx *gorm.DB, originalID, reversalID uuid.UUID, reversedBy *uuid.UUID, reversedAt time.Time) error {
	res := tx.Model(&model.LedgerTransactionModel{}).
		Where("ledger_transaction_id = ? AND ledger_transaction_is_reversed = ?", originalID, false).
		Updates(map[string]any{
			"ledger_transaction_is_reversed": true,
			"ledger_transaction_reversed_by": reversedBy,
			"ledger_transaction_reversed_at": reversedAt,
			"ledger_transaction_reversal_id": reversalID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&model.LedgerTransactionModel{}).
			Where("ledger_transaction_id = ?", originalID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: transaksi %s", ErrNotFound, originalID)
		}
		return ErrAlreadyReversed
	}
	return nil
}

// MarkReversed versi non-tx (dipakai langsung oleh pemanggil tanpa grup).
func (s *LedgerStore) MarkReversed(originalID, reversalID uuid.UUID, reversedBy *uuid.UUID, reversedAt time.Time) error {
	return s.MarkReversedTx(s.DB, originalID, reversalID, reversedBy, reversedAt)
}

func (s *LedgerStore) lastSequenceTx(tx *gorm.DB, yearID uuid.UUID) (int64, error) {
	var seq int64
	err := tx.Model(&model.LedgerTransactionModel{}).
		Where("ledger_transaction_academic_year_id = ?", yearID).
		Select("COALESCE(MAX(ledger_transaction_sequence), 0)").
		Scan(&seq).Error
	return seq, err
}

func (s *LedgerStore) latestBalanceTx(tx *gorm.DB, studentID, yearID uuid.UUID) (int64, error) {
	var last model.LedgerTransactionModel
	err := tx.
		Where("ledger_transaction_student_id = ? AND ledger_transaction_academic_year_id = ?", studentID, yearID).
		Order("ledger_transaction_sequence DESC").
		Limit(1).
		Find(&last).Error
	if err != nil {
		return 0, err
	}
	if last.LedgerTransactionID == uuid.Nil {
		return 0, nil // siswa/tahun baru: saldo awal 0
	}
	return last.LedgerTransactionBalanceAfterIDR, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	// sqlite (dipakai di test)
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// file: internals/features/finance/ledger/model/ledger_transaction_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// =========================================================
// MODEL — buku besar siswa, append-only.
// Tidak ada soft delete: koreksi hanya lewat entri reversal.
// Satu-satunya mutasi pasca-insert adalah flag is_reversed
// beserta reversed_by/reversed_at/reversal_id, sekali saja.
// =========================================================

type LedgerTransactionModel struct {
	// PK
	LedgerTransactionID uuid.UUID `gorm:"column:ledger_transaction_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"ledger_transaction_id"`

	// Nomor transaksi: TXN/<kode tahun>/<6 digit urut>, unik per tahun ajaran
	LedgerTransactionNumber   string `gorm:"column:ledger_transaction_number;type:varchar(32);not null;uniqueIndex" json:"ledger_transaction_number"`
	LedgerTransactionSequence int64  `gorm:"column:ledger_transaction_sequence;not null;uniqueIndex:uniq_ledger_year_sequence,priority:2" json:"ledger_transaction_sequence"`

	// Scope
	LedgerTransactionStudentID      uuid.UUID `gorm:"column:ledger_transaction_student_id;type:uuid;not null;index:ix_ledger_student_year,priority:1" json:"ledger_transaction_student_id"`
	LedgerTransactionAcademicYearID uuid.UUID `gorm:"column:ledger_transaction_academic_year_id;type:uuid;not null;index:ix_ledger_student_year,priority:2;uniqueIndex:uniq_ledger_year_sequence,priority:1" json:"ledger_transaction_academic_year_id"`

	LedgerTransactionEntryType EntryType `gorm:"column:ledger_transaction_entry_type;type:varchar(32);not null;index:ix_ledger_entry_type" json:"ledger_transaction_entry_type"`

	// Nominal: tepat satu dari debit/kredit yang > 0
	LedgerTransactionDebitIDR        int64 `gorm:"column:ledger_transaction_debit_idr;not null;default:0;check:ledger_transaction_debit_idr >= 0" json:"ledger_transaction_debit_idr"`
	LedgerTransactionCreditIDR       int64 `gorm:"column:ledger_transaction_credit_idr;not null;default:0;check:ledger_transaction_credit_idr >= 0" json:"ledger_transaction_credit_idr"`
	LedgerTransactionBalanceAfterIDR int64 `gorm:"column:ledger_transaction_balance_after_idr;not null" json:"ledger_transaction_balance_after_idr"`

	LedgerTransactionDescription string  `gorm:"column:ledger_transaction_description;not null" json:"ledger_transaction_description"`
	LedgerTransactionRemarks     *string `gorm:"column:ledger_transaction_remarks" json:"ledger_transaction_remarks,omitempty"`

	// Hanya terisi untuk entry pembayaran
	LedgerTransactionPaymentMethod    *string `gorm:"column:ledger_transaction_payment_method;type:varchar(32)" json:"ledger_transaction_payment_method,omitempty"`
	LedgerTransactionPaymentReference *string `gorm:"column:ledger_transaction_payment_reference;type:varchar(120)" json:"ledger_transaction_payment_reference,omitempty"`

	// Tautan ke record asal (fee session / adhoc fee / payment / invoice)
	LedgerTransactionReferenceKind *ReferenceKind `gorm:"column:ledger_transaction_reference_kind;type:varchar(20)" json:"ledger_transaction_reference_kind,omitempty"`
	LedgerTransactionReferenceID   *uuid.UUID     `gorm:"column:ledger_transaction_reference_id;type:uuid;index:ix_ledger_reference" json:"ledger_transaction_reference_id,omitempty"`

	// Reversal bookkeeping
	LedgerTransactionIsReversed bool       `gorm:"column:ledger_transaction_is_reversed;not null;default:false" json:"ledger_transaction_is_reversed"`
	LedgerTransactionReversedBy *uuid.UUID `gorm:"column:ledger_transaction_reversed_by;type:uuid" json:"ledger_transaction_reversed_by,omitempty"`
	LedgerTransactionReversedAt *time.Time `gorm:"column:ledger_transaction_reversed_at" json:"ledger_transaction_reversed_at,omitempty"`
	// di entri asli: menunjuk entri reversal-nya
	LedgerTransactionReversalID *uuid.UUID `gorm:"column:ledger_transaction_reversal_id;type:uuid" json:"ledger_transaction_reversal_id,omitempty"`
	// di entri reversal: menunjuk entri asli yang dibatalkan
	LedgerTransactionReversesID *uuid.UUID `gorm:"column:ledger_transaction_reverses_id;type:uuid" json:"ledger_transaction_reverses_id,omitempty"`

	LedgerTransactionDate      time.Time         `gorm:"column:ledger_transaction_date;not null" json:"ledger_transaction_date"`
	LedgerTransactionCreatedBy *uuid.UUID        `gorm:"column:ledger_transaction_created_by;type:uuid" json:"ledger_transaction_created_by,omitempty"`
	LedgerTransactionCreatedAt time.Time         `gorm:"column:ledger_transaction_created_at;not null;default:now()" json:"ledger_transaction_created_at"`
	LedgerTransactionIsLocked  bool              `gorm:"column:ledger_transaction_is_locked;not null;default:true" json:"ledger_transaction_is_locked"`
	LedgerTransactionMeta      datatypes.JSONMap `gorm:"column:ledger_transaction_meta;type:jsonb" json:"ledger_transaction_meta,omitempty"`
}

func (LedgerTransactionModel) TableName() string {
	return "ledger_transactions"
}

func (m *LedgerTransactionModel) BeforeCreate(tx *gorm.DB) (err error) {
	if m.LedgerTransactionID == uuid.Nil {
		m.LedgerTransactionID = uuid.New()
	}
	if m.LedgerTransactionCreatedAt.IsZero() {
		m.LedgerTransactionCreatedAt = time.Now()
	}
	if m.LedgerTransactionDate.IsZero() {
		m.LedgerTransactionDate = m.LedgerTransactionCreatedAt
	}
	m.LedgerTransactionIsLocked = true
	return nil
}

// IsDebit: polaritas baris sebagaimana terposting.
func (m *LedgerTransactionModel) IsDebit() bool {
	return m.LedgerTransactionDebitIDR > 0
}

// AmountIDR: nominal sisi yang terisi.
func (m *LedgerTransactionModel) AmountIDR() int64 {
	if m.IsDebit() {
		return m.LedgerTransactionDebitIDR
	}
	return m.LedgerTransactionCreditIDR
}

// FormatTransactionNumber menyusun nomor transaksi dari kode tahun + urutan.
func FormatTransactionNumber(yearCode string, sequence int64) string {
	return fmt.Sprintf("TXN/%s/%06d", yearCode, sequence)
}

// file: internals/features/finance/ledger/service/reversal.go
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/ledger/model"
)

// ReversalEngine mengoreksi kesalahan tanpa pernah mengubah riwayat:
// entri kompensasi baru ditambahkan, entri asli hanya diberi flag.
type ReversalEngine struct {
	Store *LedgerStore
}

func NewReversalEngine(store *LedgerStore) *ReversalEngine {
	return &ReversalEngine{Store: store}
}

// Reverse membuat entri reversal untuk transactionID dan menandai entri asli.
// Keduanya terjadi dalam satu transaksi DB: tidak pernah ada keadaan di mana
// entri reversal ada tapi entri asli belum ter-flag.
func (e *ReversalEngine) Reverse(transactionID uuid.UUID, reason string, actingUserID uuid.UUID) (*model.LedgerTransactionModel, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: alasan pembatalan wajib diisi", ErrValidation)
	}

	orig, err := e.Store.GetByID(transactionID)
	if err != nil {
		return nil, err
	}
	if orig.LedgerTransactionEntryType == model.EntryTypeReversal {
		return nil, ErrCannotReverseReversal
	}
	if orig.LedgerTransactionIsReversed {
		return nil, ErrAlreadyReversed
	}

	var reversal *model.LedgerTransactionModel
	err = e.Store.Serialized(orig.LedgerTransactionStudentID, orig.LedgerTransactionAcademicYearID, func(tx *gorm.DB) error {
		// cek ulang di dalam transaksi: pemanggil lain bisa saja
		// sudah membatalkan transaksi yang sama
		var fresh model.LedgerTransactionModel
		if err := tx.First(&fresh, "ledger_transaction_id = ?", transactionID).Error; err != nil {
			return err
		}
		if fresh.LedgerTransactionIsReversed {
			return ErrAlreadyReversed
		}

		now := time.Now()
		actedBy := actingUserID
		in := AppendInput{
			StudentID:      orig.LedgerTransactionStudentID,
			AcademicYearID: orig.LedgerTransactionAcademicYearID,
			EntryType:      model.EntryTypeReversal,
			// nominal ditukar sisi: debit d dibatalkan dengan kredit d, dan sebaliknya
			DebitIDR:      orig.LedgerTransactionCreditIDR,
			CreditIDR:     orig.LedgerTransactionDebitIDR,
			Description:   fmt.Sprintf("Pembatalan %s: %s", orig.LedgerTransactionNumber, strings.TrimSpace(reason)),
			ReferenceKind: orig.LedgerTransactionReferenceKind,
			ReferenceID:   orig.LedgerTransactionReferenceID,
			ReversesID:    &orig.LedgerTransactionID,
			Date:          now,
			CreatedBy:     &actedBy,
		}

		row, err := e.Store.AppendTx(tx, in)
		if err != nil {
			return err
		}
		if err := e.Store.MarkReversedTx(tx, orig.LedgerTransactionID, row.LedgerTransactionID, &actedBy, now); err != nil {
			return err
		}
		reversal = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reversal, nil
}

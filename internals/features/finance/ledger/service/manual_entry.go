// file: internals/features/finance/ledger/service/manual_entry.go
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/features/finance/ledger/model"
)

// ManualEntryService mengubah satu aksi admin (pembayaran kasir, diskon,
// denda, dsb) menjadi tepat satu transaksi buku besar yang tervalidasi.
type ManualEntryService struct {
	Store *LedgerStore
}

func NewManualEntryService(store *LedgerStore) *ManualEntryService {
	return &ManualEntryService{Store: store}
}

type ManualEntryInput struct {
	StudentID      uuid.UUID
	AcademicYearID uuid.UUID
	EntryType      model.EntryType
	AmountIDR      int64
	Description    string
	Remarks        *string

	TransactionDate time.Time

	PaymentMethod    *string
	PaymentReference *string

	ReferenceKind *model.ReferenceKind
	ReferenceID   *uuid.UUID

	CreatedBy *uuid.UUID
	Meta      datatypes.JSONMap
}

func (s *ManualEntryService) CreateManualEntry(in ManualEntryInput) (*model.LedgerTransactionModel, error) {
	if in.AmountIDR <= 0 {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: deskripsi wajib diisi", ErrValidation)
	}

	desc, ok := model.LookupEntryType(in.EntryType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntryType, in.EntryType)
	}
	if desc.Kind == model.EntryTypeReversal {
		return nil, fmt.Errorf("%w: entri reversal hanya dibuat lewat pembatalan transaksi", ErrValidation)
	}
	if desc.IsPayment && (in.PaymentMethod == nil || strings.TrimSpace(*in.PaymentMethod) == "") {
		return nil, ErrMissingPaymentMethod
	}

	entry := AppendInput{
		StudentID:      in.StudentID,
		AcademicYearID: in.AcademicYearID,
		EntryType:      in.EntryType,
		Description:    in.Description,
		Remarks:        in.Remarks,
		ReferenceKind:  in.ReferenceKind,
		ReferenceID:    in.ReferenceID,
		Date:           in.TransactionDate,
		CreatedBy:      in.CreatedBy,
		Meta:           in.Meta,
	}
	// polaritas dari registry, bukan dari tanda nominal
	if desc.IsDebit {
		entry.DebitIDR = in.AmountIDR
	} else {
		entry.CreditIDR = in.AmountIDR
	}
	if desc.IsPayment {
		entry.PaymentMethod = in.PaymentMethod
		entry.PaymentReference = in.PaymentReference
	}

	return s.Store.Append(entry)
}

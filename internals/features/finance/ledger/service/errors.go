// file: internals/features/finance/ledger/service/errors.go
package service

import (
	"errors"
	"fmt"
)

// Taksonomi error buku besar. Handler memetakan sentinel ini ke status HTTP;
// service selalu mengembalikan aturan mana yang dilanggar, tidak pernah menelan error.
var (
	ErrValidation = errors.New("validasi buku besar gagal")

	ErrInvalidAmount        = fmt.Errorf("%w: nominal harus lebih dari nol", ErrValidation)
	ErrUnknownEntryType     = fmt.Errorf("%w: entry type tidak dikenal", ErrValidation)
	ErrMissingPaymentMethod = fmt.Errorf("%w: metode pembayaran wajib diisi untuk entry pembayaran", ErrValidation)

	ErrNotFound              = errors.New("record tidak ditemukan")
	ErrAlreadyReversed       = errors.New("transaksi sudah pernah dibatalkan")
	ErrCannotReverseReversal = errors.New("entri reversal tidak dapat dibatalkan lagi")
	ErrConcurrencyConflict   = errors.New("konflik penulisan buku besar, retry habis")
)

// IncompleteAllocationError: total alokasi kurang dari nominal pembayaran.
type IncompleteAllocationError struct {
	UnallocatedIDR int64
}

func (e *IncompleteAllocationError) Error() string {
	return fmt.Sprintf("alokasi belum lengkap: sisa %d belum teralokasi", e.UnallocatedIDR)
}

// OverAllocationError: total alokasi melebihi nominal pembayaran.
type OverAllocationError struct {
	ExcessIDR int64
}

func (e *OverAllocationError) Error() string {
	return fmt.Sprintf("alokasi berlebih: kelebihan %d dari nominal pembayaran", e.ExcessIDR)
}

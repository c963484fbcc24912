// file: internals/features/finance/ledger/service/allocation.go
package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/finance/ledger/model"
)

// OutstandingFeeItem: tampilan tunggakan milik subsistem fees yang dikonsumsi
// engine ini; buku besar tidak memilikinya.
type OutstandingFeeItem struct {
	ID             uuid.UUID           `json:"id"`
	FeeKind        model.ReferenceKind `json:"fee_kind"` // fee_session | adhoc_fee
	Description    string              `json:"description"`
	TotalIDR       int64               `json:"total_idr"`
	PaidIDR        int64               `json:"paid_idr"`
	OutstandingIDR int64               `json:"outstanding_idr"`
	DueDate        time.Time           `json:"due_date"`
	IsOverdue      bool                `json:"is_overdue"`
}

type Allocation struct {
	Item      OutstandingFeeItem `json:"item"`
	AmountIDR int64              `json:"amount_idr"`
}

// PaymentInput: satu pembayaran yang akan didistribusikan ke tunggakan.
type PaymentInput struct {
	StudentID        uuid.UUID
	AcademicYearID   uuid.UUID
	AmountIDR        int64
	EntryType        model.EntryType // harus jenis pembayaran
	PaymentMethod    *string
	PaymentReference *string
	CreatedBy        *uuid.UUID
}

// AllocationEngine mendistribusikan nominal satu pembayaran ke tunggakan
// siswa, menghasilkan satu transaksi kredit per item yang kebagian.
type AllocationEngine struct {
	Store *LedgerStore
}

func NewAllocationEngine(store *LedgerStore) *AllocationEngine {
	return &AllocationEngine{Store: store}
}

// AutoAllocate: item overdue dulu, lalu jatuh tempo paling awal; sort stabil
// sehingga urutan input dipertahankan untuk item yang persis seri. Jalan
// greedy min(sisa, tunggakan) sampai sisa habis; item kebagian 0 tidak ikut.
func (e *AllocationEngine) AutoAllocate(amountIDR int64, items []OutstandingFeeItem) []Allocation {
	sorted := append([]OutstandingFeeItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].IsOverdue != sorted[j].IsOverdue {
			return sorted[i].IsOverdue
		}
		return sorted[i].DueDate.Before(sorted[j].DueDate)
	})

	remaining := amountIDR
	var out []Allocation
	for _, item := range sorted {
		if remaining <= 0 {
			break
		}
		if item.OutstandingIDR <= 0 {
			continue
		}
		take := item.OutstandingIDR
		if remaining < take {
			take = remaining
		}
		out = append(out, Allocation{Item: item, AmountIDR: take})
		remaining -= take
	}
	return out
}

// ValidateAllocation: nil berarti valid. Valid iff setiap alokasi > 0, total
// per item (termasuk alokasi ganda ke item yang sama) tidak melebihi
// tunggakan itemnya, dan totalnya persis sama dengan nominal pembayaran —
// tanpa sisa, tanpa kelebihan. Set kosong tidak pernah valid.
func (e *AllocationEngine) ValidateAllocation(amountIDR int64, allocs []Allocation) error {
	if amountIDR <= 0 {
		return ErrInvalidAmount
	}
	var sum int64
	perItem := make(map[uuid.UUID]int64, len(allocs))
	for i := range allocs {
		a := &allocs[i]
		if a.AmountIDR <= 0 {
			return fmt.Errorf("%w: alokasi untuk %q harus lebih dari nol", ErrValidation, a.Item.Description)
		}
		perItem[a.Item.ID] += a.AmountIDR
		if perItem[a.Item.ID] > a.Item.OutstandingIDR {
			return fmt.Errorf("%w: total alokasi %d untuk %q melebihi tunggakan %d",
				ErrValidation, perItem[a.Item.ID], a.Item.Description, a.Item.OutstandingIDR)
		}
		sum += a.AmountIDR
	}
	if sum < amountIDR {
		return &IncompleteAllocationError{UnallocatedIDR: amountIDR - sum}
	}
	if sum > amountIDR {
		return &OverAllocationError{ExcessIDR: sum - amountIDR}
	}
	return nil
}

// CommitAllocation memposting seluruh alokasi sebagai satu grup atomik:
// satu transaksi kredit per item, bertag referensi ke item fee-nya. Grup
// memegang serialisasi per siswa sepanjang commit, jadi tidak ada append lain
// yang menyelip di antara baris-baris alokasi.
func (e *AllocationEngine) CommitAllocation(p PaymentInput, allocs []Allocation) ([]*model.LedgerTransactionModel, error) {
	desc, ok := model.LookupEntryType(p.EntryType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntryType, p.EntryType)
	}
	if !desc.IsPayment {
		return nil, fmt.Errorf("%w: alokasi hanya untuk entry pembayaran, bukan %q", ErrValidation, p.EntryType)
	}
	if p.PaymentMethod == nil || strings.TrimSpace(*p.PaymentMethod) == "" {
		return nil, ErrMissingPaymentMethod
	}
	if err := e.ValidateAllocation(p.AmountIDR, allocs); err != nil {
		return nil, err
	}

	now := time.Now()
	ins := make([]AppendInput, 0, len(allocs))
	for i := range allocs {
		a := allocs[i]
		kind := a.Item.FeeKind
		refID := a.Item.ID
		ins = append(ins, AppendInput{
			StudentID:        p.StudentID,
			AcademicYearID:   p.AcademicYearID,
			EntryType:        p.EntryType,
			CreditIDR:        a.AmountIDR,
			Description:      fmt.Sprintf("Pembayaran: %s", a.Item.Description),
			PaymentMethod:    p.PaymentMethod,
			PaymentReference: p.PaymentReference,
			ReferenceKind:    &kind,
			ReferenceID:      &refID,
			Date:             now,
			CreatedBy:        p.CreatedBy,
		})
	}
	return e.Store.AppendGroup(p.StudentID, p.AcademicYearID, ins)
}

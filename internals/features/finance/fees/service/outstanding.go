// file: internals/features/finance/fees/service/outstanding.go
package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/fees/model"
	ledgerModel "sekolahku_backend/internals/features/finance/ledger/model"
	ledgerService "sekolahku_backend/internals/features/finance/ledger/service"
)

// OutstandingService menghitung tampilan tunggakan yang dikonsumsi
// allocation engine. Subsistem fees pemilik datanya; buku besar hanya membaca.
type OutstandingService struct {
	DB *gorm.DB
}

func NewOutstandingService(db *gorm.DB) *OutstandingService {
	return &OutstandingService{DB: db}
}

// OutstandingFees: seluruh item yang belum lunas untuk (siswa, tahun ajaran),
// urut jatuh tempo naik. PaidIDR dihitung dari kredit buku besar yang
// bereferensi ke item ybs; entri yang sudah dibatalkan tidak dihitung.
func (s *OutstandingService) OutstandingFees(studentID, yearID uuid.UUID, asOf time.Time) ([]ledgerService.OutstandingFeeItem, error) {
	var sessions []model.FeeSessionModel
	if err := s.DB.
		Where("fee_session_student_id = ? AND fee_session_academic_year_id = ?", studentID, yearID).
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	var adhocs []model.AdhocFeeModel
	if err := s.DB.
		Where("adhoc_fee_student_id = ? AND adhoc_fee_academic_year_id = ?", studentID, yearID).
		Find(&adhocs).Error; err != nil {
		return nil, err
	}

	var out []ledgerService.OutstandingFeeItem
	for _, fs := range sessions {
		item, err := s.buildItem(ledgerModel.ReferenceKindFeeSession, fs.FeeSessionID, fs.FeeSessionName, fs.FeeSessionAmountIDR, fs.FeeSessionDueDate, asOf)
		if err != nil {
			return nil, err
		}
		if item != nil {
			out = append(out, *item)
		}
	}
	for _, af := range adhocs {
		item, err := s.buildItem(ledgerModel.ReferenceKindAdhocFee, af.AdhocFeeID, af.AdhocFeeName, af.AdhocFeeAmountIDR, af.AdhocFeeDueDate, asOf)
		if err != nil {
			return nil, err
		}
		if item != nil {
			out = append(out, *item)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func (s *OutstandingService) buildItem(kind ledgerModel.ReferenceKind, id uuid.UUID, name string, totalIDR int64, dueDate time.Time, asOf time.Time) (*ledgerService.OutstandingFeeItem, error) {
	paid, err := s.paidAmount(kind, id)
	if err != nil {
		return nil, err
	}
	outstanding := totalIDR - paid
	if outstanding <= 0 {
		return nil, nil // lunas
	}
	return &ledgerService.OutstandingFeeItem{
		ID:             id,
		FeeKind:        kind,
		Description:    name,
		TotalIDR:       totalIDR,
		PaidIDR:        paid,
		OutstandingIDR: outstanding,
		DueDate:        dueDate,
		IsOverdue:      dueDate.Before(asOf),
	}, nil
}

func (s *OutstandingService) paidAmount(kind ledgerModel.ReferenceKind, id uuid.UUID) (int64, error) {
	var paid int64
	err := s.DB.Model(&ledgerModel.LedgerTransactionModel{}).
		Where("ledger_transaction_reference_kind = ? AND ledger_transaction_reference_id = ?", kind, id).
		Where("ledger_transaction_is_reversed = ?", false).
		Where("ledger_transaction_entry_type <> ?", ledgerModel.EntryTypeReversal).
		Select("COALESCE(SUM(ledger_transaction_credit_idr), 0)").
		Scan(&paid).Error
	return paid, err
}

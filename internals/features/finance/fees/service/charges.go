// file: internals/features/finance/fees/service/charges.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/fees/model"
	ledgerModel "sekolahku_backend/internals/features/finance/ledger/model"
	ledgerService "sekolahku_backend/internals/features/finance/ledger/service"
)

// ChargeService membuat record tagihan dan entri debit buku besarnya dalam
// satu transaksi DB: keduanya masuk bersama atau tidak sama sekali, jadi
// tidak pernah ada tagihan tanpa jejak di buku besar.
type ChargeService struct {
	DB    *gorm.DB
	Store *ledgerService.LedgerStore
}

func NewChargeService(db *gorm.DB, store *ledgerService.LedgerStore) *ChargeService {
	return &ChargeService{DB: db, Store: store}
}

type FeeSessionInput struct {
	StudentID      uuid.UUID
	AcademicYearID uuid.UUID
	Name           string
	AmountIDR      int64
	DueDate        time.Time
	CreatedBy      *uuid.UUID
}

func (s *ChargeService) CreateFeeSession(in FeeSessionInput) (*model.FeeSessionModel, *ledgerModel.LedgerTransactionModel, error) {
	fee := model.FeeSessionModel{
		FeeSessionStudentID:      in.StudentID,
		FeeSessionAcademicYearID: in.AcademicYearID,
		FeeSessionName:           in.Name,
		FeeSessionAmountIDR:      in.AmountIDR,
		FeeSessionDueDate:        in.DueDate,
	}

	kind := ledgerModel.ReferenceKindFeeSession
	var txn *ledgerModel.LedgerTransactionModel
	err := s.Store.Serialized(in.StudentID, in.AcademicYearID, func(tx *gorm.DB) error {
		if err := tx.Create(&fee).Error; err != nil {
			return err
		}
		row, err := s.Store.AppendTx(tx, ledgerService.AppendInput{
			StudentID:      in.StudentID,
			AcademicYearID: in.AcademicYearID,
			EntryType:      ledgerModel.EntryTypeFeeAssignment,
			DebitIDR:       in.AmountIDR,
			Description:    in.Name,
			ReferenceKind:  &kind,
			ReferenceID:    &fee.FeeSessionID,
			Date:           time.Now(),
			CreatedBy:      in.CreatedBy,
		})
		if err != nil {
			return err
		}
		txn = row
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &fee, txn, nil
}

type AdhocFeeInput struct {
	StudentID      uuid.UUID
	AcademicYearID uuid.UUID
	Name           string
	Reason         *string
	AmountIDR      int64
	DueDate        time.Time
	CreatedBy      *uuid.UUID
}

func (s *ChargeService) CreateAdhocFee(in AdhocFeeInput) (*model.AdhocFeeModel, *ledgerModel.LedgerTransactionModel, error) {
	fee := model.AdhocFeeModel{
		AdhocFeeStudentID:      in.StudentID,
		AdhocFeeAcademicYearID: in.AcademicYearID,
		AdhocFeeName:           in.Name,
		AdhocFeeReason:         in.Reason,
		AdhocFeeAmountIDR:      in.AmountIDR,
		AdhocFeeDueDate:        in.DueDate,
	}

	kind := ledgerModel.ReferenceKindAdhocFee
	var txn *ledgerModel.LedgerTransactionModel
	err := s.Store.Serialized(in.StudentID, in.AcademicYearID, func(tx *gorm.DB) error {
		if err := tx.Create(&fee).Error; err != nil {
			return err
		}
		row, err := s.Store.AppendTx(tx, ledgerService.AppendInput{
			StudentID:      in.StudentID,
			AcademicYearID: in.AcademicYearID,
			EntryType:      ledgerModel.EntryTypeAdhocFee,
			DebitIDR:       in.AmountIDR,
			Description:    in.Name,
			Remarks:        in.Reason,
			ReferenceKind:  &kind,
			ReferenceID:    &fee.AdhocFeeID,
			Date:           time.Now(),
			CreatedBy:      in.CreatedBy,
		})
		if err != nil {
			return err
		}
		txn = row
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &fee, txn, nil
}

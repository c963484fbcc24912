// file: internals/features/finance/ledger/dto/ledger_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"sekolahku_backend/internals/features/finance/ledger/model"
)

/* ===================== Requests ===================== */

type ManualEntryRequest struct {
	StudentID        uuid.UUID       `json:"student_id" validate:"required"`
	AcademicYearID   uuid.UUID       `json:"academic_year_id" validate:"required"`
	EntryType        model.EntryType `json:"entry_type" validate:"required"`
	AmountIDR        int64           `json:"amount_idr" validate:"required,gt=0"`
	Description      string          `json:"description" validate:"required"`
	Remarks          *string         `json:"remarks,omitempty"`
	TransactionDate  *time.Time      `json:"transaction_date,omitempty"`
	PaymentMethod    *string         `json:"payment_method,omitempty"`
	PaymentReference *string         `json:"payment_reference,omitempty"`
}

type ReverseRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type AllocationItemRequest struct {
	FeeItemID uuid.UUID `json:"fee_item_id" validate:"required"`
	AmountIDR int64     `json:"amount_idr" validate:"required,gt=0"`
}

type CommitAllocationRequest struct {
	AcademicYearID   uuid.UUID       `json:"academic_year_id" validate:"required"`
	AmountIDR        int64           `json:"amount_idr" validate:"required,gt=0"`
	EntryType        model.EntryType `json:"entry_type" validate:"required"`
	PaymentMethod    *string         `json:"payment_method,omitempty"`
	PaymentReference *string         `json:"payment_reference,omitempty"`

	// kosong → auto-allocate; terisi → alokasi manual (tetap divalidasi)
	Allocations []AllocationItemRequest `json:"allocations,omitempty"`
}

type PreviewAllocationRequest struct {
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
	AmountIDR      int64     `json:"amount_idr" validate:"required,gt=0"`
}

/* ===================== Responses ===================== */

type LedgerTransactionResponse struct {
	ID                uuid.UUID            `json:"id"`
	TransactionNumber string               `json:"transaction_number"`
	Sequence          int64                `json:"sequence"`
	StudentID         uuid.UUID            `json:"student_id"`
	AcademicYearID    uuid.UUID            `json:"academic_year_id"`
	EntryType         model.EntryType      `json:"entry_type"`
	EntryTypeLabel    string               `json:"entry_type_label"`
	DebitIDR          int64                `json:"debit_idr"`
	CreditIDR         int64                `json:"credit_idr"`
	BalanceAfterIDR   int64                `json:"balance_after_idr"`
	Description       string               `json:"description"`
	Remarks           *string              `json:"remarks,omitempty"`
	PaymentMethod     *string              `json:"payment_method,omitempty"`
	PaymentReference  *string              `json:"payment_reference,omitempty"`
	ReferenceKind     *model.ReferenceKind `json:"reference_kind,omitempty"`
	ReferenceID       *uuid.UUID           `json:"reference_id,omitempty"`
	IsReversed        bool                 `json:"is_reversed"`
	ReversedAt        *time.Time           `json:"reversed_at,omitempty"`
	ReversalID        *uuid.UUID           `json:"reversal_id,omitempty"`
	ReversesID        *uuid.UUID           `json:"reverses_id,omitempty"`
	TransactionDate   time.Time            `json:"transaction_date"`
	CreatedBy         *uuid.UUID           `json:"created_by,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

func ToLedgerTransactionResponse(m model.LedgerTransactionModel) LedgerTransactionResponse {
	label := ""
	if d, ok := model.LookupEntryType(m.LedgerTransactionEntryType); ok {
		label = d.Label
	}
	return LedgerTransactionResponse{
		ID:                m.LedgerTransactionID,
		TransactionNumber: m.LedgerTransactionNumber,
		Sequence:          m.LedgerTransactionSequence,
		StudentID:         m.LedgerTransactionStudentID,
		AcademicYearID:    m.LedgerTransactionAcademicYearID,
		EntryType:         m.LedgerTransactionEntryType,
		EntryTypeLabel:    label,
		DebitIDR:          m.LedgerTransactionDebitIDR,
		CreditIDR:         m.LedgerTransactionCreditIDR,
		BalanceAfterIDR:   m.LedgerTransactionBalanceAfterIDR,
		Description:       m.LedgerTransactionDescription,
		Remarks:           m.LedgerTransactionRemarks,
		PaymentMethod:     m.LedgerTransactionPaymentMethod,
		PaymentReference:  m.LedgerTransactionPaymentReference,
		ReferenceKind:     m.LedgerTransactionReferenceKind,
		ReferenceID:       m.LedgerTransactionReferenceID,
		IsReversed:        m.LedgerTransactionIsReversed,
		ReversedAt:        m.LedgerTransactionReversedAt,
		ReversalID:        m.LedgerTransactionReversalID,
		ReversesID:        m.LedgerTransactionReversesID,
		TransactionDate:   m.LedgerTransactionDate,
		CreatedBy:         m.LedgerTransactionCreatedBy,
		CreatedAt:         m.LedgerTransactionCreatedAt,
	}
}

func ToLedgerTransactionResponses(list []model.LedgerTransactionModel) []LedgerTransactionResponse {
	out := make([]LedgerTransactionResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToLedgerTransactionResponse(m))
	}
	return out
}

func ToLedgerTransactionResponsesPtr(list []*model.LedgerTransactionModel) []LedgerTransactionResponse {
	out := make([]LedgerTransactionResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToLedgerTransactionResponse(*m))
	}
	return out
}

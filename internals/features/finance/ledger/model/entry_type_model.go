// file: internals/features/finance/ledger/model/entry_type_model.go
package model

/* =========================================================
   ENTRY TYPE REGISTRY
   Katalog statis: jenis transaksi → polaritas akuntansi.
   Polaritas TIDAK PERNAH ditebak dari tanda nominal.
========================================================= */

type EntryType string

const (
	// Debit (menambah tunggakan siswa)
	EntryTypeFeeAssignment   EntryType = "fee_assignment"
	EntryTypeAdhocFee        EntryType = "adhoc_fee"
	EntryTypeLateFee         EntryType = "late_fee"
	EntryTypeFine            EntryType = "fine"
	EntryTypeAdjustmentDebit EntryType = "adjustment_debit"

	// Kredit — pembayaran
	EntryTypePaymentOnline       EntryType = "payment_online"
	EntryTypePaymentCash         EntryType = "payment_cash"
	EntryTypePaymentCheque       EntryType = "payment_cheque"
	EntryTypePaymentDD           EntryType = "payment_dd"
	EntryTypePaymentBankTransfer EntryType = "payment_bank_transfer"
	EntryTypePaymentUPI          EntryType = "payment_upi"

	// Kredit — potongan/koreksi
	EntryTypeDiscount         EntryType = "discount"
	EntryTypeWaiver           EntryType = "waiver"
	EntryTypeScholarship      EntryType = "scholarship"
	EntryTypeRefund           EntryType = "refund"
	EntryTypeAdjustmentCredit EntryType = "adjustment_credit"

	// Entri kompensasi, hanya dibuat oleh reversal engine
	EntryTypeReversal EntryType = "reversal"
)

type EntryTypeDescriptor struct {
	Kind      EntryType `json:"kind"`
	IsDebit   bool      `json:"is_debit"`
	IsPayment bool      `json:"is_payment"`
	Label     string    `json:"label"`
}

// urutan stabil untuk endpoint katalog
var entryTypeOrder = []EntryType{
	EntryTypeFeeAssignment,
	EntryTypeAdhocFee,
	EntryTypeLateFee,
	EntryTypeFine,
	EntryTypeAdjustmentDebit,
	EntryTypePaymentOnline,
	EntryTypePaymentCash,
	EntryTypePaymentCheque,
	EntryTypePaymentDD,
	EntryTypePaymentBankTransfer,
	EntryTypePaymentUPI,
	EntryTypeDiscount,
	EntryTypeWaiver,
	EntryTypeScholarship,
	EntryTypeRefund,
	EntryTypeAdjustmentCredit,
	EntryTypeReversal,
}

var entryTypeRegistry = map[EntryType]EntryTypeDescriptor{
	EntryTypeFeeAssignment:   {Kind: EntryTypeFeeAssignment, IsDebit: true, Label: "Tagihan SPP"},
	EntryTypeAdhocFee:        {Kind: EntryTypeAdhocFee, IsDebit: true, Label: "Tagihan Insidental"},
	EntryTypeLateFee:         {Kind: EntryTypeLateFee, IsDebit: true, Label: "Denda Keterlambatan"},
	EntryTypeFine:            {Kind: EntryTypeFine, IsDebit: true, Label: "Denda"},
	EntryTypeAdjustmentDebit: {Kind: EntryTypeAdjustmentDebit, IsDebit: true, Label: "Penyesuaian (Debit)"},

	EntryTypePaymentOnline:       {Kind: EntryTypePaymentOnline, IsPayment: true, Label: "Pembayaran Online"},
	EntryTypePaymentCash:         {Kind: EntryTypePaymentCash, IsPayment: true, Label: "Pembayaran Tunai"},
	EntryTypePaymentCheque:       {Kind: EntryTypePaymentCheque, IsPayment: true, Label: "Pembayaran Cek"},
	EntryTypePaymentDD:           {Kind: EntryTypePaymentDD, IsPayment: true, Label: "Pembayaran Demand Draft"},
	EntryTypePaymentBankTransfer: {Kind: EntryTypePaymentBankTransfer, IsPayment: true, Label: "Transfer Bank"},
	EntryTypePaymentUPI:          {Kind: EntryTypePaymentUPI, IsPayment: true, Label: "Pembayaran UPI/QRIS"},

	EntryTypeDiscount:         {Kind: EntryTypeDiscount, Label: "Diskon"},
	EntryTypeWaiver:           {Kind: EntryTypeWaiver, Label: "Pembebasan Biaya"},
	EntryTypeScholarship:      {Kind: EntryTypeScholarship, Label: "Beasiswa"},
	EntryTypeRefund:           {Kind: EntryTypeRefund, Label: "Refund"},
	EntryTypeAdjustmentCredit: {Kind: EntryTypeAdjustmentCredit, Label: "Penyesuaian (Kredit)"},

	EntryTypeReversal: {Kind: EntryTypeReversal, Label: "Pembatalan (Reversal)"},
}

// LookupEntryType mengembalikan deskriptor entry type; ok=false jika tidak dikenal.
func LookupEntryType(kind EntryType) (EntryTypeDescriptor, bool) {
	d, ok := entryTypeRegistry[kind]
	return d, ok
}

// AllEntryTypes mengembalikan seluruh katalog dalam urutan stabil.
func AllEntryTypes() []EntryTypeDescriptor {
	out := make([]EntryTypeDescriptor, 0, len(entryTypeOrder))
	for _, k := range entryTypeOrder {
		out = append(out, entryTypeRegistry[k])
	}
	return out
}

/* =========================================================
   REFERENCE KIND
   Tautan polimorfik ke record asal, sebagai enum tertutup.
========================================================= */

type ReferenceKind string

const (
	ReferenceKindFeeSession ReferenceKind = "fee_session"
	ReferenceKindAdhocFee   ReferenceKind = "adhoc_fee"
	ReferenceKindPayment    ReferenceKind = "payment"
	ReferenceKindInvoice    ReferenceKind = "invoice"
)

func (k ReferenceKind) Valid() bool {
	switch k {
	case ReferenceKindFeeSession, ReferenceKindAdhocFee, ReferenceKindPayment, ReferenceKindInvoice:
		return true
	}
	return false
}

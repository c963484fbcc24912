// file: internals/features/finance/payments/service/midtrans.go
package service

import (
	"errors"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"sekolahku_backend/internals/features/finance/payments/model"
)

/* =========================================================
   Midtrans Client
========================================================= */

var SnapClient snap.Client

// InitMidtrans harus dipanggil saat bootstrap app.
// useProduction=true untuk Production, false untuk Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

/* =========================================================
   Generate Snap Token
========================================================= */

func GenerateSnapToken(p model.PaymentModel, studentName string) (string, string, error) {
	if p.PaymentAmountIDR <= 0 {
		return "", "", errors.New("invalid payment_amount_idr")
	}
	if p.PaymentOrderID == "" {
		return "", "", errors.New("payment_order_id is required (used as OrderID)")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  p.PaymentOrderID,
			GrossAmt: p.PaymentAmountIDR,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: studentName,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       p.PaymentOrderID,
				Price:    p.PaymentAmountIDR,
				Qty:      1,
				Name:     "Pembayaran sekolah",
				Category: "SPP",
			},
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

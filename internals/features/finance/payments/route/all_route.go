// file: internals/features/finance/payments/route/all_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ledgerService "sekolahku_backend/internals/features/finance/ledger/service"
	paymentController "sekolahku_backend/internals/features/finance/payments/controller"
)

// ===== PUBLIC: webhook dari Midtrans, tanpa auth (diverifikasi signature) =====
func PaymentPublicRoutes(r fiber.Router, db *gorm.DB, serverKey string, store *ledgerService.LedgerStore) {
	ctl := paymentController.NewPaymentController(db, serverKey, store)

	r.Post("/payments/midtrans/callback", ctl.MidtransCallback)
}

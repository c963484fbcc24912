// file: internals/features/finance/payments/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ledgerService "sekolahku_backend/internals/features/finance/ledger/service"
	paymentController "sekolahku_backend/internals/features/finance/payments/controller"
)

func PaymentUserRoutes(r fiber.Router, db *gorm.DB, serverKey string, store *ledgerService.LedgerStore) {
	ctl := paymentController.NewPaymentController(db, serverKey, store)

	payments := r.Group("/payments")
	{
		payments.Post("/", ctl.Create)
		payments.Get("/:id", ctl.GetByID)
		payments.Get("/students/:student_id", ctl.ListByStudent)
	}
}

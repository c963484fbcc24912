// file: internals/features/finance/fees/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feesController "sekolahku_backend/internals/features/finance/fees/controller"
	ledgerService "sekolahku_backend/internals/features/finance/ledger/service"
)

func FeesAdminRoutes(r fiber.Router, db *gorm.DB, store *ledgerService.LedgerStore) {
	ctl := feesController.NewFeesHandler(db, store)

	fees := r.Group("/fees")
	{
		fees.Post("/sessions", ctl.CreateFeeSession)
		fees.Post("/adhoc", ctl.CreateAdhocFee)
		fees.Get("/students/:student_id/outstanding", ctl.ListOutstanding)
	}
}

// file: internals/features/finance/fees/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	feesController "sekolahku_backend/internals/features/finance/fees/controller"
	ledgerService "sekolahku_backend/internals/features/finance/ledger/service"
)

// ===== READ-ONLY =====
func FeesUserRoutes(r fiber.Router, db *gorm.DB, store *ledgerService.LedgerStore) {
	ctl := feesController.NewFeesHandler(db, store)

	fees := r.Group("/fees")
	{
		fees.Get("/students/:student_id/outstanding", ctl.ListOutstanding)
	}
}

// file: internals/features/finance/ledger/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ledgerController "sekolahku_backend/internals/features/finance/ledger/controller"
	"sekolahku_backend/internals/features/finance/ledger/service"
)

// ===== READ-ONLY: wali murid lihat riwayat & saldo anaknya =====
func LedgerUserRoutes(r fiber.Router, db *gorm.DB, store *service.LedgerStore) {
	ctl := ledgerController.NewLedgerHandler(db, store)

	ledger := r.Group("/ledger")
	{
		ledger.Get("/entry-types", ctl.EntryTypes)

		students := ledger.Group("/students/:student_id")
		{
			students.Get("/", ctl.Detail)
			students.Get("/timeline", ctl.Timeline)
			students.Get("/summary", ctl.Summary)
		}
	}
}

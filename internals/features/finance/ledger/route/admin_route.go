// file: internals/features/finance/ledger/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ledgerController "sekolahku_backend/internals/features/finance/ledger/controller"
	"sekolahku_backend/internals/features/finance/ledger/service"
)

// Store dibagikan dari router induk: lock per siswa hidup di satu instance.
func LedgerAdminRoutes(r fiber.Router, db *gorm.DB, store *service.LedgerStore) {
	ctl := ledgerController.NewLedgerHandler(db, store)
	allocCtl := ledgerController.NewAllocationHandler(db, store)

	ledger := r.Group("/ledger")
	{
		ledger.Post("/entries", ctl.CreateManualEntry)
		ledger.Post("/transactions/:id/reverse", ctl.Reverse)

		ledger.Get("/entry-types", ctl.EntryTypes)
		ledger.Get("/search", ctl.Search)
		ledger.Get("/statistics", ctl.Statistics)

		students := ledger.Group("/students/:student_id")
		{
			students.Get("/", ctl.Detail)
			students.Get("/timeline", ctl.Timeline)
			students.Get("/summary", ctl.Summary)

			students.Post("/allocations/preview", allocCtl.Preview)
			students.Post("/allocations", allocCtl.Commit)
		}
	}
}

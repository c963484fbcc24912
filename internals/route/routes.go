// file: internals/route/routes.go
package route

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	academicsRoute "sekolahku_backend/internals/features/academics/route"
	feesRoute "sekolahku_backend/internals/features/finance/fees/route"
	ledgerRoute "sekolahku_backend/internals/features/finance/ledger/route"
	ledgerService "sekolahku_backend/internals/features/finance/ledger/service"
	paymentRoute "sekolahku_backend/internals/features/finance/payments/route"
	authRoute "sekolahku_backend/internals/features/users/auth/route"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// Satu store untuk seluruh app: lock per siswa harus satu instance.
	store := ledgerService.NewLedgerStore(db)

	midtransServerKey := configs.MidtransServerKey

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api")
	public.Get("/health", healthHandler)
	authRoute.AuthPublicRoutes(public, db)
	paymentRoute.PaymentPublicRoutes(public, db, midtransServerKey, store)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE (user) group...")
	user := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)
	authRoute.AuthUserRoutes(user, db)
	academicsRoute.AcademicsUserRoutes(user, db)
	ledgerRoute.LedgerUserRoutes(user, db, store)
	feesRoute.FeesUserRoutes(user, db, store)
	paymentRoute.PaymentUserRoutes(user, db, midtransServerKey, store)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.RequireRoles("admin", "treasurer"),
	)
	academicsRoute.AcademicsAdminRoutes(admin, db)
	ledgerRoute.LedgerAdminRoutes(admin, db, store)
	feesRoute.FeesAdminRoutes(admin, db, store)

	log.Println("[INFO] All routes mounted")
}

func healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"uptime": time.Since(startTime).String(),
	})
}

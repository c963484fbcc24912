// file: internals/features/academics/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsController "sekolahku_backend/internals/features/academics/controller"
)

// ===== READ-ONLY =====
func AcademicsUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := academicsController.NewAcademicsHandler(db)

	r.Get("/academic-years", ctl.ListAcademicYears)
}

// file: internals/features/academics/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsController "sekolahku_backend/internals/features/academics/controller"
)

func AcademicsAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := academicsController.NewAcademicsHandler(db)

	years := r.Group("/academic-years")
	{
		years.Post("/", ctl.CreateAcademicYear)
		years.Get("/", ctl.ListAcademicYears)
	}

	students := r.Group("/students")
	{
		students.Post("/", ctl.CreateStudent)
		students.Get("/", ctl.ListStudents)
	}
}

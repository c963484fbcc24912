// file: internals/features/users/auth/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "sekolahku_backend/internals/features/users/auth/controller"
	"sekolahku_backend/internals/middlewares"
)

// ===== PUBLIC =====
func AuthPublicRoutes(r fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)
	auth := r.Group("/auth")
	{
		auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	}
}

// ===== PROTECTED =====
func AuthUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)
	auth := r.Group("/auth")
	{
		auth.Get("/me", ctl.Me)
	}
}

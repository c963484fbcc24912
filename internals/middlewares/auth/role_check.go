// file: internals/middlewares/auth/role_check.go
package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles: lolos jika role di token termasuk salah satu daftar.
// Dipasang SETELAH AuthJWT (butuh Locals "user_role").
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if role == "" {
			return fiber.NewError(fiber.StatusForbidden, "Role tidak ditemukan di token")
		}
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Akses ditolak untuk role "+role)
		}
		return c.Next()
	}
}

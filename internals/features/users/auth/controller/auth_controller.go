// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/users/auth/model"
	helper "sekolahku_backend/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validator: validator.New()}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// ========================== LOGIN ==========================
// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user model.UserModel
	err := h.DB.First(&user, "LOWER(user_email) = ?", strings.ToLower(in.Email)).Error
	if err != nil || !user.UserIsActive {
		// jangan bedakan "tidak ada" vs "password salah"
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(in.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	claims := jwt.MapClaims{
		"id":   user.UserID.String(),
		"name": user.UserName,
		"role": user.UserRole,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"access_token": signed,
		"user": fiber.Map{
			"id":    user.UserID,
			"name":  user.UserName,
			"email": user.UserEmail,
			"role":  user.UserRole,
		},
	})
}

// ========================== ME ==========================
// GET /api/auth/me (butuh AuthJWT)
func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var user model.UserModel
	if err := h.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonOK(c, "", user)
}

// file: internals/features/academics/controller/academics_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/academics/dto"
	"sekolahku_backend/internals/features/academics/model"
	helper "sekolahku_backend/internals/helpers"
)

var validate = validator.New()

type AcademicsHandler struct {
	DB *gorm.DB
}

func NewAcademicsHandler(db *gorm.DB) *AcademicsHandler {
	return &AcademicsHandler{DB: db}
}

// -----------------------------------------
// Academic years
// -----------------------------------------
func (h *AcademicsHandler) CreateAcademicYear(c *fiber.Ctx) error {
	var in dto.AcademicYearCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	year := model.AcademicYearModel{
		AcademicYearName:      in.Name,
		AcademicYearCode:      strings.ToUpper(strings.TrimSpace(in.Code)),
		AcademicYearStartDate: in.StartDate,
		AcademicYearEndDate:   in.EndDate,
		AcademicYearIsActive:  in.IsActive,
	}
	if err := h.DB.Create(&year).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "tahun ajaran dibuat", year)
}

func (h *AcademicsHandler) ListAcademicYears(c *fiber.Ctx) error {
	var years []model.AcademicYearModel
	if err := h.DB.Order("academic_year_start_date DESC").Find(&years).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", years)
}

// -----------------------------------------
// Students
// -----------------------------------------
func (h *AcademicsHandler) CreateStudent(c *fiber.Ctx) error {
	var in dto.StudentCreateRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.JsonValidationError(c, err)
	}

	student := model.StudentModel{
		StudentName:            in.Name,
		StudentAdmissionNumber: in.AdmissionNumber,
		StudentClassName:       in.ClassName,
		StudentGuardianPhone:   in.GuardianPhone,
		StudentIsActive:        true,
	}
	if err := h.DB.Create(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "siswa terdaftar", student)
}

func (h *AcademicsHandler) ListStudents(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "name", "asc", helper.AdminOpts)

	q := h.DB.Model(&model.StudentModel{})
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(student_name) LIKE ? OR LOWER(student_admission_number) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"name":             "student_name",
		"admission_number": "student_admission_number",
		"created_at":       "student_created_at",
	}, "name")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	var students []model.StudentModel
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", students, helper.BuildMeta(total, p))
}

// file: internals/features/academics/dto/academics_dto.go
package dto

import "time"

type AcademicYearCreateRequest struct {
	Name      string    `json:"name" validate:"required"`
	Code      string    `json:"code" validate:"required,max=16"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtfield=StartDate"`
	IsActive  bool      `json:"is_active"`
}

type StudentCreateRequest struct {
	Name            string  `json:"name" validate:"required"`
	AdmissionNumber string  `json:"admission_number" validate:"required,max=40"`
	ClassName       *string `json:"class_name,omitempty"`
	GuardianPhone   *string `json:"guardian_phone,omitempty"`
}

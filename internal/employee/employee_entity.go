package employee

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Employee is the canonical, provider-agnostic record. One row exists per
// (provider, external_id); email is unique across the whole system.
type Employee struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName   string          `gorm:"size:50" json:"first_name" validate:"required,max=50"`
	LastName    string          `gorm:"size:50" json:"last_name" validate:"required,max=50"`
	Email       string          `gorm:"size:255;uniqueIndex:uq_employees_email" json:"email" validate:"required,email"`
	PhoneNumber string          `gorm:"size:20" json:"phone_number,omitempty" validate:"omitempty,max=20"`
	DateOfBirth *time.Time      `gorm:"type:date" json:"date_of_birth,omitempty"`
	HireDate    *time.Time      `gorm:"type:date" json:"hire_date,omitempty"`
	Department  string          `gorm:"size:100" json:"department,omitempty" validate:"omitempty,max=100"`
	Position    string          `gorm:"size:100" json:"position,omitempty" validate:"omitempty,max=100"`
	Provider    string          `gorm:"size:50;uniqueIndex:uq_employees_provider_external_id" json:"provider" validate:"required,max=50"`
	ExternalID  string          `gorm:"size:255;uniqueIndex:uq_employees_provider_external_id" json:"external_id" validate:"required"`
	RawData     json.RawMessage `gorm:"type:jsonb" json:"raw_data,omitempty"`
	TrackTikID  *int64          `gorm:"index" json:"track_tik_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

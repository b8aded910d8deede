package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole selects the canned-response set and the system-prompt framing
// used when talking to a provider.
type UserRole string

const (
	RoleCustomer      UserRole = "customer"
	RoleConsultant    UserRole = "consultant"
	RoleBranchManager UserRole = "branch_manager"
)

// Label returns the Vietnamese audience label used in prompt framing.
func (r UserRole) Label() string {
	switch r {
	case RoleConsultant:
		return "Chuyên viên tư vấn"
	case RoleBranchManager:
		return "Quản lý chi nhánh"
	default:
		return "Khách hàng"
	}
}

type User struct {
	UUID         uuid.UUID `gorm:"type:uuid;primaryKey;" json:"uuid"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FullName     string    `gorm:"not null" json:"full_name"`
	Phone        string    `json:"phone"`
	Role         UserRole  `gorm:"not null;default:customer" json:"role"`
	BranchID     string    `json:"branch_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

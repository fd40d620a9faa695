package model

import (
	"time"

	"farm-service/internal/permission"

	"gorm.io/datatypes"
)

// Role names seeded at first start.
const (
	RoleAdmin       = "Admin"
	RoleFarmManager = "Farm Manager"
	RoleWorker      = "Worker"
)

// Role bundles a named permission map. Permissions is a JSONB column
// keyed by module name.
type Role struct {
	ID          uint                               `json:"id" gorm:"primarykey"`
	Name        string                             `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Permissions datatypes.JSONType[permission.Map] `json:"permissions"`
	CreatedAt   time.Time                          `json:"created_at"`
	UpdatedAt   time.Time                          `json:"updated_at"`
}

// User links a login identity to an employee record and a role.
// Username is the login email. The password hash never serializes.
type User struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	Username     string    `json:"username" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	EmployeeID   uint      `json:"employeeId" gorm:"index;not null"`
	RoleID       uint      `json:"roleId" gorm:"index;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CurrentUser is a user row merged with its resolved permissions, as
// returned to an authenticated session.
type CurrentUser struct {
	User
	Permissions permission.Map `json:"permissions"`
	Viewable    []string       `json:"viewable"`
}

package models

import (
	"database/sql/driver"
	"errors"
	"time"
)

// Role is the authorization marker carried by a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	if value == nil {
		*r = RoleUser
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*r = Role(v)
	case string:
		*r = Role(v)
	default:
		return errors.New("invalid role type")
	}
	return nil
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// User represents a bookstore account.
// DeletedAt is a plain nullable column rather than gorm.DeletedAt: withdrawn
// accounts must stay visible to lookups so the auth gate can reject them
// explicitly and signup can see their email.
type User struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	Email     string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password  string     `gorm:"not null;size:255" json:"-"`
	Username  string     `gorm:"not null;size:255" json:"username"`
	Role      Role       `gorm:"type:varchar(16);not null;default:USER" json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user carries the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsWithdrawn reports whether the account was soft deleted.
func (u *User) IsWithdrawn() bool {
	return u.DeletedAt != nil
}

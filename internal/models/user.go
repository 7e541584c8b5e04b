package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID           uint    `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"not null;size:100"`
	Email        string  `json:"email" gorm:"uniqueIndex:idx_users_email;not null;size:255"`
	Phone        string  `json:"phone" gorm:"uniqueIndex:idx_users_phone;not null;size:20"`
	PasswordHash string  `json:"-" gorm:"not null;size:255"`
	Role         Role    `json:"role" gorm:"not null;default:student;size:20"`
	AvatarPath   *string `json:"avatar_path" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`

	Enrollments []Enrollment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

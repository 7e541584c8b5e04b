package validator

import (
	"strings"

	"github.com/abosaleg/enrollment-service/internal/models"
)

// Request DTOs carry the plain field values handed in by the transport layer.
// Normalize trims (and lowercases email) before validation so stored values
// match what the field rules checked.

type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Phone    string `json:"phone" form:"phone" validate:"required,min=8,max=20,phone_chars"`
	Password string `json:"password" form:"password" validate:"required,password_strength"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type ProfileUpdateRequest struct {
	Name  string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" form:"email" validate:"required,email"`
	Phone string `json:"phone" form:"phone" validate:"required,min=8,max=20,phone_chars"`
}

func (r *ProfileUpdateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
}

type ChangePasswordRequest struct {
	Password string `json:"password" form:"password" validate:"required,password_strength"`
}

type CourseCreateRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=2,max=120"`
	Description string `json:"description" form:"description" validate:"required"`
}

func (r *CourseCreateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

type CourseUpdateRequest struct {
	Title       string              `json:"title" form:"title" validate:"required,min=2,max=120"`
	Description string              `json:"description" form:"description" validate:"required"`
	Status      models.CourseStatus `json:"status" form:"status" validate:"required,oneof=active archived"`
}

func (r *CourseUpdateRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

package models

import "time"

type CourseStatus string

const (
	CourseActive   CourseStatus = "active"
	CourseArchived CourseStatus = "archived"
)

func (s CourseStatus) Valid() bool {
	switch s {
	case CourseActive, CourseArchived:
		return true
	}
	return false
}

type Course struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"not null;size:120"`
	Description string       `json:"description" gorm:"not null;type:text"`
	Status      CourseStatus `json:"status" gorm:"not null;default:active;size:20"`

	CreatedAt time.Time `json:"created_at"`

	Enrollments []Enrollment `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (Course) TableName() string {
	return "courses"
}

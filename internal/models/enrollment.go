package models

import "time"

// Enrollment links a student to a course. The (user_id, course_id) pair is
// unique so a double form submit cannot create two rows for the same course.
type Enrollment struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_enrollments_user_course;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_enrollments_user_course;not null"`

	CreatedAt time.Time `json:"created_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

package models

import (
	"sort"
	"time"
)

// Lecturer represents a lecturer who may own any number of courses.
// The association is held by id only; Course.LecturerID is the other side.
type Lecturer struct {
	ID         string    `json:"id" db:"id"`
	FirstName  string    `json:"firstName" db:"first_name" validate:"required,min=2,max=50"`
	LastName   string    `json:"lastName" db:"last_name" validate:"required,min=2,max=50"`
	Email      string    `json:"email" db:"email" validate:"required,email,max=100"`
	Department string    `json:"department" db:"department" validate:"required,min=2,max=100"`
	Bio        string    `json:"bio" db:"bio" validate:"max=1000"`
	CourseIDs  []string  `json:"courseIds"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// HasCourse reports whether courseID is in the lecturer's course set
func (l *Lecturer) HasCourse(courseID string) bool {
	for _, id := range l.CourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// AddCourse adds courseID to the course set. It returns false if it was already present.
func (l *Lecturer) AddCourse(courseID string) bool {
	if l.HasCourse(courseID) {
		return false
	}
	l.CourseIDs = append(l.CourseIDs, courseID)
	sort.Strings(l.CourseIDs)
	return true
}

// RemoveCourse drops courseID from the course set. It returns false if it was not present.
func (l *Lecturer) RemoveCourse(courseID string) bool {
	for i, id := range l.CourseIDs {
		if id == courseID {
			l.CourseIDs = append(l.CourseIDs[:i], l.CourseIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Touch stamps the update time, and the creation time on first save
func (l *Lecturer) Touch(now time.Time) {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
}

// Clone returns a deep copy
func (l *Lecturer) Clone() *Lecturer {
	if l == nil {
		return nil
	}
	c := *l
	c.CourseIDs = append([]string(nil), l.CourseIDs...)
	return &c
}

// FullName joins first and last name
func (l *Lecturer) FullName() string {
	return l.FirstName + " " + l.LastName
}

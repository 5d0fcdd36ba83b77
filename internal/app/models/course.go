package models

import "time"

// Course represents a course, optionally taught by one lecturer.
type Course struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title" validate:"required,min=3,max=100"`
	Description string    `json:"description" db:"description" validate:"required,min=10,max=1000"`
	Price       float64   `json:"price" db:"price" validate:"gt=0,lte=9999.99,cents"`
	LecturerID  *string   `json:"lecturerId,omitempty" db:"lecturer_id"` // Nullable
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// BelongsTo reports whether the course references lecturerID
func (c *Course) BelongsTo(lecturerID string) bool {
	return c.LecturerID != nil && *c.LecturerID == lecturerID
}

// HasLecturer reports whether the course references any lecturer
func (c *Course) HasLecturer() bool {
	return c.LecturerID != nil
}

// SetLecturer points the course at lecturerID
func (c *Course) SetLecturer(lecturerID string) {
	id := lecturerID
	c.LecturerID = &id
}

// ClearLecturer makes the course lecturer-less
func (c *Course) ClearLecturer() {
	c.LecturerID = nil
}

// Touch stamps the update time, and the creation time on first save
func (c *Course) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

// Clone returns a deep copy
func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}
	cp := *c
	if c.LecturerID != nil {
		id := *c.LecturerID
		cp.LecturerID = &id
	}
	return &cp
}

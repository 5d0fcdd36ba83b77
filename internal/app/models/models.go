package models

// SortDirection is the ordering of a paged listing
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Course sort fields accepted by paged listings
const (
	CourseSortTitle     = "title"
	CourseSortPrice     = "price"
	CourseSortCreatedAt = "createdAt"
	CourseSortUpdatedAt = "updatedAt"
)

// PageRequest selects one page of a listing. Page is 1-based.
type PageRequest struct {
	Page      int
	Size      int
	SortField string
	SortDir   SortDirection
}

// Offset returns the number of rows to skip
func (p PageRequest) Offset() int {
	if p.Page < 1 || p.Size < 1 {
		return 0
	}
	return (p.Page - 1) * p.Size
}

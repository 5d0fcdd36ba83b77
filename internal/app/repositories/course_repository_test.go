package repositories

import (
	"reflect"
	"testing"

	"github.com/yigit/courseportal/internal/app/models"
)

func TestCourseOrderBy(t *testing.T) {
	tests := []struct {
		name string
		page models.PageRequest
		want []string
	}{
		{name: "Default", page: models.PageRequest{}, want: []string{"created_at ASC", "id ASC"}},
		{name: "Title", page: models.PageRequest{SortField: models.CourseSortTitle}, want: []string{"title ASC", "id ASC"}},
		{name: "Price descending", page: models.PageRequest{SortField: models.CourseSortPrice, SortDir: models.SortDesc}, want: []string{"price DESC", "id ASC"}},
		{name: "Unknown column is never interpolated", page: models.PageRequest{SortField: "1; DROP TABLE courses"}, want: []string{"created_at ASC", "id ASC"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := courseOrderBy(tt.page); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// Package services holds the business logic behind the HTTP controllers.
//
// Services defined in this package:
//   - AssociationManager: keeps both sides of the lecturer/course association in step
//   - LecturerService: lecturer CRUD and course assignment
//   - CourseService: course CRUD and paginated listing
package services

package models

// Term represents a group of lessons within a course.
// Terms define display grouping only; lesson unlocking runs over the
// flattened sequence of all lessons across a course's terms.
type Term struct {
	ID       int    `json:"id"`
	CourseID int    `json:"courseId,omitempty"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

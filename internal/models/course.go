package models

// Level represents the difficulty level of a course
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// LevelAbbreviation maps abbreviations to full levels
var LevelAbbreviation = map[string]Level{
	"b": LevelBeginner,
	"i": LevelIntermediate,
	"a": LevelAdvanced,
}

// Course represents a course in the learning system
type Course struct {
	ID           int     `json:"id"`
	Slug         string  `json:"slug"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Level        Level   `json:"level"`
	Price        float64 `json:"price"`
	Instructor   string  `json:"instructor"`
	InstructorID int     `json:"instructorId,omitempty"`
}

// CourseListItem represents a course in list responses
type CourseListItem struct {
	Slug       string  `json:"slug"`
	Title      string  `json:"title"`
	Level      Level   `json:"level"`
	Price      float64 `json:"price"`
	Instructor string  `json:"instructor"`
}

// CourseDetailResponse represents a course with progress totals for user endpoints
type CourseDetailResponse struct {
	Slug             string `json:"slug"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	Level            Level  `json:"level"`
	Instructor       string `json:"instructor,omitempty"`
	TotalLessons     int    `json:"totalLessons"`
	CompletedLessons int    `json:"completedLessons"`
}

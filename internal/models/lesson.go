package models

// Lesson represents a lesson in a course
type Lesson struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	TermID      int    `json:"termId,omitempty"`
	CourseID    int    `json:"courseId,omitempty"`
	TermName    string `json:"termName,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
	Position    int    `json:"position,omitempty"`
}

// LessonView is the derived per-lesson view model merging static lesson
// data with the user's completion and unlock state. It is rebuilt from
// fresh data on every fetch and never persisted.
type LessonView struct {
	ID            int    `json:"-"`
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	TermName      string `json:"termName"`
	Order         int    `json:"order"`
	IsCompleted   bool   `json:"isCompleted"`
	IsLocked      bool   `json:"isLocked"`
	XPReward      int    `json:"xpReward"`
	EstimatedTime int    `json:"estimatedTime"`
}

// LessonContext carries the lesson identity the asset resolver needs
// when material metadata is incomplete.
type LessonContext struct {
	CourseID   int
	CourseSlug string
	LessonID   int
	// Order is the lesson's 1-based position in the course's flattened chain.
	Order int
}

// CompleteLessonRequest represents a request to mark a lesson complete
type CompleteLessonRequest struct {
	XPEarned         int `json:"xpEarned"`
	TimeSpentMinutes int `json:"timeSpentMinutes"`
}

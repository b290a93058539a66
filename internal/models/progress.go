package models

import "time"

// ProgressRecord is the durable per-(user, lesson) completion row.
// A nil CompletedAt means the lesson was started but never completed.
// Records are created and updated only by the completion upsert; they
// are never deleted.
type ProgressRecord struct {
	ID          int        `json:"id"`
	UserID      string     `json:"userId"`
	LessonID    int        `json:"lessonId"`
	CompletedAt *time.Time `json:"completedAt"`
	XPEarned    int        `json:"xpEarned"`
	TimeSpent   int        `json:"timeSpent"`
	Score       int        `json:"score"`
}

// Completed reports whether the record marks the lesson as completed
func (r *ProgressRecord) Completed() bool {
	return r != nil && r.CompletedAt != nil
}

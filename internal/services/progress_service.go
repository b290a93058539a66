package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/courseloop/backend/internal/models"
)

// defaultXPReward is awarded for lessons without a progress record
const defaultXPReward = 75

// placeholderScore is stored on completion; real scoring lives with the
// assessment flow, not here.
const placeholderScore = 100

// ErrLessonLocked is returned when completion is attempted on a lesson
// whose predecessor has not been completed
var ErrLessonLocked = errors.New("lesson is locked")

// CourseRepository defines methods for course data access
type CourseRepository interface {
	// GetBySlug retrieves a course by slug
	GetBySlug(ctx context.Context, slug string) (*models.Course, error)
	// GetAll retrieves courses with optional level filter, search, and pagination
	GetAll(ctx context.Context, level *models.Level, search string, page, count int) ([]models.CourseListItem, error)
}

// TermRepository defines methods for term data access
type TermRepository interface {
	// GetByCourseID retrieves all terms for a course, sorted by position
	GetByCourseID(ctx context.Context, courseID int) ([]models.Term, error)
	// GetByID retrieves a term by its ID
	GetByID(ctx context.Context, id int) (*models.Term, error)
}

// LessonRepository defines methods for lesson data access
type LessonRepository interface {
	// GetBySlug retrieves a lesson by slug
	GetBySlug(ctx context.Context, slug string) (*models.Lesson, error)
	// GetByTermIDs retrieves lessons for the given terms, sorted by position within each term
	GetByTermIDs(ctx context.Context, termIDs []int) ([]models.Lesson, error)
}

// ProgressRepository defines methods for progress record data access
type ProgressRepository interface {
	// GetByUserAndLessons retrieves progress records for a user restricted to a lesson set
	GetByUserAndLessons(ctx context.Context, userID string, lessonIDs []int) ([]models.ProgressRecord, error)
	// Upsert inserts or overwrites the record keyed on (user, lesson)
	Upsert(ctx context.Context, record *models.ProgressRecord) error
}

// ProfileRepository defines methods for profile resolution
type ProfileRepository interface {
	// Resolve returns the profile ID for an auth identity, provisioning one if missing
	Resolve(ctx context.Context, authID string) (string, error)
}

type progressService struct {
	courseRepo   CourseRepository
	termRepo     TermRepository
	lessonRepo   LessonRepository
	progressRepo ProgressRepository
	profileRepo  ProfileRepository
}

// NewProgressService creates a new progress service
func NewProgressService(
	courseRepo CourseRepository,
	termRepo TermRepository,
	lessonRepo LessonRepository,
	progressRepo ProgressRepository,
	profileRepo ProfileRepository,
) *progressService {
	return &progressService{
		courseRepo:   courseRepo,
		termRepo:     termRepo,
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		profileRepo:  profileRepo,
	}
}

// BuildLessonViews merges an ordered lesson chain with the user's
// progress records into per-lesson view models. The first lesson is
// never locked; every other lesson is locked exactly when its immediate
// predecessor is not completed. The estimated-time placeholder for
// unattempted lessons is computed once here and stays stable for the
// life of the returned views.
func BuildLessonViews(lessons []models.Lesson, records []models.ProgressRecord) []models.LessonView {
	views := make([]models.LessonView, 0, len(lessons))

	recordsByLesson := make(map[int]*models.ProgressRecord, len(records))
	for i := range records {
		recordsByLesson[records[i].LessonID] = &records[i]
	}

	for i, lesson := range lessons {
		record := recordsByLesson[lesson.ID]

		view := models.LessonView{
			ID:          lesson.ID,
			Slug:        lesson.Slug,
			Title:       lesson.Title,
			TermName:    lesson.TermName,
			Order:       i + 1,
			IsCompleted: record.Completed(),
			IsLocked:    i > 0 && !views[i-1].IsCompleted,
		}

		if record != nil && record.XPEarned > 0 {
			view.XPReward = record.XPEarned
		} else {
			view.XPReward = defaultXPReward
		}

		if record != nil && record.TimeSpent > 0 {
			view.EstimatedTime = record.TimeSpent
		} else {
			// Placeholder for lessons never attempted
			view.EstimatedTime = 8 + rand.Intn(12)
		}

		views = append(views, view)
	}

	return views
}

// GetCoursesList retrieves a list of courses with filtering and pagination
func (s *progressService) GetCoursesList(ctx context.Context, level *models.Level, search string, page, count int) ([]models.CourseListItem, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	return s.courseRepo.GetAll(ctx, level, search, page, count)
}

// GetCourseTimeline retrieves course details with the user's lesson
// chain rebuilt from fresh data
func (s *progressService) GetCourseTimeline(ctx context.Context, authID, courseSlug string) (*models.CourseDetailResponse, []models.LessonView, error) {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get course: %w", err)
	}

	views, err := s.buildChain(ctx, authID, course.ID)
	if err != nil {
		return nil, nil, err
	}

	detail := &models.CourseDetailResponse{
		Slug:         course.Slug,
		Title:        course.Title,
		Description:  course.Description,
		Level:        course.Level,
		Instructor:   course.Instructor,
		TotalLessons: len(views),
	}
	for _, v := range views {
		if v.IsCompleted {
			detail.CompletedLessons++
		}
	}

	return detail, views, nil
}

// CompleteLesson marks a lesson complete for the acting user. The write
// is refused when no profile can be resolved or when the lesson is
// still locked; callers must rebuild their views from fresh data after
// a successful completion rather than patching local state.
func (s *progressService) CompleteLesson(ctx context.Context, authID, lessonSlug string, xpEarned, timeSpentMinutes int) error {
	profileID, err := s.profileRepo.Resolve(ctx, authID)
	if err != nil {
		return fmt.Errorf("failed to resolve profile: %w", err)
	}

	lesson, err := s.lessonRepo.GetBySlug(ctx, lessonSlug)
	if err != nil {
		return fmt.Errorf("failed to get lesson: %w", err)
	}

	term, err := s.termRepo.GetByID(ctx, lesson.TermID)
	if err != nil {
		return fmt.Errorf("failed to get term: %w", err)
	}

	views, err := s.buildChain(ctx, authID, term.CourseID)
	if err != nil {
		return err
	}

	var target *models.LessonView
	for i := range views {
		if views[i].ID == lesson.ID {
			target = &views[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("lesson not in course chain")
	}
	if target.IsLocked {
		return ErrLessonLocked
	}

	if xpEarned <= 0 {
		xpEarned = defaultXPReward
	}
	now := time.Now()

	record := &models.ProgressRecord{
		UserID:      profileID,
		LessonID:    lesson.ID,
		CompletedAt: &now,
		XPEarned:    xpEarned,
		TimeSpent:   timeSpentMinutes,
		Score:       placeholderScore,
	}
	if err := s.progressRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to upsert progress record: %w", err)
	}

	return nil
}

// buildChain flattens a course's lessons into global order and builds
// the view models for the acting user
func (s *progressService) buildChain(ctx context.Context, authID string, courseID int) ([]models.LessonView, error) {
	terms, err := s.termRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get terms: %w", err)
	}
	if len(terms) == 0 {
		return []models.LessonView{}, nil
	}

	termIDs := make([]int, len(terms))
	for i, t := range terms {
		termIDs[i] = t.ID
	}

	lessons, err := s.lessonRepo.GetByTermIDs(ctx, termIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	chain := flattenChain(terms, lessons)
	if len(chain) == 0 {
		return []models.LessonView{}, nil
	}

	profileID, err := s.profileRepo.Resolve(ctx, authID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile: %w", err)
	}

	lessonIDs := make([]int, len(chain))
	for i, l := range chain {
		lessonIDs[i] = l.ID
	}

	records, err := s.progressRepo.GetByUserAndLessons(ctx, profileID, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress records: %w", err)
	}

	return BuildLessonViews(chain, records), nil
}

// flattenChain concatenates each term's lessons in term order, keeping
// lesson order within each term. The result is the single globally
// ordered sequence the unlock computation runs over.
func flattenChain(terms []models.Term, lessons []models.Lesson) []models.Lesson {
	byTerm := make(map[int][]models.Lesson, len(terms))
	for _, l := range lessons {
		byTerm[l.TermID] = append(byTerm[l.TermID], l)
	}

	chain := make([]models.Lesson, 0, len(lessons))
	for _, t := range terms {
		for _, l := range byTerm[t.ID] {
			l.CourseID = t.CourseID
			l.TermName = t.Name
			chain = append(chain, l)
		}
	}
	return chain
}

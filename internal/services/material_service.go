package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/courseloop/backend/internal/models"
)

// MaterialRepository defines methods for material data access
type MaterialRepository interface {
	// GetByLessonID retrieves all materials for a lesson
	GetByLessonID(ctx context.Context, lessonID int) ([]models.Material, error)
}

// MaterialURLResolver resolves a material reference to a fetchable URL
type MaterialURLResolver interface {
	ResolveMaterialURL(ctx context.Context, material models.Material, lesson models.LessonContext) string
}

// CourseGetter retrieves a course by ID
type CourseGetter interface {
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

type materialService struct {
	courseRepo   CourseGetter
	termRepo     TermRepository
	lessonRepo   LessonRepository
	materialRepo MaterialRepository
	resolver     MaterialURLResolver
}

// NewMaterialService creates a new material service
func NewMaterialService(
	courseRepo CourseGetter,
	termRepo TermRepository,
	lessonRepo LessonRepository,
	materialRepo MaterialRepository,
	resolver MaterialURLResolver,
) *materialService {
	return &materialService{
		courseRepo:   courseRepo,
		termRepo:     termRepo,
		lessonRepo:   lessonRepo,
		materialRepo: materialRepo,
		resolver:     resolver,
	}
}

// GetLessonMaterials retrieves a lesson's materials with resolved URLs.
// Materials resolve concurrently; the fallback chain inside each
// resolution stays strictly ordered.
func (s *materialService) GetLessonMaterials(ctx context.Context, lessonSlug string) ([]models.MaterialView, error) {
	lesson, err := s.lessonRepo.GetBySlug(ctx, lessonSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	lessonCtx, err := s.lessonContext(ctx, lesson)
	if err != nil {
		return nil, err
	}

	materials, err := s.materialRepo.GetByLessonID(ctx, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get materials: %w", err)
	}

	views := make([]models.MaterialView, len(materials))
	g, gctx := errgroup.WithContext(ctx)
	for i, material := range materials {
		g.Go(func() error {
			views[i] = models.MaterialView{
				Material:    material,
				ResolvedURL: s.resolver.ResolveMaterialURL(gctx, material, lessonCtx),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return views, nil
}

// lessonContext computes the lesson's 1-based position in its course's
// flattened chain, plus the course identity the resolver's fallback
// steps key off
func (s *materialService) lessonContext(ctx context.Context, lesson *models.Lesson) (models.LessonContext, error) {
	term, err := s.termRepo.GetByID(ctx, lesson.TermID)
	if err != nil {
		return models.LessonContext{}, fmt.Errorf("failed to get term: %w", err)
	}

	terms, err := s.termRepo.GetByCourseID(ctx, term.CourseID)
	if err != nil {
		return models.LessonContext{}, fmt.Errorf("failed to get terms: %w", err)
	}

	termIDs := make([]int, len(terms))
	for i, t := range terms {
		termIDs[i] = t.ID
	}

	lessons, err := s.lessonRepo.GetByTermIDs(ctx, termIDs)
	if err != nil {
		return models.LessonContext{}, fmt.Errorf("failed to get lessons: %w", err)
	}

	lessonCtx := models.LessonContext{
		CourseID: term.CourseID,
		LessonID: lesson.ID,
	}

	for i, l := range flattenChain(terms, lessons) {
		if l.ID == lesson.ID {
			lessonCtx.Order = i + 1
			break
		}
	}

	if course, err := s.courseRepo.GetByID(ctx, term.CourseID); err == nil {
		lessonCtx.CourseSlug = course.Slug
	}

	return lessonCtx, nil
}

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/courseloop/backend/internal/auth"
	"github.com/courseloop/backend/internal/models"
)

// CourseService is the interface that wraps methods for course browsing
type CourseService interface {
	// GetCoursesList retrieves a paginated list of courses
	//
	// "ctx" is the context for the request.
	// "level" is the optional difficulty level filter.
	// "search" is the search query for course titles.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns a list of courses and an error if any.
	GetCoursesList(ctx context.Context, level *models.Level, search string, page, count int) ([]models.CourseListItem, error)
	// GetCourseTimeline retrieves course details with the user's lesson chain
	//
	// "ctx" is the context for the request.
	// "authID" is the auth identity of the user.
	// "courseSlug" is the slug of the course.
	//
	// Returns the course details, the lesson views, and an error if any.
	GetCourseTimeline(ctx context.Context, authID, courseSlug string) (*models.CourseDetailResponse, []models.LessonView, error)
}

// CourseHandler handles HTTP requests for course browsing
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/courses", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetCoursesList)
		r.Get("/{slug}/lessons", h.GetCourseTimeline)
	})
}

// GetCoursesList handles GET /courses
// @Summary Get list of courses
// @Description Get a paginated list of courses with optional level and search filters
// @Tags courses
// @Produce json
// @Param level query string false "Difficulty level (b, i, a)"
// @Param search query string false "Search by course title"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {array} models.CourseListItem "List of courses"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *CourseHandler) GetCoursesList(w http.ResponseWriter, r *http.Request) {
	var level *models.Level
	if levelStr := r.URL.Query().Get("level"); levelStr != "" {
		if l, ok := models.LevelAbbreviation[levelStr]; ok {
			level = &l
		} else {
			l := models.Level(levelStr)
			level = &l
		}
	}

	search := r.URL.Query().Get("search")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	count, _ := strconv.Atoi(r.URL.Query().Get("count"))

	courses, err := h.service.GetCoursesList(r.Context(), level, search, page, count)
	if err != nil {
		h.Logger.Error("failed to get courses list", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get courses")
		return
	}

	if courses == nil {
		courses = []models.CourseListItem{}
	}
	h.RespondJSON(w, http.StatusOK, courses)
}

// GetCourseTimeline handles GET /courses/{slug}/lessons
// @Summary Get course lesson timeline
// @Description Get course details and the user's lesson chain with completion and unlock state
// @Tags courses
// @Produce json
// @Param slug path string true "Course slug"
// @Success 200 {object} map[string]any "Course details with lessons"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{slug}/lessons [get]
func (h *CourseHandler) GetCourseTimeline(w http.ResponseWriter, r *http.Request) {
	authID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	slug := chi.URLParam(r, "slug")

	course, lessons, err := h.service.GetCourseTimeline(r.Context(), authID, slug)
	if err != nil {
		h.Logger.Error("failed to get course timeline",
			zap.String("slug", slug),
			zap.Error(err),
		)
		h.RespondError(w, http.StatusNotFound, "course not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"course":  course,
		"lessons": lessons,
	})
}

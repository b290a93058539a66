package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/courseloop/backend/internal/auth"
	"github.com/courseloop/backend/internal/models"
	"github.com/courseloop/backend/internal/services"
)

// LessonService is the interface that wraps methods for lesson operations
type LessonService interface {
	// CompleteLesson marks a lesson complete for the acting user
	//
	// "ctx" is the context for the request.
	// "authID" is the auth identity of the user.
	// "lessonSlug" is the slug of the lesson.
	// "xpEarned" is the XP to record.
	// "timeSpentMinutes" is the time spent on the lesson in minutes.
	//
	// Returns an error if any.
	CompleteLesson(ctx context.Context, authID, lessonSlug string, xpEarned, timeSpentMinutes int) error
}

// MaterialService is the interface that wraps methods for material operations
type MaterialService interface {
	// GetLessonMaterials retrieves a lesson's materials with resolved URLs
	//
	// "ctx" is the context for the request.
	// "lessonSlug" is the slug of the lesson.
	//
	// Returns the materials and an error if any.
	GetLessonMaterials(ctx context.Context, lessonSlug string) ([]models.MaterialView, error)
}

// LessonHandler handles HTTP requests for lesson operations
type LessonHandler struct {
	BaseHandler
	lessonService   LessonService
	materialService MaterialService
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(lessonSvc LessonService, materialSvc MaterialService, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{
		lessonService:   lessonSvc,
		materialService: materialSvc,
		BaseHandler:     BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all lesson handler routes
func (h *LessonHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/lessons", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/{slug}/materials", h.GetLessonMaterials)
		r.Post("/{slug}/complete", h.CompleteLesson)
	})
}

// GetLessonMaterials handles GET /lessons/{slug}/materials
// @Summary Get lesson materials
// @Description Get a lesson's materials with resolved, fetchable URLs
// @Tags lessons
// @Produce json
// @Param slug path string true "Lesson slug"
// @Success 200 {array} models.MaterialView "List of materials"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Router /lessons/{slug}/materials [get]
func (h *LessonHandler) GetLessonMaterials(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	materials, err := h.materialService.GetLessonMaterials(r.Context(), slug)
	if err != nil {
		h.Logger.Error("failed to get lesson materials",
			zap.String("slug", slug),
			zap.Error(err),
		)
		h.RespondError(w, http.StatusNotFound, "lesson not found")
		return
	}

	if materials == nil {
		materials = []models.MaterialView{}
	}
	h.RespondJSON(w, http.StatusOK, materials)
}

// CompleteLesson handles POST /lessons/{slug}/complete
// @Summary Complete a lesson
// @Description Mark a lesson complete for the acting user. Fails without writing when the lesson is locked or no profile can be resolved; callers must re-fetch the timeline afterwards rather than patching local state.
// @Tags lessons
// @Accept json
// @Produce json
// @Param slug path string true "Lesson slug"
// @Param request body models.CompleteLessonRequest true "Completion details"
// @Success 200 {object} map[string]string "Completion recorded"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Lesson is locked"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{slug}/complete [post]
func (h *LessonHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	authID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	slug := chi.URLParam(r, "slug")

	var req models.CompleteLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.lessonService.CompleteLesson(r.Context(), authID, slug, req.XPEarned, req.TimeSpentMinutes)
	if err != nil {
		if errors.Is(err, services.ErrLessonLocked) {
			h.RespondError(w, http.StatusConflict, "lesson is locked")
			return
		}
		h.Logger.Error("failed to complete lesson",
			zap.String("slug", slug),
			zap.Error(err),
		)
		h.RespondError(w, http.StatusInternalServerError, "failed to complete lesson")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

package course

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"

	"learnhub/internal/auth"
	"learnhub/internal/cerrors"
)

// Entitlements reports whether a user has access to a course's full content.
type Entitlements interface {
	HasAccess(ctx context.Context, userID string, courseID string) (bool, error)
}

type handler struct {
	service      *Service
	entitlements Entitlements
}

func Routes(service *Service, entitlements Entitlements, verifier auth.TokenVerifier) *chi.Mux {
	h := &handler{service: service, entitlements: entitlements}

	router := chi.NewRouter()
	router.Get("/", h.listCoursesHandler)
	router.With(auth.OptionalAuth(verifier)).Get("/{courseID}", h.getCourseHandler)

	return router
}

// GET: /
func (h *handler) listCoursesHandler(w http.ResponseWriter, r *http.Request) {
	courses, err := h.service.ListPublished(r.Context())
	if err != nil {
		glog.Warningf("error listing courses: %v\n", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "error fetching courses"})
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "courses": courses})
}

// GET: /{courseID}
func (h *handler) getCourseHandler(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	// Anonymous callers never have access to non-preview lectures.
	hasAccess := false
	if callerID, err := auth.CallerID(r); err == nil {
		hasAccess, err = h.entitlements.HasAccess(r.Context(), callerID, courseID)
		if err != nil {
			glog.Warningf("error checking entitlement for user %s on course %s: %v\n", callerID, courseID, err)
			hasAccess = false
		}
	}

	c, err := h.service.GetVisible(r.Context(), courseID, hasAccess)
	if err != nil {
		status := http.StatusInternalServerError
		if cerrors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		render.Status(r, status)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "course not found"})
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "course": c})
}

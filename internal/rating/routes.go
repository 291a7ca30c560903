package rating

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"learnhub/internal/auth"
	"learnhub/internal/cerrors"
)

// RateRequest is the parameter struct for rating a course.
type RateRequest struct {
	CourseID string `json:"courseId"`
	Value    int    `json:"value"`
}

type handler struct {
	service *Service
}

func Routes(service *Service, verifier auth.TokenVerifier) *chi.Mux {
	h := &handler{service: service}

	router := chi.NewRouter()
	router.With(auth.RequireAuth(verifier)).Post("/", h.rateCourseHandler)
	router.Get("/{courseID}", h.averageRatingHandler)

	return router
}

// POST: /
func (h *handler) rateCourseHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.CallerID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var req RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.service.Rate(r.Context(), callerID, req.CourseID, req.Value)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case cerrors.IsValidation(err):
			status = http.StatusBadRequest
		case cerrors.IsNotFound(err):
			status = http.StatusNotFound
		}
		render.Status(r, status)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "could not store rating"})
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true})
}

// GET: /{courseID}
func (h *handler) averageRatingHandler(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "courseID")

	average, err := h.service.AverageRating(r.Context(), courseID)
	if err != nil {
		status := http.StatusInternalServerError
		if cerrors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		render.Status(r, status)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "could not fetch rating"})
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "averageRating": average})
}

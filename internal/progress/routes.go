package progress

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"learnhub/internal/auth"
	"learnhub/internal/cerrors"
)

type handler struct {
	service *Service
}

func Routes(service *Service, verifier auth.TokenVerifier) *chi.Mux {
	h := &handler{service: service}

	router := chi.NewRouter()
	router.Use(auth.RequireAuth(verifier))
	router.Post("/complete", h.markCompleteHandler)
	router.Get("/{courseID}", h.getProgressHandler)

	return router
}

// POST: /complete
func (h *handler) markCompleteHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.CallerID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var req MarkCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = h.service.MarkComplete(r.Context(), callerID, req.CourseID, req.LectureID)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case cerrors.IsValidation(err):
			status = http.StatusBadRequest
		case cerrors.IsNotFound(err):
			status = http.StatusNotFound
		}
		render.Status(r, status)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "could not record progress"})
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true})
}

// GET: /{courseID}
func (h *handler) getProgressHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.CallerID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	courseID := chi.URLParam(r, "courseID")

	percent, err := h.service.PercentComplete(r.Context(), callerID, courseID)
	if err != nil {
		status := http.StatusInternalServerError
		if cerrors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		render.Status(r, status)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "could not fetch progress"})
		return
	}

	completed, err := h.service.CompletedLectures(r.Context(), callerID, courseID)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "could not fetch progress"})
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"success":           true,
		"percentComplete":   percent,
		"completedLectures": completed,
	})
}

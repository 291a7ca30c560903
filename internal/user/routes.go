package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang/glog"

	"learnhub/internal/auth"
	"learnhub/internal/cerrors"
	"learnhub/internal/course"
)

type handler struct {
	service *Service
	courses *course.Service
}

func Routes(service *Service, courses *course.Service, verifier auth.TokenVerifier) *chi.Mux {
	h := &handler{service: service, courses: courses}

	router := chi.NewRouter()
	router.Use(auth.RequireAuth(verifier))
	router.Get("/me", h.getMeHandler)
	router.Get("/enrolled-courses", h.enrolledCoursesHandler)

	return router
}

// GET: /me
func (h *handler) getMeHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.CallerID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	u, err := h.service.GetUserByID(r.Context(), callerID)
	if err != nil {
		status := http.StatusInternalServerError
		if cerrors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		render.Status(r, status)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "user not found"})
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "user": u})
}

// GET: /enrolled-courses
func (h *handler) enrolledCoursesHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.CallerID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	u, err := h.service.GetUserByID(r.Context(), callerID)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "error fetching enrollments"})
		return
	}

	// The caller is enrolled in every course listed here, so full content is
	// visible.
	courses := make([]*course.Course, 0, len(u.EnrolledCourses))
	for _, courseID := range u.EnrolledCourses {
		c, err := h.courses.GetVisible(r.Context(), courseID, true)
		if err != nil {
			glog.Warningf("error hydrating enrolled course %s for user %s: %v\n", courseID, callerID, err)
			continue
		}
		courses = append(courses, c)
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "enrolledCourses": courses})
}

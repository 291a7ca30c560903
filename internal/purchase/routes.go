package purchase

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"learnhub/internal/auth"
	"learnhub/internal/cerrors"
)

type handler struct {
	service    *Service
	reconciler *Reconciler
}

// Routes exposes purchase initiation.
func Routes(service *Service, verifier auth.TokenVerifier) *chi.Mux {
	h := &handler{service: service}

	router := chi.NewRouter()
	router.With(auth.RequireAuth(verifier)).Post("/", h.initiatePurchaseHandler)

	return router
}

// AdminRoutes exposes the on-demand repair sweep.
func AdminRoutes(reconciler *Reconciler, verifier auth.TokenVerifier) *chi.Mux {
	h := &handler{reconciler: reconciler}

	router := chi.NewRouter()
	router.With(auth.RequireAuth(verifier)).Post("/reconcile", h.reconcileHandler)

	return router
}

// POST: /
func (h *handler) initiatePurchaseHandler(w http.ResponseWriter, r *http.Request) {
	callerID, err := auth.CallerID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var req InitiateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, checkoutURL, err := h.service.Initiate(r.Context(), callerID, req.CourseID)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case cerrors.IsValidation(err):
			status = http.StatusBadRequest
		case cerrors.IsNotFound(err):
			status = http.StatusNotFound
		case cerrors.IsTransient(err):
			status = http.StatusServiceUnavailable
		}
		render.Status(r, status)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "could not initiate purchase"})
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"success":     true,
		"purchaseId":  p.ID,
		"checkoutUrl": checkoutURL,
	})
}

// POST: /reconcile
func (h *handler) reconcileHandler(w http.ResponseWriter, r *http.Request) {
	repaired, err := h.reconciler.RepairSweep(r.Context())
	if err != nil {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]interface{}{"success": false, "message": "repair sweep failed"})
		return
	}

	render.JSON(w, r, map[string]interface{}{"success": true, "repaired": repaired})
}

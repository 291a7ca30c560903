package webhook

import (
	"io/ioutil"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/glog"

	"learnhub/internal/cerrors"
	"learnhub/internal/purchase"
	"learnhub/internal/user"
)

type handler struct {
	paymentSecret  string
	identitySecret string
	reconciler     *purchase.Reconciler
	users          *user.Service
}

// Routes exposes the provider notification endpoints. Responses carry only an
// acknowledge or retry-request status, never business detail.
func Routes(paymentSecret string, identitySecret string, reconciler *purchase.Reconciler, users *user.Service) *chi.Mux {
	h := &handler{
		paymentSecret:  paymentSecret,
		identitySecret: identitySecret,
		reconciler:     reconciler,
		users:          users,
	}

	router := chi.NewRouter()
	router.Post("/payment", h.paymentWebhookHandler)
	router.Post("/identity", h.identityWebhookHandler)

	return router
}

// POST: /payment
func (h *handler) paymentWebhookHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := h.verifiedBody(w, r, h.paymentSecret)
	if !ok {
		return
	}

	event, err := ParsePaymentEvent(body)
	if err != nil {
		glog.Warningf("rejecting payment notification: %v\n", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	writeOutcome(w, h.reconciler.HandlePaymentEvent(r.Context(), event))
}

// POST: /identity
func (h *handler) identityWebhookHandler(w http.ResponseWriter, r *http.Request) {
	body, ok := h.verifiedBody(w, r, h.identitySecret)
	if !ok {
		return
	}

	event, err := ParseIdentityEvent(body)
	if err != nil {
		glog.Warningf("rejecting identity notification: %v\n", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Kind {
	case IdentityCreated:
		err = h.users.HandleCreated(r.Context(), event.User)
	case IdentityUpdated:
		err = h.users.HandleUpdated(r.Context(), event.UserID, event.Update)
	case IdentityDeleted:
		err = h.users.HandleDeleted(r.Context(), event.UserID)
	default:
		glog.Infof("ignoring unrecognized identity event\n")
	}

	// A missing user cannot be fixed by redelivery; log and acknowledge.
	if cerrors.IsNotFound(err) {
		glog.Warningf("identity event for unknown user %s, acknowledging: %v\n", event.UserID, err)
		err = nil
	}

	writeOutcome(w, err)
}

// verifiedBody reads the request body and checks the provider signature
// before anything is parsed. A failed check rejects the request outright.
func (h *handler) verifiedBody(w http.ResponseWriter, r *http.Request, secret string) ([]byte, bool) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}

	err = VerifySignature(secret, r.Header.Get(SignatureHeader), body, time.Now())
	if err != nil {
		glog.Warningf("rejecting notification with bad signature: %v\n", err)
		w.WriteHeader(http.StatusBadRequest)
		return nil, false
	}

	return body, true
}

func writeOutcome(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
	case cerrors.IsValidation(err):
		glog.Warningf("rejecting notification: %v\n", err)
		w.WriteHeader(http.StatusBadRequest)
	case cerrors.IsTransient(err):
		glog.Warningf("requesting redelivery: %v\n", err)
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		glog.Errorf("notification processing failed: %v\n", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

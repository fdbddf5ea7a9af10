package respond

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/muscleforge/internal/access"
	"github.com/2beens/muscleforge/internal/telemetry/metrics"
	"github.com/2beens/muscleforge/internal/validation"
	"github.com/2beens/muscleforge/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const LoginPath = "/a/login"

type ErrorResponse struct {
	Error  string            `json:"error"`
	Login  string            `json:"login,omitempty"`
	Form   any               `json:"form,omitempty"`
	Errors *validation.Error `json:"errors,omitempty"`
}

// Responder turns service results into HTTP responses and counts rejections.
type Responder struct {
	metrics *metrics.Manager
}

func New(metricsManager *metrics.Manager) *Responder {
	return &Responder{metrics: metricsManager}
}

func (rs *Responder) OK(w http.ResponseWriter, v any) {
	pkg.WriteJSONOK(w, v)
}

func (rs *Responder) Created(w http.ResponseWriter, v any) {
	pkg.WriteJSON(w, v, http.StatusCreated)
}

func (rs *Responder) NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (rs *Responder) BadRequest(w http.ResponseWriter, msg string) {
	pkg.WriteJSON(w, ErrorResponse{Error: msg}, http.StatusBadRequest)
}

// Error maps err to a status code. A rejected form is echoed back with its
// field errors so the client can redisplay it; form may be nil otherwise.
func (rs *Responder) Error(w http.ResponseWriter, op string, err error, form any) {
	var verr *validation.Error
	switch {
	case errors.Is(err, access.ErrUnauthenticated):
		pkg.WriteJSON(w, ErrorResponse{Error: "authentication required", Login: LoginPath}, http.StatusUnauthorized)
	case errors.Is(err, access.ErrForbidden):
		log.Debugf("%s: access denied: %s", op, err)
		rs.countDenied("forbidden")
		pkg.WriteJSON(w, ErrorResponse{Error: "forbidden"}, http.StatusForbidden)
	case errors.Is(err, access.ErrNotFound):
		rs.countDenied("not_found")
		pkg.WriteJSON(w, ErrorResponse{Error: "not found"}, http.StatusNotFound)
	case errors.As(err, &verr):
		if rs.metrics != nil {
			rs.metrics.CounterRejectedForms.WithLabelValues(op).Inc()
		}
		pkg.WriteJSON(w, ErrorResponse{Error: "validation failed", Form: form, Errors: verr}, http.StatusUnprocessableEntity)
	default:
		if pkg.IsForeignKeyViolationError(err) || pkg.IsCheckViolationError(err) {
			log.Errorf("%s: integrity violation [%s]: %s", op, pkg.ConstraintName(err), err)
		} else {
			log.Errorf("%s: %s", op, err)
		}
		pkg.WriteJSON(w, ErrorResponse{Error: "internal error"}, http.StatusInternalServerError)
	}
}

func (rs *Responder) countDenied(reason string) {
	if rs.metrics != nil {
		rs.metrics.CounterAccessDenied.WithLabelValues(reason).Inc()
	}
}

// CallerID returns the authenticated account or writes a 401.
func (rs *Responder) CallerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, ok := access.CallerFrom(r.Context())
	if !ok {
		rs.Error(w, "caller", access.ErrUnauthenticated, nil)
		return 0, false
	}
	return id, true
}

// PathID parses a numeric mux route variable.
func (rs *Responder) PathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	idStr := mux.Vars(r)[name]
	if idStr == "" {
		rs.BadRequest(w, "error, "+name+" empty")
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		rs.BadRequest(w, "error, "+name+" NaN")
		return 0, false
	}
	return id, true
}

package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/muscleforge/internal/access"
	"github.com/2beens/muscleforge/internal/respond"
	"github.com/2beens/muscleforge/internal/telemetry/metrics"
	"github.com/2beens/muscleforge/pkg"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into the same JSON 500 every other
// internal error gets. A panic mid-save has already rolled back its transaction.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				callerID, _ := access.CallerFrom(req.Context())
				log.Errorf("http: panic serving %s %s (account %d): %v\n%s", req.Method, req.URL.Path, callerID, r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteJSON(w, respond.ErrorResponse{Error: "internal error"}, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}

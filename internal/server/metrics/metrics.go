// Package metrics holds the Prometheus collectors for authentication
// outcomes. A nil *Auth is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "taskkeeper"
	subsystem = "auth"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultError   = "error"
)

// Auth counts session outcomes.
type Auth struct {
	logins          *prometheus.CounterVec
	refreshes       *prometheus.CounterVec
	signouts        *prometheus.CounterVec
	guardRejections *prometheus.CounterVec
	revokedPruned   prometheus.Counter
}

// NewAuth registers the auth collectors with reg.
func NewAuth(reg prometheus.Registerer) *Auth {
	factory := promauto.With(reg)

	return &Auth{
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "logins_total",
			Help:      "Login attempts by result",
		}, []string{"result"}),

		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "refreshes_total",
			Help:      "Access token refresh attempts by result",
		}, []string{"result"}),

		signouts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "signouts_total",
			Help:      "Sign-out attempts by result",
		}, []string{"result"}),

		guardRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "guard_rejections_total",
			Help:      "Requests rejected by the access guard, by reason",
		}, []string{"reason"}),

		revokedPruned: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "revoked_pruned_total",
			Help:      "Expired revoked-token rows deleted",
		}),
	}
}

func (a *Auth) Login(result string) {
	if a != nil {
		a.logins.WithLabelValues(result).Inc()
	}
}

func (a *Auth) Refresh(result string) {
	if a != nil {
		a.refreshes.WithLabelValues(result).Inc()
	}
}

func (a *Auth) SignOut(result string) {
	if a != nil {
		a.signouts.WithLabelValues(result).Inc()
	}
}

// GuardRejection records a request the access guard turned away.
func (a *Auth) GuardRejection(reason string) {
	if a != nil {
		a.guardRejections.WithLabelValues(reason).Inc()
	}
}

func (a *Auth) RevokedPruned(n int64) {
	if a != nil && n > 0 {
		a.revokedPruned.Add(float64(n))
	}
}

// Package metrics registers folio's Prometheus collectors.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// LoginTotal counts login attempts by result ("ok", "fail").
	LoginTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "folio",
		Subsystem: "auth",
		Name:      "login_total",
		Help:      "Total number of login attempts by result",
	}, []string{"result"})

	// RefreshTotal counts refresh-token exchanges by result ("ok", "fail").
	RefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "folio",
		Subsystem: "auth",
		Name:      "refresh_total",
		Help:      "Total number of refresh-token exchanges by result",
	}, []string{"result"})

	// RotationsTotal counts refresh-token rotations (login and refresh paths).
	RotationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "folio",
		Subsystem: "auth",
		Name:      "refresh_rotations_total",
		Help:      "Total number of refresh-token rotations",
	})

	// AccessTokenInvalidTotal counts rejected access tokens by internal reason.
	AccessTokenInvalidTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "folio",
		Subsystem: "auth",
		Name:      "access_token_invalid_total",
		Help:      "Total number of rejected access tokens by reason",
	}, []string{"reason"})
)

// Register registers all collectors in the given registry, or in the
// default registerer when none is provided. Safe to call more than once.
func Register(registerers ...prometheus.Registerer) {
	once.Do(func() {
		reg := prometheus.Registerer(prometheus.DefaultRegisterer)
		if len(registerers) > 0 && registerers[0] != nil {
			reg = registerers[0]
		}
		reg.MustRegister(
			LoginTotal,
			RefreshTotal,
			RotationsTotal,
			AccessTokenInvalidTotal,
		)
	})
}

// Package metrics defines and registers the custom Prometheus metrics of the
// auth service. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default registry at package init through
// promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "passenger_auth"

// ── Mock-credential flow ──────────────────────────────────────────────────────

// LoginAttemptsTotal counts password logins.
// Label:
//   - outcome: "success", "invalid_credential" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of password login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AccessDecisionsTotal counts gate chain evaluations.
// Labels:
//   - gate: the gate that rejected the request, or "none" when all passed
//   - outcome: "allowed" or "denied"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of bearer requests evaluated by the gate chain.",
	},
	[]string{"gate", "outcome"},
)

// ── External-identity flow ────────────────────────────────────────────────────

// IdentityVerificationsTotal counts ID token verifications.
// Label:
//   - outcome: "success" or "rejected"
var IdentityVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "identity_verifications_total",
		Help:      "Total number of external identity token verifications, by outcome.",
	},
	[]string{"outcome"},
)

// IdentityVerificationDuration measures the round trip to the identity provider.
var IdentityVerificationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "identity_verification_duration_seconds",
		Help:      "Duration of external identity token verification.",
		Buckets:   prometheus.DefBuckets,
	},
)

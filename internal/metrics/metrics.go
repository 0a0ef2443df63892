// Package metrics объявляет prometheus-метрики сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "user_api"

var (
	// UsersCreated считает созданных пользователей по типу учётной записи.
	UsersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Number of created user accounts.",
	}, []string{"kind"})

	// TokensIssued считает выданные токены.
	TokensIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Number of issued authentication tokens.",
	})

	// AuthFailures считает отказы в аутентификации по причине.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Number of rejected authentication attempts.",
	}, []string{"reason"})
)

// Значения меток.
const (
	KindRegular   = "regular"
	KindSuperuser = "superuser"

	ReasonInvalidCredentials = "invalid_credentials"
	ReasonInvalidToken       = "invalid_token"
)

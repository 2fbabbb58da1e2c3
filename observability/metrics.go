package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome labels for auth metrics.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// AuthMetrics holds the instruments recorded along the authentication path.
// A nil *AuthMetrics is valid and records nothing, so callers don't need to
// guard every call site on whether telemetry is enabled.
type AuthMetrics struct {
	signInTotal     metric.Int64Counter
	signUpTotal     metric.Int64Counter
	refreshTotal    metric.Int64Counter
	validationTotal metric.Int64Counter
}

// NewAuthMetrics creates the auth instruments on the given meter.
func NewAuthMetrics(meter metric.Meter) (*AuthMetrics, error) {
	signIn, err := meter.Int64Counter("auth.signin.total",
		metric.WithDescription("Sign-in attempts by outcome"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.signin.total: %w", err)
	}
	signUp, err := meter.Int64Counter("auth.signup.total",
		metric.WithDescription("Sign-up attempts by outcome"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.signup.total: %w", err)
	}
	refresh, err := meter.Int64Counter("auth.refresh.total",
		metric.WithDescription("Token refresh attempts by outcome"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.refresh.total: %w", err)
	}
	validation, err := meter.Int64Counter("auth.token.validation.total",
		metric.WithDescription("Bearer token validations by outcome"))
	if err != nil {
		return nil, fmt.Errorf("observability: auth.token.validation.total: %w", err)
	}

	return &AuthMetrics{
		signInTotal:     signIn,
		signUpTotal:     signUp,
		refreshTotal:    refresh,
		validationTotal: validation,
	}, nil
}

// RecordSignIn counts a sign-in attempt.
func (m *AuthMetrics) RecordSignIn(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.signInTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordSignUp counts a sign-up attempt.
func (m *AuthMetrics) RecordSignUp(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.signUpTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordRefresh counts a refresh attempt.
func (m *AuthMetrics) RecordRefresh(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.refreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordValidation counts a bearer-token validation during request interception.
func (m *AuthMetrics) RecordValidation(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.validationTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

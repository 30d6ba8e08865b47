package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Decision outcome labels recorded by the enforcement layer.
const (
	DecisionAllowed          = "allowed"
	DecisionDenied           = "denied"
	DecisionResourceNotFound = "resource_not_found"
	DecisionError            = "error"
)

// AuthorizationMetrics records scope evaluation outcomes and token scope
// narrowing for observability.
type AuthorizationMetrics interface {
	// RecordDecision records the final outcome of one enforcement check.
	// Endpoint is the route pattern, outcome one of the Decision* labels.
	RecordDecision(ctx context.Context, endpoint, outcome string)

	// RecordTokenScopesNarrowed records how many scopes the owner intersection
	// dropped from a token's nominal grants.
	RecordTokenScopesNarrowed(ctx context.Context, dropped int)
}

// authorizationMetrics implements AuthorizationMetrics using OpenTelemetry.
type authorizationMetrics struct {
	decisionCounter metric.Int64Counter
	narrowedCounter metric.Int64Counter
}

// NewAuthorizationMetrics creates an AuthorizationMetrics implementation using
// the provided meter provider. The namespace prefixes all metric names.
func NewAuthorizationMetrics(meterProvider metric.MeterProvider, namespace string) (AuthorizationMetrics, error) {
	meter := meterProvider.Meter(namespace)

	decisionCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_authz_decisions_total", namespace),
		metric.WithDescription("Total number of authorization decisions"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create decision counter: %w", err)
	}

	narrowedCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_token_scopes_narrowed_total", namespace),
		metric.WithDescription("Total number of token scopes dropped by owner intersection"),
		metric.WithUnit("{scope}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create narrowed scopes counter: %w", err)
	}

	return &authorizationMetrics{
		decisionCounter: decisionCounter,
		narrowedCounter: narrowedCounter,
	}, nil
}

// RecordDecision increments the decision counter with endpoint and outcome labels.
func (a *authorizationMetrics) RecordDecision(ctx context.Context, endpoint, outcome string) {
	a.decisionCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("endpoint", endpoint),
			attribute.String("outcome", outcome),
		),
	)
}

// RecordTokenScopesNarrowed adds the number of dropped scopes to the narrowing counter.
func (a *authorizationMetrics) RecordTokenScopesNarrowed(ctx context.Context, dropped int) {
	if dropped <= 0 {
		return
	}
	a.narrowedCounter.Add(ctx, int64(dropped))
}

// NoopAuthorizationMetrics returns an AuthorizationMetrics that records
// nothing. Used when metrics are disabled.
func NoopAuthorizationMetrics() AuthorizationMetrics {
	return noopAuthorizationMetrics{}
}

type noopAuthorizationMetrics struct{}

func (noopAuthorizationMetrics) RecordDecision(context.Context, string, string) {}

func (noopAuthorizationMetrics) RecordTokenScopesNarrowed(context.Context, int) {}

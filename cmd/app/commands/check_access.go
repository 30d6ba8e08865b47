package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
	scopesDomain "github.com/allisson/hubgate/internal/scopes/domain"
	scopesService "github.com/allisson/hubgate/internal/scopes/service"
	scopesUseCase "github.com/allisson/hubgate/internal/scopes/usecase"
)

// RunCheckAccess evaluates a single authorization decision offline: it
// resolves the principal's effective scopes from its role assignments and
// checks the required scope against the given resource context, exactly as the
// enforcement middleware would. Context entries are key=value pairs using the
// filter dimensions (user, server, group, service).
//
// Requirements: Database must be migrated and accessible.
func RunCheckAccess(
	ctx context.Context,
	resolver scopesUseCase.ScopeResolver,
	authorizer scopesService.Authorizer,
	logger *slog.Logger,
	writer io.Writer,
	kindString string,
	principalName string,
	scopeName string,
	contextPairs []string,
	format string,
) error {
	kind, err := identityDomain.ParsePrincipalKind(kindString)
	if err != nil {
		return err
	}
	if scopeName == "" {
		return fmt.Errorf("a scope name is required")
	}

	var principal identityDomain.Principal
	if kind == identityDomain.PrincipalUser {
		principal = identityDomain.UserPrincipal(principalName)
	} else {
		principal = identityDomain.ServicePrincipal(principalName)
	}

	rc, err := parseResourceContext(contextPairs)
	if err != nil {
		return err
	}

	logger.Info("checking access",
		slog.String("kind", string(kind)),
		slog.String("principal", principalName),
		slog.String("scope", scopeName),
	)

	rawScopes, err := resolver.Resolve(ctx, principal)
	if err != nil {
		return fmt.Errorf("failed to resolve scopes: %w", err)
	}
	perms := scopesDomain.ParseScopes(rawScopes)

	authzErr := authorizer.Authorize(ctx, perms, scopeName, rc)
	allowed := authzErr == nil
	reason := ""
	switch {
	case allowed:
	case errors.Is(authzErr, scopesDomain.ErrScopeNotHeld):
		reason = "scope not held"
	case errors.Is(authzErr, scopesDomain.ErrResourceNotFound):
		reason = "no access to resources or resources not found"
	default:
		return fmt.Errorf("failed to evaluate access: %w", authzErr)
	}

	if format == "json" {
		outputRecordJSON(writer, map[string]any{
			"allowed":   allowed,
			"reason":    reason,
			"scope":     scopeName,
			"principal": fmt.Sprintf("%s:%s", kind, principalName),
		})
	} else if allowed {
		_, _ = fmt.Fprintf(writer, "Access allowed: %s %q holds %q\n", kind, principalName, scopeName)
	} else {
		_, _ = fmt.Fprintf(writer, "Access denied: %s\n", reason)
	}

	logger.Info("access check completed", slog.Bool("allowed", allowed))
	return nil
}

// parseResourceContext converts key=value pairs into a resource context,
// rejecting unknown filter dimensions and duplicate keys.
func parseResourceContext(pairs []string) (scopesDomain.ResourceContext, error) {
	entries := make([]scopesDomain.ContextEntry, 0, len(pairs))
	seen := make(map[scopesDomain.FilterKey]bool, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" || value == "" {
			return nil, fmt.Errorf("invalid context entry %q: expected key=value", pair)
		}
		filterKey := scopesDomain.FilterKey(key)
		if !validFilterKey(filterKey) {
			return nil, fmt.Errorf("invalid context key %q: valid keys are user, server, group, service", key)
		}
		if seen[filterKey] {
			return nil, fmt.Errorf("duplicate context key %q", key)
		}
		seen[filterKey] = true
		entries = append(entries, scopesDomain.ContextEntry{Key: filterKey, Value: value})
	}
	return scopesDomain.NewResourceContext(entries...), nil
}

func validFilterKey(key scopesDomain.FilterKey) bool {
	for _, known := range scopesDomain.FilterKeys {
		if key == known {
			return true
		}
	}
	return false
}

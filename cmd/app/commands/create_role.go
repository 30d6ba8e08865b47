package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	validation "github.com/jellydator/validation"

	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
	appvalidation "github.com/allisson/hubgate/internal/validation"
)

// RunCreateRole creates a new role carrying the given scope grant strings.
// Grants are passed as a comma-separated list, e.g.
// "read:users,users:servers!group=research".
//
// Requirements: Database must be migrated and accessible.
func RunCreateRole(
	ctx context.Context,
	roleUseCase identityUseCase.RoleUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	scopesCSV string,
	format string,
) error {
	if err := validation.Validate(name, validation.Required, appvalidation.NotBlank, appvalidation.PrincipalName); err != nil {
		return fmt.Errorf("invalid role name: %w", err)
	}

	scopes, err := parseScopeList(scopesCSV)
	if err != nil {
		return err
	}

	logger.Info("creating role",
		slog.String("name", name),
		slog.Int("scopes", len(scopes)),
	)

	role := &identityDomain.Role{Name: name, Scopes: scopes}
	if err := roleUseCase.Create(ctx, role); err != nil {
		return fmt.Errorf("failed to create role: %w", err)
	}

	if format == "json" {
		outputRecordJSON(writer, map[string]any{
			"id":     role.ID.String(),
			"name":   role.Name,
			"scopes": role.Scopes,
		})
	} else {
		_, _ = fmt.Fprintf(writer, "Role created successfully\nID: %s\nName: %s\nScopes: %s\n",
			role.ID, role.Name, strings.Join(role.Scopes, ", "))
	}

	logger.Info("role created successfully", slog.String("role_id", role.ID.String()))
	return nil
}

// parseScopeList splits a comma-separated list of scope grant strings and
// validates each entry's textual form.
func parseScopeList(scopesCSV string) ([]string, error) {
	var scopes []string
	for _, scope := range strings.Split(scopesCSV, ",") {
		scope = strings.TrimSpace(scope)
		if scope == "" {
			continue
		}
		if err := validation.Validate(scope, appvalidation.ScopeGrant); err != nil {
			return nil, fmt.Errorf("invalid scope grant %q: %w", scope, err)
		}
		scopes = append(scopes, scope)
	}
	if len(scopes) == 0 {
		return nil, fmt.Errorf("at least one scope grant is required")
	}
	return scopes, nil
}

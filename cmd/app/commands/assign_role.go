package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
)

// RunAssignRole attaches an existing role to a user or service. The principal
// must exist; assigning the same role twice is a no-op.
//
// Requirements: Database must be migrated and accessible.
func RunAssignRole(
	ctx context.Context,
	roleUseCase identityUseCase.RoleUseCase,
	logger *slog.Logger,
	writer io.Writer,
	roleName string,
	kindString string,
	principalName string,
) error {
	kind, err := identityDomain.ParsePrincipalKind(kindString)
	if err != nil {
		return err
	}

	logger.Info("assigning role",
		slog.String("role", roleName),
		slog.String("kind", string(kind)),
		slog.String("principal", principalName),
	)

	if err := roleUseCase.Assign(ctx, roleName, kind, principalName); err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Role %q assigned to %s %q\n", roleName, kind, principalName)

	logger.Info("role assigned successfully")
	return nil
}

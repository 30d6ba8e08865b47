package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
)

// RunCreateToken issues a new API token for a user or service. The plain token
// is printed exactly once and cannot be recovered afterwards; only its hash is
// stored.
//
// Requirements: Database must be migrated and accessible.
func RunCreateToken(
	ctx context.Context,
	tokenUseCase identityUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	kindString string,
	ownerName string,
	format string,
) error {
	kind, err := identityDomain.ParsePrincipalKind(kindString)
	if err != nil {
		return err
	}

	logger.Info("issuing token",
		slog.String("owner_kind", string(kind)),
		slog.String("owner_name", ownerName),
	)

	output, err := tokenUseCase.Issue(ctx, &identityDomain.IssueTokenInput{
		OwnerKind: kind,
		OwnerName: ownerName,
	})
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	if format == "json" {
		outputRecordJSON(writer, map[string]any{
			"id":    output.ID.String(),
			"token": output.PlainToken,
		})
	} else {
		_, _ = fmt.Fprintf(writer, "Token issued successfully\nID: %s\nToken: %s\n", output.ID, output.PlainToken)
		_, _ = fmt.Fprintln(writer, "Store the token now; it is not retrievable again.")
	}

	logger.Info("token issued successfully", slog.String("token_id", output.ID.String()))
	return nil
}

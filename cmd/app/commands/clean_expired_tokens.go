package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
)

// RunCleanExpiredTokens deletes tokens whose expiration has passed. Expired
// tokens already fail authentication; this reclaims the storage they occupy.
//
// Requirements: Database must be migrated and accessible.
func RunCleanExpiredTokens(
	ctx context.Context,
	tokenUseCase identityUseCase.TokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("cleaning expired tokens")

	count, err := tokenUseCase.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to clean expired tokens: %w", err)
	}

	if format == "json" {
		outputRecordJSON(writer, map[string]any{"count": count})
	} else {
		_, _ = fmt.Fprintf(writer, "Deleted %d expired token(s)\n", count)
	}

	logger.Info("cleanup completed", slog.Int64("count", count))
	return nil
}

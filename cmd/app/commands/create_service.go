package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	validation "github.com/jellydator/validation"

	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
	appvalidation "github.com/allisson/hubgate/internal/validation"
)

// RunCreateService creates a new machine service that can hold scopes and own
// tokens. Outputs the created record in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateService(
	ctx context.Context,
	serviceUseCase identityUseCase.ServiceUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	admin bool,
	format string,
) error {
	if err := validation.Validate(name, validation.Required, appvalidation.NotBlank, appvalidation.PrincipalName); err != nil {
		return fmt.Errorf("invalid service name: %w", err)
	}

	logger.Info("creating service", slog.String("name", name), slog.Bool("admin", admin))

	service := &identityDomain.Service{Name: name, Admin: admin}
	if err := serviceUseCase.Create(ctx, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	if format == "json" {
		outputRecordJSON(writer, map[string]any{
			"id":    service.ID.String(),
			"name":  service.Name,
			"admin": service.Admin,
		})
	} else {
		_, _ = fmt.Fprintf(writer, "Service created successfully\nID: %s\nName: %s\nAdmin: %t\n",
			service.ID, service.Name, service.Admin)
	}

	logger.Info("service created successfully", slog.String("service_id", service.ID.String()))
	return nil
}

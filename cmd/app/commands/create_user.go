package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	validation "github.com/jellydator/validation"

	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
	appvalidation "github.com/allisson/hubgate/internal/validation"
)

// RunCreateUser creates a new hub user that can hold scopes, own tokens and
// belong to groups. Outputs the created record in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase identityUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	admin bool,
	format string,
) error {
	if err := validation.Validate(name, validation.Required, appvalidation.NotBlank, appvalidation.PrincipalName); err != nil {
		return fmt.Errorf("invalid user name: %w", err)
	}

	logger.Info("creating user", slog.String("name", name), slog.Bool("admin", admin))

	user := &identityDomain.User{Name: name, Admin: admin}
	if err := userUseCase.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if format == "json" {
		outputRecordJSON(writer, map[string]any{
			"id":    user.ID.String(),
			"name":  user.Name,
			"admin": user.Admin,
		})
	} else {
		_, _ = fmt.Fprintf(writer, "User created successfully\nID: %s\nName: %s\nAdmin: %t\n",
			user.ID, user.Name, user.Admin)
	}

	logger.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}

// outputRecordJSON writes a generic result map as indented JSON. Shared by the
// create and assign commands.
func outputRecordJSON(writer io.Writer, result map[string]any) {
	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(writer, "failed to marshal JSON: %v\n", err)
		return
	}
	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}

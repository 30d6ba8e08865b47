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

// RunCreateGroup creates a new group. Group names can then appear as values of
// group-filtered scope grants.
//
// Requirements: Database must be migrated and accessible.
func RunCreateGroup(
	ctx context.Context,
	groupUseCase identityUseCase.GroupUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	format string,
) error {
	if err := validation.Validate(name, validation.Required, appvalidation.NotBlank, appvalidation.PrincipalName); err != nil {
		return fmt.Errorf("invalid group name: %w", err)
	}

	logger.Info("creating group", slog.String("name", name))

	group := &identityDomain.Group{Name: name}
	if err := groupUseCase.Create(ctx, group); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	if format == "json" {
		outputRecordJSON(writer, map[string]any{
			"id":   group.ID.String(),
			"name": group.Name,
		})
	} else {
		_, _ = fmt.Fprintf(writer, "Group created successfully\nID: %s\nName: %s\n", group.ID, group.Name)
	}

	logger.Info("group created successfully", slog.String("group_id", group.ID.String()))
	return nil
}

// RunAddGroupMember adds the named user to the named group. Adding an existing
// member is a no-op.
func RunAddGroupMember(
	ctx context.Context,
	groupUseCase identityUseCase.GroupUseCase,
	logger *slog.Logger,
	writer io.Writer,
	groupName string,
	userName string,
) error {
	logger.Info("adding group member",
		slog.String("group", groupName),
		slog.String("user", userName),
	)

	if err := groupUseCase.AddMember(ctx, groupName, userName); err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "User %q added to group %q\n", userName, groupName)

	logger.Info("group member added successfully")
	return nil
}

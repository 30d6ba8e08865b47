// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/hubgate/internal/validation"
)

// IssueTokenRequest contains the parameters for issuing an API token.
type IssueTokenRequest struct {
	OwnerKind string `json:"owner_kind"`
	OwnerName string `json:"owner_name"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.OwnerKind,
			validation.Required,
			validation.In("user", "service"),
		),
		validation.Field(&r.OwnerName,
			validation.Required,
			customValidation.NotBlank,
			customValidation.PrincipalName,
			validation.Length(1, 255),
		),
	)
}

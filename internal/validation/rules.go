// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/hubgate/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// PrincipalName validates principal, group and role names. Names are used as
// scope filter values, so the grant delimiters "!" and "=" and the value
// separator "," are not allowed; "/" is reserved for composite server names.
var PrincipalName = validation.NewStringRuleWithError(
	func(s string) bool {
		return !strings.ContainsAny(s, "!=,/ ")
	},
	validation.NewError(
		"validation_principal_name",
		"must not contain '!', '=', ',', '/' or spaces",
	),
)

// ScopeGrant validates the textual form of a scope grant: "name" or
// "name!key=value". The scope name must be non-empty; the filter part, when
// present, must carry a non-empty key.
var ScopeGrant = validation.NewStringRuleWithError(
	func(s string) bool {
		name, filter, found := strings.Cut(s, "!")
		if name == "" {
			return false
		}
		if !found || filter == "" {
			// Bare grant, or trailing "!" which normalizes to a bare grant.
			return true
		}
		key, _, _ := strings.Cut(filter, "=")
		return key != ""
	},
	validation.NewError(
		"validation_scope_grant",
		"must be a scope name optionally followed by !key=value",
	),
)

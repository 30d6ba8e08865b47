// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
)

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Admin     bool      `json:"admin"`
	Groups    []string  `json:"groups"`
	CreatedAt time.Time `json:"created_at"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *identityDomain.User) UserResponse {
	groups := user.Groups
	if groups == nil {
		groups = []string{}
	}
	return UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Admin:     user.Admin,
		Groups:    groups,
		CreatedAt: user.CreatedAt,
	}
}

// ListUsersResponse represents a paginated list of users in API responses.
type ListUsersResponse struct {
	Data []UserResponse `json:"data"`
}

// MapUsersToListResponse converts a slice of domain users to a list API response.
func MapUsersToListResponse(users []*identityDomain.User) ListUsersResponse {
	userResponses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, MapUserToResponse(user))
	}
	return ListUsersResponse{
		Data: userResponses,
	}
}

// ServerResponse describes a user's named server as seen through the access
// check. The composite name is the identifier server-filtered grants match.
type ServerResponse struct {
	User          string `json:"user"`
	Server        string `json:"server"`
	CompositeName string `json:"composite_name"`
}

// GroupResponse represents a group in API responses.
type GroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// MapGroupToResponse converts a domain group to an API response.
func MapGroupToResponse(group *identityDomain.Group) GroupResponse {
	return GroupResponse{
		ID:        group.ID.String(),
		Name:      group.Name,
		CreatedAt: group.CreatedAt,
	}
}

// ServiceResponse represents a service in API responses.
type ServiceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

// MapServiceToResponse converts a domain service to an API response.
func MapServiceToResponse(service *identityDomain.Service) ServiceResponse {
	return ServiceResponse{
		ID:        service.ID.String(),
		Name:      service.Name,
		Admin:     service.Admin,
		CreatedAt: service.CreatedAt,
	}
}

// IssueTokenResponse contains the result of issuing a token.
// SECURITY: The token is only returned once and must be saved securely.
type IssueTokenResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Package domain defines the scope permission model: grant strings, parsed
// permission sets and the resource context an authorization decision runs against.
//
// A scope grant is a plain string of the form "name" or "name!key=value", e.g.
// "users", "admin:users" or "users:servers!server=alice/lab". The bare form
// grants unrestricted access for that scope name; the filtered form restricts
// the scope to the named resource dimension.
package domain

// FilterKey names a resource dimension a scope grant may be restricted to.
type FilterKey string

const (
	// FilterUser restricts a scope to named users.
	FilterUser FilterKey = "user"

	// FilterServer restricts a scope to named servers ("owner/server").
	FilterServer FilterKey = "server"

	// FilterGroup restricts a scope to members of named groups.
	FilterGroup FilterKey = "group"

	// FilterService restricts a scope to named services.
	FilterService FilterKey = "service"
)

// ScopeAll is the sentinel scope name carried by tokens that inherit every
// scope their owner holds. It is unioned into the token's scope set before the
// owner intersection is applied.
const ScopeAll = "all"

// FilterKeys lists the resource dimensions in the order the enforcement layer
// binds them from a route's declared resource parameters.
var FilterKeys = []FilterKey{FilterUser, FilterServer, FilterGroup, FilterService}

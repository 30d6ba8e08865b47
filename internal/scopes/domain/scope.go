package domain

import (
	"strings"
)

// Grant is the parsed permission attached to one scope name. It is a tagged
// variant: either unrestricted (full access for the scope name) or filtered by
// one or more resource dimensions.
//
// A filtered grant with an empty filter map means the scope is restricted to
// resources identifiable only via runtime filtering elsewhere; there is no
// static allow-list for any dimension.
type Grant struct {
	// Unrestricted reports full access for the scope name. When true, Filters
	// is ignored.
	Unrestricted bool

	// Filters maps a resource dimension to its allowed values, in the order the
	// grant strings were supplied. Values are not deduplicated; membership, not
	// ordering, is what decisions depend on.
	Filters map[FilterKey][]string
}

// Values returns the allowed values for the given filter key and whether the
// key is present in the grant at all.
func (g *Grant) Values(key FilterKey) ([]string, bool) {
	if g.Unrestricted || g.Filters == nil {
		return nil, false
	}
	values, ok := g.Filters[key]
	return values, ok
}

// Allows reports whether value is in the grant's allow-list for key.
func (g *Grant) Allows(key FilterKey, value string) bool {
	values, ok := g.Values(key)
	if !ok {
		return false
	}
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// PermissionSet maps a scope name to its parsed grant. It is built fresh per
// effective-scope computation and never mutated after construction within a
// single authorization decision.
type PermissionSet map[string]*Grant

// ParseScopes turns a flat list of scope grant strings into a PermissionSet.
//
// Each grant string is split on the first "!" and then the first "=". A grant
// without a filter suffix makes the scope name unrestricted; once unrestricted,
// later filtered grants for the same name are ignored (widening only, never
// downgraded). Filtered grants for the same name and key accumulate values in
// input order.
//
// The parser is deliberately permissive: it performs no validation beyond the
// structural splitting, so degenerate input (empty scope name, unknown filter
// key, missing "=") is carried verbatim. Deciding which names and keys are
// legal is the caller's concern.
func ParseScopes(scopeList []string) PermissionSet {
	parsed := make(PermissionSet, len(scopeList))
	for _, scope := range scopeList {
		name, filter, found := strings.Cut(scope, "!")
		if !found || filter == "" {
			// Bare grant: unrestricted wins regardless of what was parsed
			// before or comes after for this name.
			parsed[name] = &Grant{Unrestricted: true}
			continue
		}
		grant, ok := parsed[name]
		if !ok {
			grant = &Grant{Filters: make(map[FilterKey][]string)}
			parsed[name] = grant
		}
		if grant.Unrestricted {
			continue
		}
		key, value, _ := strings.Cut(filter, "=")
		filterKey := FilterKey(key)
		grant.Filters[filterKey] = append(grant.Filters[filterKey], value)
	}
	return parsed
}

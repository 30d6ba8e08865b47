package domain

// ContextEntry is one concrete resource identifier of an incoming request,
// e.g. {user, "alice"} or {server, "alice/lab"}.
type ContextEntry struct {
	Key   FilterKey
	Value string
}

// ResourceContext is the ordered set of resource identifiers an authorization
// decision is evaluated against. Order follows the protected operation's
// declared resource parameters.
type ResourceContext []ContextEntry

// NewResourceContext builds a context from key/value pairs, dropping entries
// with empty values.
func NewResourceContext(entries ...ContextEntry) ResourceContext {
	rc := make(ResourceContext, 0, len(entries))
	for _, entry := range entries {
		if entry.Value == "" {
			continue
		}
		rc = append(rc, entry)
	}
	return rc
}

// Value returns the context value for the given key and whether it is present.
func (rc ResourceContext) Value(key FilterKey) (string, bool) {
	for _, entry := range rc {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return "", false
}

// Normalize rewrites the server identifier to the composite "user/server" form
// when both a user and a server are present. Server filter values are always
// compared against this composite form, never against the bare server name.
//
// Normalize returns a rewritten copy; the receiver is left untouched. It must
// be applied exactly once per decision (applying it twice would compound the
// user prefix).
func (rc ResourceContext) Normalize() ResourceContext {
	user, hasUser := rc.Value(FilterUser)
	_, hasServer := rc.Value(FilterServer)
	if !hasUser || !hasServer {
		return rc
	}
	normalized := make(ResourceContext, len(rc))
	copy(normalized, rc)
	for i, entry := range normalized {
		if entry.Key == FilterServer {
			normalized[i].Value = user + "/" + entry.Value
		}
	}
	return normalized
}

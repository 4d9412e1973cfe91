package gate

import (
    "strconv"
    "strings"
)

// PrivilegeResolver decides whether a role identifier bypasses the
// availability gate. Both enforcement points consume the same resolver
// so the rule set cannot drift between them.
type PrivilegeResolver interface {
    IsPrivileged(roleID string) bool
}

// RoleSet resolves privilege against a small fixed set of
// administrator/developer role identifiers. It deliberately avoids a
// round trip to the role-permission tables: the edge gate runs on
// every request and must stay cheap.
type RoleSet struct {
    ids map[string]bool
}

// NewRoleSet builds a resolver from role identifiers. Identifiers are
// normalised so that "1", " 1" and "01" all match the same role.
func NewRoleSet(ids ...string) *RoleSet {
    s := &RoleSet{ids: make(map[string]bool, len(ids))}
    for _, id := range ids {
        if n := normalizeRoleID(id); n != "" {
            s.ids[n] = true
        }
    }
    return s
}

// IsPrivileged reports whether the role identifier belongs to the set.
// The comparison is string/number tolerant because sessions issued by
// older builds carried the role as a number.
func (s *RoleSet) IsPrivileged(roleID string) bool {
    return s.ids[normalizeRoleID(roleID)]
}

// normalizeRoleID trims the identifier and collapses numeric forms to
// their canonical decimal representation.
func normalizeRoleID(id string) string {
    id = strings.TrimSpace(id)
    if id == "" {
        return ""
    }
    if n, err := strconv.ParseInt(id, 10, 64); err == nil {
        return strconv.FormatInt(n, 10)
    }
    return id
}

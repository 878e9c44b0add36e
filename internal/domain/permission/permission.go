package permission

import (
	"fmt"
	"strings"
)

// Permission is a discrete capability granted to a user. The set of
// permissions is closed; unknown names are rejected at the boundary.
type Permission uint8

const (
	Admin Permission = iota
	User
	ItemCreate
	ItemDelete
	PermissionUpdate

	count
)

var names = [count]string{
	Admin:            "ADMIN",
	User:             "USER",
	ItemCreate:       "ITEMCREATE",
	ItemDelete:       "ITEMDELETE",
	PermissionUpdate: "PERMISSIONUPDATE",
}

func (p Permission) String() string {
	if p >= count {
		return "UNKNOWN"
	}
	return names[p]
}

// Parse maps a stored permission name back to its Permission.
func Parse(s string) (Permission, error) {
	for i, n := range names {
		if n == strings.ToUpper(strings.TrimSpace(s)) {
			return Permission(i), nil
		}
	}
	return 0, fmt.Errorf("unknown permission %q", s)
}

// Set is a fixed-size permission set with O(1) membership tests.
type Set uint8

func NewSet(ps ...Permission) Set {
	var s Set
	for _, p := range ps {
		s = s.With(p)
	}
	return s
}

func (s Set) With(p Permission) Set { return s | 1<<p }
func (s Set) Has(p Permission) bool { return s&(1<<p) != 0 }
func (s Set) Intersects(o Set) bool { return s&o != 0 }
func (s Set) IsEmpty() bool         { return s == 0 }

// Strings returns the set as stored permission names, in declaration order.
func (s Set) Strings() []string {
	out := make([]string, 0, count)
	for p := Permission(0); p < count; p++ {
		if s.Has(p) {
			out = append(out, p.String())
		}
	}
	return out
}

func (s Set) String() string {
	return strings.Join(s.Strings(), ",")
}

// ParseSet builds a Set from stored names. Any unknown name fails the whole
// parse so a typo never silently drops a grant.
func ParseSet(ss []string) (Set, error) {
	var s Set
	for _, raw := range ss {
		p, err := Parse(raw)
		if err != nil {
			return 0, err
		}
		s = s.With(p)
	}
	return s, nil
}

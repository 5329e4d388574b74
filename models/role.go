package models

import "strings"

// Role is what a request principal is allowed to act as.
type Role uint8

const (
	RoleStudent Role = 1 << iota
	RoleTeacher
	RoleReviewer
)

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "STUDENT"
	case RoleTeacher:
		return "TEACHER"
	case RoleReviewer:
		return "REVIEWER"
	default:
		return "UNKNOWN"
	}
}

// RoleSet holds every role granted to one request.
type RoleSet uint8

func (s RoleSet) With(r Role) RoleSet { return s | RoleSet(r) }

func (s RoleSet) Has(r Role) bool { return s&RoleSet(r) != 0 }

// HasAny reports whether at least one of roles is granted.
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

func (s RoleSet) String() string {
	var names []string
	for _, r := range []Role{RoleStudent, RoleTeacher, RoleReviewer} {
		if s.Has(r) {
			names = append(names, r.String())
		}
	}
	return strings.Join(names, ",")
}

package model

import (
	"encoding/json"
	"errors"
	"strings"
)

const (
	RolePatient = "PATIENT"
	RoleAdmin   = "ADMIN"
)

var ErrRolesNotArray = errors.New("roles must be an array")

func splitRoles(stored string) []string {
	parts := strings.Split(stored, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, p)
		}
	}
	return roles
}

// RolesToArray reads a persisted role string. An empty set reads as PATIENT.
func RolesToArray(stored string) []string {
	roles := splitRoles(stored)
	if len(roles) == 0 {
		return []string{RolePatient}
	}
	return roles
}

// RolesToStored produces the persisted form of a role set. ADMIN is never
// bundled with other roles; everything else is joined in the given order.
func RolesToStored(roles []string) string {
	if HasRole(roles, RoleAdmin) {
		return RoleAdmin
	}
	return strings.Join(roles, ",")
}

// HasRole reports whether role is present in roles.
func HasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether roles and allowed intersect.
func HasAnyRole(roles []string, allowed ...string) bool {
	for _, a := range allowed {
		if HasRole(roles, a) {
			return true
		}
	}
	return false
}

// RoleList is a role payload that accepts either a JSON array of tags or a
// single comma separated string.
type RoleList []string

func (l *RoleList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrRolesNotArray
	}
	*l = splitRoles(s)
	return nil
}

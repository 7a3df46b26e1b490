package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role enumerates account roles.
type Role string

const (
	RoleCitizen  Role = "CITIZEN"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole maps client-supplied role strings onto the closed enum.
// Matching is case-insensitive so the legacy spellings ("Citizen",
// "admin") remain accepted on the wire.
func ParseRole(raw string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(RoleCitizen):
		return RoleCitizen, nil
	case string(RoleEmployee):
		return RoleEmployee, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// User is the domain model for registered accounts.
type User struct {
	ID              string
	FullName        string
	Email           string
	PhoneNumber     string
	PasswordHash    string
	Role            Role
	Address         string
	City            string
	State           string
	Pincode         string
	ProfileImageURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

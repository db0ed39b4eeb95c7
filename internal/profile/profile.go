// Package profile models the role a session acts under. The role is a
// single tagged variant rather than three parallel records, so "two roles
// set at once" is unrepresentable.
package profile

import "strings"

// Role identifies which kind of account the session belongs to.
type Role int

const (
	RoleNone Role = iota
	RolePatient
	RoleDoctor
	RoleAdmin
)

// String returns the lowercase role name, or "none".
func (r Role) String() string {
	switch r {
	case RolePatient:
		return "patient"
	case RoleDoctor:
		return "doctor"
	case RoleAdmin:
		return "admin"
	default:
		return "none"
	}
}

// ParseRole maps a role name to a Role, case-insensitively.
// Unknown names map to RoleNone.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "patient":
		return RolePatient
	case "doctor":
		return RoleDoctor
	case "admin":
		return RoleAdmin
	default:
		return RoleNone
	}
}

// Patient is the profile payload for a patient account.
type Patient struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
}

// Doctor is the profile payload for a doctor account.
type Doctor struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty,omitempty"`
}

// Admin is the profile payload for an admin account.
type Admin struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Level  string `json:"level,omitempty"`
}

// Profile carries the session's role and exactly the record matching it.
// For RoleNone all record pointers are nil.
type Profile struct {
	Role    Role
	Patient *Patient
	Doctor  *Doctor
	Admin   *Admin
}

// UserID returns the id of whichever record is set, or "".
func (p *Profile) UserID() string {
	switch p.Role {
	case RolePatient:
		if p.Patient != nil {
			return p.Patient.UserID
		}
	case RoleDoctor:
		if p.Doctor != nil {
			return p.Doctor.UserID
		}
	case RoleAdmin:
		if p.Admin != nil {
			return p.Admin.UserID
		}
	}
	return ""
}

package models

import (
	"regexp"
	"time"
)

// Role is the session role a user logs in with
type Role string

const (
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
)

// IsValidRole checks if a role is known
func IsValidRole(r Role) bool {
	switch r {
	case RolePatient, RoleAdmin, RoleDoctor:
		return true
	}
	return false
}

// Doctor is a doctor record as exchanged with the backend
type Doctor struct {
	ID             int64    `json:"id,omitempty"`
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Email          string   `json:"email"`
	Password       string   `json:"password,omitempty"` // write-only on the backend
	Phone          string   `json:"phone"`
	AvailableTimes []string `json:"availableTimes,omitempty"`
}

// Patient is the signup payload for a new patient
type Patient struct {
	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// CachedDoctor is a doctor row from the local directory cache
type CachedDoctor struct {
	Doctor
	SyncedAt time.Time
}

var timeSlotPattern = regexp.MustCompile(`^\d{2}:\d{2}-\d{2}:\d{2}$`)

// IsValidTimeSlot checks the "HH:mm-HH:mm" availability format
func IsValidTimeSlot(slot string) bool {
	return timeSlotPattern.MatchString(slot)
}

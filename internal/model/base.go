package model

import (
	"strings"
)

// Base contains common fields for all models
type Base struct {
	ID int64 `json:"id" db:"id"`
}

// Entity names used by metrics, audit entries and events.
const (
	EntityDoctor        = "doctor"
	EntityPatient       = "patient"
	EntityAppointment   = "appointment"
	EntityEquipment     = "equipment"
	EntityMedicalRecord = "medical_record"
	EntitySession       = "session"
)

// Operation names.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpList   = "list"
	OpGet    = "get"
	OpLogin  = "login"
	OpLogout = "logout"
)

// Provided reports whether an optional text field carries a value. Blank input
// counts as absent.
func Provided(p *string) bool {
	return p != nil && strings.TrimSpace(*p) != ""
}

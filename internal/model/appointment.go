package model

import (
	"time"
)

const (
	StatusScheduled = "Scheduled"
	// StatusPending blocks deletion of the owning doctor. Matched case-sensitively.
	StatusPending = "Pending"
)

type Appointment struct {
	Base
	PatientID *int64    `db:"patient_id" json:"patient_id"`
	DoctorID  *int64    `db:"doctor_id" json:"doctor_id"`
	Date      time.Time `db:"appointment_date" json:"date"`
	Time      TimeOfDay `db:"appointment_time" json:"time"`
	Status    string    `db:"status" json:"status"`
}

// AppointmentDetail is an appointment joined with the names of its participants.
type AppointmentDetail struct {
	Appointment
	PatientName string `db:"patient_name" json:"patient_name"`
	DoctorName  string `db:"doctor_name" json:"doctor_name"`
}

type CreateAppointmentRequest struct {
	PatientID int64
	DoctorID  int64
	Date      time.Time
	Time      TimeOfDay
}

type UpdateAppointmentRequest struct {
	Status *string
}

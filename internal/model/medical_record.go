package model

import (
	"time"
)

type MedicalRecord struct {
	Base
	PatientID           int64     `db:"patient_id" json:"patient_id"`
	Diagnosis           string    `db:"diagnosis" json:"diagnosis"`
	Treatment           string    `db:"treatment" json:"treatment"`
	ConsultationDetails string    `db:"consultation_details" json:"consultation_details"`
	ConsultationDate    time.Time `db:"consultation_date" json:"consultation_date"`
}

type CreateMedicalRecordRequest struct {
	PatientID           int64
	Diagnosis           string
	Treatment           string
	ConsultationDetails string
}

type UpdateMedicalRecordRequest struct {
	Diagnosis           *string
	Treatment           *string
	ConsultationDetails *string
}

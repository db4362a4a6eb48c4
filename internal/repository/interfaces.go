package repository

import (
	"context"

	"github.com/jwalitptl/hospital-admin/internal/model"
)

// All repository interfaces in one file.
//
// Writes that affect no row return an ErrNotFound app error. Reads return an
// empty, non-nil slice when nothing matches. Driver failures surface as ErrStore.
type (
	DoctorRepository interface {
		List(ctx context.Context) ([]*model.Doctor, error)
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		Create(ctx context.Context, doctor *model.Doctor) error
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id int64) error
	}

	PatientRepository interface {
		List(ctx context.Context) ([]*model.Patient, error)
		Get(ctx context.Context, id int64) (*model.Patient, error)
		Create(ctx context.Context, patient *model.Patient) error
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id int64) error
	}

	AppointmentRepository interface {
		List(ctx context.Context) ([]*model.Appointment, error)
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		Create(ctx context.Context, appointment *model.Appointment) error
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id int64) error
		ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error)
	}

	EquipmentRepository interface {
		List(ctx context.Context) ([]*model.Equipment, error)
		Get(ctx context.Context, id int64) (*model.Equipment, error)
		Create(ctx context.Context, equipment *model.Equipment) error
		Delete(ctx context.Context, id int64) error
	}

	MedicalRecordRepository interface {
		ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error)
		Get(ctx context.Context, id int64) (*model.MedicalRecord, error)
		Create(ctx context.Context, record *model.MedicalRecord) error
		Update(ctx context.Context, record *model.MedicalRecord) error
	}

	// Pinger reports whether the backing store is reachable.
	Pinger interface {
		Ping(ctx context.Context) error
	}
)

// Repositories groups every entity repository behind one value.
type Repositories struct {
	Doctors        DoctorRepository
	Patients       PatientRepository
	Appointments   AppointmentRepository
	Equipment      EquipmentRepository
	MedicalRecords MedicalRecordRepository
	Health         Pinger
}

package memory

import (
	"context"

	"github.com/jwalitptl/hospital-admin/internal/model"
)

type doctorRepository struct {
	t *table[model.Doctor]
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	return ptrs(r.t.scan(nil)), nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	doctor, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	row := *doctor
	id := r.t.insert(row)
	row.ID = id
	doctor.ID = id
	return r.t.replace(id, row)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	return r.t.replace(doctor.ID, *doctor)
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	return r.t.remove(id)
}

type patientRepository struct {
	t *table[model.Patient]
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	return ptrs(r.t.scan(nil)), nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	row := *patient
	id := r.t.insert(row)
	row.ID = id
	patient.ID = id
	return r.t.replace(id, row)
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	return r.t.replace(patient.ID, *patient)
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	return r.t.remove(id)
}

type appointmentRepository struct {
	t *table[model.Appointment]
}

func detachAppointment(a model.Appointment) model.Appointment {
	a.PatientID = copyInt64(a.PatientID)
	a.DoctorID = copyInt64(a.DoctorID)
	return a
}

func (r *appointmentRepository) list(match func(model.Appointment) bool) []*model.Appointment {
	rows := r.t.scan(match)
	for i := range rows {
		rows[i] = detachAppointment(rows[i])
	}
	return ptrs(rows)
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	return r.list(nil), nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Appointment, error) {
	return r.list(func(a model.Appointment) bool {
		return a.DoctorID != nil && *a.DoctorID == doctorID
	}), nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	return r.list(func(a model.Appointment) bool {
		return a.PatientID != nil && *a.PatientID == patientID
	}), nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	appointment, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	appointment = detachAppointment(appointment)
	return &appointment, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	row := detachAppointment(*appointment)
	id := r.t.insert(row)
	row.ID = id
	appointment.ID = id
	return r.t.replace(id, row)
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	return r.t.replace(appointment.ID, detachAppointment(*appointment))
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	return r.t.remove(id)
}

type equipmentRepository struct {
	t *table[model.Equipment]
}

func (r *equipmentRepository) List(ctx context.Context) ([]*model.Equipment, error) {
	return ptrs(r.t.scan(nil)), nil
}

func (r *equipmentRepository) Get(ctx context.Context, id int64) (*model.Equipment, error) {
	item, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *equipmentRepository) Create(ctx context.Context, item *model.Equipment) error {
	row := *item
	id := r.t.insert(row)
	row.ID = id
	item.ID = id
	return r.t.replace(id, row)
}

func (r *equipmentRepository) Delete(ctx context.Context, id int64) error {
	return r.t.remove(id)
}

type medicalRecordRepository struct {
	t *table[model.MedicalRecord]
}

func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error) {
	return ptrs(r.t.scan(func(rec model.MedicalRecord) bool {
		return rec.PatientID == patientID
	})), nil
}

func (r *medicalRecordRepository) Get(ctx context.Context, id int64) (*model.MedicalRecord, error) {
	record, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	row := *record
	id := r.t.insert(row)
	row.ID = id
	record.ID = id
	return r.t.replace(id, row)
}

func (r *medicalRecordRepository) Update(ctx context.Context, record *model.MedicalRecord) error {
	return r.t.replace(record.ID, *record)
}

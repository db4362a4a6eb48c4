package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

const appointmentColumns = `id, patient_id, doctor_id, appointment_date, appointment_time, status`

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB, opts Options) repository.AppointmentRepository {
	return &appointmentRepository{BaseRepository: newBaseRepository(db, model.EntityAppointment, opts)}
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	return r.selectMany(ctx, model.OpList, `SELECT `+appointmentColumns+` FROM appointments ORDER BY id`)
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Appointment, error) {
	return r.selectMany(ctx, "list_by_doctor",
		`SELECT `+appointmentColumns+` FROM appointments WHERE doctor_id = $1 ORDER BY id`, doctorID)
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	return r.selectMany(ctx, "list_by_patient",
		`SELECT `+appointmentColumns+` FROM appointments WHERE patient_id = $1 ORDER BY id`, patientID)
}

func (r *appointmentRepository) selectMany(ctx context.Context, op, query string, args ...interface{}) ([]*model.Appointment, error) {
	appointments := make([]*model.Appointment, 0)
	err := r.withConn(ctx, op, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &appointments, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.withConn(ctx, model.OpGet, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &appointment, `SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (patient_id, doctor_id, appointment_date, appointment_time, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.withConn(ctx, model.OpCreate, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.QueryRowxContext(ctx, query,
			appointment.PatientID,
			appointment.DoctorID,
			appointment.Date,
			appointment.Time,
			appointment.Status,
		).Scan(&appointment.ID)
	})
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = $1, doctor_id = $2, appointment_date = $3, appointment_time = $4, status = $5
		WHERE id = $6
	`
	return r.execAffecting(ctx, model.OpUpdate, query,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.Date,
		appointment.Time,
		appointment.Status,
		appointment.ID,
	)
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, model.OpDelete, `DELETE FROM appointments WHERE id = $1`, id)
}

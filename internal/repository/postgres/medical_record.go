package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

const medicalRecordColumns = `id, patient_id, diagnosis, treatment, consultation_details, consultation_date`

type medicalRecordRepository struct {
	BaseRepository
}

func NewMedicalRecordRepository(db *sqlx.DB, opts Options) repository.MedicalRecordRepository {
	return &medicalRecordRepository{BaseRepository: newBaseRepository(db, model.EntityMedicalRecord, opts)}
}

// ListByPatient returns records in insertion order so positions stay stable.
func (r *medicalRecordRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.MedicalRecord, error) {
	records := make([]*model.MedicalRecord, 0)
	err := r.withConn(ctx, "list_by_patient", func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &records,
			`SELECT `+medicalRecordColumns+` FROM medical_records WHERE patient_id = $1 ORDER BY id`, patientID)
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) Get(ctx context.Context, id int64) (*model.MedicalRecord, error) {
	var record model.MedicalRecord
	err := r.withConn(ctx, model.OpGet, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &record, `SELECT `+medicalRecordColumns+` FROM medical_records WHERE id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (patient_id, diagnosis, treatment, consultation_details, consultation_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.withConn(ctx, model.OpCreate, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.QueryRowxContext(ctx, query,
			record.PatientID,
			record.Diagnosis,
			record.Treatment,
			record.ConsultationDetails,
			record.ConsultationDate,
		).Scan(&record.ID)
	})
}

func (r *medicalRecordRepository) Update(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		UPDATE medical_records
		SET diagnosis = $1, treatment = $2, consultation_details = $3
		WHERE id = $4
	`
	return r.execAffecting(ctx, model.OpUpdate, query,
		record.Diagnosis,
		record.Treatment,
		record.ConsultationDetails,
		record.ID,
	)
}

package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

const patientColumns = `id, name, email, username, address, gender, age, date_of_birth`

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB, opts Options) repository.PatientRepository {
	return &patientRepository{BaseRepository: newBaseRepository(db, model.EntityPatient, opts)}
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	patients := make([]*model.Patient, 0)
	err := r.withConn(ctx, model.OpList, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &patients, `SELECT `+patientColumns+` FROM patients ORDER BY id`)
	})
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	var patient model.Patient
	err := r.withConn(ctx, model.OpGet, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &patient, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (name, email, username, address, gender, age, date_of_birth)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.withConn(ctx, model.OpCreate, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.QueryRowxContext(ctx, query,
			patient.Name,
			patient.Email,
			patient.Username,
			patient.Address,
			patient.Gender,
			patient.Age,
			patient.DateOfBirth,
		).Scan(&patient.ID)
	})
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, email = $2, username = $3, address = $4, gender = $5, age = $6, date_of_birth = $7
		WHERE id = $8
	`
	return r.execAffecting(ctx, model.OpUpdate, query,
		patient.Name,
		patient.Email,
		patient.Username,
		patient.Address,
		patient.Gender,
		patient.Age,
		patient.DateOfBirth,
		patient.ID,
	)
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, model.OpDelete, `DELETE FROM patients WHERE id = $1`, id)
}

package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

const doctorColumns = `id, name, specialization, email, username, password`

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB, opts Options) repository.DoctorRepository {
	return &doctorRepository{BaseRepository: newBaseRepository(db, model.EntityDoctor, opts)}
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors := make([]*model.Doctor, 0)
	err := r.withConn(ctx, model.OpList, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &doctors, `SELECT `+doctorColumns+` FROM doctors ORDER BY id`)
	})
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.withConn(ctx, model.OpGet, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &doctor, `SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (name, specialization, email, username, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.withConn(ctx, model.OpCreate, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.QueryRowxContext(ctx, query,
			doctor.Name,
			doctor.Specialization,
			doctor.Email,
			doctor.Username,
			doctor.PasswordHash,
		).Scan(&doctor.ID)
	})
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $1, specialization = $2, email = $3, username = $4, password = $5
		WHERE id = $6
	`
	return r.execAffecting(ctx, model.OpUpdate, query,
		doctor.Name,
		doctor.Specialization,
		doctor.Email,
		doctor.Username,
		doctor.PasswordHash,
		doctor.ID,
	)
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, model.OpDelete, `DELETE FROM doctors WHERE id = $1`, id)
}

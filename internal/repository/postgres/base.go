package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/repository"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/metrics"
)

const defaultQueryTimeout = 5 * time.Second

type Options struct {
	QueryTimeout time.Duration
	Metrics      *metrics.Metrics
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db      *sqlx.DB
	entity  string
	timeout time.Duration
	metrics *metrics.Metrics
}

func newBaseRepository(db *sqlx.DB, entity string, opts Options) BaseRepository {
	timeout := opts.QueryTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return BaseRepository{db: db, entity: entity, timeout: timeout, metrics: opts.Metrics}
}

// NewRepositories builds every repository over one pool.
func NewRepositories(db *sqlx.DB, opts Options) repository.Repositories {
	return repository.Repositories{
		Doctors:        NewDoctorRepository(db, opts),
		Patients:       NewPatientRepository(db, opts),
		Appointments:   NewAppointmentRepository(db, opts),
		Equipment:      NewEquipmentRepository(db, opts),
		MedicalRecords: NewMedicalRecordRepository(db, opts),
		Health:         &pinger{db: db},
	}
}

// withConn runs fn on a dedicated connection bounded by the query timeout.
// The connection goes back to the pool on every path.
func (r *BaseRepository) withConn(ctx context.Context, op string, fn func(ctx context.Context, conn *sqlx.Conn) error) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.ObserveStore(r.entity+"."+op, started, err)
	}()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	conn, err := r.db.Connx(ctx)
	if err != nil {
		return apperrors.NewStore(r.entity+"."+op, err)
	}
	defer conn.Close()

	if err := fn(ctx, conn); err != nil {
		return r.mapError(op, err)
	}
	return nil
}

// execAffecting runs a write and reports ErrNotFound when no row changed.
func (r *BaseRepository) execAffecting(ctx context.Context, op, query string, args ...interface{}) error {
	return r.withConn(ctx, op, func(ctx context.Context, conn *sqlx.Conn) error {
		res, err := conn.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return apperrors.NewNotFound(r.entity, nil)
		}
		return nil
	})
}

func (r *BaseRepository) mapError(op string, err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, sql.ErrNoRows):
		return apperrors.NewNotFound(r.entity, err)
	default:
		return apperrors.NewStore(r.entity+"."+op, err)
	}
}

type pinger struct {
	db *sqlx.DB
}

func (p *pinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

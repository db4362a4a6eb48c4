package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

type equipmentRepository struct {
	BaseRepository
}

func NewEquipmentRepository(db *sqlx.DB, opts Options) repository.EquipmentRepository {
	return &equipmentRepository{BaseRepository: newBaseRepository(db, model.EntityEquipment, opts)}
}

func (r *equipmentRepository) List(ctx context.Context) ([]*model.Equipment, error) {
	items := make([]*model.Equipment, 0)
	err := r.withConn(ctx, model.OpList, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.SelectContext(ctx, &items, `SELECT id, name, description, stock FROM equipment ORDER BY id`)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *equipmentRepository) Get(ctx context.Context, id int64) (*model.Equipment, error) {
	var item model.Equipment
	err := r.withConn(ctx, model.OpGet, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &item, `SELECT id, name, description, stock FROM equipment WHERE id = $1`, id)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *equipmentRepository) Create(ctx context.Context, item *model.Equipment) error {
	query := `INSERT INTO equipment (name, description, stock) VALUES ($1, $2, $3) RETURNING id`
	return r.withConn(ctx, model.OpCreate, func(ctx context.Context, conn *sqlx.Conn) error {
		return conn.QueryRowxContext(ctx, query, item.Name, item.Description, item.Stock).Scan(&item.ID)
	})
}

func (r *equipmentRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, model.OpDelete, `DELETE FROM equipment WHERE id = $1`, id)
}

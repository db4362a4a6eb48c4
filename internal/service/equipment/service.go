package equipment

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/internal/service/event"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

type Service struct {
	repo      repository.EquipmentRepository
	validator *validator.Validator
	recorder  *event.Recorder
	logger    *logger.Logger
}

func NewService(repo repository.EquipmentRepository, v *validator.Validator, recorder *event.Recorder, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, validator: v, recorder: recorder, logger: log}
}

func (s *Service) List(ctx context.Context, sess *model.Session) ([]*model.Equipment, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}
	items, err := s.repo.List(ctx)
	s.recorder.Observe(model.EntityEquipment, model.OpList, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, sess *model.Session, req model.CreateEquipmentRequest) (*model.Equipment, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}

	name, err := s.validator.RequiredText(req.Name, "Equipment Name")
	if err != nil {
		return nil, err
	}
	description, err := s.validator.RequiredText(req.Description, "Equipment Description")
	if err != nil {
		return nil, err
	}
	stock, err := s.validator.Stock(req.Stock)
	if err != nil {
		return nil, err
	}

	item := &model.Equipment{Name: name, Description: description, Stock: stock}
	if err := s.repo.Create(ctx, item); err != nil {
		s.recorder.Observe(model.EntityEquipment, model.OpCreate, err)
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}

	s.logger.Info("equipment added", "equipment_id", item.ID, "name", item.Name, "stock", item.Stock)
	s.recorder.Written(ctx, sess, model.EntityEquipment, model.OpCreate, item.ID, item)
	return item, nil
}

func (s *Service) Delete(ctx context.Context, sess *model.Session, id int64) error {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.recorder.Observe(model.EntityEquipment, model.OpDelete, err)
		return fmt.Errorf("failed to delete equipment: %w", err)
	}

	s.logger.Info("equipment deleted", "equipment_id", id)
	s.recorder.Written(ctx, sess, model.EntityEquipment, model.OpDelete, id, nil)
	return nil
}

package doctor

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/internal/service/event"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
	"github.com/jwalitptl/hospital-admin/pkg/security"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

type Service struct {
	repo         repository.DoctorRepository
	appointments repository.AppointmentRepository
	validator    *validator.Validator
	hasher       security.PasswordHasher
	recorder     *event.Recorder
	logger       *logger.Logger
}

func NewService(repo repository.DoctorRepository, appointments repository.AppointmentRepository,
	v *validator.Validator, hasher security.PasswordHasher, recorder *event.Recorder, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:         repo,
		appointments: appointments,
		validator:    v,
		hasher:       hasher,
		recorder:     recorder,
		logger:       log,
	}
}

func (s *Service) List(ctx context.Context, sess *model.Session) ([]*model.Doctor, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}
	doctors, err := s.repo.List(ctx)
	s.recorder.Observe(model.EntityDoctor, model.OpList, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (s *Service) Get(ctx context.Context, sess *model.Session, id int64) (*model.Doctor, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return doctor, nil
}

func (s *Service) Create(ctx context.Context, sess *model.Session, req model.CreateDoctorRequest) (*model.Doctor, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}

	doctor, err := s.validateCreate(req)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUsernameFree(ctx, doctor.Username, 0); err != nil {
		return nil, err
	}

	doctor.PasswordHash, err = s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		s.recorder.Observe(model.EntityDoctor, model.OpCreate, err)
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	s.logger.Info("doctor added", "doctor_id", doctor.ID, "name", doctor.Name, "specialization", doctor.Specialization)
	s.recorder.Written(ctx, sess, model.EntityDoctor, model.OpCreate, doctor.ID, doctor)
	return doctor, nil
}

func (s *Service) validateCreate(req model.CreateDoctorRequest) (*model.Doctor, error) {
	name, err := s.validator.Alpha(req.Name, "Name")
	if err != nil {
		return nil, err
	}
	specialization, err := s.validator.Specialization(req.Specialization)
	if err != nil {
		return nil, err
	}
	email, err := s.validator.Email(req.Email)
	if err != nil {
		return nil, err
	}
	username, err := s.validator.Username(req.Username)
	if err != nil {
		return nil, err
	}
	if _, err := s.validator.Password(req.Password); err != nil {
		return nil, err
	}

	return &model.Doctor{
		Name:           name,
		Specialization: specialization,
		Email:          email,
		Username:       username,
	}, nil
}

// Update applies the supplied fields. Absent or blank fields keep their value.
func (s *Service) Update(ctx context.Context, sess *model.Session, id int64, req model.UpdateDoctorRequest) (*model.Doctor, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if model.Provided(req.Name) {
		if doctor.Name, err = s.validator.Alpha(*req.Name, "Name"); err != nil {
			return nil, err
		}
	}
	if model.Provided(req.Specialization) {
		if doctor.Specialization, err = s.validator.Specialization(*req.Specialization); err != nil {
			return nil, err
		}
	}
	if model.Provided(req.Email) {
		if doctor.Email, err = s.validator.Email(*req.Email); err != nil {
			return nil, err
		}
	}
	if model.Provided(req.Username) {
		username, err := s.validator.Username(*req.Username)
		if err != nil {
			return nil, err
		}
		if err := s.ensureUsernameFree(ctx, username, doctor.ID); err != nil {
			return nil, err
		}
		doctor.Username = username
	}
	if model.Provided(req.Password) {
		if _, err := s.validator.Password(*req.Password); err != nil {
			return nil, err
		}
		if doctor.PasswordHash, err = s.hasher.Hash(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		s.recorder.Observe(model.EntityDoctor, model.OpUpdate, err)
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}

	s.logger.Info("doctor updated", "doctor_id", doctor.ID, "name", doctor.Name)
	s.recorder.Written(ctx, sess, model.EntityDoctor, model.OpUpdate, doctor.ID, doctor)
	return doctor, nil
}

// Delete refuses while the doctor has any appointment whose status is exactly
// StatusPending. Appointments are re-read at call time.
func (s *Service) Delete(ctx context.Context, sess *model.Session, id int64) error {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return err
	}

	appointments, err := s.appointments.ListByDoctor(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list appointments for doctor: %w", err)
	}
	for _, a := range appointments {
		if a.Status == model.StatusPending {
			err := apperrors.NewConstraint("cannot delete doctor with pending appointments")
			s.recorder.Observe(model.EntityDoctor, model.OpDelete, err)
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.recorder.Observe(model.EntityDoctor, model.OpDelete, err)
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	s.logger.Info("doctor deleted", "doctor_id", id)
	s.recorder.Written(ctx, sess, model.EntityDoctor, model.OpDelete, id, nil)
	return nil
}

// ensureUsernameFree fails with ErrConflict when another doctor owns username.
// selfID is excluded so a doctor may keep its own name.
func (s *Service) ensureUsernameFree(ctx context.Context, username string, selfID int64) error {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list doctors: %w", err)
	}
	for _, d := range doctors {
		if d.ID != selfID && d.Username == username {
			return apperrors.NewConflict("Username", "already exists, choose a different username")
		}
	}
	return nil
}

package patient

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/internal/service/event"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

type Service struct {
	repo         repository.PatientRepository
	appointments repository.AppointmentRepository
	validator    *validator.Validator
	recorder     *event.Recorder
	logger       *logger.Logger
}

func NewService(repo repository.PatientRepository, appointments repository.AppointmentRepository,
	v *validator.Validator, recorder *event.Recorder, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:         repo,
		appointments: appointments,
		validator:    v,
		recorder:     recorder,
		logger:       log,
	}
}

func (s *Service) List(ctx context.Context, sess *model.Session) ([]*model.Patient, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}
	patients, err := s.repo.List(ctx)
	s.recorder.Observe(model.EntityPatient, model.OpList, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) Get(ctx context.Context, sess *model.Session, id int64) (*model.Patient, error) {
	if err := sess.Require(model.RoleAdmin, model.RoleDoctor); err != nil {
		return nil, err
	}
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

func (s *Service) Create(ctx context.Context, sess *model.Session, req model.CreatePatientRequest) (*model.Patient, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}

	name, err := s.validator.Alpha(req.Name, "Name")
	if err != nil {
		return nil, err
	}
	age, err := s.validator.Age(req.Age)
	if err != nil {
		return nil, err
	}
	gender, err := s.validator.Gender(req.Gender)
	if err != nil {
		return nil, err
	}
	email, err := s.validator.Email(req.Email)
	if err != nil {
		return nil, err
	}
	address, err := s.validator.RequiredText(req.Address, "Address")
	if err != nil {
		return nil, err
	}
	username, err := s.validator.RequiredText(req.Username, "Username")
	if err != nil {
		return nil, err
	}

	patient := &model.Patient{
		Name:        name,
		Email:       email,
		Username:    username,
		Address:     address,
		Gender:      gender,
		Age:         age,
		DateOfBirth: req.DateOfBirth,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		s.recorder.Observe(model.EntityPatient, model.OpCreate, err)
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.logger.Info("patient added", "patient_id", patient.ID, "name", patient.Name, "age", patient.Age)
	s.recorder.Written(ctx, sess, model.EntityPatient, model.OpCreate, patient.ID, patient)
	return patient, nil
}

// Update applies the supplied fields. Absent or blank fields keep their value.
func (s *Service) Update(ctx context.Context, sess *model.Session, id int64, req model.UpdatePatientRequest) (*model.Patient, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if model.Provided(req.Name) {
		if patient.Name, err = s.validator.Alpha(*req.Name, "Name"); err != nil {
			return nil, err
		}
	}
	if req.Age != nil {
		if patient.Age, err = s.validator.Age(*req.Age); err != nil {
			return nil, err
		}
	}
	if model.Provided(req.Gender) {
		if patient.Gender, err = s.validator.Gender(*req.Gender); err != nil {
			return nil, err
		}
	}
	if model.Provided(req.Email) {
		if patient.Email, err = s.validator.Email(*req.Email); err != nil {
			return nil, err
		}
	}
	if model.Provided(req.Address) {
		patient.Address = strings.TrimSpace(*req.Address)
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = *req.DateOfBirth
	}
	if model.Provided(req.Username) {
		patient.Username = strings.TrimSpace(*req.Username)
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		s.recorder.Observe(model.EntityPatient, model.OpUpdate, err)
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	s.logger.Info("patient updated", "patient_id", patient.ID, "name", patient.Name, "age", patient.Age)
	s.recorder.Written(ctx, sess, model.EntityPatient, model.OpUpdate, patient.ID, patient)
	return patient, nil
}

// Delete removes the patient. Appointments that pointed at it stay in place and
// are reported in the log.
func (s *Service) Delete(ctx context.Context, sess *model.Session, id int64) error {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return err
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get patient: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.recorder.Observe(model.EntityPatient, model.OpDelete, err)
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	orphaned, err := s.appointments.ListByPatient(ctx, id)
	if err != nil {
		s.logger.Error(err, "failed to count orphaned appointments", "patient_id", id)
	} else if len(orphaned) > 0 {
		s.logger.Warn("patient deleted with appointments on record", "patient_id", id, "appointments", len(orphaned))
	}

	s.logger.Info("patient deleted", "patient_id", id, "name", patient.Name)
	s.recorder.Written(ctx, sess, model.EntityPatient, model.OpDelete, id, nil)
	return nil
}

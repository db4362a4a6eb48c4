package appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/internal/service/event"
	"github.com/jwalitptl/hospital-admin/internal/service/notification"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

const unknownName = "Unknown"

type Service struct {
	repo      repository.AppointmentRepository
	patients  repository.PatientRepository
	doctors   repository.DoctorRepository
	validator *validator.Validator
	notifier  *notification.Service
	recorder  *event.Recorder
	logger    *logger.Logger
}

func NewService(repo repository.AppointmentRepository, patients repository.PatientRepository,
	doctors repository.DoctorRepository, v *validator.Validator, notifier *notification.Service,
	recorder *event.Recorder, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:      repo,
		patients:  patients,
		doctors:   doctors,
		validator: v,
		notifier:  notifier,
		recorder:  recorder,
		logger:    log,
	}
}

// ListAll returns every appointment with participant names. Missing
// participants show as "Unknown".
func (s *Service) ListAll(ctx context.Context, sess *model.Session) ([]*model.AppointmentDetail, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}

	appointments, err := s.repo.List(ctx)
	s.recorder.Observe(model.EntityAppointment, model.OpList, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	patientNames, err := s.patientNames(ctx)
	if err != nil {
		return nil, err
	}
	doctorNames, err := s.doctorNames(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]*model.AppointmentDetail, 0, len(appointments))
	for _, a := range appointments {
		details = append(details, &model.AppointmentDetail{
			Appointment: *a,
			PatientName: lookup(patientNames, a.PatientID),
			DoctorName:  lookup(doctorNames, a.DoctorID),
		})
	}
	return details, nil
}

// ListForDoctor returns the appointments of the doctor behind sess.
func (s *Service) ListForDoctor(ctx context.Context, sess *model.Session) ([]*model.AppointmentDetail, error) {
	if err := sess.Require(model.RoleDoctor); err != nil {
		return nil, err
	}

	appointments, err := s.repo.ListByDoctor(ctx, sess.UserID)
	s.recorder.Observe(model.EntityAppointment, "list_by_doctor", err)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	patientNames, err := s.patientNames(ctx)
	if err != nil {
		return nil, err
	}

	doctorName := unknownName
	if doctor, err := s.doctors.Get(ctx, sess.UserID); err == nil {
		doctorName = doctor.Name
	}

	details := make([]*model.AppointmentDetail, 0, len(appointments))
	for _, a := range appointments {
		details = append(details, &model.AppointmentDetail{
			Appointment: *a,
			PatientName: lookup(patientNames, a.PatientID),
			DoctorName:  doctorName,
		})
	}
	return details, nil
}

func (s *Service) Get(ctx context.Context, sess *model.Session, id int64) (*model.Appointment, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

// Create books an appointment with status Scheduled. Both participants must
// exist; otherwise nothing is written and ErrReference is returned.
func (s *Service) Create(ctx context.Context, sess *model.Session, req model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}

	patient, err := s.patients.Get(ctx, req.PatientID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewReference("Patient", req.PatientID)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	doctor, err := s.doctors.Get(ctx, req.DoctorID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewReference("Doctor", req.DoctorID)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	date, err := s.validator.AppointmentDate(req.Date)
	if err != nil {
		return nil, err
	}
	if _, err := s.validator.AppointmentTime(req.Time.Duration()); err != nil {
		return nil, err
	}

	patientID, doctorID := patient.ID, doctor.ID
	appointment := &model.Appointment{
		PatientID: &patientID,
		DoctorID:  &doctorID,
		Date:      date,
		Time:      req.Time,
		Status:    model.StatusScheduled,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		s.recorder.Observe(model.EntityAppointment, model.OpCreate, err)
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.logger.Info("appointment added", "appointment_id", appointment.ID,
		"patient_id", patientID, "doctor_id", doctorID, "date", date.Format("2006-01-02"), "time", req.Time.String())
	s.recorder.Written(ctx, sess, model.EntityAppointment, model.OpCreate, appointment.ID, appointment)
	s.notifier.AppointmentBooked(ctx, appointment, patient, doctor)
	return appointment, nil
}

// Update changes the status only. A blank status keeps the current one.
func (s *Service) Update(ctx context.Context, sess *model.Session, id int64, req model.UpdateAppointmentRequest) (*model.Appointment, error) {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return nil, err
	}

	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if model.Provided(req.Status) {
		appointment.Status = strings.TrimSpace(*req.Status)
	}

	if err := s.repo.Update(ctx, appointment); err != nil {
		s.recorder.Observe(model.EntityAppointment, model.OpUpdate, err)
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.logger.Info("appointment updated", "appointment_id", id, "status", appointment.Status)
	s.recorder.Written(ctx, sess, model.EntityAppointment, model.OpUpdate, id, appointment)
	return appointment, nil
}

// Delete cancels an appointment by removing it.
func (s *Service) Delete(ctx context.Context, sess *model.Session, id int64) error {
	if err := sess.Require(model.RoleAdmin); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.recorder.Observe(model.EntityAppointment, model.OpDelete, err)
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.logger.Info("appointment deleted", "appointment_id", id)
	s.recorder.Written(ctx, sess, model.EntityAppointment, model.OpDelete, id, nil)
	return nil
}

func (s *Service) patientNames(ctx context.Context) (map[int64]string, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	names := make(map[int64]string, len(patients))
	for _, p := range patients {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (s *Service) doctorNames(ctx context.Context) (map[int64]string, error) {
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	names := make(map[int64]string, len(doctors))
	for _, d := range doctors {
		names[d.ID] = d.Name
	}
	return names, nil
}

func lookup(names map[int64]string, id *int64) string {
	if id == nil {
		return unknownName
	}
	if name, ok := names[*id]; ok {
		return name
	}
	return unknownName
}

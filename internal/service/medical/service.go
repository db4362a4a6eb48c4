package medical

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
	"github.com/jwalitptl/hospital-admin/internal/service/event"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

const positionField = "Record Choice"

type Service struct {
	repo      repository.MedicalRecordRepository
	patients  repository.PatientRepository
	validator *validator.Validator
	recorder  *event.Recorder
	logger    *logger.Logger
	now       func() time.Time
}

func NewService(repo repository.MedicalRecordRepository, patients repository.PatientRepository,
	v *validator.Validator, recorder *event.Recorder, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:      repo,
		patients:  patients,
		validator: v,
		recorder:  recorder,
		logger:    log,
		now:       time.Now,
	}
}

// ListForPatient returns a patient's records in stable store order. Positions
// used by UpdateAtPosition index into this slice starting at 1.
func (s *Service) ListForPatient(ctx context.Context, sess *model.Session, patientID int64) ([]*model.MedicalRecord, error) {
	if err := sess.Require(model.RoleDoctor); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByPatient(ctx, patientID)
	s.recorder.Observe(model.EntityMedicalRecord, model.OpList, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}

// Add records a consultation dated now. The patient must exist.
func (s *Service) Add(ctx context.Context, sess *model.Session, req model.CreateMedicalRecordRequest) (*model.MedicalRecord, error) {
	if err := sess.Require(model.RoleDoctor); err != nil {
		return nil, err
	}

	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewReference("Patient", req.PatientID)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	diagnosis, err := s.validator.Alpha(req.Diagnosis, "Diagnosis")
	if err != nil {
		return nil, err
	}
	treatment, err := s.validator.Alpha(req.Treatment, "Treatment")
	if err != nil {
		return nil, err
	}
	details, err := s.validator.Alpha(req.ConsultationDetails, "Consultation Details")
	if err != nil {
		return nil, err
	}

	record := &model.MedicalRecord{
		PatientID:           req.PatientID,
		Diagnosis:           diagnosis,
		Treatment:           treatment,
		ConsultationDetails: details,
		ConsultationDate:    s.now(),
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.recorder.Observe(model.EntityMedicalRecord, model.OpCreate, err)
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}

	s.logger.Info("medical record added", "record_id", record.ID, "patient_id", record.PatientID, "doctor", sess.Username)
	s.recorder.Written(ctx, sess, model.EntityMedicalRecord, model.OpCreate, record.ID, record)
	return record, nil
}

// UpdateAtPosition edits the position-th record (1-based) of the patient.
// Absent or blank fields keep their value.
func (s *Service) UpdateAtPosition(ctx context.Context, sess *model.Session, patientID int64, position int,
	req model.UpdateMedicalRecordRequest) (*model.MedicalRecord, error) {
	if err := sess.Require(model.RoleDoctor); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewNotFound("medical record", nil)
	}
	if position < 1 || position > len(records) {
		return nil, apperrors.NewValidation(positionField, fmt.Sprintf("must be between 1 and %d", len(records)))
	}

	record := records[position-1]

	if model.Provided(req.Diagnosis) {
		if record.Diagnosis, err = s.validator.Alpha(*req.Diagnosis, "Diagnosis"); err != nil {
			return nil, err
		}
	}
	if model.Provided(req.Treatment) {
		if record.Treatment, err = s.validator.Alpha(*req.Treatment, "Treatment"); err != nil {
			return nil, err
		}
	}
	if model.Provided(req.ConsultationDetails) {
		if record.ConsultationDetails, err = s.validator.Alpha(*req.ConsultationDetails, "Consultation Details"); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, record); err != nil {
		s.recorder.Observe(model.EntityMedicalRecord, model.OpUpdate, err)
		return nil, fmt.Errorf("failed to update medical record: %w", err)
	}

	s.logger.Info("medical record updated", "record_id", record.ID, "patient_id", patientID, "doctor", sess.Username)
	s.recorder.Written(ctx, sess, model.EntityMedicalRecord, model.OpUpdate, record.ID, record)
	return record, nil
}

package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalitptl/hospital-admin/internal/email"
	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
)

type Service struct {
	emailSvc email.Service
	logger   *logger.Logger
}

func NewService(emailSvc email.Service, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{emailSvc: emailSvc, logger: log}
}

// AppointmentBooked e-mails the patient a confirmation. Delivery failures are
// logged and swallowed.
func (s *Service) AppointmentBooked(ctx context.Context, appointment *model.Appointment, patient *model.Patient, doctor *model.Doctor) {
	if s == nil || s.emailSvc == nil || patient == nil || strings.TrimSpace(patient.Email) == "" {
		return
	}

	subject := "Appointment confirmation"
	body := fmt.Sprintf("Dear %s,\n\nYour appointment with Dr. %s (%s) is booked for %s at %s.\nStatus: %s\n",
		patient.Name,
		doctor.Name,
		doctor.Specialization,
		appointment.Date.Format("2006-01-02"),
		appointment.Time,
		appointment.Status,
	)

	if err := s.emailSvc.Send(ctx, patient.Email, subject, body); err != nil {
		s.logger.Error(err, "failed to send appointment confirmation",
			"appointment_id", appointment.ID, "patient_id", patient.ID)
		return
	}
	s.logger.Info("appointment confirmation sent", "appointment_id", appointment.ID)
}

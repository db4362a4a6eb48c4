package console

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospital-admin/internal/model"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

func (c *Console) doctorMenu(ctx context.Context, sess *model.Session) error {
	return c.menu("Doctor Menu", []menuEntry{
		{"View Appointments", func() error { return c.viewMyAppointments(ctx, sess) }},
		{"View Patient Medical Record", func() error { return c.viewMedicalRecords(ctx, sess) }},
		{"Add Patient Medical Record", func() error { return c.addMedicalRecord(ctx, sess) }},
		{"Update Patient Medical Record", func() error { return c.updateMedicalRecord(ctx, sess) }},
	})
}

func (c *Console) viewMyAppointments(ctx context.Context, sess *model.Session) error {
	appointments, err := c.svc.Appointments.ListForDoctor(ctx, sess)
	if err != nil {
		return err
	}

	c.println(rule)
	c.printf("Appointments for Doctor ID %d:\n", sess.UserID)
	c.println(rule)
	if len(appointments) == 0 {
		c.println("No appointments found for this doctor.")
		return nil
	}
	for _, a := range appointments {
		c.printf("Appointment ID: %d, Date: %s, Time: %s, Patient Name: %s, Status: %s\n",
			a.ID, a.Date.Format("2006-01-02"), a.Time, a.PatientName, a.Status)
	}
	return nil
}

func (c *Console) viewMedicalRecords(ctx context.Context, sess *model.Session) error {
	patientID, err := c.askID("Enter Patient ID to view medical record: ", "Patient ID")
	if err != nil {
		return err
	}

	records, err := c.svc.Medical.ListForPatient(ctx, sess, patientID)
	if err != nil {
		return err
	}

	c.println(rule)
	c.printf("Medical Record for Patient ID %d:\n", patientID)
	c.println(rule)
	if len(records) == 0 {
		c.println("No medical record found for this patient.")
		return nil
	}
	for _, r := range records {
		c.printf("Diagnosis: %s\n", r.Diagnosis)
		c.printf("Treatment: %s\n", r.Treatment)
		c.printf("Consultation Details: %s\n", r.ConsultationDetails)
		c.printf("Consultation Date: %s\n", r.ConsultationDate.Format("2006-01-02"))
		c.println()
	}
	return nil
}

func (c *Console) addMedicalRecord(ctx context.Context, sess *model.Session) error {
	var (
		req model.CreateMedicalRecordRequest
		err error
	)
	if req.PatientID, err = c.askID("Enter Patient ID to add medical record: ", "Patient ID"); err != nil {
		return err
	}

	c.println(rule)
	c.printf("Adding Medical Record for Patient ID %d:\n", req.PatientID)
	c.println(rule)

	if req.Diagnosis, err = c.askAlpha("Enter Diagnosis: ", "Diagnosis"); err != nil {
		return err
	}
	if req.Treatment, err = c.askAlpha("Enter Treatment: ", "Treatment"); err != nil {
		return err
	}
	if req.ConsultationDetails, err = c.askAlpha("Enter Consultation Details: ", "Consultation Details"); err != nil {
		return err
	}

	if _, err := c.svc.Medical.Add(ctx, sess, req); err != nil {
		return err
	}
	c.println("Medical record added successfully.")
	return nil
}

func (c *Console) updateMedicalRecord(ctx context.Context, sess *model.Session) error {
	patientID, err := c.askID("Enter Patient ID to update medical record: ", "Patient ID")
	if err != nil {
		return err
	}

	records, err := c.svc.Medical.ListForPatient(ctx, sess, patientID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		c.println("No medical records found for this patient.")
		return nil
	}

	c.println("Select a Medical Record to update:")
	for i, r := range records {
		c.printf("%d. Record ID: %d, Diagnosis: %s, Date: %s\n", i+1, r.ID, r.Diagnosis, r.ConsultationDate.Format("2006-01-02"))
	}

	position, err := ask(c, "Enter the number of the record you want to update: ", func(s string) (int, error) {
		n, err := c.validator.Int(s, "Record Choice")
		if err != nil {
			return 0, err
		}
		if n < 1 || n > len(records) {
			return 0, apperrors.NewValidation("Record Choice", fmt.Sprintf("must be between 1 and %d", len(records)))
		}
		return n, nil
	})
	if err != nil {
		return err
	}
	current := records[position-1]

	var req model.UpdateMedicalRecordRequest
	c.printf("Current Diagnosis: %s\n", current.Diagnosis)
	if req.Diagnosis, err = askOptional(c, "Enter new Diagnosis (or press Enter to keep current): ", c.alpha("Diagnosis")); err != nil {
		return err
	}
	c.printf("Current Treatment: %s\n", current.Treatment)
	if req.Treatment, err = askOptional(c, "Enter new Treatment (or press Enter to keep current): ", c.alpha("Treatment")); err != nil {
		return err
	}
	c.printf("Current Consultation Details: %s\n", current.ConsultationDetails)
	if req.ConsultationDetails, err = askOptional(c, "Enter new Consultation Details (or press Enter to keep current): ", c.alpha("Consultation Details")); err != nil {
		return err
	}

	if _, err := c.svc.Medical.UpdateAtPosition(ctx, sess, patientID, position, req); err != nil {
		return err
	}
	c.println("Medical record updated successfully.")
	return nil
}

package console

import (
	"context"
	"time"

	"github.com/jwalitptl/hospital-admin/internal/model"
)

func (c *Console) adminMenu(ctx context.Context, sess *model.Session) error {
	return c.menu("Admin Menu", []menuEntry{
		{"View All Patients", func() error { return c.viewPatients(ctx, sess) }},
		{"Add Patient", func() error { return c.addPatient(ctx, sess) }},
		{"Edit Patient", func() error { return c.editPatient(ctx, sess) }},
		{"Delete Patient", func() error { return c.deletePatient(ctx, sess) }},
		{"View All Doctors", func() error { return c.viewDoctors(ctx, sess) }},
		{"Add Doctor", func() error { return c.addDoctor(ctx, sess) }},
		{"Edit Doctor", func() error { return c.editDoctor(ctx, sess) }},
		{"Delete Doctor", func() error { return c.deleteDoctor(ctx, sess) }},
		{"Add Appointment", func() error { return c.addAppointment(ctx, sess) }},
		{"View All Appointments", func() error { return c.viewAppointments(ctx, sess) }},
		{"Update Appointment", func() error { return c.editAppointment(ctx, sess) }},
		{"Cancel Appointment", func() error { return c.cancelAppointment(ctx, sess) }},
		{"View All Equipment", func() error { return c.viewEquipment(ctx, sess) }},
		{"Add Equipment", func() error { return c.addEquipment(ctx, sess) }},
		{"Delete Equipment", func() error { return c.deleteEquipment(ctx, sess) }},
	})
}

func (c *Console) viewPatients(ctx context.Context, sess *model.Session) error {
	patients, err := c.svc.Patients.List(ctx, sess)
	if err != nil {
		return err
	}
	if len(patients) == 0 {
		c.println("No patients are currently available in the system.")
		return nil
	}
	for _, p := range patients {
		c.printf("Patient ID: %d, Name: %s, Age: %d, Gender: %s, Email: %s\n", p.ID, p.Name, p.Age, p.Gender, p.Email)
	}
	return nil
}

func (c *Console) addPatient(ctx context.Context, sess *model.Session) error {
	c.println("Enter the details for the new patient:")
	c.println(rule)

	var (
		req model.CreatePatientRequest
		err error
	)
	if req.Name, err = c.askAlpha("Enter the name of the patient: ", "Name"); err != nil {
		return err
	}
	if req.Age, err = ask(c, "Enter the age of the patient: ", c.parseAge); err != nil {
		return err
	}
	if req.Gender, err = ask(c, "Enter the gender of the patient: ", c.validator.Gender); err != nil {
		return err
	}
	if req.Email, err = ask(c, "Enter the email of the patient: ", c.validator.Email); err != nil {
		return err
	}
	if req.Address, err = c.askText("Enter the address of the patient: ", "Address"); err != nil {
		return err
	}
	if req.DateOfBirth, err = ask(c, "Enter the date of birth of the patient (yyyy-mm-dd): ", c.parseBirthDate); err != nil {
		return err
	}
	if req.Username, err = c.askText("Enter the username of the patient: ", "Username"); err != nil {
		return err
	}

	if _, err := c.svc.Patients.Create(ctx, sess, req); err != nil {
		return err
	}
	c.println("Patient added successfully!")
	return nil
}

func (c *Console) editPatient(ctx context.Context, sess *model.Session) error {
	id, err := c.askID("Enter the ID of the patient you want to update: ", "Patient ID")
	if err != nil {
		return err
	}
	if _, err := c.svc.Patients.Get(ctx, sess, id); err != nil {
		return err
	}

	var req model.UpdatePatientRequest
	if req.Name, err = askOptional(c, "Enter new name (leave blank to keep current): ", c.alpha("Name")); err != nil {
		return err
	}
	if req.Age, err = askOptional(c, "Enter new age (leave blank to keep current): ", c.parseAge); err != nil {
		return err
	}
	if req.Gender, err = askOptional(c, "Enter new gender (leave blank to keep current): ", c.validator.Gender); err != nil {
		return err
	}
	if req.Email, err = askOptional(c, "Enter new email (leave blank to keep current): ", c.validator.Email); err != nil {
		return err
	}
	if req.Address, err = askOptional(c, "Enter new address (leave blank to keep current): ", c.text("Address")); err != nil {
		return err
	}
	if req.DateOfBirth, err = askOptional(c, "Enter new date of birth (leave blank to keep current): ", c.parseBirthDate); err != nil {
		return err
	}
	if req.Username, err = askOptional(c, "Enter new username (leave blank to keep current): ", c.text("Username")); err != nil {
		return err
	}

	if _, err := c.svc.Patients.Update(ctx, sess, id, req); err != nil {
		return err
	}
	c.println("Patient information updated successfully.")
	return nil
}

func (c *Console) deletePatient(ctx context.Context, sess *model.Session) error {
	id, err := c.askID("Enter the ID of the patient you want to delete: ", "Patient ID")
	if err != nil {
		return err
	}
	if err := c.svc.Patients.Delete(ctx, sess, id); err != nil {
		return err
	}
	c.println("Patient deleted successfully.")
	return nil
}

func (c *Console) viewDoctors(ctx context.Context, sess *model.Session) error {
	doctors, err := c.svc.Doctors.List(ctx, sess)
	if err != nil {
		return err
	}
	if len(doctors) == 0 {
		c.println("No doctors are currently available in the system.")
		return nil
	}
	for _, d := range doctors {
		c.printf("Doctor ID: %d, Name: %s, Specialization: %s\n", d.ID, d.Name, d.Specialization)
	}
	return nil
}

func (c *Console) addDoctor(ctx context.Context, sess *model.Session) error {
	c.println("Enter the details for the new doctor:")
	c.println(rule)

	var (
		req model.CreateDoctorRequest
		err error
	)
	if req.Name, err = c.askAlpha("Enter the name of the doctor: ", "Name"); err != nil {
		return err
	}
	if req.Specialization, err = ask(c, "Enter the specialization of the doctor: ", c.validator.Specialization); err != nil {
		return err
	}
	if req.Email, err = ask(c, "Enter the email of the doctor: ", c.validator.Email); err != nil {
		return err
	}
	if req.Username, err = ask(c, "Enter the username of the doctor: ", c.validator.Username); err != nil {
		return err
	}
	if req.Password, err = ask(c, "Enter the password of the doctor: ", c.validator.Password); err != nil {
		return err
	}

	if _, err := c.svc.Doctors.Create(ctx, sess, req); err != nil {
		return err
	}
	c.println("Doctor added successfully!")
	return nil
}

func (c *Console) editDoctor(ctx context.Context, sess *model.Session) error {
	id, err := c.askID("Enter the ID of the doctor you want to update: ", "Doctor ID")
	if err != nil {
		return err
	}
	if _, err := c.svc.Doctors.Get(ctx, sess, id); err != nil {
		return err
	}

	var req model.UpdateDoctorRequest
	if req.Name, err = askOptional(c, "Enter new name (leave blank to keep current): ", c.alpha("Name")); err != nil {
		return err
	}
	if req.Specialization, err = askOptional(c, "Enter new specialization (leave blank to keep current): ", c.validator.Specialization); err != nil {
		return err
	}
	if req.Email, err = askOptional(c, "Enter new email (leave blank to keep current): ", c.validator.Email); err != nil {
		return err
	}
	if req.Username, err = askOptional(c, "Enter new username (leave blank to keep current): ", c.validator.Username); err != nil {
		return err
	}
	if req.Password, err = askOptional(c, "Enter new password (leave blank to keep current): ", c.validator.Password); err != nil {
		return err
	}

	if _, err := c.svc.Doctors.Update(ctx, sess, id, req); err != nil {
		return err
	}
	c.println("Doctor information updated successfully.")
	return nil
}

func (c *Console) deleteDoctor(ctx context.Context, sess *model.Session) error {
	id, err := c.askID("Enter the ID of the doctor you want to delete: ", "Doctor ID")
	if err != nil {
		return err
	}
	if err := c.svc.Doctors.Delete(ctx, sess, id); err != nil {
		return err
	}
	c.println("Doctor deleted successfully.")
	return nil
}

func (c *Console) addAppointment(ctx context.Context, sess *model.Session) error {
	c.println("Enter the details for the new appointment:")
	c.println(rule)

	var (
		req model.CreateAppointmentRequest
		err error
	)
	if req.PatientID, err = c.askID("Enter patient ID: ", "Patient ID"); err != nil {
		return err
	}
	if req.DoctorID, err = c.askID("Enter doctor ID: ", "Doctor ID"); err != nil {
		return err
	}
	if req.Date, err = ask(c, "Enter appointment date (yyyy-mm-dd): ", c.parseAppointmentDate); err != nil {
		return err
	}
	if req.Time, err = ask(c, "Enter appointment time (HH:mm): ", c.parseAppointmentTime); err != nil {
		return err
	}

	if _, err := c.svc.Appointments.Create(ctx, sess, req); err != nil {
		return err
	}
	c.println("Appointment added successfully!")
	return nil
}

func (c *Console) viewAppointments(ctx context.Context, sess *model.Session) error {
	appointments, err := c.svc.Appointments.ListAll(ctx, sess)
	if err != nil {
		return err
	}
	if len(appointments) == 0 {
		c.println("No appointments found.")
		return nil
	}
	for _, a := range appointments {
		c.printf("Appointment ID: %d, Patient: %s, Doctor: %s, Date: %s, Time: %s, Status: %s\n",
			a.ID, a.PatientName, a.DoctorName, a.Date.Format("2006-01-02"), a.Time, a.Status)
	}
	return nil
}

func (c *Console) editAppointment(ctx context.Context, sess *model.Session) error {
	id, err := c.askID("Enter the ID of the appointment you want to update: ", "Appointment ID")
	if err != nil {
		return err
	}
	current, err := c.svc.Appointments.Get(ctx, sess, id)
	if err != nil {
		return err
	}

	c.printf("Current status: %s\n", current.Status)
	status, err := c.readLine("Enter new status (leave blank to keep current): ")
	if err != nil {
		return err
	}

	if _, err := c.svc.Appointments.Update(ctx, sess, id, model.UpdateAppointmentRequest{Status: &status}); err != nil {
		return err
	}
	c.println("Appointment information updated successfully.")
	return nil
}

func (c *Console) cancelAppointment(ctx context.Context, sess *model.Session) error {
	id, err := c.askID("Enter the ID of the appointment you want to cancel: ", "Appointment ID")
	if err != nil {
		return err
	}
	if err := c.svc.Appointments.Delete(ctx, sess, id); err != nil {
		return err
	}
	c.println("Appointment cancelled successfully.")
	return nil
}

func (c *Console) viewEquipment(ctx context.Context, sess *model.Session) error {
	items, err := c.svc.Equipment.List(ctx, sess)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		c.println("No equipment found.")
		return nil
	}
	for _, e := range items {
		c.printf("Equipment ID: %d, Name: %s, Description: %s, Stock: %d\n", e.ID, e.Name, e.Description, e.Stock)
	}
	return nil
}

func (c *Console) addEquipment(ctx context.Context, sess *model.Session) error {
	c.println("Enter the details for the new equipment:")
	c.println(rule)

	var (
		req model.CreateEquipmentRequest
		err error
	)
	if req.Name, err = c.askText("Enter equipment name: ", "Equipment Name"); err != nil {
		return err
	}
	if req.Description, err = c.askText("Enter equipment description: ", "Equipment Description"); err != nil {
		return err
	}
	if req.Stock, err = ask(c, "Enter equipment stock: ", c.parseStock); err != nil {
		return err
	}

	if _, err := c.svc.Equipment.Create(ctx, sess, req); err != nil {
		return err
	}
	c.println("Equipment added successfully!")
	return nil
}

func (c *Console) deleteEquipment(ctx context.Context, sess *model.Session) error {
	id, err := c.askID("Enter the ID of the equipment you want to delete: ", "Equipment ID")
	if err != nil {
		return err
	}
	if err := c.svc.Equipment.Delete(ctx, sess, id); err != nil {
		return err
	}
	c.println("Equipment deleted successfully.")
	return nil
}

func (c *Console) parseAge(s string) (int, error) {
	n, err := c.validator.Int(s, "Age")
	if err != nil {
		return 0, err
	}
	return c.validator.Age(n)
}

func (c *Console) parseStock(s string) (int, error) {
	n, err := c.validator.Int(s, "Stock")
	if err != nil {
		return 0, err
	}
	return c.validator.Stock(n)
}

func (c *Console) parseBirthDate(s string) (time.Time, error) {
	return c.validator.Date(s, "Date of Birth")
}

func (c *Console) parseAppointmentDate(s string) (time.Time, error) {
	d, err := c.validator.Date(s, "Appointment Date")
	if err != nil {
		return time.Time{}, err
	}
	return c.validator.AppointmentDate(d)
}

func (c *Console) parseAppointmentTime(s string) (model.TimeOfDay, error) {
	t, err := c.validator.TimeOfDay(s, "Appointment Time")
	if err != nil {
		return 0, err
	}
	if _, err := c.validator.AppointmentTime(t); err != nil {
		return 0, err
	}
	return model.TimeOfDay(t), nil
}

func (c *Console) alpha(field string) func(string) (string, error) {
	return func(s string) (string, error) { return c.validator.Alpha(s, field) }
}

func (c *Console) text(field string) func(string) (string, error) {
	return func(s string) (string, error) { return c.validator.RequiredText(s, field) }
}

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/service/appointment"
	"github.com/jwalitptl/hospital-admin/internal/service/auth"
	"github.com/jwalitptl/hospital-admin/internal/service/doctor"
	"github.com/jwalitptl/hospital-admin/internal/service/equipment"
	"github.com/jwalitptl/hospital-admin/internal/service/medical"
	"github.com/jwalitptl/hospital-admin/internal/service/patient"
	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
	"github.com/jwalitptl/hospital-admin/pkg/logger"
	"github.com/jwalitptl/hospital-admin/pkg/validator"
)

const rule = "--------------------------------------------------"

type Services struct {
	Auth         *auth.Service
	Doctors      *doctor.Service
	Patients     *patient.Service
	Appointments *appointment.Service
	Equipment    *equipment.Service
	Medical      *medical.Service
}

// Console drives the interactive menus. It owns no state besides the current
// session, which lives only for the duration of one menu loop.
type Console struct {
	in         *bufio.Reader
	out        io.Writer
	svc        Services
	validator  *validator.Validator
	logger     *logger.Logger
	readSecret func() (string, error)
}

func New(in io.Reader, out io.Writer, svc Services, v *validator.Validator, log *logger.Logger) *Console {
	if log == nil {
		log = logger.Nop()
	}
	c := &Console{
		in:        bufio.NewReader(in),
		out:       out,
		svc:       svc,
		validator: v,
		logger:    log,
	}
	c.readSecret = c.readRaw
	return c
}

// WithTerminal reads passwords without echo when fd is a terminal.
func (c *Console) WithTerminal(fd int) *Console {
	if !term.IsTerminal(fd) {
		return c
	}
	c.readSecret = func() (string, error) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(c.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}
	return c
}

// Run loops over login and the role menu until input is exhausted or ctx ends.
func (c *Console) Run(ctx context.Context) error {
	c.println(rule)
	c.println("Welcome to the Hospital Management System!")
	c.println(rule)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		sess, err := c.login(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.goodbye()
				return nil
			}
			return err
		}

		switch sess.Role {
		case model.RoleAdmin:
			err = c.adminMenu(ctx, sess)
		case model.RoleDoctor:
			err = c.doctorMenu(ctx, sess)
		default:
			c.println("Invalid role.")
		}
		c.svc.Auth.Logout(ctx, sess)

		if err != nil {
			if errors.Is(err, io.EOF) {
				c.goodbye()
				return nil
			}
			return err
		}
	}
}

func (c *Console) login(ctx context.Context) (*model.Session, error) {
	for {
		c.println("Please login to continue:")
		c.println(rule)

		username, err := ask(c, "Enter your username: ", func(s string) (string, error) {
			return c.validator.RequiredText(s, "Username")
		})
		if err != nil {
			return nil, err
		}

		password, err := askWith(c, "Enter your password: ", c.readSecret, c.validator.Password)
		if err != nil {
			return nil, err
		}

		sess, ok, err := c.svc.Auth.Authenticate(ctx, username, password)
		if err != nil {
			c.report(err)
			continue
		}
		if !ok {
			c.println("Invalid username or password. Please try again.")
			continue
		}

		c.printf("Login successful! Welcome, %s!\n", sess.Role)
		return sess, nil
	}
}

// menu prints entries and dispatches the chosen action until "0" is entered.
func (c *Console) menu(title string, entries []menuEntry) error {
	for {
		c.println()
		c.println(rule)
		c.println(title)
		c.println(rule)
		for i, e := range entries {
			c.printf("%d. %s\n", i+1, e.label)
		}
		c.println("0. Logout")

		choice, err := c.readLine("Enter your choice: ")
		if err != nil {
			return err
		}
		choice = strings.TrimSpace(choice)
		if choice == "0" {
			c.println("Logging out...")
			return nil
		}

		n, err := c.validator.Int(choice, "Choice")
		if err != nil || n < 1 || n > len(entries) {
			c.println("Invalid choice. Please try again.")
			continue
		}

		if err := entries[n-1].run(); err != nil {
			if errors.Is(err, io.EOF) {
				return err
			}
			c.report(err)
		}
	}
}

type menuEntry struct {
	label string
	run   func() error
}

// report shows a failure to the operator. Anything outside the known taxonomy
// is logged and shown generically.
func (c *Console) report(err error) {
	var appErr *apperrors.AppError
	if !apperrors.As(err, &appErr) {
		c.logger.Error(err, "operation failed")
		c.println("Operation failed. Please check the log for details.")
		return
	}

	switch appErr.Code {
	case apperrors.ErrValidation:
		c.printf("Validation Error: %s\n", appErr.Public())
	case apperrors.ErrStore, apperrors.ErrInternal:
		c.logger.Error(err, "operation failed", "code", appErr.Code.String())
		c.println("Operation failed. Please check the log for details.")
	default:
		c.printf("Error: %s\n", appErr.Public())
	}
}

func (c *Console) goodbye() {
	c.println(rule)
	c.println("Thank you for using the Hospital Management System!")
	c.println(rule)
}

func (c *Console) println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) printf(format string, a ...interface{}) {
	fmt.Fprintf(c.out, format, a...)
}

package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	playground "github.com/go-playground/validator/v10"

	apperrors "github.com/jwalitptl/hospital-admin/pkg/errors"
)

const (
	MinAge   = 0
	MaxAge   = 120
	MinStock = 0
	MaxStock = 10000

	MaxBookingDays = 365

	// MaxPasswordBytes is the longest input bcrypt will hash.
	MaxPasswordBytes = 72
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	specialPattern  = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

	validGenders = map[string]struct{}{
		"male": {}, "female": {}, "other": {}, "m": {}, "f": {},
	}

	dateLayouts = []string{"2006-01-02", "2006/01/02", "02-01-2006", time.RFC3339}
	timeLayouts = []string{"15:04", "15:04:05"}

	OpeningTime = 9 * time.Hour
	ClosingTime = 17 * time.Hour
)

// Rules toggles optional policies.
type Rules struct {
	// RequireSpecialChar adds a special-character requirement to the password policy.
	RequireSpecialChar bool
}

// Validator checks field-level well-formedness of user input. Every check returns
// the normalized value or an *errors.AppError with code ErrValidation.
type Validator struct {
	engine *playground.Validate
	rules  Rules
	now    func() time.Time
}

func New(rules Rules) *Validator {
	engine := playground.New()
	must(engine.RegisterValidation("username", func(fl playground.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	}))
	must(engine.RegisterValidation("hms_email", func(fl playground.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}))
	must(engine.RegisterValidation("alpha_space", func(fl playground.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
				return false
			}
		}
		return true
	}))
	must(engine.RegisterValidation("gender", func(fl playground.FieldLevel) bool {
		_, ok := validGenders[strings.ToLower(fl.Field().String())]
		return ok
	}))
	must(engine.RegisterValidation("has_upper", containsFunc(unicode.IsUpper)))
	must(engine.RegisterValidation("has_digit", containsFunc(unicode.IsDigit)))
	must(engine.RegisterValidation("has_special", func(fl playground.FieldLevel) bool {
		return specialPattern.MatchString(fl.Field().String())
	}))

	return &Validator{
		engine: engine,
		rules:  rules,
		now:    time.Now,
	}
}

// WithClock returns a copy of the validator that uses now as its notion of today.
func (v *Validator) WithClock(now func() time.Time) *Validator {
	clone := *v
	clone.now = now
	return &clone
}

func (v *Validator) RequiredText(s, field string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", apperrors.NewValidation(field, "cannot be empty")
	}
	return trimmed, nil
}

func (v *Validator) Alpha(s, field string) (string, error) {
	trimmed, err := v.RequiredText(s, field)
	if err != nil {
		return "", err
	}
	return trimmed, v.check(field, trimmed, "alpha_space", map[string]string{
		"alpha_space": "must contain only alphabetic characters",
	})
}

func (v *Validator) Email(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", apperrors.NewValidation("Email", "is required")
	}
	return s, v.check("Email", s, "hms_email", map[string]string{
		"hms_email": "must be a valid email address",
	})
}

func (v *Validator) Username(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", apperrors.NewValidation("Username", "is required")
	}
	return s, v.check("Username", s, "min=4,max=20,username", map[string]string{
		"min":      "must be between 4 and 20 characters",
		"max":      "must be between 4 and 20 characters",
		"username": "can only contain letters, numbers and underscores",
	})
}

func (v *Validator) Password(s string) (string, error) {
	tags := "min=8,has_upper,has_digit"
	if v.rules.RequireSpecialChar {
		tags += ",has_special"
	}
	if err := v.check("Password", s, tags, map[string]string{
		"min":         "must be at least 8 characters long",
		"has_upper":   "must contain at least one uppercase letter",
		"has_digit":   "must contain at least one number",
		"has_special": "must contain at least one special character",
	}); err != nil {
		return "", err
	}
	// Byte length, not runes: multi-byte characters count against the bcrypt limit.
	if len(s) > MaxPasswordBytes {
		return "", apperrors.NewValidation("Password", fmt.Sprintf("must be at most %d bytes long", MaxPasswordBytes))
	}
	return s, nil
}

func (v *Validator) Int(s, field string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, apperrors.NewValidation(field, "must be a valid integer")
	}
	return n, nil
}

// ID parses a positive integer identifier.
func (v *Validator) ID(s, field string) (int64, error) {
	n, err := v.Int(s, field)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, apperrors.NewValidation(field, "must be greater than zero")
	}
	return int64(n), nil
}

func (v *Validator) Date(s, field string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.NewValidation(field, "must be a valid date (yyyy-mm-dd)")
}

// TimeOfDay parses a clock time and returns it as the offset from midnight.
func (v *Validator) TimeOfDay(s, field string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, apperrors.NewValidation(field, "must be a valid time (HH:mm)")
}

func (v *Validator) Gender(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	return trimmed, v.check("Gender", trimmed, "gender", map[string]string{
		"gender": "must be Male, Female or Other",
	})
}

func (v *Validator) Age(n int) (int, error) {
	return n, v.check("Age", n, fmt.Sprintf("gte=%d,lte=%d", MinAge, MaxAge), map[string]string{
		"gte": "must be between 0 and 120 years",
		"lte": "must be between 0 and 120 years",
	})
}

func (v *Validator) Specialization(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", apperrors.NewValidation("Specialization", "is required")
	}
	return trimmed, v.check("Specialization", trimmed, "min=2,max=50", map[string]string{
		"min": "must be between 2 and 50 characters",
		"max": "must be between 2 and 50 characters",
	})
}

// AppointmentDate accepts any day from today up to MaxBookingDays ahead, inclusive.
func (v *Validator) AppointmentDate(d time.Time) (time.Time, error) {
	today := startOfDay(v.now())
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, today.Location())
	if day.Before(today) {
		return time.Time{}, apperrors.NewValidation("Appointment Date", "cannot be in the past")
	}
	if day.After(today.AddDate(0, 0, MaxBookingDays)) {
		return time.Time{}, apperrors.NewValidation("Appointment Date", "cannot be scheduled more than 1 year in advance")
	}
	return day, nil
}

func (v *Validator) AppointmentTime(t time.Duration) (time.Duration, error) {
	if t < OpeningTime || t > ClosingTime {
		return 0, apperrors.NewValidation("Appointment Time", "must be between 9 AM and 5 PM")
	}
	return t, nil
}

func (v *Validator) Stock(n int) (int, error) {
	return n, v.check("Stock", n, fmt.Sprintf("gte=%d,lte=%d", MinStock, MaxStock), map[string]string{
		"gte": "cannot be negative",
		"lte": "cannot exceed 10,000 units",
	})
}

func (v *Validator) check(field string, value interface{}, tags string, reasons map[string]string) error {
	err := v.engine.Var(value, tags)
	if err == nil {
		return nil
	}

	errs, ok := err.(playground.ValidationErrors)
	if !ok || len(errs) == 0 {
		return apperrors.NewInternal(err)
	}

	tag := errs[0].Tag()
	reason, ok := reasons[tag]
	if !ok {
		reason = fmt.Sprintf("failed %s check", tag)
	}
	return apperrors.NewValidation(field, reason)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func containsFunc(pred func(rune) bool) playground.Func {
	return func(fl playground.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), pred) >= 0
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

package model

type Doctor struct {
	Base
	Name           string `db:"name" json:"name"`
	Specialization string `db:"specialization" json:"specialization"`
	Email          string `db:"email" json:"email"`
	Username       string `db:"username" json:"username"`
	PasswordHash   string `db:"password" json:"-"`
}

type CreateDoctorRequest struct {
	Name           string
	Specialization string
	Email          string
	Username       string
	Password       string
}

// UpdateDoctorRequest carries optional changes. A nil field keeps the current value.
type UpdateDoctorRequest struct {
	Name           *string
	Specialization *string
	Email          *string
	Username       *string
	Password       *string
}

func (r UpdateDoctorRequest) IsEmpty() bool {
	return r.Name == nil && r.Specialization == nil && r.Email == nil &&
		r.Username == nil && r.Password == nil
}

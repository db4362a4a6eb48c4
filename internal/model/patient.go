package model

import (
	"time"
)

type Patient struct {
	Base
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Username    string    `db:"username" json:"username"`
	Address     string    `db:"address" json:"address"`
	Gender      string    `db:"gender" json:"gender"`
	Age         int       `db:"age" json:"age"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
}

type CreatePatientRequest struct {
	Name        string
	Email       string
	Username    string
	Address     string
	Gender      string
	Age         int
	DateOfBirth time.Time
}

type UpdatePatientRequest struct {
	Name        *string
	Email       *string
	Username    *string
	Address     *string
	Gender      *string
	Age         *int
	DateOfBirth *time.Time
}

func (r UpdatePatientRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Username == nil && r.Address == nil &&
		r.Gender == nil && r.Age == nil && r.DateOfBirth == nil
}

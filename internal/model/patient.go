package model

import (
	"time"
)

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Patient struct {
	Base
	Name         string  `db:"name" json:"name"`
	Age          int     `db:"age" json:"age"`
	Gender       Gender  `db:"gender" json:"gender"`
	Village      string  `db:"village" json:"village"`
	Phone        string  `db:"phone" json:"phone"`
	Password     string  `db:"-" json:"password,omitempty"`
	PasswordHash string  `db:"password_hash" json:"-"`
	Symptoms     string  `db:"symptoms" json:"symptoms,omitempty"`
	Status       string  `db:"status" json:"status"`
	Latitude     *float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude    *float64 `db:"longitude" json:"longitude,omitempty"`
}

type RegisterPatientRequest struct {
	Name     string `json:"name" binding:"required"`
	Age      int    `json:"age" binding:"required,gte=0,lte=120"`
	Gender   Gender `json:"gender" binding:"required,oneof=male female other"`
	Village  string `json:"village" binding:"required"`
	Phone    string `json:"phone" binding:"required,min=10"`
	Password string `json:"password" binding:"required,min=8"`
	Symptoms string `json:"symptoms"`
}

type UpdatePatientRequest struct {
	Name      *string  `json:"name"`
	Age       *int     `json:"age" binding:"omitempty,gte=0,lte=120"`
	Gender    *Gender  `json:"gender" binding:"omitempty,oneof=male female other"`
	Village   *string  `json:"village"`
	Phone     *string  `json:"phone" binding:"omitempty,min=10"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type PatientFilters struct {
	Village   string    `form:"village"`
	Status    string    `form:"status"`
	StartDate time.Time `form:"start_date"`
	EndDate   time.Time `form:"end_date"`
}

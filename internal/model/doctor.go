package model

import (
	"time"
)

type Specialization string

const (
	SpecializationGeneralPhysician Specialization = "General Physician"
	SpecializationCardiologist     Specialization = "Cardiologist"
	SpecializationDermatologist    Specialization = "Dermatologist"
	SpecializationGynecologist     Specialization = "Gynecologist"
	SpecializationPediatrician     Specialization = "Pediatrician"
	SpecializationOrthopedic       Specialization = "Orthopedic"
	SpecializationENT              Specialization = "ENT Specialist"
	SpecializationOphthalmologist  Specialization = "Ophthalmologist"
	SpecializationPsychiatrist     Specialization = "Psychiatrist"
	SpecializationNeurologist      Specialization = "Neurologist"
	SpecializationGastro           Specialization = "Gastroenterologist"
	SpecializationUrologist        Specialization = "Urologist"
	SpecializationDentist          Specialization = "Dentist"
	SpecializationEmergency        Specialization = "Emergency Specialist"
	SpecializationOther            Specialization = "Other"
)

type VerificationStatus string

const (
	VerificationStatusPending     VerificationStatus = "pending"
	VerificationStatusUnderReview VerificationStatus = "under_review"
	VerificationStatusVerified    VerificationStatus = "verified"
	VerificationStatusRejected    VerificationStatus = "rejected"
)

type DoctorDocument struct {
	Kind       string    `json:"kind"`
	URL        string    `json:"url"`
	Verified   bool      `json:"verified"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type Doctor struct {
	Base
	FullName     string  `db:"full_name" json:"full_name"`
	Email        string  `db:"email" json:"email"`
	Phone        string  `db:"phone" json:"phone"`
	Gender       Gender  `db:"gender" json:"gender"`
	Password     string  `db:"-" json:"password,omitempty"`
	PasswordHash string  `db:"password_hash" json:"-"`

	RegistrationNumber string         `db:"registration_number" json:"registration_number"`
	Qualification      string         `db:"qualification" json:"qualification"`
	Specialization     Specialization `db:"specialization" json:"specialization"`
	YearsOfExperience  int            `db:"years_of_experience" json:"years_of_experience"`
	MedicalCouncil     string         `db:"medical_council" json:"medical_council"`

	VerificationStatus VerificationStatus `db:"verification_status" json:"verification_status"`
	VerifiedAt         *time.Time         `db:"verified_at" json:"verified_at,omitempty"`
	RejectionReason    *string            `db:"rejection_reason" json:"rejection_reason,omitempty"`

	Documents     []DoctorDocument `db:"-" json:"documents"`
	DocumentsJSON []byte           `db:"documents" json:"-"`

	ClinicName      string  `db:"clinic_name" json:"clinic_name"`
	City            string  `db:"city" json:"city"`
	ConsultationFee int     `db:"consultation_fee" json:"consultation_fee"`
	Bio             string  `db:"bio" json:"bio,omitempty"`
	Latitude        *float64 `db:"latitude" json:"latitude,omitempty"`
	Longitude       *float64 `db:"longitude" json:"longitude,omitempty"`

	IsActive             bool `db:"is_active" json:"is_active"`
	AcceptingNewPatients bool `db:"accepting_new_patients" json:"accepting_new_patients"`
}

type RegisterDoctorRequest struct {
	FullName           string         `json:"full_name" binding:"required"`
	Email              string         `json:"email" binding:"required,email"`
	Phone              string         `json:"phone" binding:"required,min=10"`
	Gender             Gender         `json:"gender" binding:"required,oneof=male female other"`
	Password           string         `json:"password" binding:"required,min=8"`
	RegistrationNumber string         `json:"registration_number" binding:"required"`
	Qualification      string         `json:"qualification" binding:"required,oneof=MBBS BDS BAMS BHMS Other"`
	Specialization     Specialization `json:"specialization" binding:"required,specialization"`
	YearsOfExperience  int            `json:"years_of_experience" binding:"gte=0"`
	MedicalCouncil     string         `json:"medical_council" binding:"required"`
	ClinicName         string         `json:"clinic_name"`
	City               string         `json:"city"`
	ConsultationFee    int            `json:"consultation_fee" binding:"gte=0"`
	Bio                string         `json:"bio"`
}

type VerifyDoctorRequest struct {
	Status          VerificationStatus `json:"status" binding:"required,oneof=under_review verified rejected"`
	RejectionReason string             `json:"rejection_reason"`
}

type DoctorFilters struct {
	Specialization Specialization `form:"specialization"`
	City           string         `form:"city"`
	OnlyVerified   bool           `form:"only_verified"`
}

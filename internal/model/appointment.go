package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodUPI  PaymentMethod = "upi"
)

type Appointment struct {
	Base
	PatientID       uuid.UUID         `db:"patient_id" json:"patient_id"`
	PatientName     string            `db:"patient_name" json:"patient_name"`
	DoctorID        uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	DoctorName      string            `db:"doctor_name" json:"doctor_name"`
	AppointmentTime time.Time         `db:"appointment_time" json:"appointment_time"`
	Status          AppointmentStatus `db:"status" json:"status"`
	PaymentMethod   PaymentMethod     `db:"payment_method" json:"payment_method"`
	Amount          int               `db:"amount" json:"amount"`
	Symptoms        string            `db:"symptoms" json:"symptoms,omitempty"`
	ClinicalNotes   string            `db:"clinical_notes" json:"clinical_notes,omitempty"`
	ConsultationID  *uuid.UUID        `db:"consultation_id" json:"consultation_id,omitempty"`
	PriorityEmergency bool            `db:"priority_emergency" json:"priority_emergency"`
	CancelReason    *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

type BookAppointmentRequest struct {
	DoctorID          uuid.UUID     `json:"doctor_id" binding:"required"`
	AppointmentTime   time.Time     `json:"appointment_time" binding:"required"`
	PaymentMethod     PaymentMethod `json:"payment_method" binding:"required,oneof=cash upi"`
	Symptoms          string        `json:"symptoms"`
	ConsultationID    *uuid.UUID    `json:"consultation_id"`
	PriorityEmergency bool          `json:"priority_emergency"`
}

type UpdateAppointmentRequest struct {
	Status        *AppointmentStatus `json:"status" binding:"omitempty,oneof=booked completed cancelled"`
	ClinicalNotes *string            `json:"clinical_notes"`
	CancelReason  *string            `json:"cancel_reason"`
}

type AppointmentFilters struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Status    AppointmentStatus
	StartDate time.Time
	EndDate   time.Time
}

package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/healthdost/kiosk-api/internal/email"
	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/repository"
	"github.com/healthdost/kiosk-api/internal/service/notification"
)

var (
	ErrDoctorUnavailable = errors.New("doctor is not accepting new patients")
	ErrPastAppointment   = errors.New("appointment time is in the past")
	ErrBadTransition     = errors.New("invalid status transition")
)

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	consultRepo repository.ConsultationRepository
	outbox      repository.OutboxRepository
	emailSvc    email.Service
	notifySvc   notification.Service
}

func NewService(
	repo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	consultRepo repository.ConsultationRepository,
	outbox repository.OutboxRepository,
	emailSvc email.Service,
	notifySvc notification.Service,
) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		consultRepo: consultRepo,
		outbox:      outbox,
		emailSvc:    emailSvc,
		notifySvc:   notifySvc,
	}
}

// Book creates an appointment with a verified, available doctor. When
// the booking references a triage consultation, that consultation is
// marked as having reached a doctor. Emergency-priority bookings alert
// the doctor by email.
func (s *Service) Book(ctx context.Context, patientID uuid.UUID, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	if req.AppointmentTime.Before(time.Now()) {
		return nil, ErrPastAppointment
	}

	patient, err := s.patientRepo.Get(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	doctor, err := s.doctorRepo.Get(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	if doctor.VerificationStatus != model.VerificationStatusVerified || !doctor.IsActive {
		return nil, ErrDoctorUnavailable
	}
	if !doctor.AcceptingNewPatients && !req.PriorityEmergency {
		return nil, ErrDoctorUnavailable
	}

	appointment := &model.Appointment{
		PatientID:         patientID,
		PatientName:       patient.Name,
		DoctorID:          doctor.ID,
		DoctorName:        doctor.FullName,
		AppointmentTime:   req.AppointmentTime,
		Status:            model.AppointmentStatusBooked,
		PaymentMethod:     req.PaymentMethod,
		Amount:            doctor.ConsultationFee,
		Symptoms:          req.Symptoms,
		ConsultationID:    req.ConsultationID,
		PriorityEmergency: req.PriorityEmergency,
	}
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if req.ConsultationID != nil {
		if err := s.consultRepo.MarkDoctorConsulted(ctx, *req.ConsultationID, doctor.ID); err != nil {
			log.Warn().Err(err).Str("consultation_id", req.ConsultationID.String()).Msg("failed to link consultation to appointment")
		}
	}

	if req.PriorityEmergency {
		if err := s.emailSvc.SendEmergencyAlert(ctx, doctor.Email, doctor.FullName, patient.Name, req.Symptoms); err != nil {
			log.Warn().Err(err).Str("doctor_id", doctor.ID.String()).Msg("failed to send emergency alert")
		}
	}

	s.notifyBooked(ctx, patient, appointment)
	s.publishBooked(ctx, appointment)
	return appointment, nil
}

func (s *Service) notifyBooked(ctx context.Context, patient *model.Patient, appointment *model.Appointment) {
	if s.notifySvc == nil {
		return
	}
	err := s.notifySvc.Send(ctx, &model.Notification{
		UserID:    patient.ID,
		Channel:   "in_app",
		Recipient: patient.Phone,
		Subject:   "Appointment confirmed",
		Content: fmt.Sprintf("Your appointment with %s on %s is confirmed.",
			appointment.DoctorName, appointment.AppointmentTime.Format("02 Jan 2006 15:04")),
	})
	if err != nil {
		log.Warn().Err(err).Str("appointment_id", appointment.ID.String()).Msg("failed to send booking notification")
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Update applies a status transition and any notes. Booked
// appointments can complete or cancel; completed and cancelled are
// terminal.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if req.Status != nil && *req.Status != appointment.Status {
		if appointment.Status != model.AppointmentStatusBooked {
			return nil, fmt.Errorf("%w: %s -> %s", ErrBadTransition, appointment.Status, *req.Status)
		}
		if *req.Status == model.AppointmentStatusCancelled && req.CancelReason == nil {
			return nil, fmt.Errorf("cancel reason is required")
		}
		appointment.Status = *req.Status
		appointment.CancelReason = req.CancelReason
	}
	if req.ClinicalNotes != nil {
		appointment.ClinicalNotes = *req.ClinicalNotes
	}
	appointment.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return appointment, nil
}

func (s *Service) publishBooked(ctx context.Context, appointment *model.Appointment) {
	if s.outbox == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"appointment_id": appointment.ID,
		"patient_id":     appointment.PatientID,
		"doctor_id":      appointment.DoctorID,
		"time":           appointment.AppointmentTime,
		"emergency":      appointment.PriorityEmergency,
	})
	if err != nil {
		return
	}
	if err := s.outbox.Create(ctx, &model.OutboxEvent{EventType: model.EventAppointmentBooked, Payload: payload}); err != nil {
		log.Warn().Err(err).Msg("failed to create outbox event")
	}
}

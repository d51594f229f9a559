package appointment

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthdost/kiosk-api/internal/model"
)

type fakeAppointmentRepo struct {
	byID map[uuid.UUID]*model.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: make(map[uuid.UUID]*model.Appointment)}
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	f.byID[a.ID] = a
	return nil
}
func (f *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, errors.New("appointment not found")
	}
	return a, nil
}
func (f *fakeAppointmentRepo) Update(ctx context.Context, a *model.Appointment) error {
	f.byID[a.ID] = a
	return nil
}
func (f *fakeAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, nil
}

type fakePatientRepo struct {
	patient *model.Patient
}

func (f *fakePatientRepo) Create(ctx context.Context, p *model.Patient) error { return nil }
func (f *fakePatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	if f.patient == nil {
		return nil, errors.New("not found")
	}
	return f.patient, nil
}
func (f *fakePatientRepo) GetByPhone(ctx context.Context, phone string) (*model.Patient, error) {
	return nil, errors.New("not found")
}
func (f *fakePatientRepo) Update(ctx context.Context, p *model.Patient) error { return nil }
func (f *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *fakePatientRepo) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	return nil, nil
}

type fakeDoctorRepo struct {
	doctor *model.Doctor
}

func (f *fakeDoctorRepo) Create(ctx context.Context, d *model.Doctor) error { return nil }
func (f *fakeDoctorRepo) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	if f.doctor == nil {
		return nil, errors.New("not found")
	}
	return f.doctor, nil
}
func (f *fakeDoctorRepo) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	return nil, errors.New("not found")
}
func (f *fakeDoctorRepo) Update(ctx context.Context, d *model.Doctor) error { return nil }
func (f *fakeDoctorRepo) UpdateVerification(ctx context.Context, id uuid.UUID, status model.VerificationStatus, reason *string, verifiedAt *time.Time) error {
	return nil
}
func (f *fakeDoctorRepo) UpdateAvailability(ctx context.Context, id uuid.UUID, accepting bool) error {
	return nil
}
func (f *fakeDoctorRepo) List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error) {
	return nil, nil
}
func (f *fakeDoctorRepo) ListPendingVerification(ctx context.Context) ([]*model.Doctor, error) {
	return nil, nil
}

type fakeConsultationRepo struct {
	linked map[uuid.UUID]uuid.UUID
}

func (f *fakeConsultationRepo) Create(ctx context.Context, c *model.AIConsultation) error { return nil }
func (f *fakeConsultationRepo) Get(ctx context.Context, id uuid.UUID) (*model.AIConsultation, error) {
	return nil, errors.New("not found")
}
func (f *fakeConsultationRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AIConsultation, error) {
	return nil, nil
}
func (f *fakeConsultationRepo) AttachFeedback(ctx context.Context, id uuid.UUID, wasHelpful bool, feedback string) error {
	return nil
}
func (f *fakeConsultationRepo) MarkDoctorConsulted(ctx context.Context, id, doctorID uuid.UUID) error {
	if f.linked == nil {
		f.linked = make(map[uuid.UUID]uuid.UUID)
	}
	f.linked[id] = doctorID
	return nil
}

type fakeOutbox struct {
	events []*model.OutboxEvent
}

func (f *fakeOutbox) Create(ctx context.Context, e *model.OutboxEvent) error {
	f.events = append(f.events, e)
	return nil
}
func (f *fakeOutbox) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	return f.events, nil
}
func (f *fakeOutbox) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	return nil
}
func (f *fakeOutbox) MarkForRetry(ctx context.Context, id uuid.UUID, errMsg string, retryAt time.Time) error {
	return nil
}
func (f *fakeOutbox) BeginTx(ctx context.Context) (*sql.Tx, error) { return nil, nil }
func (f *fakeOutbox) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakeEmail struct {
	alerts []string
}

func (f *fakeEmail) SendRegistrationConfirmation(ctx context.Context, to, name string) error {
	return nil
}
func (f *fakeEmail) SendVerificationApproved(ctx context.Context, to, name string) error { return nil }
func (f *fakeEmail) SendVerificationRejected(ctx context.Context, to, name, reason string) error {
	return nil
}
func (f *fakeEmail) SendDocumentReminder(ctx context.Context, to, name string, missing []string) error {
	return nil
}
func (f *fakeEmail) SendEmergencyAlert(ctx context.Context, to, doctorName, patientName, symptoms string) error {
	f.alerts = append(f.alerts, to)
	return nil
}
func (f *fakeEmail) SendCustom(ctx context.Context, to, subject, content string) error { return nil }

func verifiedDoctor() *model.Doctor {
	d := &model.Doctor{
		FullName:             "Dr. Asha Patel",
		Email:                "asha@example.org",
		Specialization:       model.SpecializationGeneralPhysician,
		VerificationStatus:   model.VerificationStatusVerified,
		IsActive:             true,
		AcceptingNewPatients: true,
		ConsultationFee:      200,
	}
	d.ID = uuid.New()
	return d
}

func testPatient() *model.Patient {
	p := &model.Patient{Name: "Ramesh", Phone: "9876543210"}
	p.ID = uuid.New()
	return p
}

func bookRequest(doctorID uuid.UUID) *model.BookAppointmentRequest {
	return &model.BookAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentTime: time.Now().Add(24 * time.Hour),
		PaymentMethod:   model.PaymentMethodCash,
		Symptoms:        "fever",
	}
}

func TestBookAppointment(t *testing.T) {
	doctor := verifiedDoctor()
	patient := testPatient()
	outbox := &fakeOutbox{}
	svc := NewService(newFakeAppointmentRepo(), &fakePatientRepo{patient: patient}, &fakeDoctorRepo{doctor: doctor}, &fakeConsultationRepo{}, outbox, &fakeEmail{}, nil)

	booked, err := svc.Book(context.Background(), patient.ID, bookRequest(doctor.ID))
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusBooked, booked.Status)
	assert.Equal(t, patient.Name, booked.PatientName)
	assert.Equal(t, doctor.FullName, booked.DoctorName)
	assert.Equal(t, 200, booked.Amount, "fee comes from the doctor record")

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventAppointmentBooked, outbox.events[0].EventType)
}

func TestBookAppointmentInPast(t *testing.T) {
	doctor := verifiedDoctor()
	patient := testPatient()
	svc := NewService(newFakeAppointmentRepo(), &fakePatientRepo{patient: patient}, &fakeDoctorRepo{doctor: doctor}, &fakeConsultationRepo{}, &fakeOutbox{}, &fakeEmail{}, nil)

	req := bookRequest(doctor.ID)
	req.AppointmentTime = time.Now().Add(-time.Hour)
	_, err := svc.Book(context.Background(), patient.ID, req)
	assert.ErrorIs(t, err, ErrPastAppointment)
}

func TestBookAppointmentUnverifiedDoctor(t *testing.T) {
	doctor := verifiedDoctor()
	doctor.VerificationStatus = model.VerificationStatusPending
	patient := testPatient()
	svc := NewService(newFakeAppointmentRepo(), &fakePatientRepo{patient: patient}, &fakeDoctorRepo{doctor: doctor}, &fakeConsultationRepo{}, &fakeOutbox{}, &fakeEmail{}, nil)

	_, err := svc.Book(context.Background(), patient.ID, bookRequest(doctor.ID))
	assert.ErrorIs(t, err, ErrDoctorUnavailable)
}

func TestBookAppointmentClosedDoctorAllowsEmergency(t *testing.T) {
	doctor := verifiedDoctor()
	doctor.AcceptingNewPatients = false
	patient := testPatient()
	emails := &fakeEmail{}
	svc := NewService(newFakeAppointmentRepo(), &fakePatientRepo{patient: patient}, &fakeDoctorRepo{doctor: doctor}, &fakeConsultationRepo{}, &fakeOutbox{}, emails, nil)

	_, err := svc.Book(context.Background(), patient.ID, bookRequest(doctor.ID))
	assert.ErrorIs(t, err, ErrDoctorUnavailable)

	req := bookRequest(doctor.ID)
	req.PriorityEmergency = true
	booked, err := svc.Book(context.Background(), patient.ID, req)
	require.NoError(t, err)
	assert.True(t, booked.PriorityEmergency)
	assert.Equal(t, []string{doctor.Email}, emails.alerts)
}

func TestBookAppointmentLinksConsultation(t *testing.T) {
	doctor := verifiedDoctor()
	patient := testPatient()
	consultRepo := &fakeConsultationRepo{}
	svc := NewService(newFakeAppointmentRepo(), &fakePatientRepo{patient: patient}, &fakeDoctorRepo{doctor: doctor}, consultRepo, &fakeOutbox{}, &fakeEmail{}, nil)

	consultationID := uuid.New()
	req := bookRequest(doctor.ID)
	req.ConsultationID = &consultationID

	_, err := svc.Book(context.Background(), patient.ID, req)
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, consultRepo.linked[consultationID])
}

func TestUpdateStatusTransitions(t *testing.T) {
	doctor := verifiedDoctor()
	patient := testPatient()
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, &fakePatientRepo{patient: patient}, &fakeDoctorRepo{doctor: doctor}, &fakeConsultationRepo{}, &fakeOutbox{}, &fakeEmail{}, nil)

	booked, err := svc.Book(context.Background(), patient.ID, bookRequest(doctor.ID))
	require.NoError(t, err)

	completed := model.AppointmentStatusCompleted
	notes := "prescribed rest"
	updated, err := svc.Update(context.Background(), booked.ID, &model.UpdateAppointmentRequest{
		Status:        &completed,
		ClinicalNotes: &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, updated.Status)
	assert.Equal(t, "prescribed rest", updated.ClinicalNotes)

	// Completed is terminal.
	cancelled := model.AppointmentStatusCancelled
	reason := "patient no-show"
	_, err = svc.Update(context.Background(), booked.ID, &model.UpdateAppointmentRequest{
		Status:       &cancelled,
		CancelReason: &reason,
	})
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestCancelRequiresReason(t *testing.T) {
	doctor := verifiedDoctor()
	patient := testPatient()
	svc := NewService(newFakeAppointmentRepo(), &fakePatientRepo{patient: patient}, &fakeDoctorRepo{doctor: doctor}, &fakeConsultationRepo{}, &fakeOutbox{}, &fakeEmail{}, nil)

	booked, err := svc.Book(context.Background(), patient.ID, bookRequest(doctor.ID))
	require.NoError(t, err)

	cancelled := model.AppointmentStatusCancelled
	_, err = svc.Update(context.Background(), booked.ID, &model.UpdateAppointmentRequest{Status: &cancelled})
	assert.Error(t, err)
}

package doctor

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

type fakeDoctorRepo struct {
	byID         map[uuid.UUID]*model.Doctor
	byEmail      map[string]*model.Doctor
	listed       []*model.Doctor
	listCalls    int
	verification map[uuid.UUID]model.VerificationStatus
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{
		byID:         make(map[uuid.UUID]*model.Doctor),
		byEmail:      make(map[string]*model.Doctor),
		verification: make(map[uuid.UUID]model.VerificationStatus),
	}
}

func (f *fakeDoctorRepo) Create(ctx context.Context, d *model.Doctor) error {
	f.byID[d.ID] = d
	f.byEmail[d.Email] = d
	return nil
}

func (f *fakeDoctorRepo) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, errors.New("doctor not found")
	}
	return d, nil
}

func (f *fakeDoctorRepo) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	d, ok := f.byEmail[email]
	if !ok {
		return nil, errors.New("doctor not found")
	}
	return d, nil
}

func (f *fakeDoctorRepo) Update(ctx context.Context, d *model.Doctor) error { return nil }

func (f *fakeDoctorRepo) UpdateVerification(ctx context.Context, id uuid.UUID, status model.VerificationStatus, reason *string, verifiedAt *time.Time) error {
	f.verification[id] = status
	return nil
}

func (f *fakeDoctorRepo) UpdateAvailability(ctx context.Context, id uuid.UUID, accepting bool) error {
	return nil
}

func (f *fakeDoctorRepo) List(ctx context.Context, filters *model.DoctorFilters) ([]*model.Doctor, error) {
	f.listCalls++
	return f.listed, nil
}

func (f *fakeDoctorRepo) ListPendingVerification(ctx context.Context) ([]*model.Doctor, error) {
	var pending []*model.Doctor
	for _, d := range f.byID {
		if d.VerificationStatus == model.VerificationStatusPending {
			pending = append(pending, d)
		}
	}
	return pending, nil
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
	approved  []string
	rejected  []string
	reminders []string
	welcomes  []string
}

func (f *fakeEmail) SendRegistrationConfirmation(ctx context.Context, to, name string) error {
	f.welcomes = append(f.welcomes, to)
	return nil
}
func (f *fakeEmail) SendVerificationApproved(ctx context.Context, to, name string) error {
	f.approved = append(f.approved, to)
	return nil
}
func (f *fakeEmail) SendVerificationRejected(ctx context.Context, to, name, reason string) error {
	f.rejected = append(f.rejected, to)
	return nil
}
func (f *fakeEmail) SendDocumentReminder(ctx context.Context, to, name string, missing []string) error {
	f.reminders = append(f.reminders, to)
	return nil
}
func (f *fakeEmail) SendEmergencyAlert(ctx context.Context, to, doctorName, patientName, symptoms string) error {
	return nil
}
func (f *fakeEmail) SendCustom(ctx context.Context, to, subject, content string) error { return nil }

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func registerRequest() *model.RegisterDoctorRequest {
	return &model.RegisterDoctorRequest{
		FullName:           "Dr. Asha Patel",
		Email:              "asha@example.org",
		Phone:              "9876543210",
		Gender:             model.GenderFemale,
		Password:           "secret-pass",
		RegistrationNumber: "MH-12345",
		Qualification:      "MBBS",
		Specialization:     model.SpecializationGeneralPhysician,
		YearsOfExperience:  8,
		MedicalCouncil:     "Maharashtra Medical Council",
		City:               "Nashik",
		ConsultationFee:    150,
	}
}

func TestRegisterStartsPending(t *testing.T) {
	repo := newFakeDoctorRepo()
	emails := &fakeEmail{}
	svc := NewService(repo, &fakeOutbox{}, emails, fakeHasher{})

	created, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, model.VerificationStatusPending, created.VerificationStatus)
	assert.False(t, created.IsActive)
	assert.Equal(t, "hashed:secret-pass", created.PasswordHash)
	assert.Equal(t, []string{"asha@example.org"}, emails.welcomes)

	_, err = svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestMatchSpecialistsLimitAndCache(t *testing.T) {
	repo := newFakeDoctorRepo()
	for _, name := range []string{"Dr. A", "Dr. B", "Dr. C", "Dr. D", "Dr. E"} {
		d := &model.Doctor{FullName: name, Specialization: model.SpecializationCardiologist}
		d.ID = uuid.New()
		repo.listed = append(repo.listed, d)
	}
	svc := NewService(repo, &fakeOutbox{}, &fakeEmail{}, fakeHasher{})

	matched, err := svc.MatchSpecialists(context.Background(), "Cardiologist", 3)
	require.NoError(t, err)
	require.Len(t, matched, 3)
	assert.Equal(t, "Dr. A", matched[0].FullName)

	// Second lookup is served from cache.
	_, err = svc.MatchSpecialists(context.Background(), "Cardiologist", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)

	empty, err := svc.MatchSpecialists(context.Background(), "", 3)
	require.NoError(t, err)
	assert.Nil(t, empty)
	assert.Equal(t, 1, repo.listCalls)
}

func TestVerifyApproval(t *testing.T) {
	repo := newFakeDoctorRepo()
	emails := &fakeEmail{}
	outbox := &fakeOutbox{}
	svc := NewService(repo, outbox, emails, fakeHasher{})

	created, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	updated, err := svc.Verify(context.Background(), created.ID, &model.VerifyDoctorRequest{
		Status: model.VerificationStatusVerified,
	})
	require.NoError(t, err)

	assert.Equal(t, model.VerificationStatusVerified, updated.VerificationStatus)
	assert.NotNil(t, updated.VerifiedAt)
	assert.True(t, updated.IsActive)
	assert.True(t, updated.AcceptingNewPatients)
	assert.Equal(t, []string{"asha@example.org"}, emails.approved)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventDoctorVerified, outbox.events[0].EventType)
}

func TestVerifyRejectionRequiresReason(t *testing.T) {
	repo := newFakeDoctorRepo()
	emails := &fakeEmail{}
	outbox := &fakeOutbox{}
	svc := NewService(repo, outbox, emails, fakeHasher{})

	created, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), created.ID, &model.VerifyDoctorRequest{
		Status: model.VerificationStatusRejected,
	})
	assert.Error(t, err)

	updated, err := svc.Verify(context.Background(), created.ID, &model.VerifyDoctorRequest{
		Status:          model.VerificationStatusRejected,
		RejectionReason: "registration number could not be confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, model.VerificationStatusRejected, updated.VerificationStatus)
	assert.False(t, updated.IsActive)
	assert.Equal(t, []string{"asha@example.org"}, emails.rejected)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventDoctorRejected, outbox.events[0].EventType)
}

func TestSetAvailabilityRequiresVerification(t *testing.T) {
	repo := newFakeDoctorRepo()
	svc := NewService(repo, &fakeOutbox{}, &fakeEmail{}, fakeHasher{})

	created, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	err = svc.SetAvailability(context.Background(), created.ID, true)
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestSendDocumentReminders(t *testing.T) {
	repo := newFakeDoctorRepo()
	emails := &fakeEmail{}
	svc := NewService(repo, &fakeOutbox{}, emails, fakeHasher{})

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	sent, err := svc.SendDocumentReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, []string{"asha@example.org"}, emails.reminders)
}

func TestMissingDocuments(t *testing.T) {
	missing := missingDocuments(nil)
	assert.Equal(t, requiredDocuments, missing)

	missing = missingDocuments([]model.DoctorDocument{
		{Kind: "registration_certificate"},
		{Kind: "degree_certificate"},
		{Kind: "identity_proof"},
	})
	assert.Empty(t, missing)
}

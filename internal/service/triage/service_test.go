package triage

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

type fakePatientRepo struct {
	patient *model.Patient
	err     error
	calls   int
}

func (f *fakePatientRepo) Create(ctx context.Context, p *model.Patient) error { return nil }
func (f *fakePatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	f.calls++
	return f.patient, f.err
}
func (f *fakePatientRepo) GetByPhone(ctx context.Context, phone string) (*model.Patient, error) {
	return nil, errors.New("not found")
}
func (f *fakePatientRepo) Update(ctx context.Context, p *model.Patient) error { return nil }
func (f *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (f *fakePatientRepo) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	return nil, nil
}

type fakeConsultationRepo struct {
	created   []*model.AIConsultation
	createErr error
	feedback  map[uuid.UUID]bool
}

func (f *fakeConsultationRepo) Create(ctx context.Context, c *model.AIConsultation) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, c)
	return nil
}
func (f *fakeConsultationRepo) Get(ctx context.Context, id uuid.UUID) (*model.AIConsultation, error) {
	return nil, errors.New("not found")
}
func (f *fakeConsultationRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*model.AIConsultation, error) {
	return f.created, nil
}
func (f *fakeConsultationRepo) AttachFeedback(ctx context.Context, id uuid.UUID, wasHelpful bool, feedback string) error {
	if f.feedback == nil {
		f.feedback = make(map[uuid.UUID]bool)
	}
	if _, done := f.feedback[id]; done {
		return errors.New("feedback not attached")
	}
	f.feedback[id] = wasHelpful
	return nil
}
func (f *fakeConsultationRepo) MarkDoctorConsulted(ctx context.Context, id, doctorID uuid.UUID) error {
	return nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, e *model.OutboxEvent) error {
	f.events = append(f.events, e)
	return nil
}
func (f *fakeOutboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	return f.events, nil
}
func (f *fakeOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	return nil
}
func (f *fakeOutboxRepo) MarkForRetry(ctx context.Context, id uuid.UUID, errMsg string, retryAt time.Time) error {
	return nil
}
func (f *fakeOutboxRepo) BeginTx(ctx context.Context) (*sql.Tx, error) { return nil, nil }
func (f *fakeOutboxRepo) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakeDirectory struct {
	doctors []*model.Doctor
	err     error
	calls   []string
}

func (f *fakeDirectory) MatchSpecialists(ctx context.Context, specialization string, limit int) ([]*model.Doctor, error) {
	f.calls = append(f.calls, specialization)
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.doctors) > limit {
		return f.doctors[:limit], nil
	}
	return f.doctors, nil
}

type fakeDiagnoser struct {
	result *model.TriageResult
	err    error
	calls  int
}

func (f *fakeDiagnoser) Diagnose(ctx context.Context, req model.TriageRequest) (*model.TriageResult, error) {
	f.calls++
	return f.result, f.err
}

func adultPatient() *model.Patient {
	p := &model.Patient{Name: "Ramesh", Age: 42, Gender: model.GenderMale}
	p.ID = uuid.New()
	return p
}

func modelResult(confidence int) *model.TriageResult {
	return &model.TriageResult{
		Confidence: confidence,
		Diagnosis:  model.Diagnosis{Primary: "Viral Fever"},
		Analysis:   "Likely viral etiology.",
		Prescription: model.Prescription{
			Medicines: []model.Medicine{{Name: "Paracetamol", GenericName: "Acetaminophen"}},
		},
		RecommendedSpecialization: string(model.SpecializationGeneralPhysician),
		UrgencyLevel:              model.UrgencyRoutine,
	}
}

func newTestService(patientRepo *fakePatientRepo, consultRepo *fakeConsultationRepo, outbox *fakeOutboxRepo, directory *fakeDirectory, diagnoser *fakeDiagnoser) *Service {
	return NewService(patientRepo, consultRepo, outbox, directory, diagnoser)
}

func TestAnalyzeEmptySymptoms(t *testing.T) {
	patientRepo := &fakePatientRepo{patient: adultPatient()}
	diagnoser := &fakeDiagnoser{result: modelResult(80)}
	directory := &fakeDirectory{}
	svc := newTestService(patientRepo, &fakeConsultationRepo{}, &fakeOutboxRepo{}, directory, diagnoser)

	_, err := svc.Analyze(context.Background(), uuid.New(), &model.AnalyzeRequest{})
	assert.ErrorIs(t, err, ErrEmptySymptoms)

	_, err = svc.Analyze(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrEmptySymptoms)

	// No collaborator is touched on validation failure.
	assert.Zero(t, patientRepo.calls)
	assert.Zero(t, diagnoser.calls)
	assert.Empty(t, directory.calls)
}

func TestAnalyzeOverrideSkipsModel(t *testing.T) {
	patient := adultPatient()
	patient.Age = 7
	patientRepo := &fakePatientRepo{patient: patient}
	diagnoser := &fakeDiagnoser{result: modelResult(95)}
	consultRepo := &fakeConsultationRepo{}
	outbox := &fakeOutboxRepo{}
	directory := &fakeDirectory{doctors: []*model.Doctor{{FullName: "Dr. Rao", Specialization: model.SpecializationPediatrician}}}
	svc := newTestService(patientRepo, consultRepo, outbox, directory, diagnoser)

	analysis, err := svc.Analyze(context.Background(), patient.ID, &model.AnalyzeRequest{Symptoms: "fever"})
	require.NoError(t, err)

	assert.True(t, analysis.Override)
	assert.Equal(t, "Pediatric Evaluation Required", analysis.Result.Diagnosis.Primary)
	assert.Equal(t, TierLow, analysis.Tier)
	assert.Zero(t, diagnoser.calls, "override must not reach the model")
	assert.Empty(t, consultRepo.created, "override results are not persisted")
	assert.Nil(t, analysis.ConsultationID)
	assert.Equal(t, []string{string(model.SpecializationPediatrician)}, directory.calls)
	assert.Len(t, analysis.Specialists, 1)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventTriageEmergency, outbox.events[0].EventType)
}

func TestAnalyzeModerateTier(t *testing.T) {
	patientRepo := &fakePatientRepo{patient: adultPatient()}
	diagnoser := &fakeDiagnoser{result: modelResult(75)}
	consultRepo := &fakeConsultationRepo{}
	directory := &fakeDirectory{doctors: []*model.Doctor{{FullName: "Dr. Singh"}}}
	svc := newTestService(patientRepo, consultRepo, &fakeOutboxRepo{}, directory, diagnoser)

	analysis, err := svc.Analyze(context.Background(), uuid.New(), &model.AnalyzeRequest{Symptoms: "fever and headache"})
	require.NoError(t, err)

	assert.Equal(t, TierModerate, analysis.Tier)
	assert.False(t, analysis.Override)
	assert.False(t, analysis.Fallback)
	assert.NotEmpty(t, analysis.Result.Prescription.Medicines)
	assert.Len(t, analysis.Specialists, 1)
	require.Len(t, consultRepo.created, 1)
	require.NotNil(t, analysis.ConsultationID)
	assert.Equal(t, consultRepo.created[0].ID, *analysis.ConsultationID)
}

func TestAnalyzeHighTierSkipsSpecialists(t *testing.T) {
	patientRepo := &fakePatientRepo{patient: adultPatient()}
	diagnoser := &fakeDiagnoser{result: modelResult(100)}
	directory := &fakeDirectory{doctors: []*model.Doctor{{FullName: "Dr. Singh"}}}
	svc := newTestService(patientRepo, &fakeConsultationRepo{}, &fakeOutboxRepo{}, directory, diagnoser)

	analysis, err := svc.Analyze(context.Background(), uuid.New(), &model.AnalyzeRequest{Symptoms: "mild rash"})
	require.NoError(t, err)

	assert.Equal(t, TierHigh, analysis.Tier)
	assert.Empty(t, directory.calls)
	assert.Nil(t, analysis.Specialists)
}

func TestAnalyzeLowTierStripsMedicines(t *testing.T) {
	patientRepo := &fakePatientRepo{patient: adultPatient()}
	diagnoser := &fakeDiagnoser{result: modelResult(40)}
	svc := newTestService(patientRepo, &fakeConsultationRepo{}, &fakeOutboxRepo{}, &fakeDirectory{}, diagnoser)

	analysis, err := svc.Analyze(context.Background(), uuid.New(), &model.AnalyzeRequest{Symptoms: "vague discomfort"})
	require.NoError(t, err)

	assert.Equal(t, TierLow, analysis.Tier)
	assert.Empty(t, analysis.Result.Prescription.Medicines)
	assert.True(t, analysis.Result.IsEmergency, "low confidence is treated as emergency")
}

func TestAnalyzeConfidenceClamped(t *testing.T) {
	patientRepo := &fakePatientRepo{patient: adultPatient()}
	diagnoser := &fakeDiagnoser{result: modelResult(130)}
	svc := newTestService(patientRepo, &fakeConsultationRepo{}, &fakeOutboxRepo{}, &fakeDirectory{}, diagnoser)

	analysis, err := svc.Analyze(context.Background(), uuid.New(), &model.AnalyzeRequest{Symptoms: "fever"})
	require.NoError(t, err)
	assert.Equal(t, 100, analysis.Result.Confidence)
	assert.Equal(t, TierHigh, analysis.Tier)
}

func TestAnalyzeFallbackOnModelFailure(t *testing.T) {
	patientRepo := &fakePatientRepo{patient: adultPatient()}
	diagnoser := &fakeDiagnoser{err: errors.New("upstream 500")}
	consultRepo := &fakeConsultationRepo{}
	svc := newTestService(patientRepo, consultRepo, &fakeOutboxRepo{}, &fakeDirectory{}, diagnoser)

	analysis, err := svc.Analyze(context.Background(), uuid.New(), &model.AnalyzeRequest{Symptoms: "fever and body ache"})
	require.NoError(t, err, "model failure must not surface to the caller")

	assert.True(t, analysis.Fallback)
	assert.Equal(t, 70, analysis.Result.Confidence)
	assert.Equal(t, TierModerate, analysis.Tier)
	assert.Equal(t, 1, diagnoser.calls, "no retries on failure")
	assert.Len(t, consultRepo.created, 1, "fallback results are still persisted")
}

func TestAnalyzeSaveFailureIsBestEffort(t *testing.T) {
	patientRepo := &fakePatientRepo{patient: adultPatient()}
	diagnoser := &fakeDiagnoser{result: modelResult(85)}
	consultRepo := &fakeConsultationRepo{createErr: errors.New("disk full")}
	svc := newTestService(patientRepo, consultRepo, &fakeOutboxRepo{}, &fakeDirectory{}, diagnoser)

	analysis, err := svc.Analyze(context.Background(), uuid.New(), &model.AnalyzeRequest{Symptoms: "fever"})
	require.NoError(t, err)
	assert.Nil(t, analysis.ConsultationID)
	assert.Equal(t, "Viral Fever", analysis.Result.Diagnosis.Primary)
}

func TestAnalyzeProceedsWithoutDemographics(t *testing.T) {
	patientRepo := &fakePatientRepo{err: errors.New("not found")}
	diagnoser := &fakeDiagnoser{result: modelResult(90)}
	svc := newTestService(patientRepo, &fakeConsultationRepo{}, &fakeOutboxRepo{}, &fakeDirectory{}, diagnoser)

	analysis, err := svc.Analyze(context.Background(), uuid.New(), &model.AnalyzeRequest{Symptoms: "fever"})
	require.NoError(t, err)
	assert.Equal(t, TierModerate, analysis.Tier)
	assert.Equal(t, 1, diagnoser.calls)
}

func TestAttachFeedbackOnce(t *testing.T) {
	consultRepo := &fakeConsultationRepo{}
	svc := newTestService(&fakePatientRepo{patient: adultPatient()}, consultRepo, &fakeOutboxRepo{}, &fakeDirectory{}, &fakeDiagnoser{result: modelResult(80)})

	id := uuid.New()
	require.NoError(t, svc.AttachFeedback(context.Background(), id, true, "very helpful"))
	assert.Error(t, svc.AttachFeedback(context.Background(), id, false, "changed my mind"))
}

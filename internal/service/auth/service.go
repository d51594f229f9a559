package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/healthdost/kiosk-api/internal/model"
	"github.com/healthdost/kiosk-api/internal/repository"
	"github.com/healthdost/kiosk-api/pkg/auth"
	"github.com/healthdost/kiosk-api/pkg/security"
)

// ErrInvalidCredentials is returned for every failed login, whatever
// actually went wrong. Callers get no signal about which part failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrAccountInactive = errors.New("account is inactive")

type Service struct {
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	agentRepo   repository.AgentRepository
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
	tokenTTL    time.Duration
}

func NewService(
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	agentRepo repository.AgentRepository,
	jwtSvc auth.JWTService,
	hasher security.PasswordHasher,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		agentRepo:   agentRepo,
		jwtSvc:      jwtSvc,
		hasher:      hasher,
		tokenTTL:    tokenTTL,
	}
}

// LoginPatient authenticates a patient by phone number and password.
func (s *Service) LoginPatient(ctx context.Context, req *model.PatientLoginRequest) (*model.TokenResponse, error) {
	patient, err := s.patientRepo.GetByPhone(ctx, req.Phone)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(patient.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if patient.Status != string(model.PatientStatusActive) {
		return nil, ErrAccountInactive
	}
	return s.issueToken(&model.TokenClaims{
		UserID: patient.ID,
		Role:   model.RolePatient,
		Name:   patient.Name,
	})
}

// LoginDoctor authenticates a doctor by email and password. Doctors
// can log in at any verification stage; the verification status gates
// what they can do, not whether they can sign in.
func (s *Service) LoginDoctor(ctx context.Context, req *model.DoctorLoginRequest) (*model.TokenResponse, error) {
	doctor, err := s.doctorRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(doctor.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(&model.TokenClaims{
		UserID: doctor.ID,
		Role:   model.RoleDoctor,
		Name:   doctor.FullName,
	})
}

// LoginAgent authenticates a kiosk field agent by username and PIN.
func (s *Service) LoginAgent(ctx context.Context, req *model.AgentLoginRequest) (*model.TokenResponse, error) {
	agent, err := s.agentRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(agent.PINHash, req.PIN); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !agent.IsActive {
		return nil, ErrAccountInactive
	}
	return s.issueToken(&model.TokenClaims{
		UserID: agent.ID,
		Role:   model.RoleAgent,
		Name:   agent.Username,
	})
}

// Validate parses and verifies an access token.
func (s *Service) Validate(token string) (*model.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	return claims, nil
}

func (s *Service) issueToken(claims *model.TokenClaims) (*model.TokenResponse, error) {
	token, err := s.jwtSvc.GenerateAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
		Role:        claims.Role,
		Name:        claims.Name,
		UserID:      claims.UserID.String(),
	}, nil
}

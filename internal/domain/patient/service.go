package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Service struct {
	patients Repository
	validate *validator.Validate
	now      func() time.Time
}

func NewService(patients Repository) *Service {
	return &Service{patients: patients, validate: newValidator(), now: time.Now}
}

// CreatePatient registers a new patient. Status is always ACTIVE on creation
// and RegistrationDate defaults to the current time.
func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	now := s.now()
	p.PatientID = strings.TrimSpace(p.PatientID)
	if err := validatePatient(s.validate, p, now); err != nil {
		return err
	}

	exists, err := s.patients.ExistsByPatientID(ctx, p.PatientID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePatientID, p.PatientID)
	}

	if p.RegistrationDate.IsZero() {
		p.RegistrationDate = now
	}
	p.Status = StatusActive
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, patientID string) (*Patient, error) {
	return s.patients.GetByPatientID(ctx, patientID)
}

func (s *Service) GetPatientByEmail(ctx context.Context, email string) (*Patient, error) {
	return s.patients.GetByEmail(ctx, email)
}

func (s *Service) GetPatientByPhoneNumber(ctx context.Context, phone string) (*Patient, error) {
	return s.patients.GetByPhoneNumber(ctx, phone)
}

func (s *Service) GetPatientByIdentificationNumber(ctx context.Context, number string) (*Patient, error) {
	return s.patients.GetByIdentificationNumber(ctx, number)
}

// SearchPatients matches name case-insensitively against "First Last". The
// text is matched as given, surrounding spaces included.
func (s *Service) SearchPatients(ctx context.Context, name string) ([]*Patient, error) {
	if strings.TrimSpace(name) == "" {
		return nil, newValidationError("name is required")
	}
	return s.patients.SearchByName(ctx, name)
}

func (s *Service) ListPatients(ctx context.Context, f Filter) ([]*Patient, error) {
	if f.Gender != "" && !f.Gender.Valid() {
		return nil, newValidationError("gender has unsupported value %q", f.Gender)
	}
	if f.BloodGroup != "" && !f.BloodGroup.Valid() {
		return nil, newValidationError("bloodGroup has unsupported value %q", f.BloodGroup)
	}
	if f.MinAge != nil && *f.MinAge < 0 {
		return nil, newValidationError("minAge must not be negative")
	}
	if f.MaxAge != nil && *f.MaxAge < 0 {
		return nil, newValidationError("maxAge must not be negative")
	}
	if f.MinAge != nil && f.MaxAge != nil && *f.MinAge > *f.MaxAge {
		return nil, newValidationError("minAge must not exceed maxAge")
	}
	return s.patients.List(ctx, f)
}

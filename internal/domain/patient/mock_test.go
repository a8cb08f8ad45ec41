package patient

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

type mockRepo struct {
	mu       sync.Mutex
	patients []*Patient
	nextID   int64
	err      error // returned by every call when set
	calls    map[string]int
}

func newMockRepo() *mockRepo {
	return &mockRepo{calls: make(map[string]int)}
}

func (m *mockRepo) record(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
	return m.err
}

func (m *mockRepo) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockRepo) Count(ctx context.Context) (int64, error) {
	if err := m.record("Count"); err != nil {
		return 0, err
	}
	return int64(len(m.patients)), nil
}

func (m *mockRepo) Create(ctx context.Context, p *Patient) error {
	if err := m.record("Create"); err != nil {
		return err
	}
	for _, existing := range m.patients {
		if existing.PatientID == p.PatientID {
			return ErrDuplicatePatientID
		}
	}
	m.nextID++
	p.ID = m.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.patients = append(m.patients, &cp)
	return nil
}

func (m *mockRepo) CreateBatch(ctx context.Context, patients []*Patient) ([]*Patient, error) {
	if err := m.record("CreateBatch"); err != nil {
		return nil, err
	}
	for _, p := range patients {
		m.nextID++
		p.ID = m.nextID
		cp := *p
		m.patients = append(m.patients, &cp)
	}
	return patients, nil
}

func (m *mockRepo) ExistsByPatientID(ctx context.Context, patientID string) (bool, error) {
	if err := m.record("ExistsByPatientID"); err != nil {
		return false, err
	}
	_, err := m.find(func(p *Patient) bool { return p.PatientID == patientID })
	return err == nil, nil
}

func (m *mockRepo) find(match func(p *Patient) bool) (*Patient, error) {
	for _, p := range m.patients {
		if match(p) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) GetByPatientID(ctx context.Context, patientID string) (*Patient, error) {
	if err := m.record("GetByPatientID"); err != nil {
		return nil, err
	}
	return m.find(func(p *Patient) bool { return p.PatientID == patientID })
}

func (m *mockRepo) GetByEmail(ctx context.Context, email string) (*Patient, error) {
	if err := m.record("GetByEmail"); err != nil {
		return nil, err
	}
	return m.find(func(p *Patient) bool { return p.Email == email })
}

func (m *mockRepo) GetByPhoneNumber(ctx context.Context, phone string) (*Patient, error) {
	if err := m.record("GetByPhoneNumber"); err != nil {
		return nil, err
	}
	return m.find(func(p *Patient) bool { return p.PhoneNumber == phone })
}

func (m *mockRepo) GetByIdentificationNumber(ctx context.Context, number string) (*Patient, error) {
	if err := m.record("GetByIdentificationNumber"); err != nil {
		return nil, err
	}
	return m.find(func(p *Patient) bool { return p.IdentificationNumber == number })
}

func (m *mockRepo) SearchByName(ctx context.Context, name string) ([]*Patient, error) {
	if err := m.record("SearchByName"); err != nil {
		return nil, err
	}
	needle := strings.ToLower(name)
	out := []*Patient{}
	for _, p := range m.patients {
		if strings.Contains(strings.ToLower(p.FullName()), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepo) List(ctx context.Context, f Filter) ([]*Patient, error) {
	if err := m.record("List"); err != nil {
		return nil, err
	}
	out := []*Patient{}
	for _, p := range m.patients {
		if f.Gender != "" && p.Gender != f.Gender {
			continue
		}
		if f.City != "" && !strings.EqualFold(p.City, f.City) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

var errBoom = errors.New("boom")

func samplePatient(id, first, last string) *Patient {
	return &Patient{
		PatientID:   id,
		FirstName:   first,
		LastName:    last,
		DateOfBirth: NewDate(1985, time.March, 14),
		Gender:      GenderFemale,
		Email:       strings.ToLower(first) + "." + strings.ToLower(last) + "@example.com",
		PhoneNumber: "(555) 123-4567",
		City:        "Boston",
	}
}

package patient

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("patient not found")
	ErrDuplicatePatientID = errors.New("patient id already exists")
)

type Repository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, p *Patient) error
	// CreateBatch stores all records or none of them.
	CreateBatch(ctx context.Context, patients []*Patient) ([]*Patient, error)
	ExistsByPatientID(ctx context.Context, patientID string) (bool, error)
	GetByPatientID(ctx context.Context, patientID string) (*Patient, error)
	GetByEmail(ctx context.Context, email string) (*Patient, error)
	GetByPhoneNumber(ctx context.Context, phone string) (*Patient, error)
	GetByIdentificationNumber(ctx context.Context, number string) (*Patient, error)
	SearchByName(ctx context.Context, name string) ([]*Patient, error)
	List(ctx context.Context, f Filter) ([]*Patient, error)
}

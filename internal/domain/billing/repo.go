package billing

import (
	"context"

	"github.com/google/uuid"
)

type ClaimRepository interface {
	Create(ctx context.Context, cl *InsuranceClaim) error
	GetByID(ctx context.Context, id uuid.UUID) (*InsuranceClaim, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, limit, offset int) ([]*InsuranceClaim, int, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*InsuranceClaim, int, error)
}

type ReportRepository interface {
	Create(ctx context.Context, r *GovernmentReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*GovernmentReport, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, limit, offset int) ([]*GovernmentReport, int, error)
}

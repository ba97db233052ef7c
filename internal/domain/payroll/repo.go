package payroll

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	List(ctx context.Context, limit, offset int) ([]*Record, int, error)
	ListByStaff(ctx context.Context, staffID string, limit, offset int) ([]*Record, int, error)
	ListByMonth(ctx context.Context, month string, limit, offset int) ([]*Record, int, error)
}

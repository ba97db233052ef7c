package staffing

import (
	"context"

	"github.com/google/uuid"
)

type StaffRepository interface {
	Create(ctx context.Context, s *Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	GetByStaffID(ctx context.Context, staffID string) (*Staff, error)
	Update(ctx context.Context, s *Staff) error
	List(ctx context.Context, limit, offset int) ([]*Staff, int, error)
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Staff, int, error)
}

type ShiftRepository interface {
	Create(ctx context.Context, sh *Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*Shift, error)
	List(ctx context.Context, limit, offset int) ([]*Shift, int, error)
	ListByStaff(ctx context.Context, staffID string, limit, offset int) ([]*Shift, int, error)
}

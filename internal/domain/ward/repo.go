package ward

import (
	"context"

	"github.com/google/uuid"
)

type RoomRepository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	GetByCode(ctx context.Context, code string) (*Room, error)
	Update(ctx context.Context, r *Room) error
	List(ctx context.Context, limit, offset int) ([]*Room, int, error)

	// ReserveBed atomically takes one bed in the room, failing with
	// ErrRoomNotFound or ErrNoBedAvailable.
	ReserveBed(ctx context.Context, code string) error
	// ReleaseBed frees one bed, never dropping the count below zero.
	ReleaseBed(ctx context.Context, code string) error
	// OccupancySummary reports total and occupied beds across all rooms.
	OccupancySummary(ctx context.Context) (totalBeds, occupied int, err error)
}

type AdmissionRepository interface {
	Create(ctx context.Context, a *Admission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Admission, error)
	List(ctx context.Context, limit, offset int) ([]*Admission, int, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Admission, int, error)

	// Close stamps the end time on an open admission and returns its room
	// code. Fails with ErrAdmissionNotFound or ErrAlreadyDischarged.
	Close(ctx context.Context, id uuid.UUID) (roomCode string, err error)
}

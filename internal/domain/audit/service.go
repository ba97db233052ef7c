package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rsrujukan/hospital/internal/platform/auth"
)

// Recorder persists audit entries on behalf of the domain services. A failed
// write never fails the business operation; it is logged and dropped.
type Recorder struct {
	repo   Repository
	logger zerolog.Logger
}

func NewRecorder(repo Repository, logger zerolog.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record writes an audit entry. The actor is taken from the request context
// when present. Safe to call on a nil Recorder.
func (r *Recorder) Record(ctx context.Context, action, entity, entityID string, meta map[string]interface{}) {
	if r == nil {
		return
	}
	if meta == nil {
		meta = map[string]interface{}{}
	}
	e := &Entry{
		Action: action,
		Entity: entity,
		Meta:   meta,
	}
	if entityID != "" {
		e.EntityID = &entityID
	}
	if actor := auth.ActorFromContext(ctx); actor != "" {
		e.ActorID = &actor
	}
	if err := r.repo.Create(ctx, e); err != nil {
		r.logger.Error().Err(err).
			Str("action", action).
			Str("entity", entity).
			Str("entity_id", entityID).
			Msg("audit entry not persisted")
	}
}

// Service answers read queries over the audit log.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetEntry(ctx context.Context, id uuid.UUID) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListEntries(ctx context.Context, limit, offset int) ([]*Entry, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) SearchEntries(ctx context.Context, params map[string]string, limit, offset int) ([]*Entry, int, error) {
	return s.repo.Search(ctx, params, limit, offset)
}

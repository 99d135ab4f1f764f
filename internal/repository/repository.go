package repository

import (
	"context"
	"time"

	"github.com/felipevm/batepapo-api/internal/domain"
	"github.com/google/uuid"
)

// ParticipantRepository stores the room's live participant set.
type ParticipantRepository interface {
	// Insert adds a participant; the duplicate-name check and the insert are
	// atomic with respect to concurrent inserts of the same name.
	Insert(ctx context.Context, p *domain.Participant) error
	FindByName(ctx context.Context, name string) (*domain.Participant, error)
	List(ctx context.Context) ([]*domain.Participant, error)
	UpdateLastSeen(ctx context.Context, name string, seen time.Time) error
	// DeleteIfStale removes the named participant only if its last-seen time
	// is still strictly before olderThan, and reports whether it did. The
	// staleness re-check and the delete share one lock/statement, so a sweep
	// cannot evict over a concurrent heartbeat.
	DeleteIfStale(ctx context.Context, name string, olderThan time.Time) (bool, error)
}

// MessageRepository stores the room's ordered message log.
type MessageRepository interface {
	Insert(ctx context.Context, m *domain.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	Update(ctx context.Context, m *domain.Message) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns all messages in insertion order.
	List(ctx context.Context) ([]*domain.Message, error)
}

package service

import (
	"context"
	"time"

	"github.com/felipevm/batepapo-api/internal/domain"
	"github.com/google/uuid"
)

type PresenceInteractor interface {
	Join(ctx context.Context, name string) (*domain.Participant, error)
	Heartbeat(ctx context.Context, name string) error
	List(ctx context.Context) ([]*domain.Participant, error)
	Sweep(ctx context.Context, now time.Time, staleAfter time.Duration) ([]*domain.Participant, error)
}

type MessageInteractor interface {
	Send(ctx context.Context, from, to, text string, typ domain.MessageType) (*domain.Message, error)
	AppendStatus(ctx context.Context, name, text string) (*domain.Message, error)
	Edit(ctx context.Context, id uuid.UUID, requester, to, text string, typ domain.MessageType) error
	Remove(ctx context.Context, id uuid.UUID, requester string) error
	ListVisible(ctx context.Context, requester string, limit int) ([]*domain.Message, error)
}

package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/felipevm/batepapo-api/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrParticipantExists   = errors.New("participant already exists")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrMessageNotFound     = errors.New("message not found")
)

type InMemoryParticipantRepository struct {
	mu           sync.RWMutex
	participants map[string]*domain.Participant
}

func NewInMemoryParticipantRepository() *InMemoryParticipantRepository {
	return &InMemoryParticipantRepository{
		participants: make(map[string]*domain.Participant),
	}
}

func (r *InMemoryParticipantRepository) Insert(ctx context.Context, p *domain.Participant) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.participants[p.Name]; ok {
		return ErrParticipantExists
	}

	clone := *p
	r.participants[p.Name] = &clone
	return nil
}

func (r *InMemoryParticipantRepository) FindByName(ctx context.Context, name string) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.participants[name]
	if !ok {
		return nil, ErrParticipantNotFound
	}

	clone := *p
	return &clone, nil
}

func (r *InMemoryParticipantRepository) List(ctx context.Context) ([]*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		clone := *p
		result = append(result, &clone)
	}
	return result, nil
}

func (r *InMemoryParticipantRepository) UpdateLastSeen(ctx context.Context, name string, seen time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[name]
	if !ok {
		return ErrParticipantNotFound
	}

	p.LastSeen = seen
	return nil
}

func (r *InMemoryParticipantRepository) DeleteIfStale(ctx context.Context, name string, olderThan time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[name]
	if !ok {
		return false, nil
	}
	if !p.LastSeen.Before(olderThan) {
		return false, nil
	}

	delete(r.participants, name)
	return true, nil
}

type InMemoryMessageRepository struct {
	mu       sync.RWMutex
	messages []*domain.Message
	byID     map[uuid.UUID]*domain.Message
}

func NewInMemoryMessageRepository() *InMemoryMessageRepository {
	return &InMemoryMessageRepository{
		byID: make(map[uuid.UUID]*domain.Message),
	}
}

func (r *InMemoryMessageRepository) Insert(ctx context.Context, m *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *m
	r.messages = append(r.messages, &clone)
	r.byID[m.ID] = &clone
	return nil
}

func (r *InMemoryMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return nil, ErrMessageNotFound
	}

	clone := *m
	return &clone, nil
}

func (r *InMemoryMessageRepository) Update(ctx context.Context, m *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[m.ID]
	if !ok {
		return ErrMessageNotFound
	}

	// From and Time are immutable; only the patchable fields move.
	stored.To = m.To
	stored.Text = m.Text
	stored.Type = m.Type
	return nil
}

func (r *InMemoryMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrMessageNotFound
	}

	delete(r.byID, id)
	for i, m := range r.messages {
		if m.ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			break
		}
	}
	return nil
}

func (r *InMemoryMessageRepository) List(ctx context.Context) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Message, 0, len(r.messages))
	for _, m := range r.messages {
		clone := *m
		result = append(result, &clone)
	}
	return result, nil
}

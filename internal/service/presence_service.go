package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felipevm/batepapo-api/internal/domain"
	"github.com/felipevm/batepapo-api/internal/repository"
	"github.com/felipevm/batepapo-api/lib/logger/sl"
)

var (
	ErrNameTaken           = errors.New("participant name already taken")
	ErrParticipantNotFound = errors.New("participant not found")
)

// PresenceService owns participant identity and liveness. It never touches
// the message log; callers pair its results with synthetic status messages.
type PresenceService struct {
	participants repository.ParticipantRepository
	log          *slog.Logger
}

func NewPresenceService(participants repository.ParticipantRepository, log *slog.Logger) *PresenceService {
	if log == nil {
		log = slog.Default()
	}
	return &PresenceService{participants: participants, log: log}
}

func (s *PresenceService) Join(ctx context.Context, name string) (*domain.Participant, error) {
	const op = "service.presence.join"
	log := s.log.With(slog.String("op", op), slog.String("name", name))

	p := domain.NewParticipant(name, time.Now())
	if err := s.participants.Insert(ctx, p); err != nil {
		if errors.Is(err, repository.ErrParticipantExists) {
			log.Info("join rejected, name taken")
			return nil, ErrNameTaken
		}
		log.Error("join failed", sl.Err(err))
		return nil, err
	}

	log.Info("participant joined")
	return p, nil
}

func (s *PresenceService) Heartbeat(ctx context.Context, name string) error {
	if err := s.participants.UpdateLastSeen(ctx, name, time.Now()); err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		s.log.Error("heartbeat failed", slog.String("name", name), sl.Err(err))
		return err
	}
	return nil
}

func (s *PresenceService) List(ctx context.Context) ([]*domain.Participant, error) {
	return s.participants.List(ctx)
}

// Sweep evicts every participant whose last heartbeat is strictly older than
// staleAfter and returns the evicted set. A failure on one participant is
// logged and does not block evicting the others; the participant stays for
// the next sweep to retry.
func (s *PresenceService) Sweep(ctx context.Context, now time.Time, staleAfter time.Duration) ([]*domain.Participant, error) {
	const op = "service.presence.sweep"
	log := s.log.With(slog.String("op", op))

	all, err := s.participants.List(ctx)
	if err != nil {
		log.Error("listing participants failed", sl.Err(err))
		return nil, err
	}

	cutoff := now.Add(-staleAfter)
	var evicted []*domain.Participant
	for _, p := range all {
		if !p.Stale(now, staleAfter) {
			continue
		}

		// Re-checked under the repository's own boundary so a heartbeat that
		// raced this sweep wins.
		deleted, err := s.participants.DeleteIfStale(ctx, p.Name, cutoff)
		if err != nil {
			log.Error("eviction failed", slog.String("name", p.Name), sl.Err(err))
			continue
		}
		if !deleted {
			continue
		}

		log.Info("participant evicted", slog.String("name", p.Name))
		evicted = append(evicted, p)
	}

	return evicted, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/felipevm/batepapo-api/internal/domain"
	"github.com/felipevm/batepapo-api/internal/repository"
	"github.com/felipevm/batepapo-api/lib/logger/sl"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	ErrUnknownSender   = errors.New("sender is not in the room")
	ErrMessageNotFound = errors.New("message not found")
	ErrNotMessageOwner = errors.New("requester does not own the message")
)

// MessageService owns the ordered message log and enforces ownership and
// visibility on every read, edit and delete.
type MessageService struct {
	messages     repository.MessageRepository
	participants repository.ParticipantRepository
	log          *slog.Logger
}

func NewMessageService(messages repository.MessageRepository, participants repository.ParticipantRepository, log *slog.Logger) *MessageService {
	if log == nil {
		log = slog.Default()
	}
	return &MessageService{
		messages:     messages,
		participants: participants,
		log:          log,
	}
}

func (s *MessageService) Send(ctx context.Context, from, to, text string, typ domain.MessageType) (*domain.Message, error) {
	const op = "service.message.send"
	log := s.log.With(slog.String("op", op), slog.String("from", from))

	if _, err := s.participants.FindByName(ctx, from); err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return nil, ErrUnknownSender
		}
		log.Error("sender lookup failed", sl.Err(err))
		return nil, err
	}

	msg := domain.NewMessage(from, to, text, typ, time.Now())
	if err := s.messages.Insert(ctx, msg); err != nil {
		log.Error("insert failed", sl.Err(err))
		return nil, err
	}
	return msg, nil
}

// AppendStatus records a synthetic join/leave notice for name. It is the
// side channel the presence callers use; no sender check applies because the
// participant may already be gone by the time its leave notice lands.
func (s *MessageService) AppendStatus(ctx context.Context, name, text string) (*domain.Message, error) {
	msg := domain.NewStatusMessage(name, text, time.Now())
	if err := s.messages.Insert(ctx, msg); err != nil {
		s.log.Error("status insert failed", slog.String("name", name), sl.Err(err))
		return nil, err
	}
	return msg, nil
}

func (s *MessageService) Edit(ctx context.Context, id uuid.UUID, requester, to, text string, typ domain.MessageType) error {
	msg, err := s.ownedMessage(ctx, id, requester)
	if err != nil {
		return err
	}

	msg.To = to
	msg.Text = text
	msg.Type = typ
	if err := s.messages.Update(ctx, msg); err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return ErrMessageNotFound
		}
		s.log.Error("update failed", slog.String("id", id.String()), sl.Err(err))
		return err
	}
	return nil
}

func (s *MessageService) Remove(ctx context.Context, id uuid.UUID, requester string) error {
	if _, err := s.ownedMessage(ctx, id, requester); err != nil {
		return err
	}

	if err := s.messages.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return ErrMessageNotFound
		}
		s.log.Error("delete failed", slog.String("id", id.String()), sl.Err(err))
		return err
	}
	return nil
}

// ListVisible returns the messages requester may read, in insertion order.
// A positive limit keeps only that many of the most recent visible entries;
// anything else returns them all. Filtering happens before truncation, so
// the limit bounds visible messages, not the raw log.
func (s *MessageService) ListVisible(ctx context.Context, requester string, limit int) ([]*domain.Message, error) {
	all, err := s.messages.List(ctx)
	if err != nil {
		s.log.Error("listing messages failed", sl.Err(err))
		return nil, err
	}

	visible := lo.Filter(all, func(m *domain.Message, _ int) bool {
		return m.VisibleTo(requester)
	})

	if limit > 0 && len(visible) > limit {
		visible = visible[len(visible)-limit:]
	}
	return visible, nil
}

func (s *MessageService) ownedMessage(ctx context.Context, id uuid.UUID, requester string) (*domain.Message, error) {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, ErrMessageNotFound
		}
		s.log.Error("message lookup failed", slog.String("id", id.String()), sl.Err(err))
		return nil, err
	}
	if msg.From != requester {
		return nil, ErrNotMessageOwner
	}
	return msg, nil
}

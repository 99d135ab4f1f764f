package converter

import (
	"github.com/felipevm/batepapo-api/internal/domain"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type MessageResponse struct {
	ID   uuid.UUID `json:"id"`
	From string    `json:"from"`
	To   string    `json:"to"`
	Text string    `json:"text"`
	Type string    `json:"type"`
	Time string    `json:"time"`
}

type ParticipantResponse struct {
	Name     string `json:"name"`
	LastSeen int64  `json:"last_seen"`
}

func MessageToApi(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:   m.ID,
		From: m.From,
		To:   m.To,
		Text: m.Text,
		Type: string(m.Type),
		Time: m.Time,
	}
}

func MessagesToApi(messages []*domain.Message) []MessageResponse {
	return lo.Map(messages, func(m *domain.Message, _ int) MessageResponse {
		return MessageToApi(m)
	})
}

func ParticipantToApi(p *domain.Participant) ParticipantResponse {
	return ParticipantResponse{
		Name:     p.Name,
		LastSeen: p.LastSeen.UnixMilli(),
	}
}

func ParticipantsToApi(participants []*domain.Participant) []ParticipantResponse {
	return lo.Map(participants, func(p *domain.Participant, _ int) ParticipantResponse {
		return ParticipantToApi(p)
	})
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/felipevm/batepapo-api/internal/domain"
	"github.com/felipevm/batepapo-api/internal/repository/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresParticipantRepository struct {
	db *gorm.DB
}

func NewPostgresParticipantRepository(db *gorm.DB) *PostgresParticipantRepository {
	return &PostgresParticipantRepository{db: db}
}

func (r *PostgresParticipantRepository) Insert(ctx context.Context, p *domain.Participant) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p == nil {
		return errors.New("participant is nil")
	}

	if err := r.db.WithContext(ctx).Create(toModelParticipant(p)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrParticipantExists
		}
		return err
	}
	return nil
}

func (r *PostgresParticipantRepository) FindByName(ctx context.Context, name string) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var p model.Participant
	err := r.db.WithContext(ctx).First(&p, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	return toDomainParticipant(&p), nil
}

func (r *PostgresParticipantRepository) List(ctx context.Context) ([]*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var participants []model.Participant
	if err := r.db.WithContext(ctx).Find(&participants).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.Participant, 0, len(participants))
	for i := range participants {
		result = append(result, toDomainParticipant(&participants[i]))
	}
	return result, nil
}

func (r *PostgresParticipantRepository) UpdateLastSeen(ctx context.Context, name string, seen time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Model(&model.Participant{}).
		Where("name = ?", name).
		Update("last_seen", seen)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrParticipantNotFound
	}
	return nil
}

func (r *PostgresParticipantRepository) DeleteIfStale(ctx context.Context, name string, olderThan time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	// Single conditional statement: the staleness re-check and the delete
	// cannot interleave with a concurrent last_seen refresh.
	res := r.db.WithContext(ctx).
		Where("name = ? AND last_seen < ?", name, olderThan).
		Delete(&model.Participant{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Insert(ctx context.Context, m *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m == nil {
		return errors.New("message is nil")
	}

	return r.db.WithContext(ctx).Create(toModelMessage(m)).Error
}

func (r *PostgresMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var m model.Message
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	return toDomainMessage(&m), nil
}

func (r *PostgresMessageRepository) Update(ctx context.Context, m *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m == nil {
		return errors.New("message is nil")
	}

	// sender and time stay untouched: only the patchable columns move.
	res := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"recipient": m.To,
			"text":      m.Text,
			"type":      string(m.Type),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *PostgresMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Delete(&model.Message{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (r *PostgresMessageRepository) List(ctx context.Context) ([]*domain.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var messages []model.Message
	if err := r.db.WithContext(ctx).Order("seq asc").Find(&messages).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.Message, 0, len(messages))
	for i := range messages {
		result = append(result, toDomainMessage(&messages[i]))
	}
	return result, nil
}

func toModelParticipant(p *domain.Participant) *model.Participant {
	return &model.Participant{
		Name:     p.Name,
		LastSeen: p.LastSeen,
	}
}

func toDomainParticipant(p *model.Participant) *domain.Participant {
	return &domain.Participant{
		Name:     p.Name,
		LastSeen: p.LastSeen,
	}
}

func toModelMessage(m *domain.Message) *model.Message {
	return &model.Message{
		ID:   m.ID,
		From: m.From,
		To:   m.To,
		Text: m.Text,
		Type: string(m.Type),
		Time: m.Time,
	}
}

func toDomainMessage(m *model.Message) *domain.Message {
	return &domain.Message{
		ID:   m.ID,
		From: m.From,
		To:   m.To,
		Text: m.Text,
		Type: domain.MessageType(m.Type),
		Time: m.Time,
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type Participant struct {
	Name      string    `gorm:"size:255;primaryKey"`
	LastSeen  time.Time `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Message struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement"`
	ID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	From      string    `gorm:"column:sender;size:255;not null"`
	To        string    `gorm:"column:recipient;size:255;not null"`
	Text      string    `gorm:"type:text;not null"`
	Type      string    `gorm:"size:32;not null"`
	Time      string    `gorm:"size:8;not null"`
	CreatedAt time.Time
}

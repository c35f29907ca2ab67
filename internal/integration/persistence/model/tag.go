package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/domain/entity"
)

// TagModel represents the tags table in the database.
type TagModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_tags_user_name"`
	Name      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_tags_user_name"`
	Color     string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the TagModel.
func (TagModel) TableName() string {
	return "tags"
}

// ToEntity converts a TagModel to a domain Tag entity.
func (m *TagModel) ToEntity() *entity.Tag {
	return &entity.Tag{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Color:     entity.TagColor(m.Color),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// TagFromEntity creates a TagModel from a domain Tag entity.
func TagFromEntity(tag *entity.Tag) *TagModel {
	return &TagModel{
		ID:        tag.ID,
		UserID:    tag.UserID,
		Name:      tag.Name,
		Color:     string(tag.Color),
		CreatedAt: tag.CreatedAt,
		UpdatedAt: tag.UpdatedAt,
	}
}

// TransactionTagModel represents the transaction_tags association table.
// The (transaction, tag) pair is the primary key.
type TransactionTagModel struct {
	TransactionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID         uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	AddedByID     uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt     time.Time `gorm:"not null"`

	Tag *TagModel `gorm:"foreignKey:TagID;references:ID"`
}

// TableName returns the table name for the TransactionTagModel.
func (TransactionTagModel) TableName() string {
	return "transaction_tags"
}

// ToEntity converts a TransactionTagModel to a domain TransactionTag entity.
func (m *TransactionTagModel) ToEntity() *entity.TransactionTag {
	return &entity.TransactionTag{
		TransactionID: m.TransactionID,
		TagID:         m.TagID,
		AddedByID:     m.AddedByID,
		CreatedAt:     m.CreatedAt,
	}
}

// TransactionTagFromEntity creates a TransactionTagModel from a domain entity.
func TransactionTagFromEntity(link *entity.TransactionTag) *TransactionTagModel {
	createdAt := link.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return &TransactionTagModel{
		TransactionID: link.TransactionID,
		TagID:         link.TagID,
		AddedByID:     link.AddedByID,
		CreatedAt:     createdAt,
	}
}

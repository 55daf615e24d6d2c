package transcription

import (
	"context"
	"errors"
	"time"

	"github.com/scribeworks/transcriber-api/internal/models"
	"gorm.io/gorm"
)

// repository implements the Repository interface using GORM
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new transcription repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create persists a new transcription record
func (r *repository) Create(ctx context.Context, record *models.Transcription) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}

	result := r.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// ListByUser returns all records owned by a user, newest first
func (r *repository) ListByUser(ctx context.Context, userID uint) ([]models.Transcription, error) {
	var records []models.Transcription

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// CountByUserSince counts a user's records created at or after the cutoff
func (r *repository) CountByUserSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	var count int64

	result := r.db.WithContext(ctx).
		Model(&models.Transcription{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

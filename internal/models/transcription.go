package models

import (
	"time"
)

// Transcription represents one completed transcription run for a user.
// Records are insert-only: there is no update or delete path once a
// record has been persisted.
type Transcription struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	UserID            uint      `gorm:"index;not null" json:"user_id"`
	OriginalFilename  string    `json:"original_filename"`
	FullTranscription string    `gorm:"type:text" json:"full_transcription"`
	AIAnalysis        string    `gorm:"type:text" json:"ai_analysis"`
	Provider          string    `json:"provider"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for Transcription
func (Transcription) TableName() string {
	return "transcription_records"
}

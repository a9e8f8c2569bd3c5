package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/smartedu-api/internal/models"
)

// ChatLogRepository appends and reads the chat audit trail.
type ChatLogRepository struct {
	db *sqlx.DB
}

// NewChatLogRepository constructs a ChatLogRepository.
func NewChatLogRepository(db *sqlx.DB) *ChatLogRepository {
	return &ChatLogRepository{db: db}
}

// Create appends an entry and sets its identifier.
func (r *ChatLogRepository) Create(ctx context.Context, entry *models.ChatLogEntry) error {
	const query = `INSERT INTO chat_messages (user_id, message, response, intent, confidence, sentiment_polarity, sentiment_label, has_empathetic_prefix, timestamp)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		entry.UserID, entry.Message, entry.Response, entry.Intent, entry.Confidence,
		entry.SentimentPolarity, entry.SentimentLabel, entry.HasEmpatheticPrefix, entry.Timestamp,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("create chat log: %w", err)
	}
	return nil
}

// ListByUser returns the most recent entries of a user, newest first.
func (r *ChatLogRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]models.ChatLogEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT id, user_id, message, response, intent, confidence, sentiment_polarity, sentiment_label, has_empathetic_prefix, timestamp
        FROM chat_messages WHERE user_id = $1 ORDER BY timestamp DESC, id DESC LIMIT %d`, limit)
	var entries []models.ChatLogEntry
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list chat log: %w", err)
	}
	return entries, nil
}

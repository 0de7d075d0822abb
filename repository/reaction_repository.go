package repository

import (
	"context"

	"github.com/akinalp/classhub/models"
)

// ReactionRepository, emoji tepki veritabanı işlemleri için interface.
//
// Toggle dönüşü: true = eklendi, false = kaldırıldı.
type ReactionRepository interface {
	Toggle(ctx context.Context, messageID, userID, emoji string) (bool, error)
	GetByMessageID(ctx context.Context, messageID string) ([]models.ReactionGroup, error)
	GetByMessageIDs(ctx context.Context, messageIDs []string) (map[string][]models.ReactionGroup, error)
}

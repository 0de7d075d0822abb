package repository

import (
	"context"

	"github.com/akinalp/classhub/models"
)

// DraftRepository, mesaj taslağı veritabanı işlemleri için interface.
//
// Key: (user, channel, thread). threadID = '' kanal composer'ı demektir.
// Get'in ikinci dönüşü: taslak var mı? Yokluk hata değildir.
type DraftRepository interface {
	Upsert(ctx context.Context, draft *models.Draft) error
	Get(ctx context.Context, userID, channelID, threadID string) (*models.Draft, bool, error)
	GetAllForUser(ctx context.Context, userID string) ([]models.Draft, error)
	Delete(ctx context.Context, userID, channelID, threadID string) error
}

package repository

import (
	"context"
	"time"

	"github.com/akinalp/classhub/models"
)

// MessageRepository, mesaj veritabanı işlemleri için interface.
//
// GetByChannelID cursor-based pagination kullanır: beforeID'den önceki
// mesajları getirir (boşsa en yenilerden başlar) — offset-based'deki
// sayfa kayması problemi yaşanmaz.
//
// GetRecent ve GetSince unread reconciliation'ın backfill sorgularıdır:
// her ikisi de en-yeniden-eskiye sıralı ve limit'lidir. Limit'e takılan
// sonuç kasıtlı bir yaklaşıklıktır — sınırsız scan yapılmaz.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	GetByChannelID(ctx context.Context, channelID string, beforeID string, limit int) ([]models.Message, error)
	// GetThread, kök mesajı ve TÜM alt yanıtlarını döner (recursive CTE),
	// created_at sırasıyla. ThreadTree kurmak için kullanılır.
	GetThread(ctx context.Context, rootID string) ([]models.Message, error)
	// GetRecent, kanalın en yeni limit mesajını döner (cursor yokken backfill).
	GetRecent(ctx context.Context, channelID string, limit int) ([]models.Message, error)
	// GetSince, after'dan kesinlikle SONRA oluşturulan mesajları döner,
	// en yeniden eskiye, en fazla limit adet.
	GetSince(ctx context.Context, channelID string, after time.Time, limit int) ([]models.Message, error)
	Update(ctx context.Context, message *models.Message) error
	Delete(ctx context.Context, id string) error
}

package repository

import (
	"context"
	"time"
)

// ReadCursorRepository, okuma imleci (watermark) veritabanı işlemleri için interface.
//
// Upsert: (user, channel) imlecini günceller, yoksa oluşturur (lazy create).
// Last-write-wins: eşzamanlı çağrılarda merge yapılmaz — DB'nin doğal yazma
// sırası kazanır. Satır bazlı upsert diğer kullanıcı/kanal imleçlerine
// dokunmaz (partial update semantiği).
//
// Get ikinci dönüş değeri: imleç var mı? Yokluk hata değildir —
// "hiç okunmamış" anlamına gelir.
type ReadCursorRepository interface {
	Upsert(ctx context.Context, userID, channelID string, lastReadAt time.Time) error
	Get(ctx context.Context, userID, channelID string) (time.Time, bool, error)
	// GetAllForUser, kullanıcının tüm imleçlerini channelID → zaman map'i
	// olarak döner. Reconciliation başında tek sorguyla çekilir.
	GetAllForUser(ctx context.Context, userID string) (map[string]time.Time, error)
}

package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/repository"
	"github.com/akinalp/classhub/ws"
)

// Unread reconciliation sabitleri.
const (
	// backfillLimitNoCursor: imleç olmayan (hiç okunmamış) kanalda
	// taranan en yeni mesaj sayısı. Sayı bu limitte doyarsa Approximate=true.
	backfillLimitNoCursor = 20

	// backfillLimitCursor: imleçli kanalda imleçten sonrası için tarama limiti.
	backfillLimitCursor = 50

	// reconcileBatchWidth: aynı anda sorgulanan kanal sayısı.
	// Tüm kanalları tek seferde sorgulamak açılışta DB'yi boğar.
	reconcileBatchWidth = 5

	// interBatchDelay: iki batch arasındaki bekleme süresi.
	interBatchDelay = 100 * time.Millisecond
)

// UnreadService, okunmamış mesaj sayaçlarını ve okuma imleçlerini yönetir.
//
// İki katman vardır:
//  1. Kalıcı katman: channel_reads tablosundaki imleçler (watermark).
//  2. Bellek katmanı: kullanıcı başına kanal → sayaç snapshot'ı.
//     Reconciliation snapshot'ı sıfırdan kurar; canlı mesajlar
//     NoteIncomingMessage ile artırır; MarkChannelAsRead sıfırlar.
type UnreadService interface {
	// ReconcileUnreadCounts, kullanıcının TÜM kanalları için sayaçları
	// batch'li backfill ile yeniden kurar ve tam listeyi döner.
	// Dönen listede kullanıcının her kanalı için bir kayıt vardır —
	// tek bir kanalın sorgusu patlasa bile (o kanal 0 sayılır).
	ReconcileUnreadCounts(ctx context.Context, userID string) ([]models.UnreadInfo, error)

	// MarkChannelAsRead, kanalı okundu işaretler: snapshot anında sıfırlanır
	// (optimistic), imleç DB'ye yazılır. Yazma başarısız olursa snapshot
	// eski değerine döndürülür ve hata döner.
	MarkChannelAsRead(ctx context.Context, userID, channelID string) error

	// NoteIncomingMessage, yeni bir mesaj geldiğinde üyelerin sayaçlarını
	// artırır. Yazarın kendi sayacı ASLA artmaz.
	NoteIncomingMessage(channelID, authorID string, memberIDs []string)

	// GetUnreadCount, snapshot'tan tek kanalın sayacını okur.
	GetUnreadCount(userID, channelID string) int

	// HasUnreadMessages, kanalda okunmamış mesaj var mı?
	HasUnreadMessages(userID, channelID string) bool

	// GetUnreadSummary, snapshot'taki tüm kanal sayaçlarını döner
	// (reconciliation tetiklemeden).
	GetUnreadSummary(userID string) []models.UnreadInfo
}

type unreadService struct {
	channelRepo repository.ChannelRepository
	messageRepo repository.MessageRepository
	cursorRepo  repository.ReadCursorRepository
	hub         ws.EventPublisher

	// counts: userID → channelID → UnreadInfo snapshot'ı.
	// RWMutex: badge okumaları sık, reconciliation seyrek.
	mu     sync.RWMutex
	counts map[string]map[string]models.UnreadInfo
}

// NewUnreadService, constructor.
func NewUnreadService(
	channelRepo repository.ChannelRepository,
	messageRepo repository.MessageRepository,
	cursorRepo repository.ReadCursorRepository,
	hub ws.EventPublisher,
) UnreadService {
	return &unreadService{
		channelRepo: channelRepo,
		messageRepo: messageRepo,
		cursorRepo:  cursorRepo,
		hub:         hub,
		counts:      make(map[string]map[string]models.UnreadInfo),
	}
}

// ReconcileUnreadCounts, açılışta veya yeniden bağlanmada çağrılır.
//
// Akış:
//  1. Kullanıcının kanalları ve tüm imleçleri (tek sorgu) çekilir.
//  2. Kanallar reconcileBatchWidth'lik gruplara bölünür.
//  3. Her grup paralel sorgulanır (WaitGroup join), gruplar arasında
//     interBatchDelay beklenir — açılış anındaki sorgu fırtınası yayılır.
//  4. Tek kanal hatası o kanalı 0 yapar, diğerlerini ETKİLEMEZ.
//  5. Sonuç snapshot'a atomik yazılır.
func (s *unreadService) ReconcileUnreadCounts(ctx context.Context, userID string) ([]models.UnreadInfo, error) {
	channels, err := s.channelRepo.GetAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cursors, err := s.cursorRepo.GetAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]models.UnreadInfo, len(channels))

	for start := 0; start < len(channels); start += reconcileBatchWidth {
		end := start + reconcileBatchWidth
		if end > len(channels) {
			end = len(channels)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int, ch models.Channel) {
				defer wg.Done()
				infos[idx] = s.backfillChannel(ctx, userID, ch.ID, cursors)
			}(i, channels[i])
		}
		wg.Wait()

		// Son batch'ten sonra bekleme yok.
		if end < len(channels) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(interBatchDelay):
			}
		}
	}

	// Snapshot'ı tek seferde değiştir.
	snapshot := make(map[string]models.UnreadInfo, len(infos))
	for _, info := range infos {
		snapshot[info.ChannelID] = info
	}

	s.mu.Lock()
	s.counts[userID] = snapshot
	s.mu.Unlock()

	return infos, nil
}

// backfillChannel, tek bir kanalın sayacını hesaplar. Hata durumunda
// 0 döner — reconciliation'ın bütününü düşürmez.
func (s *unreadService) backfillChannel(ctx context.Context, userID, channelID string, cursors map[string]time.Time) models.UnreadInfo {
	info := models.UnreadInfo{ChannelID: channelID}

	var messages []models.Message
	var limit int
	var err error

	cursor, hasCursor := cursors[channelID]
	if hasCursor {
		limit = backfillLimitCursor
		messages, err = s.messageRepo.GetSince(ctx, channelID, cursor, limit)
	} else {
		limit = backfillLimitNoCursor
		messages, err = s.messageRepo.GetRecent(ctx, channelID, limit)
	}

	if err != nil {
		log.Printf("[unread] backfill failed for channel=%s user=%s: %v", channelID, userID, err)
		return info
	}

	// Kendi yazdığın mesaj asla okunmamış sayılmaz.
	count := 0
	for _, m := range messages {
		if m.UserID != userID {
			count++
		}
	}

	info.UnreadCount = count
	// Sorgu limit'e doyduysa daha eski okunmamışlar olabilir —
	// sayı alt sınırdır.
	info.Approximate = len(messages) == limit

	return info
}

// MarkChannelAsRead, kanalı okundu işaretler.
//
// Optimistic update: badge'in anında sönmesi için snapshot önce
// sıfırlanır, imleç sonra yazılır. Yazma patlarsa eski değer geri
// konur ve client'a hata döner — kalıcı durum değişmemiştir.
func (s *unreadService) MarkChannelAsRead(ctx context.Context, userID, channelID string) error {
	now := time.Now().UTC()

	s.mu.Lock()
	previous, hadPrevious := s.counts[userID][channelID]
	if s.counts[userID] == nil {
		s.counts[userID] = make(map[string]models.UnreadInfo)
	}
	s.counts[userID][channelID] = models.UnreadInfo{ChannelID: channelID}
	s.mu.Unlock()

	if err := s.cursorRepo.Upsert(ctx, userID, channelID, now); err != nil {
		// Revert: optimistic sıfırlama geri alınır.
		s.mu.Lock()
		if hadPrevious {
			s.counts[userID][channelID] = previous
		} else {
			delete(s.counts[userID], channelID)
		}
		s.mu.Unlock()
		return err
	}

	// Kullanıcının diğer tab'larına bildir — badge her yerde aynı anda söner.
	s.hub.BroadcastToUser(userID, ws.Event{
		Op: ws.OpReadCursorUpdate,
		Data: ws.ReadCursorData{
			ChannelID:  channelID,
			LastReadAt: now.Format(time.RFC3339),
		},
	})

	return nil
}

// NoteIncomingMessage, canlı mesaj akışında sayaçları artırır.
// Reconciliation'ı beklemeden badge'lerin güncel kalmasını sağlar.
func (s *unreadService) NoteIncomingMessage(channelID, authorID string, memberIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, memberID := range memberIDs {
		if memberID == authorID {
			continue // kendi mesajın okunmamış olamaz
		}
		userCounts, ok := s.counts[memberID]
		if !ok {
			// Snapshot'ı olmayan kullanıcı henüz reconcile olmadı —
			// açılışta zaten doğru sayıyı alacak.
			continue
		}
		info := userCounts[channelID]
		info.ChannelID = channelID
		info.UnreadCount++
		userCounts[channelID] = info
	}
}

// GetUnreadCount, snapshot'tan okur. Snapshot yoksa 0.
func (s *unreadService) GetUnreadCount(userID, channelID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[userID][channelID].UnreadCount
}

// HasUnreadMessages, kanalda okunmamış var mı?
func (s *unreadService) HasUnreadMessages(userID, channelID string) bool {
	return s.GetUnreadCount(userID, channelID) > 0
}

// GetUnreadSummary, mevcut snapshot'ı listeler.
func (s *unreadService) GetUnreadSummary(userID string) []models.UnreadInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userCounts := s.counts[userID]
	infos := make([]models.UnreadInfo, 0, len(userCounts))
	for _, info := range userCounts {
		infos = append(infos, info)
	}
	return infos
}

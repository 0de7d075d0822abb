// Package main — WebSocket Hub callback wire-up.
//
// registerHubCallbacks, Hub'ın presence callback'lerini ayarlar ve
// ready event payload'ını üreten readyProvider'ı tanımlar.
//
// Bu callback'ler neden burada (main package'da)?
// Hub ws paketinde yaşıyor, ama DB güncellemesi service/repo katmanında.
// Hub'ın service'lere bağımlı olmasını istemiyoruz (Dependency Inversion).
// main package wire-up noktasıdır — tüm katmanları birbirine bağlar.
//
// Callback'ler Hub.Run() goroutine'inden ayrı goroutine'de çalışır
// (addClient/removeClient içinde `go callback()` ile çağrılır),
// böylece Hub'ın mutex Lock'u ile BroadcastToAll'ın RLock'u çakışmaz.
package main

import (
	"context"
	"log"
	"time"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/repository"
	"github.com/akinalp/classhub/services"
	"github.com/akinalp/classhub/ws"
)

// registerHubCallbacks, tüm Hub callback'lerini register eder.
//
// - İlk bağlantı → DB'de online + herkese presence broadcast
// - Son bağlantı kopması → DB'de offline + broadcast
// - Manuel presence_update (online/idle/offline) → DB persist + broadcast
func registerHubCallbacks(hub *ws.Hub, userRepo repository.UserRepository) {
	hub.OnUserFirstConnect(func(userID string) {
		if err := userRepo.UpdateStatus(context.Background(), userID, models.UserStatusOnline); err != nil {
			log.Printf("[presence] failed to set online for user %s: %v", userID, err)
			return
		}
		hub.BroadcastToAll(ws.Event{
			Op: ws.OpPresence,
			Data: ws.PresenceData{
				UserID: userID,
				Status: string(models.UserStatusOnline),
			},
		})
		log.Printf("[presence] user %s is now online", userID)
	})

	hub.OnUserFullyDisconnected(func(userID string) {
		if err := userRepo.UpdateStatus(context.Background(), userID, models.UserStatusOffline); err != nil {
			log.Printf("[presence] failed to set offline for user %s: %v", userID, err)
			return
		}
		hub.BroadcastToAll(ws.Event{
			Op: ws.OpPresence,
			Data: ws.PresenceData{
				UserID: userID,
				Status: string(models.UserStatusOffline),
			},
		})
		log.Printf("[presence] user %s is now offline", userID)
	})

	hub.SetPresenceCallback(func(userID, status string) {
		if err := userRepo.UpdateStatus(context.Background(), userID, models.UserStatus(status)); err != nil {
			log.Printf("[presence] failed to set %s for user %s: %v", status, userID, err)
			return
		}
		hub.BroadcastToAll(ws.Event{
			Op: ws.OpPresence,
			Data: ws.PresenceData{
				UserID: userID,
				Status: status,
			},
		})
		log.Printf("[presence] user %s is now %s (manual)", userID, status)
	})
}

// readyTimeout, ready payload'ı için unread reconciliation'a tanınan süre.
// Batch'ler arası bekleme yüzünden çok kanallı kullanıcılarda birkaç saniye
// sürebilir; WebSocket açılışını süresiz bloklamamak için sınırlandırılır.
const readyTimeout = 10 * time.Second

// readyProvider, ws.ReadyProvider implementasyonu.
//
// WebSocket bağlantısı açıldığında client'a gönderilen ready event'inin
// içeriğini toplar: unread özetleri (reconciliation), kayıtlı taslaklar
// ve şu an online olan kullanıcılar.
type readyProvider struct {
	unreadSvc services.UnreadService
	draftSvc  services.DraftService
	hub       *ws.Hub
}

func newReadyProvider(unreadSvc services.UnreadService, draftSvc services.DraftService, hub *ws.Hub) *readyProvider {
	return &readyProvider{
		unreadSvc: unreadSvc,
		draftSvc:  draftSvc,
		hub:       hub,
	}
}

// BuildReadyData, ready event payload'ını üretir.
// Unread veya draft toplama hatası bağlantıyı DÜŞÜRMEZ: eksik alan boş
// gönderilir, client sonradan REST üzerinden tamamlayabilir.
func (p *readyProvider) BuildReadyData(userID string) ws.ReadyData {
	ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
	defer cancel()

	data := ws.ReadyData{
		OnlineUserIDs: p.hub.GetOnlineUserIDs(),
		Unreads:       []ws.ReadyUnread{},
		Drafts:        []ws.ReadyDraftItem{},
	}

	infos, err := p.unreadSvc.ReconcileUnreadCounts(ctx, userID)
	if err != nil {
		log.Printf("[ready] unread reconciliation failed for user %s: %v", userID, err)
	} else {
		for _, info := range infos {
			data.Unreads = append(data.Unreads, ws.ReadyUnread{
				ChannelID:   info.ChannelID,
				UnreadCount: info.UnreadCount,
				Approximate: info.Approximate,
			})
		}
	}

	drafts, err := p.draftSvc.GetAllDrafts(ctx, userID)
	if err != nil {
		log.Printf("[ready] draft load failed for user %s: %v", userID, err)
	} else {
		for _, d := range drafts {
			if !d.HasContent() {
				continue
			}
			data.Drafts = append(data.Drafts, ws.ReadyDraftItem{
				ChannelID: d.ChannelID,
				ThreadID:  d.ThreadID,
				Content:   d.Content,
			})
		}
	}

	return data
}

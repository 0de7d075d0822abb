// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
//
// ÖNEMLİ sıralama kuralları:
// 1. draftService ve unreadService → messageService'den ÖNCE
//    (mesaj gönderimi taslağı temizler ve unread sayaçlarını artırır)
// 2. scheduleService → classService'den ÖNCE (bitiş tarihi hesabı)
package main

import (
	"log"
	"time"

	"github.com/akinalp/classhub/config"
	"github.com/akinalp/classhub/pkg/email"
	"github.com/akinalp/classhub/pkg/holiday"
	"github.com/akinalp/classhub/pkg/ratelimit"
	"github.com/akinalp/classhub/services"
	"github.com/akinalp/classhub/ws"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth     services.AuthService
	Channel  services.ChannelService
	Message  services.MessageService
	Reaction services.ReactionService
	Unread   services.UnreadService
	Draft    services.DraftService
	Schedule services.ScheduleService
	Class    services.ClassService
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
type RateLimiters struct {
	Message *ratelimit.MessageRateLimiter
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
//
// Sıralama kritiktir — bkz. dosya başı yorum.
// hub, service'ler arası paylaşılan dependency'dir.
func initServices(repos *Repositories, hub ws.EventPublisher, cfg *config.Config) (*Services, *RateLimiters) {
	// ─── Email service (opsiyonel) ───
	var emailSender email.EmailSender
	if cfg.Email.ResendAPIKey != "" && cfg.Email.FromEmail != "" {
		emailSender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail)
		log.Printf("[main] email service enabled (from=%s)", cfg.Email.FromEmail)
	} else {
		log.Println("[main] email service disabled (RESEND_API_KEY or RESEND_FROM not set)")
	}

	// ─── Rate Limiters ───
	messageLimiter := ratelimit.NewMessageRateLimiter(5, 5*time.Second, 15*time.Second)

	// ─── Sıralama-kritik service'ler ───

	// DraftService — MessageService'den ÖNCE: mesaj gönderilince o
	// composer'ın taslağı temizlenir.
	draftService := services.NewDraftService(repos.Draft)

	// UnreadService — MessageService'den ÖNCE: yeni mesaj diğer üyelerin
	// snapshot sayaçlarını artırır.
	unreadService := services.NewUnreadService(repos.Channel, repos.Message, repos.ReadCursor, hub)

	// ScheduleService — ClassService'den ÖNCE: sınıf açılırken bitiş
	// tarihi resmi tatiller atlanarak hesaplanır.
	scheduleService := services.NewScheduleService(holiday.NewStaticProvider())

	// ─── Diğer service'ler ───
	authService := services.NewAuthService(
		repos.User, repos.Session, hub,
		cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry,
	)

	channelService := services.NewChannelService(repos.Channel, repos.User, hub)
	messageService := services.NewMessageService(
		repos.Message, repos.Channel, repos.User,
		draftService, unreadService, hub, messageLimiter,
	)
	reactionService := services.NewReactionService(repos.Reaction, repos.Message, repos.Channel, hub)
	classService := services.NewClassService(
		repos.Class, repos.User, repos.Channel,
		scheduleService, emailSender, hub,
	)

	svcs := &Services{
		Auth:     authService,
		Channel:  channelService,
		Message:  messageService,
		Reaction: reactionService,
		Unread:   unreadService,
		Draft:    draftService,
		Schedule: scheduleService,
		Class:    classService,
	}

	limiters := &RateLimiters{
		Message: messageLimiter,
	}

	return svcs, limiters
}

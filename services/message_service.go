package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
	"github.com/akinalp/classhub/pkg/ratelimit"
	"github.com/akinalp/classhub/repository"
	"github.com/akinalp/classhub/ws"
)

// MessageService, mesaj iş kurallarını yönetir.
//
// GetThread bir ThreadTree döner — handler bunu düz JSON ağacına çevirir.
type MessageService interface {
	CreateMessage(ctx context.Context, channelID, userID string, req *models.CreateMessageRequest) (*models.Message, error)
	GetMessages(ctx context.Context, channelID, userID string, beforeID string, limit int) (*models.MessagePage, error)
	GetThread(ctx context.Context, rootMessageID, userID string) (*models.ThreadTree, error)
	UpdateMessage(ctx context.Context, messageID, userID string, req *models.UpdateMessageRequest) (*models.Message, error)
	DeleteMessage(ctx context.Context, messageID, userID string) error
}

type messageService struct {
	messageRepo repository.MessageRepository
	channelRepo repository.ChannelRepository
	userRepo    repository.UserRepository
	draftSvc    DraftService
	unreadSvc   UnreadService
	hub         ws.EventPublisher
	limiter     *ratelimit.MessageRateLimiter
}

// NewMessageService, constructor.
// draftSvc ve unreadSvc nil olabilir (testlerde) — nil ise gönderim
// sonrası taslak temizliği / sayaç artırma atlanır.
func NewMessageService(
	messageRepo repository.MessageRepository,
	channelRepo repository.ChannelRepository,
	userRepo repository.UserRepository,
	draftSvc DraftService,
	unreadSvc UnreadService,
	hub ws.EventPublisher,
	limiter *ratelimit.MessageRateLimiter,
) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		channelRepo: channelRepo,
		userRepo:    userRepo,
		draftSvc:    draftSvc,
		unreadSvc:   unreadSvc,
		hub:         hub,
		limiter:     limiter,
	}
}

// CreateMessage, yeni mesaj oluşturur ve kanal üyelerine broadcast eder.
//
// Flow:
// 1. Rate limit kontrolü (spam koruması)
// 2. Validation + üyelik kontrolü
// 3. ParentID doluysa parent'ın aynı kanalda olduğu doğrulanır
// 4. DB kayıt + author JOIN
// 5. İlgili composer'ın taslağı silinir (başarılı gönderim)
// 6. Üyelere message_create broadcast
func (s *messageService) CreateMessage(ctx context.Context, channelID, userID string, req *models.CreateMessageRequest) (*models.Message, error) {
	if !s.limiter.Allow(userID) {
		return nil, fmt.Errorf("%w: slow down", pkg.ErrRateLimited)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	if err := s.requireMember(ctx, channelID, userID); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.messageRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("%w: parent message not found", pkg.ErrBadRequest)
		}
		if parent.ChannelID != channelID {
			return nil, fmt.Errorf("%w: parent message belongs to another channel", pkg.ErrBadRequest)
		}
	}

	message := &models.Message{
		ChannelID: channelID,
		UserID:    userID,
		ParentID:  req.ParentID,
		Content:   req.Content,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	full, err := s.messageRepo.GetByID(ctx, message.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload created message: %w", err)
	}

	// Gönderim başarılı — composer taslağı artık geçersiz.
	if s.draftSvc != nil {
		threadID := ""
		if req.ParentID != nil {
			threadID = *req.ParentID
		}
		if err := s.draftSvc.ClearDraft(ctx, userID, channelID, threadID); err != nil && !errors.Is(err, pkg.ErrNotFound) {
			// Taslak temizliği mesaj gönderimini geri almaz, sadece loglanır.
			log.Printf("[message] failed to clear draft for user=%s channel=%s: %v", userID, channelID, err)
		}
	}

	memberIDs, err := s.channelRepo.GetMemberIDs(ctx, channelID)
	if err != nil {
		log.Printf("[message] failed to load members for broadcast channel=%s: %v", channelID, err)
		return full, nil
	}

	// Diğer üyelerin unread sayaçları artar — yazarınki asla.
	if s.unreadSvc != nil {
		s.unreadSvc.NoteIncomingMessage(channelID, userID, memberIDs)
	}

	s.hub.BroadcastToUsers(memberIDs, ws.Event{
		Op:   ws.OpMessageCreate,
		Data: full,
	})

	return full, nil
}

// GetMessages, kanalın kök mesajlarını cursor-based pagination ile döner.
func (s *messageService) GetMessages(ctx context.Context, channelID, userID string, beforeID string, limit int) (*models.MessagePage, error) {
	if err := s.requireMember(ctx, channelID, userID); err != nil {
		return nil, err
	}

	if limit < 1 || limit > 100 {
		limit = 50
	}

	// limit+1 iste: fazlası geldiyse has_more = true.
	messages, err := s.messageRepo.GetByChannelID(ctx, channelID, beforeID, limit+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[:limit]
	}

	return &models.MessagePage{Messages: messages, HasMore: hasMore}, nil
}

// GetThread, kök mesajı ve tüm yanıtlarını ThreadTree olarak döner.
func (s *messageService) GetThread(ctx context.Context, rootMessageID, userID string) (*models.ThreadTree, error) {
	root, err := s.messageRepo.GetByID(ctx, rootMessageID)
	if err != nil {
		return nil, err
	}

	if err := s.requireMember(ctx, root.ChannelID, userID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.GetThread(ctx, rootMessageID)
	if err != nil {
		return nil, err
	}

	return models.NewThreadTree(messages), nil
}

// UpdateMessage, mesaj içeriğini düzenler. Sadece yazar düzenleyebilir.
func (s *messageService) UpdateMessage(ctx context.Context, messageID, userID string, req *models.UpdateMessageRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if message.UserID != userID {
		return nil, fmt.Errorf("%w: you can only edit your own messages", pkg.ErrForbidden)
	}

	message.Content = req.Content
	now := time.Now().UTC()
	message.EditedAt = &now

	if err := s.messageRepo.Update(ctx, message); err != nil {
		return nil, err
	}

	s.broadcastToChannel(ctx, message.ChannelID, ws.Event{
		Op:   ws.OpMessageUpdate,
		Data: message,
	})

	return message, nil
}

// DeleteMessage, mesajı siler. Yazar veya manager silebilir.
// Alt yanıtlar FK cascade ile birlikte silinir.
func (s *messageService) DeleteMessage(ctx context.Context, messageID, userID string) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if message.UserID != userID {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.Role != models.UserRoleManager {
			return fmt.Errorf("%w: you can only delete your own messages", pkg.ErrForbidden)
		}
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return err
	}

	s.broadcastToChannel(ctx, message.ChannelID, ws.Event{
		Op:   ws.OpMessageDelete,
		Data: map[string]string{"id": messageID, "channel_id": message.ChannelID},
	})

	return nil
}

// ─── Private Helpers ───

func (s *messageService) requireMember(ctx context.Context, channelID, userID string) error {
	isMember, err := s.channelRepo.IsMember(ctx, channelID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return fmt.Errorf("%w: not a member of this channel", pkg.ErrForbidden)
	}
	return nil
}

// broadcastToChannel, event'i sadece kanal üyelerine gönderir.
func (s *messageService) broadcastToChannel(ctx context.Context, channelID string, event ws.Event) {
	memberIDs, err := s.channelRepo.GetMemberIDs(ctx, channelID)
	if err != nil {
		log.Printf("[message] failed to load members for broadcast channel=%s: %v", channelID, err)
		return
	}
	s.hub.BroadcastToUsers(memberIDs, event)
}

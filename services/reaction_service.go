package services

import (
	"context"
	"fmt"
	"log"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
	"github.com/akinalp/classhub/repository"
	"github.com/akinalp/classhub/ws"
)

// ReactionService, emoji tepki iş kurallarını yönetir.
type ReactionService interface {
	// ToggleReaction, tepkiyi ekler/kaldırır ve güncel reaction listesini döner.
	ToggleReaction(ctx context.Context, messageID, userID, emoji string) ([]models.ReactionGroup, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	messageRepo  repository.MessageRepository
	channelRepo  repository.ChannelRepository
	hub          ws.EventPublisher
}

// NewReactionService, constructor.
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	messageRepo repository.MessageRepository,
	channelRepo repository.ChannelRepository,
	hub ws.EventPublisher,
) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		messageRepo:  messageRepo,
		channelRepo:  channelRepo,
		hub:          hub,
	}
}

// ToggleReaction, aynı (mesaj, kullanıcı, emoji) üçlüsü varsa kaldırır,
// yoksa ekler. Sonuç olarak mesajın TAM reaction listesi broadcast edilir —
// delta yerine tam liste göndermek client state'ini basitleştirir.
func (s *reactionService) ToggleReaction(ctx context.Context, messageID, userID, emoji string) ([]models.ReactionGroup, error) {
	if emoji == "" || len(emoji) > 32 {
		return nil, fmt.Errorf("%w: invalid emoji", pkg.ErrBadRequest)
	}

	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.channelRepo.IsMember(ctx, message.ChannelID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, fmt.Errorf("%w: not a member of this channel", pkg.ErrForbidden)
	}

	if _, err := s.reactionRepo.Toggle(ctx, messageID, userID, emoji); err != nil {
		return nil, err
	}

	groups, err := s.reactionRepo.GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.channelRepo.GetMemberIDs(ctx, message.ChannelID)
	if err != nil {
		log.Printf("[reaction] failed to load members for broadcast channel=%s: %v", message.ChannelID, err)
	} else {
		s.hub.BroadcastToUsers(memberIDs, ws.Event{
			Op: ws.OpReactionUpdate,
			Data: map[string]any{
				"message_id": messageID,
				"channel_id": message.ChannelID,
				"reactions":  groups,
			},
		})
	}

	return groups, nil
}

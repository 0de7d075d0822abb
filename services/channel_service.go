package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
	"github.com/akinalp/classhub/repository"
	"github.com/akinalp/classhub/ws"
)

// ChannelService, kanal ve üyelik iş kurallarını yönetir.
type ChannelService interface {
	CreateChannel(ctx context.Context, creatorID string, req *models.CreateChannelRequest) (*models.Channel, error)
	GetChannel(ctx context.Context, channelID string) (*models.Channel, error)
	GetChannelsForUser(ctx context.Context, userID string) ([]models.Channel, error)
	UpdateChannel(ctx context.Context, userID, channelID string, req *models.UpdateChannelRequest) (*models.Channel, error)
	DeleteChannel(ctx context.Context, userID, channelID string) error
	JoinChannel(ctx context.Context, channelID, userID string) error
	LeaveChannel(ctx context.Context, channelID, userID string) error
}

type channelService struct {
	channelRepo repository.ChannelRepository
	userRepo    repository.UserRepository
	hub         ws.EventPublisher
}

// NewChannelService, constructor.
func NewChannelService(
	channelRepo repository.ChannelRepository,
	userRepo repository.UserRepository,
	hub ws.EventPublisher,
) ChannelService {
	return &channelService{
		channelRepo: channelRepo,
		userRepo:    userRepo,
		hub:         hub,
	}
}

// CreateChannel, yeni kanal oluşturur. Oluşturan otomatik üye olur.
func (s *channelService) CreateChannel(ctx context.Context, creatorID string, req *models.CreateChannelRequest) (*models.Channel, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	var topic *string
	if req.Topic != "" {
		topic = &req.Topic
	}

	// Oluşturan her zaman üyedir; istekle gelen üyeler eklenir (tekrarsız).
	memberIDs := []string{creatorID}
	seen := map[string]bool{creatorID: true}
	for _, id := range req.Members {
		if !seen[id] {
			memberIDs = append(memberIDs, id)
			seen[id] = true
		}
	}

	channel := &models.Channel{
		Name:      req.Name,
		Topic:     topic,
		CreatedBy: creatorID,
		MemberIDs: memberIDs,
	}

	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, err
	}

	// Yeni kanal şimdilik sadece üyelerine görünür — onlara bildir.
	s.hub.BroadcastToUsers(channel.MemberIDs, ws.Event{
		Op:   ws.OpChannelCreate,
		Data: channel,
	})

	return channel, nil
}

// GetChannel, kanalı üye listesiyle birlikte döner.
func (s *channelService) GetChannel(ctx context.Context, channelID string) (*models.Channel, error) {
	return s.channelRepo.GetByID(ctx, channelID)
}

// GetChannelsForUser, kullanıcının üyesi olduğu kanalları döner.
func (s *channelService) GetChannelsForUser(ctx context.Context, userID string) ([]models.Channel, error) {
	return s.channelRepo.GetAllForUser(ctx, userID)
}

// UpdateChannel, kanal adını/topic'ini değiştirir.
// Sadece kanalı oluşturan veya manager rolündeki kullanıcı değiştirebilir.
func (s *channelService) UpdateChannel(ctx context.Context, userID, channelID string, req *models.UpdateChannelRequest) (*models.Channel, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	if err := s.requireChannelAdmin(ctx, channel, userID); err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		channel.Name = *req.Name
	}
	if req.Topic != nil {
		if *req.Topic == "" {
			channel.Topic = nil
		} else {
			channel.Topic = req.Topic
		}
	}

	if err := s.channelRepo.Update(ctx, channel); err != nil {
		return nil, err
	}

	s.hub.BroadcastToUsers(channel.MemberIDs, ws.Event{
		Op:   ws.OpChannelUpdate,
		Data: channel,
	})

	return channel, nil
}

// DeleteChannel, kanalı siler. Mesajlar ve imleçler FK cascade ile gider.
func (s *channelService) DeleteChannel(ctx context.Context, userID, channelID string) error {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return err
	}

	if err := s.requireChannelAdmin(ctx, channel, userID); err != nil {
		return err
	}

	if err := s.channelRepo.Delete(ctx, channelID); err != nil {
		return err
	}

	s.hub.BroadcastToUsers(channel.MemberIDs, ws.Event{
		Op:   ws.OpChannelDelete,
		Data: map[string]string{"id": channelID},
	})

	return nil
}

// JoinChannel, kullanıcıyı kanala ekler.
func (s *channelService) JoinChannel(ctx context.Context, channelID, userID string) error {
	if _, err := s.channelRepo.GetByID(ctx, channelID); err != nil {
		return err
	}

	if err := s.channelRepo.AddMember(ctx, channelID, userID); err != nil {
		return err
	}

	memberIDs, err := s.channelRepo.GetMemberIDs(ctx, channelID)
	if err != nil {
		return fmt.Errorf("failed to get member ids: %w", err)
	}

	s.hub.BroadcastToUsers(memberIDs, ws.Event{
		Op:   ws.OpMemberJoin,
		Data: map[string]string{"channel_id": channelID, "user_id": userID},
	})

	return nil
}

// LeaveChannel, kullanıcıyı kanaldan çıkarır.
func (s *channelService) LeaveChannel(ctx context.Context, channelID, userID string) error {
	isMember, err := s.channelRepo.IsMember(ctx, channelID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return fmt.Errorf("%w: not a member of this channel", pkg.ErrBadRequest)
	}

	if err := s.channelRepo.RemoveMember(ctx, channelID, userID); err != nil {
		return err
	}

	memberIDs, err := s.channelRepo.GetMemberIDs(ctx, channelID)
	if err != nil {
		return fmt.Errorf("failed to get member ids: %w", err)
	}

	// Ayrılan kullanıcı da kendi diğer tab'larında görmeli
	s.hub.BroadcastToUsers(append(memberIDs, userID), ws.Event{
		Op:   ws.OpMemberLeave,
		Data: map[string]string{"channel_id": channelID, "user_id": userID},
	})

	return nil
}

// requireChannelAdmin: kanalı oluşturan veya manager rolü gerekli.
func (s *channelService) requireChannelAdmin(ctx context.Context, channel *models.Channel, userID string) error {
	if channel.CreatedBy == userID {
		return nil
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return pkg.ErrForbidden
		}
		return err
	}
	if user.Role != models.UserRoleManager {
		return fmt.Errorf("%w: only the channel creator or a manager can do this", pkg.ErrForbidden)
	}
	return nil
}

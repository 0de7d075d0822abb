package repository

import (
	"context"

	"github.com/akinalp/classhub/models"
)

// ChannelRepository, kanal ve üyelik veritabanı işlemleri için interface.
//
// Üyelik ayrı tablodadır (channel_members) ama aynı repository'den yönetilir —
// kanal ve üyeleri her zaman birlikte değişir (Create üyeleri de yazar).
type ChannelRepository interface {
	Create(ctx context.Context, channel *models.Channel) error
	GetByID(ctx context.Context, id string) (*models.Channel, error)
	// GetAllForUser, kullanıcının üyesi olduğu kanalları döner.
	// Unread reconciliation bu liste üzerinden çalışır.
	GetAllForUser(ctx context.Context, userID string) ([]models.Channel, error)
	Update(ctx context.Context, channel *models.Channel) error
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, channelID, userID string) error
	RemoveMember(ctx context.Context, channelID, userID string) error
	GetMemberIDs(ctx context.Context, channelID string) ([]string, error)
	IsMember(ctx context.Context, channelID, userID string) (bool, error)
}

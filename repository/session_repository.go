package repository

import (
	"context"

	"github.com/akinalp/classhub/models"
)

// SessionRepository, refresh token oturumlarının persistence interface'i.
// Logout tek oturumu (DeleteByID), şifre değişikliği gibi durumlar tüm
// oturumları (DeleteByUserID) düşürür.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByRefreshToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) error
}

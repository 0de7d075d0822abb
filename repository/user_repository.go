// Package repository, veritabanı erişim katmanını tanımlar.
//
// Her entity için iki dosya vardır: interface (xxx_repository.go) ve
// SQLite implementasyonu (sqlite_xxx.go). Service katmanı sadece
// interface'lere bağımlıdır — testlerde fake implementasyon geçilebilir.
package repository

import (
	"context"

	"github.com/akinalp/classhub/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
	UpdateStatus(ctx context.Context, id string, status models.UserStatus) error
}

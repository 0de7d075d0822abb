package repository

import (
	"context"

	"github.com/akinalp/classhub/models"
)

// ClassRepository, sınıf kayıtları için interface.
type ClassRepository interface {
	Create(ctx context.Context, class *models.Class) error
	GetByID(ctx context.Context, id string) (*models.Class, error)
	GetAll(ctx context.Context) ([]models.Class, error)
	GetByTeacherID(ctx context.Context, teacherID string) ([]models.Class, error)
	Delete(ctx context.Context, id string) error
}

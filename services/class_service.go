package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
	"github.com/akinalp/classhub/pkg/email"
	"github.com/akinalp/classhub/repository"
	"github.com/akinalp/classhub/ws"
)

// ClassService, sınıf (kurs) iş kurallarını yönetir.
//
// Sınıf açılırken bitiş tarihi ScheduleService ile hesaplanır ve
// kayıtla birlikte DONDURULUR: tatil tablosu sonradan değişse bile
// açılmış sınıfın tarihi değişmez.
type ClassService interface {
	CreateClass(ctx context.Context, teacherID string, req *models.CreateClassRequest) (*models.Class, error)
	// PreviewSchedule, kayıt yapmadan bitiş tarihi hesaplar (form önizlemesi).
	PreviewSchedule(req *models.ScheduleRequest) (*models.ScheduleResult, error)
	GetClass(ctx context.Context, id string) (*models.Class, error)
	GetClasses(ctx context.Context) ([]models.Class, error)
	GetClassesForTeacher(ctx context.Context, teacherID string) ([]models.Class, error)
	DeleteClass(ctx context.Context, userID, classID string) error
}

type classService struct {
	classRepo   repository.ClassRepository
	userRepo    repository.UserRepository
	channelRepo repository.ChannelRepository
	scheduleSvc ScheduleService
	emailSender email.EmailSender
	hub         ws.EventPublisher
}

// NewClassService, constructor. emailSender nil olabilir —
// API key yapılandırılmamışsa bildirim maili atlanır.
func NewClassService(
	classRepo repository.ClassRepository,
	userRepo repository.UserRepository,
	channelRepo repository.ChannelRepository,
	scheduleSvc ScheduleService,
	emailSender email.EmailSender,
	hub ws.EventPublisher,
) ClassService {
	return &classService{
		classRepo:   classRepo,
		userRepo:    userRepo,
		channelRepo: channelRepo,
		scheduleSvc: scheduleSvc,
		emailSender: emailSender,
		hub:         hub,
	}
}

// CreateClass, yeni sınıf açar.
//
// Flow:
// 1. Rol kontrolü — sadece teacher/manager sınıf açabilir
// 2. Validation + bitiş tarihi hesabı (fail-fast: hesap patlarsa kayıt olmaz)
// 3. Opsiyonel kanal bağlama (kanal var olmalı)
// 4. DB kayıt + broadcast + eğitmene program maili
func (s *classService) CreateClass(ctx context.Context, teacherID string, req *models.CreateClassRequest) (*models.Class, error) {
	teacher, err := s.userRepo.GetByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if teacher.Role != models.UserRoleTeacher && teacher.Role != models.UserRoleManager {
		return nil, fmt.Errorf("%w: only teachers can create classes", pkg.ErrForbidden)
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	result, err := s.scheduleSvc.ComputeEndDate(req.ScheduleRequest())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	var channelID *string
	if req.ChannelID != "" {
		if _, err := s.channelRepo.GetByID(ctx, req.ChannelID); err != nil {
			return nil, fmt.Errorf("%w: channel not found", pkg.ErrBadRequest)
		}
		channelID = &req.ChannelID
	}

	class := &models.Class{
		Name:            req.Name,
		TeacherID:       teacherID,
		ChannelID:       channelID,
		Region:          req.Region,
		StartDate:       req.StartDate,
		EndDate:         result.EndDate,
		TotalSessions:   req.TotalSessions,
		Weekdays:        req.Weekdays,
		SkippedHolidays: result.SkippedHolidays,
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}

	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpClassCreate,
		Data: class,
	})

	// Program maili best-effort — gönderim hatası sınıf açmayı geri almaz.
	if s.emailSender != nil && teacher.Email != "" {
		go func() {
			sendCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.emailSender.SendClassSchedule(sendCtx, teacher.Email, class.Name, class.StartDate, class.EndDate, class.SkippedHolidays); err != nil {
				log.Printf("[class] failed to send schedule email to %s: %v", teacher.Email, err)
			}
		}()
	}

	return class, nil
}

// PreviewSchedule, form önizlemesi için saf hesaplama.
func (s *classService) PreviewSchedule(req *models.ScheduleRequest) (*models.ScheduleResult, error) {
	result, err := s.scheduleSvc.ComputeEndDate(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}
	return result, nil
}

func (s *classService) GetClass(ctx context.Context, id string) (*models.Class, error) {
	return s.classRepo.GetByID(ctx, id)
}

func (s *classService) GetClasses(ctx context.Context) ([]models.Class, error) {
	return s.classRepo.GetAll(ctx)
}

func (s *classService) GetClassesForTeacher(ctx context.Context, teacherID string) ([]models.Class, error) {
	return s.classRepo.GetByTeacherID(ctx, teacherID)
}

// DeleteClass, sınıfı siler. Sahibi veya manager silebilir.
func (s *classService) DeleteClass(ctx context.Context, userID, classID string) error {
	class, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return err
	}

	if class.TeacherID != userID {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user.Role != models.UserRoleManager {
			return fmt.Errorf("%w: only the class owner or a manager can delete it", pkg.ErrForbidden)
		}
	}

	if err := s.classRepo.Delete(ctx, classID); err != nil {
		return err
	}

	s.hub.BroadcastToAll(ws.Event{
		Op:   ws.OpClassDelete,
		Data: map[string]string{"id": classID},
	})

	return nil
}

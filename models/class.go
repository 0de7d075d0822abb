package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Class, açılmış bir kursu/sınıfı temsil eder.
// DB'deki "classes" tablosunun Go karşılığı.
//
// EndDate ve SkippedHolidays oluşturma anında ScheduleService tarafından
// hesaplanıp yazılır — sonradan değişmez (tatil tablosu güncellenirse
// mevcut sınıflar etkilenmez, sadece yeni hesaplar etkilenir).
type Class struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	TeacherID       string    `json:"teacher_id"`
	ChannelID       *string   `json:"channel_id"` // Sınıfın sohbet kanalı (opsiyonel)
	Region          string    `json:"region"`
	StartDate       string    `json:"start_date"` // "2006-01-02"
	EndDate         string    `json:"end_date"`
	TotalSessions   int       `json:"total_sessions"`
	Weekdays        []string  `json:"weekdays"`
	SkippedHolidays []string  `json:"skipped_holidays"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateClassRequest, yeni sınıf açma isteği.
// Schedule alanları ScheduleRequest ile aynıdır — validation orada yapılır.
type CreateClassRequest struct {
	Name          string   `json:"name"`
	ChannelID     string   `json:"channel_id"` // Opsiyonel
	Region        string   `json:"region"`
	StartDate     string   `json:"start_date"`
	TotalSessions int      `json:"total_sessions"`
	Weekdays      []string `json:"weekdays"`
}

// Validate, sınıfa özgü alanları kontrol eder.
// Tarih/gün/seans validation'ı ScheduleRequest.Validate'te yapılır —
// burada tekrarlanmaz.
func (r *CreateClassRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("class name must be between 1 and 100 characters")
	}

	r.Region = strings.ToUpper(strings.TrimSpace(r.Region))
	if r.Region == "" {
		return fmt.Errorf("region is required")
	}

	return nil
}

// ScheduleRequest, sınıf isteğinden saf hesaplama girdisi üretir.
func (r *CreateClassRequest) ScheduleRequest() *ScheduleRequest {
	return &ScheduleRequest{
		StartDate:     r.StartDate,
		TotalSessions: r.TotalSessions,
		Weekdays:      r.Weekdays,
		Region:        r.Region,
	}
}

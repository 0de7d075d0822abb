package services

import (
	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg/holiday"
)

// ScheduleService, kurs bitiş tarihini hesaplar.
//
// Saf hesaplamadır: DB'ye dokunmaz, sadece tatil takvimi sağlayıcısına
// bağımlıdır. ClassService sınıf açarken bunu çağırır; preview endpoint'i
// de kayıt yapmadan aynı hesabı kullanır.
type ScheduleService interface {
	ComputeEndDate(req *models.ScheduleRequest) (*models.ScheduleResult, error)
}

type scheduleService struct {
	holidays holiday.Provider
}

// NewScheduleService, constructor.
func NewScheduleService(holidays holiday.Provider) ScheduleService {
	return &scheduleService{holidays: holidays}
}

// ComputeEndDate, takvimi gün gün yürüyerek son seansın tarihini bulur.
//
// Kurallar:
//   - Başlangıç günü seçili bir güne denk geliyorsa ve tatil değilse
//     1. seans olarak SAYILIR.
//   - Seçili güne denk gelen tatiller seans sayılmaz ama
//     SkippedHolidays listesine yürüyüş sırasıyla eklenir.
//   - Seçili olmayan günler sessizce atlanır (listeye girmez).
//   - Bitiş tarihi = son seansın gerçekleştiği gün. Kuyruk tatiller
//     bitişi UZATMAZ — son seanstan sonrası derse dahil değildir.
//
// Güvenlik sınırı: seans başına 53 hafta tavanı. Her şey tatil olsa
// bile yürüyüş bu tavanda ErrScheduleTooLong ile durur — bozuk bir
// tatil tablosu sonsuz döngüye dönüşmez.
func (s *scheduleService) ComputeEndDate(req *models.ScheduleRequest) (*models.ScheduleResult, error) {
	start, selected, err := req.Validate()
	if err != nil {
		return nil, err
	}

	maxDays := req.TotalSessions * 53 * 7

	var skipped []string
	sessions := 0
	day := start

	for i := 0; ; i++ {
		if i >= maxDays {
			return nil, models.ErrScheduleTooLong
		}

		if selected[day.Weekday()] {
			if holiday.IsHoliday(s.holidays, req.Region, day) {
				skipped = append(skipped, day.Format(holiday.DateFormat))
			} else {
				sessions++
				if sessions == req.TotalSessions {
					return &models.ScheduleResult{
						EndDate:         day.Format(holiday.DateFormat),
						SkippedHolidays: skipped,
					}, nil
				}
			}
		}

		day = day.AddDate(0, 0, 1)
	}
}

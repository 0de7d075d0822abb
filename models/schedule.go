package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Ders programı domain error'ları.
// Geçersiz input sessizce anlamsız bir tarih üretmek yerine bu error'larla
// erken reddedilir — form submit'i bloklanır.
var (
	ErrNoSessions      = errors.New("total sessions must be at least 1")
	ErrNoWeekdays      = errors.New("at least one weekday must be selected")
	ErrInvalidWeekday  = errors.New("invalid weekday selector")
	ErrZeroStartDate   = errors.New("start date is required")
	ErrScheduleTooLong = errors.New("schedule walk exceeded safety bound")
)

// weekdayNames, API'deki gün adlarını time.Weekday'e map'ler.
var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ScheduleRequest, ders bitiş tarihi hesaplama girdisi.
//
// Weekdays: haftanın hangi günleri ders var ("monday", "wednesday"...).
// Region: tatil takvimi seçen bölge kodu — bilinmeyen kod hata DEĞİLDİR,
// boş tatil seti olarak ele alınır.
type ScheduleRequest struct {
	StartDate     string   `json:"start_date"` // "2006-01-02"
	TotalSessions int      `json:"total_sessions"`
	Weekdays      []string `json:"weekdays"`
	Region        string   `json:"region"`
}

// Validate, ScheduleRequest'i kontrol eder ve normalize edilmiş değerleri döner.
// Precondition ihlalleri domain error'ı üretir — fail-fast, form submit'i bloklanır.
func (r *ScheduleRequest) Validate() (time.Time, map[time.Weekday]bool, error) {
	if r.TotalSessions < 1 {
		return time.Time{}, nil, ErrNoSessions
	}

	if strings.TrimSpace(r.StartDate) == "" {
		return time.Time{}, nil, ErrZeroStartDate
	}
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("invalid start date %q: %w", r.StartDate, err)
	}

	if len(r.Weekdays) == 0 {
		return time.Time{}, nil, ErrNoWeekdays
	}
	selected := make(map[time.Weekday]bool, len(r.Weekdays))
	for _, name := range r.Weekdays {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return time.Time{}, nil, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
		}
		selected[wd] = true
	}

	return start, selected, nil
}

// ScheduleResult, hesaplama çıktısı.
//
// Invariant: [start, EndDate] aralığındaki seçili-gün, tatil-olmayan
// tarihlerin sayısı tam olarak TotalSessions'tır.
// SkippedHolidays: seçili bir güne denk gelip tatil olduğu için
// sayılmayan tarihler, yürüyüş sırasıyla.
type ScheduleResult struct {
	EndDate         string   `json:"end_date"` // "2006-01-02"
	SkippedHolidays []string `json:"skipped_holidays"`
}

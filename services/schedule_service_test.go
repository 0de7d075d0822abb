package services

import (
	"errors"
	"testing"
	"time"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg/holiday"
)

// fakeHolidayProvider, testlerde sabit tatil seti döner.
type fakeHolidayProvider struct {
	days map[string]bool
}

func (f *fakeHolidayProvider) HolidaysFor(region string, year int) map[string]bool {
	return f.days
}

func noHolidays() holiday.Provider {
	return &fakeHolidayProvider{days: map[string]bool{}}
}

func TestComputeEndDateBasic(t *testing.T) {
	svc := NewScheduleService(noHolidays())

	// 2025-01-01 Çarşamba. Mon/Wed/Fri, 3 seans:
	// Wed 01 (1), Fri 03 (2), Mon 06 (3) → bitiş 2025-01-06.
	result, err := svc.ComputeEndDate(&models.ScheduleRequest{
		StartDate:     "2025-01-01",
		TotalSessions: 3,
		Weekdays:      []string{"monday", "wednesday", "friday"},
		Region:        "VN",
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if result.EndDate != "2025-01-06" {
		t.Errorf("expected end date 2025-01-06, got %s", result.EndDate)
	}
	if len(result.SkippedHolidays) != 0 {
		t.Errorf("expected no skipped holidays, got %v", result.SkippedHolidays)
	}
}

func TestComputeEndDateStartDayCounts(t *testing.T) {
	svc := NewScheduleService(noHolidays())

	// Başlangıç günü seçili güne denk geliyorsa 1. seans sayılır.
	result, err := svc.ComputeEndDate(&models.ScheduleRequest{
		StartDate:     "2025-01-06", // Pazartesi
		TotalSessions: 1,
		Weekdays:      []string{"monday"},
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if result.EndDate != "2025-01-06" {
		t.Errorf("expected single-session course to end on start day, got %s", result.EndDate)
	}
}

func TestComputeEndDateSkipsHolidays(t *testing.T) {
	// Cuma 2025-01-03 tatil: o seans yerine bir sonraki seçili güne kayar.
	provider := &fakeHolidayProvider{days: map[string]bool{"2025-01-03": true}}
	svc := NewScheduleService(provider)

	result, err := svc.ComputeEndDate(&models.ScheduleRequest{
		StartDate:     "2025-01-01",
		TotalSessions: 3,
		Weekdays:      []string{"monday", "wednesday", "friday"},
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// Wed 01 (1), Fri 03 tatil, Mon 06 (2), Wed 08 (3)
	if result.EndDate != "2025-01-08" {
		t.Errorf("expected end date 2025-01-08, got %s", result.EndDate)
	}
	if len(result.SkippedHolidays) != 1 || result.SkippedHolidays[0] != "2025-01-03" {
		t.Errorf("expected skipped [2025-01-03], got %v", result.SkippedHolidays)
	}
}

func TestComputeEndDateHolidayOnUnselectedDayIgnored(t *testing.T) {
	// Tatil seçili olmayan bir güne denk geliyorsa listeye girmez.
	provider := &fakeHolidayProvider{days: map[string]bool{"2025-01-04": true}} // Cumartesi
	svc := NewScheduleService(provider)

	result, err := svc.ComputeEndDate(&models.ScheduleRequest{
		StartDate:     "2025-01-01",
		TotalSessions: 2,
		Weekdays:      []string{"wednesday", "friday"},
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if len(result.SkippedHolidays) != 0 {
		t.Errorf("holiday on unselected day should not be recorded, got %v", result.SkippedHolidays)
	}
	if result.EndDate != "2025-01-03" {
		t.Errorf("expected end date 2025-01-03, got %s", result.EndDate)
	}
}

func TestComputeEndDateTrailingHolidayDoesNotExtend(t *testing.T) {
	// Son seanstan SONRAKİ tatil bitişi uzatmaz, listeye girmez.
	provider := &fakeHolidayProvider{days: map[string]bool{"2025-01-06": true}}
	svc := NewScheduleService(provider)

	result, err := svc.ComputeEndDate(&models.ScheduleRequest{
		StartDate:     "2025-01-01",
		TotalSessions: 2,
		Weekdays:      []string{"monday", "wednesday", "friday"},
	})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	// Wed 01 (1), Fri 03 (2) → yürüyüş biter, Pazartesi tatiline hiç bakılmaz.
	if result.EndDate != "2025-01-03" {
		t.Errorf("expected end date 2025-01-03, got %s", result.EndDate)
	}
	if len(result.SkippedHolidays) != 0 {
		t.Errorf("trailing holiday must not appear, got %v", result.SkippedHolidays)
	}
}

func TestComputeEndDateValidationErrors(t *testing.T) {
	svc := NewScheduleService(noHolidays())

	cases := []struct {
		name string
		req  models.ScheduleRequest
		want error
	}{
		{"zero sessions", models.ScheduleRequest{StartDate: "2025-01-01", TotalSessions: 0, Weekdays: []string{"monday"}}, models.ErrNoSessions},
		{"no weekdays", models.ScheduleRequest{StartDate: "2025-01-01", TotalSessions: 3}, models.ErrNoWeekdays},
		{"bad weekday", models.ScheduleRequest{StartDate: "2025-01-01", TotalSessions: 3, Weekdays: []string{"someday"}}, models.ErrInvalidWeekday},
		{"empty start", models.ScheduleRequest{TotalSessions: 3, Weekdays: []string{"monday"}}, models.ErrZeroStartDate},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ComputeEndDate(&tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestComputeEndDateAllHolidaysAborts(t *testing.T) {
	// Her gün tatil olan bozuk bir takvim: yürüyüş güvenlik tavanında durmalı.
	all := &fakeHolidayProvider{days: allDays2025AndBeyond()}
	svc := NewScheduleService(all)

	_, err := svc.ComputeEndDate(&models.ScheduleRequest{
		StartDate:     "2025-01-01",
		TotalSessions: 1,
		Weekdays:      []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
	})
	if !errors.Is(err, models.ErrScheduleTooLong) {
		t.Fatalf("expected ErrScheduleTooLong, got %v", err)
	}
}

// allDays2025AndBeyond, birkaç yıllık her günü tatil işaretler.
// Güvenlik tavanı 53 hafta/seans olduğundan 2 yıl fazlasıyla yeter.
func allDays2025AndBeyond() map[string]bool {
	days := make(map[string]bool)
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 800; d++ {
		days[day.Format(holiday.DateFormat)] = true
		day = day.AddDate(0, 0, 1)
	}
	return days
}

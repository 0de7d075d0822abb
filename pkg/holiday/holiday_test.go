package holiday

import (
	"testing"
	"time"
)

func TestHolidaysForKnownRegion(t *testing.T) {
	p := NewStaticProvider()

	days := p.HolidaysFor("VN", 2025)
	if len(days) == 0 {
		t.Fatal("expected VN 2025 holidays to be present")
	}
	if !days["2025-09-02"] {
		t.Error("expected 2025-09-02 (national day) to be a VN holiday")
	}
	// Merkez yılbaşında açık: 1 Ocak VN tablosunda bilerek yok.
	if days["2025-01-01"] {
		t.Error("2025-01-01 must not be a VN holiday")
	}
}

func TestHolidaysForUnknownRegionOrYear(t *testing.T) {
	p := NewStaticProvider()

	if got := p.HolidaysFor("XX", 2025); len(got) != 0 {
		t.Errorf("unknown region should yield empty set, got %v", got)
	}
	if got := p.HolidaysFor("VN", 1990); len(got) != 0 {
		t.Errorf("unknown year should yield empty set, got %v", got)
	}
}

func TestIsHoliday(t *testing.T) {
	p := NewStaticProvider()

	tet := time.Date(2025, 1, 29, 0, 0, 0, 0, time.UTC)
	if !IsHoliday(p, "VN", tet) {
		t.Error("expected Tết 2025-01-29 to be a holiday")
	}

	ordinary := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	if IsHoliday(p, "VN", ordinary) {
		t.Error("2025-03-12 should not be a holiday")
	}
}

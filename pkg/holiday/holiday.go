// Package holiday, bölge bazlı resmi tatil takvimi sağlar.
//
// ScheduleService ders bitiş tarihi hesaplarken tatil günlerini atlamak için
// bu paketi kullanır. Tatil verisi Provider interface'i arkasındadır —
// statik tablo yerine ileride bir tatil-hesaplama kütüphanesi veya
// DB tablosu takılabilir, ScheduleService'in haberi olmaz.
//
// pkg/holiday hiçbir proje içi pakete bağımlı değildir (leaf dependency).
package holiday

import "time"

// DateFormat, tatil tarihlerinin tablo ve lookup'ta kullanılan formatı.
const DateFormat = "2006-01-02"

// Provider, bölge + yıl bazlı tatil lookup interface'i.
//
// Bilinmeyen bölge veya yıl hata DEĞİLDİR — boş set döner.
// "Tatil verisi yok" ile "tatil yok" aynı şekilde ele alınır;
// ScheduleService bu günleri normal ders günü sayar.
type Provider interface {
	// HolidaysFor, verilen bölge ve yıldaki tatil günlerini döner.
	// Key formatı: "2006-01-02". Dönen map read-only kabul edilmelidir.
	HolidaysFor(region string, year int) map[string]bool
}

// StaticProvider, elle derlenmiş statik tatil tablosu üzerinden çalışan Provider.
type StaticProvider struct {
	// table: region → year → tatil günleri seti
	table map[string]map[int]map[string]bool
}

// NewStaticProvider, referans tatil verisiyle yüklü bir StaticProvider döner.
//
// Veri iki bölge içerir ("VN" ve "TR") ve yıl yıl elle derlenmiştir.
// Özel kurs merkezleri resmi tatillerin hepsinde kapalı olmaz —
// örneğin VN tablosunda 1 Ocak yoktur, yılbaşında ders yapılır.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{table: referenceTable()}
}

// HolidaysFor, Provider interface implementasyonu.
// Kopyalama yapılmaz — caller dönen map'i değiştirmemelidir.
func (p *StaticProvider) HolidaysFor(region string, year int) map[string]bool {
	years, ok := p.table[region]
	if !ok {
		return map[string]bool{}
	}
	days, ok := years[year]
	if !ok {
		return map[string]bool{}
	}
	return days
}

// IsHoliday, tek bir tarihin tatil olup olmadığını kontrol eder (convenience).
func IsHoliday(p Provider, region string, date time.Time) bool {
	return p.HolidaysFor(region, date.Year())[date.Format(DateFormat)]
}

// dateSet, tarih listesini set'e çevirir (tablo literal'lerini kısa tutar).
func dateSet(dates ...string) map[string]bool {
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}

// referenceTable, gömülü referans tatil verisi.
//
// VN: Tết (ay takvimine göre her yıl kayar), Hùng Kings, 30 Nisan,
// 1 Mayıs, 2 Eylül. 1 Ocak bilerek yok — merkez yılbaşında açık.
// TR: resmi tatiller + dini bayramlar (bayram tarihleri yıl yıl kayar).
func referenceTable() map[string]map[int]map[string]bool {
	return map[string]map[int]map[string]bool{
		"VN": {
			2024: dateSet(
				"2024-02-08", "2024-02-09", "2024-02-10", "2024-02-11",
				"2024-02-12", "2024-02-13", "2024-02-14", // Tết
				"2024-04-18", // Hùng Kings
				"2024-04-30", // Giải phóng miền Nam
				"2024-05-01", // Quốc tế Lao động
				"2024-09-02", "2024-09-03", // Quốc khánh
			),
			2025: dateSet(
				"2025-01-27", "2025-01-28", "2025-01-29", "2025-01-30",
				"2025-01-31", "2025-02-01", "2025-02-02", // Tết
				"2025-04-07", // Hùng Kings
				"2025-04-30",
				"2025-05-01",
				"2025-09-01", "2025-09-02",
			),
			2026: dateSet(
				"2026-02-16", "2026-02-17", "2026-02-18", "2026-02-19",
				"2026-02-20", "2026-02-21", "2026-02-22", // Tết
				"2026-04-26", // Hùng Kings
				"2026-04-30",
				"2026-05-01",
				"2026-09-02",
			),
			2027: dateSet(
				"2027-02-05", "2027-02-06", "2027-02-07", "2027-02-08",
				"2027-02-09", "2027-02-10", "2027-02-11", // Tết
				"2027-04-16", // Hùng Kings
				"2027-04-30",
				"2027-05-01",
				"2027-09-02",
			),
		},
		"TR": {
			2024: dateSet(
				"2024-01-01",
				"2024-04-10", "2024-04-11", "2024-04-12", // Ramazan Bayramı
				"2024-04-23",
				"2024-05-01",
				"2024-05-19",
				"2024-06-16", "2024-06-17", "2024-06-18", "2024-06-19", // Kurban Bayramı
				"2024-07-15",
				"2024-08-30",
				"2024-10-29",
			),
			2025: dateSet(
				"2025-01-01",
				"2025-03-30", "2025-03-31", "2025-04-01", // Ramazan Bayramı
				"2025-04-23",
				"2025-05-01",
				"2025-05-19",
				"2025-06-06", "2025-06-07", "2025-06-08", "2025-06-09", // Kurban Bayramı
				"2025-07-15",
				"2025-08-30",
				"2025-10-29",
			),
			2026: dateSet(
				"2026-01-01",
				"2026-03-20", "2026-03-21", "2026-03-22", // Ramazan Bayramı
				"2026-04-23",
				"2026-05-01",
				"2026-05-19",
				"2026-05-27", "2026-05-28", "2026-05-29", "2026-05-30", // Kurban Bayramı
				"2026-07-15",
				"2026-08-30",
				"2026-10-29",
			),
			2027: dateSet(
				"2027-01-01",
				"2027-03-09", "2027-03-10", "2027-03-11", // Ramazan Bayramı
				"2027-04-23",
				"2027-05-01",
				"2027-05-16", "2027-05-17", "2027-05-18", "2027-05-19", // Kurban Bayramı
				"2027-07-15",
				"2027-08-30",
				"2027-10-29",
			),
		},
	}
}

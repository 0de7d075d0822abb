// Package debounce — key bazlı, yeniden kullanılabilir debounce soyutlaması.
//
// Debounce nedir?
// Bir yan etkiyi, tetikleyici olaylar belirli bir süre "sessiz" kalana kadar
// ertelemek. Hızlı ardışık tetiklemeler tek bir çalıştırmaya indirgenir.
// Tipik kullanım: kullanıcı yazarken her tuşta DB'ye yazmak yerine,
// yazma durduktan 1sn sonra tek bir kayıt atmak (draft auto-save).
//
// Neden key bazlı?
// Her (kanal, thread) kombinasyonunun KENDİ timer'ı vardır. Kullanıcı başka
// bir thread'e geçtiğinde önceki thread'in bekleyen kaydı iptal OLMAZ —
// kendi süresinde tetiklenir. Tek global timer bu semantiği bozar.
//
// pkg/debounce hiçbir proje içi pakete bağımlı değildir (leaf dependency).
package debounce

import (
	"sync"
	"time"
)

// Debouncer, key başına bağımsız debounce timer'ları yönetir.
//
// Thread safety: tüm metotlar sync.Mutex ile korunur. Timer callback'leri
// ayrı goroutine'lerde çalışır; çalışmadan hemen önce hâlâ geçerli
// olup olmadıkları kontrol edilir (Cancel ile yarışma durumu).
type Debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer
	closed bool
}

// New, verilen sessizlik süresiyle yeni bir Debouncer oluşturur.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
	}
}

// Schedule, fn'in delay süre sonra çalışmasını planlar.
//
// Aynı key için bekleyen bir timer varsa sıfırlanır — eski fn asla çalışmaz,
// yenisi delay kadar sonra çalışır (coalescing). Farklı key'lerin
// timer'ları birbirinden etkilenmez.
//
// fn, Debouncer'ın kilidini TUTMADAN ayrı bir goroutine'de çağrılır;
// fn içinden Schedule/Cancel çağırmak güvenlidir.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}

	d.timers[key] = time.AfterFunc(d.delay, func() {
		// Timer tetiklendi — hâlâ kayıtlı mıyız kontrol et.
		// Cancel veya yeni Schedule bu timer'ı map'ten düşürmüş olabilir;
		// Stop() ile tetiklenme arasındaki dar pencerede yarışıyoruz.
		d.mu.Lock()
		if d.closed || d.timers[key] == nil {
			d.mu.Unlock()
			return
		}
		delete(d.timers, key)
		d.mu.Unlock()

		fn()
	})
}

// Cancel, key'in bekleyen çalıştırmasını iptal eder.
// Bekleyen bir şey yoksa no-op. Diğer key'ler etkilenmez.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
		delete(d.timers, key)
	}
}

// Pending, key için bekleyen bir çalıştırma olup olmadığını döner.
func (d *Debouncer) Pending(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, ok := d.timers[key]
	return ok
}

// Close, tüm bekleyen timer'ları iptal eder ve yeni Schedule çağrılarını
// no-op yapar. Owner (örn. DraftService) kapatılırken çağrılmalıdır —
// aksi halde teardown sonrası timer'lar tetiklenip ölü state'e yazar.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}

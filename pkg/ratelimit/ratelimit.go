// Package ratelimit — kullanıcı bazlı mesaj spam koruması.
//
// Tasarım:
// - window süresi içinde maxMessages mesaja izin verilir.
// - Limit aşıldığında cooldown başlar — cooldown boyunca tüm mesajlar reddedilir.
// - Cooldown bitince pencere sıfırlanır.
//
// Neden in-memory?
// Tek instance deploy'da her mesajda DB'ye sayaç yazmak gereksiz I/O yaratır.
// sync.Mutex ile thread-safe; background goroutine stale bucket'ları temizler.
//
// pkg/ratelimit hiçbir proje içi pakete bağımlı değildir (leaf dependency).
package ratelimit

import (
	"sync"
	"time"
)

// bucket, bir kullanıcı için mesaj sayacı ve cooldown bilgisi tutar.
//
// İki durumlu:
// 1. Normal mod: windowStart bazlı pencere, count artırılır.
// 2. Cooldown mod: cooldownUntil > now → tüm mesajlar reddedilir.
type bucket struct {
	count         int
	windowStart   time.Time
	cooldownUntil time.Time // zero value = cooldown yok
}

// MessageRateLimiter, kullanıcı bazlı mesaj rate limiter.
//
// Kullanım:
//
//	limiter := ratelimit.NewMessageRateLimiter(5, 5*time.Second, 15*time.Second)
//	if !limiter.Allow(userID) { return 429 }
type MessageRateLimiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	maxMessages int
	window      time.Duration
	cooldown    time.Duration
	stopCleanup chan struct{}
}

// NewMessageRateLimiter, yeni limiter oluşturur ve background temizleme
// goroutine'ini başlatır.
//
// maxMessages: pencere başına izin verilen mesaj sayısı (ör: 5).
// window: pencere süresi (ör: 5sn → 5 saniyede 5 mesaj).
// cooldown: limit aşıldığında uygulanan ceza süresi (ör: 15sn).
func NewMessageRateLimiter(maxMessages int, window, cooldown time.Duration) *MessageRateLimiter {
	rl := &MessageRateLimiter{
		buckets:     make(map[string]*bucket),
		maxMessages: maxMessages,
		window:      window,
		cooldown:    cooldown,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow, kullanıcının mesaj göndermesine izin verilip verilmediğini döner.
// false dönerse caller 429 dönmelidir.
func (rl *MessageRateLimiter) Allow(userID string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[userID]
	if !exists {
		rl.buckets[userID] = &bucket{count: 1, windowStart: now}
		return true
	}

	// Cooldown aktifse hiçbir mesaj geçmez
	if !b.cooldownUntil.IsZero() && now.Before(b.cooldownUntil) {
		return false
	}

	// Cooldown bitti — yeni pencere başlat
	if !b.cooldownUntil.IsZero() {
		b.count = 1
		b.windowStart = now
		b.cooldownUntil = time.Time{}
		return true
	}

	// Pencere süresi dolmuş — yeni pencere başlat
	if now.Sub(b.windowStart) > rl.window {
		b.count = 1
		b.windowStart = now
		return true
	}

	b.count++
	if b.count > rl.maxMessages {
		b.cooldownUntil = now.Add(rl.cooldown)
		return false
	}

	return true
}

// Close, background temizleme goroutine'ini durdurur.
func (rl *MessageRateLimiter) Close() {
	close(rl.stopCleanup)
}

// cleanupLoop, süresi geçmiş bucket'ları periyodik olarak siler.
// Bucket'lar kısa ömürlüdür (window + cooldown), ama çok kullanıcıda
// map'in sınırsız büyümesini engellemek gerekir.
func (rl *MessageRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictStale()
		case <-rl.stopCleanup:
			return
		}
	}
}

// evictStale, ne penceresi ne cooldown'ı aktif olan bucket'ları siler.
func (rl *MessageRateLimiter) evictStale() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for userID, b := range rl.buckets {
		windowExpired := now.Sub(b.windowStart) > rl.window
		cooldownExpired := b.cooldownUntil.IsZero() || now.After(b.cooldownUntil)
		if windowExpired && cooldownExpired {
			delete(rl.buckets, userID)
		}
	}
}

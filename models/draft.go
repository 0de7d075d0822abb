package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Draft, gönderilmemiş bir mesaj taslağını temsil eder.
// DB'deki "drafts" tablosunun Go karşılığı.
//
// Key: (user, channel, thread). ThreadID boş string ise taslak kanalın
// ana composer'ına aittir; doluysa o thread'in yanıt kutusuna.
// SQLite UNIQUE constraint'inde NULL'lar birbirine eşit sayılmaz —
// bu yüzden nullable kolon yerine '' default kullanılır.
//
// Yaşam döngüsü: her edit'te (debounce ile) upsert edilir, başarılı
// gönderimden sonra açıkça silinir. Navigasyonla SİLİNMEZ —
// kullanıcı geri döndüğünde taslağı bulur (reload dahil).
type Draft struct {
	UserID      string    `json:"user_id"`
	ChannelID   string    `json:"channel_id"`
	ThreadID    string    `json:"thread_id"` // '' = kanal composer'ı
	Content     string    `json:"content"`
	Attachments []string  `json:"attachments"` // Opak dosya referansları
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasContent, taslağın görünmeye değer içerik taşıyıp taşımadığını döner.
func (d *Draft) HasContent() bool {
	return strings.TrimSpace(d.Content) != "" || len(d.Attachments) > 0
}

// SaveDraftRequest, taslak kaydetme isteği.
type SaveDraftRequest struct {
	ThreadID    string   `json:"thread_id"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments"`
}

// Validate, SaveDraftRequest'in geçerli olup olmadığını kontrol eder.
// Boş content geçerlidir (kullanıcı yazdığını silmiş olabilir) —
// üst sınır mesaj limitiyle aynıdır.
func (r *SaveDraftRequest) Validate() error {
	if utf8.RuneCountInString(r.Content) > 2000 {
		return fmt.Errorf("draft content must be at most 2000 characters")
	}
	if len(r.Attachments) > 10 {
		return fmt.Errorf("draft may reference at most 10 attachments")
	}
	return nil
}

package models

import "time"

// ReadCursor, bir kullanıcının belirli bir kanaldaki okuma imlecini temsil eder.
//
// Watermark pattern: her mesajı tek tek "okundu" işaretlemek yerine
// "bu zamana kadar okudum" bilgisi tutulur. Okunmamış sayısı =
// bu zamandan SONRA gelen, başkasının yazdığı mesaj sayısı.
//
// Invariant: (user, channel) başına en fazla bir cursor vardır.
// Kayıt yoksa kanal hiç okunmamış demektir. Cursor bu subsystem
// tarafından asla silinmez — kanal silme dış concern'dür.
type ReadCursor struct {
	UserID     string    `json:"user_id"`
	ChannelID  string    `json:"channel_id"`
	LastReadAt time.Time `json:"last_read_at"`
}

// UnreadInfo, bir kanalın okunmamış mesaj bilgisini taşır.
// Sidebar badge'i için kullanılır.
//
// Approximate true ise sayı alt sınırdır: backfill sorgusu limit'e
// takıldı, gerçek sayı daha yüksek olabilir. Bu bilinçli bir
// doğruluk/maliyet trade-off'udur — kesin sayı sınırsız scan gerektirir.
type UnreadInfo struct {
	ChannelID   string `json:"channel_id"`
	UnreadCount int    `json:"unread_count"`
	Approximate bool   `json:"approximate"`
}

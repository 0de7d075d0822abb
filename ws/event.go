// Package ws, WebSocket bağlantı yönetimi ve gerçek zamanlı event dağıtımını sağlar.
//
// Mimari:
// - Hub: Tüm bağlantıları yöneten merkezi yapı (Observer pattern)
// - Client: Her WebSocket bağlantısını temsil eder
// - Event: Client-server arası iletilen mesaj formatı
//
// Event akışı:
// 1. Kullanıcı mesaj gönderir → HTTP POST → Service → DB kayıt
// 2. Service, Hub'ın broadcast metodlarından birini çağırır
// 3. Hub, event'i hedef client'lara iletir
// 4. Her client'ın WritePump'ı event'i WebSocket'e yazar
package ws

// Event, WebSocket üzerinden iletilen bir mesajı temsil eder.
//
// Op (operation): Event türü, "message_create", "heartbeat" vb.
// Data: Event'e özgü payload.
// Seq (sequence number): Her outbound event'e verilen artan sayı.
//   Frontend eksik event tespit etmek için seq'i takip eder.
//   Örnek: seq 5'ten sonra seq 7 gelirse, 6 kaybolmuş demektir.
type Event struct {
	Op   string `json:"op"`
	Data any    `json:"d,omitempty"`
	Seq  int64  `json:"seq,omitempty"`
}

// Client → Server operasyonları
const (
	OpHeartbeat      = "heartbeat"       // Client her 30sn'de gönderir, "hâlâ bağlıyım" sinyali
	OpTyping         = "typing"          // Kullanıcı yazıyor
	OpPresenceUpdate = "presence_update" // Durum değişikliği (online/idle/offline)
)

// Server → Client operasyonları
const (
	OpReady        = "ready"         // Bağlantı kurulduğunda ilk gönderilen
	OpHeartbeatAck = "heartbeat_ack" // Heartbeat'e yanıt

	OpMessageCreate = "message_create" // Yeni mesaj oluşturuldu
	OpMessageUpdate = "message_update" // Mesaj düzenlendi
	OpMessageDelete = "message_delete" // Mesaj silindi

	OpChannelCreate = "channel_create" // Yeni kanal oluşturuldu
	OpChannelUpdate = "channel_update" // Kanal düzenlendi
	OpChannelDelete = "channel_delete" // Kanal silindi

	OpTypingStart = "typing_start" // Bir kullanıcı yazıyor
	OpPresence    = "presence_update"

	OpMemberJoin  = "member_join"  // Kanala yeni üye katıldı
	OpMemberLeave = "member_leave" // Üye kanaldan ayrıldı

	// Reaction (emoji tepki) operasyonları
	OpReactionUpdate = "reaction_update" // Mesajın reaction listesi güncellendi

	// Okuma imleci: kullanıcı bir kanalı okundu işaretlediğinde DİĞER
	// tab'larına gönderilir, böylece unread badge her yerde aynı anda söner.
	OpReadCursorUpdate = "read_cursor_update"

	// Sınıf operasyonları
	OpClassCreate = "class_create" // Yeni sınıf oluşturuldu
	OpClassDelete = "class_delete" // Sınıf silindi
)

// ReadyData, bağlantı kurulduğunda client'a gönderilen ilk event'in payload'ı.
//
// Frontend bu event ile:
// 1. Online kullanıcıları Set'e atar (presence indicator için)
// 2. Unread sayaçlarını badge'lere yazar
// 3. Taslakları composer'lara geri yükler
type ReadyData struct {
	OnlineUserIDs []string         `json:"online_user_ids"`
	Unreads       []ReadyUnread    `json:"unreads"`
	Drafts        []ReadyDraftItem `json:"drafts"`
}

// ReadyUnread, ready event'indeki tek bir kanalın unread özeti.
// models'a bağımlılığı kırmak için ayrı tanımlanır.
type ReadyUnread struct {
	ChannelID   string `json:"channel_id"`
	UnreadCount int    `json:"unread_count"`
	Approximate bool   `json:"approximate"`
}

// ReadyDraftItem, ready event'inde gönderilen minimal taslak bilgisi.
type ReadyDraftItem struct {
	ChannelID string `json:"channel_id"`
	ThreadID  string `json:"thread_id"`
	Content   string `json:"content"`
}

// PresenceData, bir kullanıcının online durumu değiştiğinde broadcast edilen payload.
type PresenceData struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// TypingData, typing event'inin payload'ı.
type TypingData struct {
	ChannelID string `json:"channel_id"`
}

// TypingStartData, typing_start event'inin payload'ı (broadcast edilen).
type TypingStartData struct {
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	ChannelID string `json:"channel_id"`
}

// ReadCursorData, read_cursor_update event'inin payload'ı.
type ReadCursorData struct {
	ChannelID  string `json:"channel_id"`
	LastReadAt string `json:"last_read_at"` // RFC3339
}

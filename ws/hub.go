package ws

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
)

// EventPublisher, service katmanının WebSocket event'leri broadcast etmek için
// kullandığı interface.
//
// Dependency Inversion: Service'ler Hub'ın concrete struct'ına değil,
// bu interface'e bağımlıdır. Böylece:
// 1. Service test edilirken mock EventPublisher kullanılabilir
// 2. Hub implementasyonu değişse bile service kodu etkilenmez
type EventPublisher interface {
	BroadcastToAll(event Event)
	BroadcastToAllExcept(excludeUserID string, event Event)
	BroadcastToUser(userID string, event Event)
	BroadcastToUsers(userIDs []string, event Event)
	GetOnlineUserIDs() []string
}

// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır (Observer pattern).
//
// Observer pattern nedir?
// Bir "subject" (Hub) birden fazla "observer"ı (Client) takip eder.
// Bir event olduğunda Hub, ilgili observer'lara bildirim gönderir.
// Bir kanala mesaj yazıldığında tüm üyelerin ekranında belirmesi bu pattern'dir.
//
// Go channel nedir? (register, unregister)
// Goroutine'ler arası güvenli iletişim sağlayan yapılar.
// Hub.Run() goroutine'i bu channel'lardan `select` ile okur:
// - register channel'dan yeni client gelirse → clients map'e ekle
// - unregister channel'dan client gelirse → map'ten çıkar
type Hub struct {
	// clients: userID → Client set (bir kullanıcının birden fazla tab'ı olabilir).
	// Go'da set yoktur, map[*Client]bool kullanılır; bool her zaman true'dur.
	clients map[string]map[*Client]bool

	// mu: clients map'ini koruyan read-write mutex.
	// Okuma ağırlıklı erişimde (broadcast'ler) RLock paralel çalışır.
	mu sync.RWMutex

	// register/unregister: Client giriş/çıkış sinyalleri.
	register   chan *Client
	unregister chan *Client

	// seq: Her outbound event'e verilen artan sayaç.
	// atomic.Int64: Birden fazla goroutine'in güvenle okuyup yazabildiği sayı.
	seq atomic.Int64

	// usernames: userID → username cache (typing broadcast için).
	usernames map[string]string
	userMu    sync.RWMutex

	// onPresenceUpdate: Client presence_update gönderdiğinde çağrılır.
	// DB persist + broadcast sorumluluğu main.go'daki callback'e aittir,
	// böylece ws paketi repository katmanını import etmez.
	onPresenceUpdate func(userID, status string)

	// onFirstConnect / onFullyDisconnected: bir kullanıcının İLK bağlantısı
	// açıldığında ve SON bağlantısı kapandığında çağrılır. Aynı kullanıcının
	// ikinci tab'ı bu callback'leri tetiklemez.
	onFirstConnect      func(userID string)
	onFullyDisconnected func(userID string)
}

// NewHub, yeni bir Hub oluşturur.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		usernames:  make(map[string]string),
	}
}

// SetPresenceCallback, presence_update event'lerinin işleyicisini bağlar.
// main.go wiring sırasında bir kez çağrılır.
func (h *Hub) SetPresenceCallback(fn func(userID, status string)) {
	h.onPresenceUpdate = fn
}

// OnUserFirstConnect, kullanıcının ilk bağlantısında çağrılacak callback'i bağlar.
func (h *Hub) OnUserFirstConnect(fn func(userID string)) {
	h.onFirstConnect = fn
}

// OnUserFullyDisconnected, kullanıcının son bağlantısı koptuğunda çağrılacak
// callback'i bağlar.
func (h *Hub) OnUserFullyDisconnected(fn func(userID string)) {
	h.onFullyDisconnected = fn
}

// Run, Hub'ın ana event loop'udur. main.go'da `go hub.Run()` ile başlatılır.
//
// select nedir?
// Birden fazla channel'ı aynı anda dinler.
// Hangi channel'dan veri gelirse o case çalışır.
// Hiçbirinden gelmezse bekler (blocking).
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

// addClient, yeni bir client'ı Hub'a ekler.
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	firstConnection := false
	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
		firstConnection = true
	}
	h.clients[client.userID][client] = true

	log.Printf("[ws] client connected: user=%s (total connections for user: %d)",
		client.userID, len(h.clients[client.userID]))

	// Callback ayrı goroutine'de çalışır: Hub'ın Lock'u ile callback içindeki
	// BroadcastToAll'ın RLock'u çakışmasın.
	if firstConnection && h.onFirstConnect != nil {
		go h.onFirstConnect(client.userID)
	}
}

// removeClient, bir client'ı Hub'dan çıkarır ve send channel'ını kapatır.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			close(client.send)

			// Kullanıcının başka bağlantısı kalmadıysa map'ten sil
			if len(clients) == 0 {
				delete(h.clients, client.userID)
				log.Printf("[ws] user fully disconnected: %s", client.userID)
				if h.onFullyDisconnected != nil {
					go h.onFullyDisconnected(client.userID)
				}
			} else {
				log.Printf("[ws] client disconnected: user=%s (remaining: %d)",
					client.userID, len(clients))
			}
		}
	}
}

// BroadcastToAll, tüm bağlı client'lara event gönderir.
func (h *Hub) BroadcastToAll(event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal broadcast event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.clients {
		for client := range clients {
			h.trySend(client, data)
		}
	}
}

// BroadcastToAllExcept, belirli bir kullanıcı hariç tüm client'lara event gönderir.
// Typing indicator gibi durumlarda gönderen kişiye kendi typing event'i gitmez.
func (h *Hub) BroadcastToAllExcept(excludeUserID string, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal broadcast event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for userID, clients := range h.clients {
		if userID == excludeUserID {
			continue
		}
		for client := range clients {
			h.trySend(client, data)
		}
	}
}

// BroadcastToUser, belirli bir kullanıcının tüm bağlantılarına event gönderir.
func (h *Hub) BroadcastToUser(userID string, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal user event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.clients[userID]; ok {
		for client := range clients {
			h.trySend(client, data)
		}
	}
}

// BroadcastToUsers, verilen kullanıcı listesinin tüm bağlantılarına event gönderir.
// Kanal üyelerine scoped fan-out için kullanılır: mesaj, reaction ve üye
// event'leri kanalın üyesi olmayan kullanıcılara gitmez.
func (h *Hub) BroadcastToUsers(userIDs []string, event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[ws] failed to marshal group event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, userID := range userIDs {
		if clients, ok := h.clients[userID]; ok {
			for client := range clients {
				h.trySend(client, data)
			}
		}
	}
}

// trySend, data'yı client buffer'ına non-blocking ekler.
// Buffer doluysa client yavaş demektir, bağlantı koparılır.
// Caller h.mu'yu tutarken çağrılır; unregister bu yüzden goroutine'le gönderilir.
func (h *Hub) trySend(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		go func(c *Client) { h.unregister <- c }(client)
	}
}

// GetOnlineUserIDs, bağlı olan tüm kullanıcı ID'lerini döner.
func (h *Hub) GetOnlineUserIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := make([]string, 0, len(h.clients))
	for userID := range h.clients {
		ids = append(ids, userID)
	}
	return ids
}

// SetUserUsername, kullanıcı bağlandığında username cache'ini günceller.
func (h *Hub) SetUserUsername(userID, username string) {
	h.userMu.Lock()
	defer h.userMu.Unlock()
	h.usernames[userID] = username
}

// getUserUsername, userID'den username döner (typing broadcast için).
func (h *Hub) getUserUsername(userID string) string {
	h.userMu.RLock()
	defer h.userMu.RUnlock()
	return h.usernames[userID]
}

// Shutdown, tüm client bağlantılarını kapatır (graceful shutdown).
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			close(client.send)
		}
	}
	h.clients = make(map[string]map[*Client]bool)
	log.Println("[ws] hub shut down, all connections closed")
}

// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin" dir — sadece HTTP parse + service call + response write.
package main

import (
	"github.com/akinalp/classhub/handlers"
	"github.com/akinalp/classhub/ws"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Channel  *handlers.ChannelHandler
	Message  *handlers.MessageHandler
	Reaction *handlers.ReactionHandler
	Unread   *handlers.UnreadHandler
	Draft    *handlers.DraftHandler
	Class    *handlers.ClassHandler
	WS       *ws.Handler
}

// initHandlers, tüm handler'ları service dependency'leri ile oluşturur.
// ready, WebSocket bağlantısı açıldığında gönderilen ready event payload'ını
// üretir (unread özetleri + taslaklar + online kullanıcılar).
func initHandlers(svcs *Services, hub *ws.Hub, ready ws.ReadyProvider) *Handlers {
	return &Handlers{
		Auth:     handlers.NewAuthHandler(svcs.Auth),
		Channel:  handlers.NewChannelHandler(svcs.Channel),
		Message:  handlers.NewMessageHandler(svcs.Message),
		Reaction: handlers.NewReactionHandler(svcs.Reaction),
		Unread:   handlers.NewUnreadHandler(svcs.Unread),
		Draft:    handlers.NewDraftHandler(svcs.Draft),
		Class:    handlers.NewClassHandler(svcs.Class),
		WS:       ws.NewHandler(hub, svcs.Auth, ready),
	}
}

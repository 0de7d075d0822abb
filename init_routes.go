// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ı burada tanımlıdır:
//   - auth: JWT token doğrulaması (context'e *models.User koyar)
package main

import (
	"fmt"
	"net/http"

	"github.com/akinalp/classhub/middleware"
	"github.com/akinalp/classhub/repository"
	"github.com/akinalp/classhub/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
// Oluşturduğu AuthMiddleware'i döner — graceful shutdown'da user cache'inin
// cleanup goroutine'i kapatılır.
//
// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE
// tanımlanmalı. Örnek: "/api/classes/preview" → "/api/classes/{id}"
// öncesinde, yoksa Go router "preview" kelimesini bir id olarak yorumlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
) *middleware.AuthMiddleware {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)

	// ─── Middleware Chain Helper ───
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(http.HandlerFunc(handler))
	}

	// Health check
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"classhub"}`)
	})

	// Auth — public endpoint'ler (token gerekmez)
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.Handle("POST /api/auth/logout", auth(h.Auth.Logout))

	// User
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))

	// Channels
	mux.Handle("GET /api/channels", auth(h.Channel.List))
	mux.Handle("POST /api/channels", auth(h.Channel.Create))
	mux.Handle("GET /api/channels/{id}", auth(h.Channel.Get))
	mux.Handle("PATCH /api/channels/{id}", auth(h.Channel.Update))
	mux.Handle("DELETE /api/channels/{id}", auth(h.Channel.Delete))
	mux.Handle("POST /api/channels/{id}/join", auth(h.Channel.Join))
	mux.Handle("POST /api/channels/{id}/leave", auth(h.Channel.Leave))

	// Messages
	mux.Handle("GET /api/channels/{id}/messages", auth(h.Message.List))
	mux.Handle("POST /api/channels/{id}/messages", auth(h.Message.Create))
	mux.Handle("PATCH /api/messages/{id}", auth(h.Message.Update))
	mux.Handle("DELETE /api/messages/{id}", auth(h.Message.Delete))
	mux.Handle("GET /api/messages/{id}/thread", auth(h.Message.GetThread))

	// Reactions
	mux.Handle("POST /api/messages/{id}/reactions", auth(h.Reaction.Toggle))

	// Unreads — okunmamış sayaçları ve okundu işaretleme
	mux.Handle("GET /api/unreads", auth(h.Unread.GetUnreads))
	mux.Handle("POST /api/channels/{id}/read", auth(h.Unread.MarkRead))

	// Drafts — composer taslakları (yazma debounce'lu)
	mux.Handle("PUT /api/channels/{id}/draft", auth(h.Draft.Save))
	mux.Handle("GET /api/channels/{id}/draft", auth(h.Draft.Get))
	mux.Handle("DELETE /api/channels/{id}/draft", auth(h.Draft.Delete))
	mux.Handle("GET /api/drafts", auth(h.Draft.ListMine))

	// Classes — "preview" literal'i {id}'den önce
	mux.Handle("POST /api/classes/preview", auth(h.Class.Preview))
	mux.Handle("GET /api/classes", auth(h.Class.List))
	mux.Handle("POST /api/classes", auth(h.Class.Create))
	mux.Handle("GET /api/classes/{id}", auth(h.Class.Get))
	mux.Handle("DELETE /api/classes/{id}", auth(h.Class.Delete))

	// WebSocket — token query parameter ile authenticate edilir
	//
	// Neden auth middleware kullanmıyoruz?
	// WebSocket upgrade sırasında tarayıcılar custom HTTP header gönderemez.
	// Bu yüzden JWT token URL query parameter olarak gönderilir:
	//   ws://server/ws?token=JWT_TOKEN
	// WS handler kendi içinde token doğrulaması yapar.
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)

	return authMw
}

// Package main, classhub backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//   1. Config'i yükle
//   2. Database'i başlat (gömülü migration'larla)
//   3. WebSocket Hub'ı başlat
//   4. Repository'leri oluştur (DB bağlantısı ile)
//   5. Service'leri oluştur (repository'ler + hub ile)
//   6. Hub callback'lerini ve ready provider'ı bağla
//   7. Handler'ları oluştur (service'ler ile)
//   8. HTTP router'ı kur, route'ları bağla
//   9. CORS yapılandır
//  10. HTTP Server'ı başlat
//  11. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
// Katman başlatma detayları init_*.go dosyalarına bölünmüştür.
package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akinalp/classhub/config"
	"github.com/akinalp/classhub/database"
	"github.com/akinalp/classhub/ws"
	"github.com/rs/cors"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] classhub server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	//
	// Migration'lar binary'ye gömülüdür (go:embed) — çalışma dizininden
	// bağımsız, tek dosya deploy edilebilir.
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		log.Fatalf("[main] failed to access embedded migrations: %v", err)
	}

	db, err := database.New(cfg.Database.Path, migrationsFS)
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. WebSocket Hub ───
	//
	// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır.
	// `go hub.Run()` ayrı bir goroutine'de event loop başlatır:
	// register/unregister channel'larını dinler ve client map'ini günceller.
	// Hub aynı zamanda EventPublisher interface'ini implement eder —
	// service'ler hub'a doğrudan bağımlı olmak yerine interface üzerinden erişir.
	hub := ws.NewHub()

	// ─── 4. Repository Layer ───
	repos := initRepositories(db.Conn)

	// ─── 5. Service Layer ───
	svcs, limiters := initServices(repos, hub, cfg)

	// ─── 6. Hub Callbacks + Ready Provider ───
	registerHubCallbacks(hub, repos.User)
	ready := newReadyProvider(svcs.Unread, svcs.Draft, hub)

	go hub.Run()

	// ─── 7. Handler Layer ───
	h := initHandlers(svcs, hub, ready)

	// ─── 8. HTTP Router ───
	mux := http.NewServeMux()
	authMw := initRoutes(mux, h, svcs.Auth, repos.User)

	// ─── 9. CORS ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000", // Vite dev server
			"http://localhost:1420", // Tauri dev
			"tauri://localhost",     // Tauri production
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		Debug:            false,
	})

	handler := corsHandler.Handler(mux)

	// ─── 10. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ─── 11. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Kapanış sırası:
	// 1. WebSocket bağlantıları — client'lar yeni event almayı durdurur.
	// 2. Bekleyen taslaklar — debounce buffer'ındaki yazmalar DB'ye flush edilir.
	//    Flush edilmezse kullanıcı restart sonrası taslağını kaybeder.
	// 3. Arka plan cleanup goroutine'leri (cache, rate limiter).
	// 4. HTTP server — yeni request kabul etmeyi durdurur, mevcutları bekler.
	hub.Shutdown()
	svcs.Draft.Close()
	authMw.Close()
	limiters.Message.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}

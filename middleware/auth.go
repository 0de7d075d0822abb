// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Middleware Pattern nedir?
// Her HTTP request, handler'a ulaşmadan önce bir veya daha fazla middleware'dan geçer.
// Middleware'lar zincir şeklinde çalışır: Auth → Handler
//
// Go'da middleware bir fonksiyondur:
//   func(next http.Handler) http.Handler
//
// "next" parametresi zincirdeki bir sonraki handler'dır.
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır.
// Eğer hata varsa next'i çağırmaz → request burada durur.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/akinalp/classhub/handlers"
	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
	"github.com/akinalp/classhub/pkg/cache"
	"github.com/akinalp/classhub/repository"
	"github.com/akinalp/classhub/services"
)

// AuthMiddleware, JWT token doğrulama middleware'ı.
//
// userCache: her request'te DB'ye gitmemek için kısa TTL'li kullanıcı
// cache'i. TTL kısa tutulur — silinen kullanıcının token'ı en fazla
// TTL kadar daha çalışır.
type AuthMiddleware struct {
	authService services.AuthService
	userRepo    repository.UserRepository
	userCache   *cache.TTLCache[string, *models.User]
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
		userCache:   cache.New[string, *models.User](30*time.Second, time.Minute),
	}
}

// Close, cache'in temizlik goroutine'ini durdurur.
func (m *AuthMiddleware) Close() {
	m.userCache.Close()
}

// Require, JWT token zorunlu kılan middleware.
// Token yoksa veya geçersizse → 401 Unauthorized.
//
// HTTP header formatı: Authorization: Bearer <token>
//
// Akış:
// 1. "Authorization" header'ını oku, "Bearer " prefix'ini kaldır
// 2. AuthService.ValidateAccessToken() ile doğrula
// 3. Kullanıcıyı cache'ten (yoksa DB'den) getir → context'e ekle
// 4. Geçersizse → 401 döndür, next ÇAĞIRILMAZ
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := m.authService.ValidateAccessToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		// Token geçerli ama kullanıcı silinmiş olabilir — DB kontrolü şart.
		user, ok := m.userCache.Get(claims.UserID)
		if !ok {
			user, err = m.userRepo.GetByID(r.Context(), claims.UserID)
			if err != nil {
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found")
				return
			}
			// Password hash'i temizle — context'te taşınmamalı
			user.PasswordHash = ""
			m.userCache.Set(claims.UserID, user)
		}

		// context.WithValue: mevcut context'e key-value ekler.
		// Downstream handler'lar r.Context().Value(UserContextKey) ile erişir.
		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

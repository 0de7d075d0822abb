package models

import "time"

// Session, JWT refresh token oturumunu temsil eder.
//
// Access token kısa ömürlüdür (dakikalar) ve DB'ye yazılmaz.
// Refresh token uzun ömürlüdür ve DB'de tutulur — böylece:
//   - Çalınan token revoke edilebilir
//   - Logout'ta sadece ilgili oturum silinir
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"-"` // API'ye gönderilmez
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

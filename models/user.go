// Package models, uygulamanın domain modellerini tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda
// API'den gelen/giden verilerin şeklini belirler. `json:"..."` tag'leri
// serialize/deserialize davranışını kontrol eder.
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// UserStatus, kullanıcının çevrimiçi durumunu temsil eder.
// Go'da enum yoktur — typed constant kullanılır.
type UserStatus string

const (
	UserStatusOnline  UserStatus = "online"
	UserStatusIdle    UserStatus = "idle"
	UserStatusOffline UserStatus = "offline"
)

// UserRole, kullanıcının sistem içindeki rolünü temsil eder.
// Eğitmenler sınıf açabilir; yöneticiler kanal yönetir.
type UserRole string

const (
	UserRoleMember  UserRole = "member"
	UserRoleTeacher UserRole = "teacher"
	UserRoleManager UserRole = "manager"
)

// User, bir kullanıcıyı temsil eder.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	DisplayName  *string    `json:"display_name"` // *string = nullable
	Email        string     `json:"email"`
	AvatarURL    *string    `json:"avatar_url"`
	PasswordHash string     `json:"-"` // json:"-" → API response'a DAHİL ETME
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CreateUserRequest, kayıt olurken frontend'den gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
type CreateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// Validate, CreateUserRequest'in geçerli olup olmadığını kontrol eder.
//   - Username: 3-32 karakter, alfanumerik + alt çizgi
//   - Email: basit format kontrolü (tam doğrulama email sağlayıcısının işi)
//   - Password: minimum 8 karakter
//   - DisplayName: opsiyonel, max 32 karakter
func (r *CreateUserRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	usernameLen := utf8.RuneCountInString(r.Username)
	if usernameLen < 3 || usernameLen > 32 {
		return fmt.Errorf("username must be between 3 and 32 characters")
	}
	for _, ch := range r.Username {
		if !isUsernameChar(ch) {
			return fmt.Errorf("username may only contain letters, digits and underscores")
		}
	}

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if !strings.Contains(r.Email, "@") || len(r.Email) > 254 {
		return fmt.Errorf("invalid email address")
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	r.DisplayName = strings.TrimSpace(r.DisplayName)
	if utf8.RuneCountInString(r.DisplayName) > 32 {
		return fmt.Errorf("display name must be at most 32 characters")
	}

	return nil
}

// LoginRequest, giriş isteği.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" || r.Password == "" {
		return fmt.Errorf("username and password are required")
	}
	return nil
}

// isUsernameChar: ASCII harf, rakam veya alt çizgi.
func isUsernameChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_'
}

package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Message, bir kanal mesajını temsil eder.
// DB'deki "messages" tablosunun Go karşılığı.
//
// ParentID nil değilse mesaj bir thread yanıtıdır — parent'ı aynı kanaldaki
// başka bir mesajdır. Thread ağacı ThreadNode ile kurulur (thread.go).
//
// Author alanı JOIN ile doldurulur — DB'de ayrı tablodadır ama API
// response'unda birlikte döner.
type Message struct {
	ID        string          `json:"id"`
	ChannelID string          `json:"channel_id"`
	UserID    string          `json:"user_id"`
	ParentID  *string         `json:"parent_id"` // Nullable — nil ise kök mesaj
	Content   string          `json:"content"`
	EditedAt  *time.Time      `json:"edited_at"` // Düzenlendiyse zaman damgası
	CreatedAt time.Time       `json:"created_at"`
	Author    *User           `json:"author,omitempty"`    // JOIN ile gelen yazar bilgisi
	Reactions []ReactionGroup `json:"reactions,omitempty"` // Gruplu emoji tepkileri
}

// MessagePage, cursor-based pagination sonucu.
//
// Offset yerine "bu mesajdan önceki N mesajı getir" kullanılır —
// yeni mesaj eklendiğinde sayfa kayması olmaz.
type MessagePage struct {
	Messages []Message `json:"messages"`
	HasMore  bool      `json:"has_more"` // Daha eski mesajlar var mı?
}

// CreateMessageRequest, yeni mesaj gönderme isteği.
// ParentID doluysa mesaj o mesaja thread yanıtı olarak eklenir.
type CreateMessageRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

// Validate, CreateMessageRequest'in geçerli olup olmadığını kontrol eder.
// İçerik 1-2000 karakter arası olmalı.
func (r *CreateMessageRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	contentLen := utf8.RuneCountInString(r.Content)
	if contentLen < 1 {
		return fmt.Errorf("message content is required")
	}
	if contentLen > 2000 {
		return fmt.Errorf("message content must be at most 2000 characters")
	}
	if r.ParentID != nil && strings.TrimSpace(*r.ParentID) == "" {
		return fmt.Errorf("parent_id cannot be empty when present")
	}
	return nil
}

// UpdateMessageRequest, mesaj düzenleme isteği.
type UpdateMessageRequest struct {
	Content string `json:"content"`
}

// Validate, UpdateMessageRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateMessageRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	contentLen := utf8.RuneCountInString(r.Content)
	if contentLen < 1 {
		return fmt.Errorf("message content is required")
	}
	if contentLen > 2000 {
		return fmt.Errorf("message content must be at most 2000 characters")
	}
	return nil
}

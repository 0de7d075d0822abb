package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Channel, bir takım kanalını temsil eder.
// DB'deki "channels" tablosunun Go karşılığı.
//
// Üyelik ayrı tablodadır (channel_members) — Channel struct'ında
// MemberIDs alanı JOIN ile doldurulur, API response'unda birlikte döner.
type Channel struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Topic     *string   `json:"topic"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	MemberIDs []string  `json:"member_ids,omitempty"` // channel_members JOIN sonucu
}

// CreateChannelRequest, yeni kanal oluşturma isteği.
// Members: kanala baştan eklenecek kullanıcı ID'leri (oluşturan her zaman üyedir).
type CreateChannelRequest struct {
	Name    string   `json:"name"`
	Topic   string   `json:"topic"`
	Members []string `json:"members"`
}

// Validate, CreateChannelRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateChannelRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("channel name must be between 1 and 100 characters")
	}
	for _, ch := range r.Name {
		if !isValidChannelNameChar(ch) {
			return fmt.Errorf("channel name contains invalid characters")
		}
	}

	r.Topic = strings.TrimSpace(r.Topic)
	if utf8.RuneCountInString(r.Topic) > 1024 {
		return fmt.Errorf("channel topic must be at most 1024 characters")
	}

	return nil
}

// UpdateChannelRequest, kanal güncelleme isteği.
// Pointer (*string) kullanılır — nil ise o alan güncellenmez (partial update).
type UpdateChannelRequest struct {
	Name  *string `json:"name"`
	Topic *string `json:"topic"`
}

// Validate, UpdateChannelRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateChannelRequest) Validate() error {
	if r.Name != nil {
		*r.Name = strings.TrimSpace(*r.Name)
		nameLen := utf8.RuneCountInString(*r.Name)
		if nameLen < 1 || nameLen > 100 {
			return fmt.Errorf("channel name must be between 1 and 100 characters")
		}
		for _, ch := range *r.Name {
			if !isValidChannelNameChar(ch) {
				return fmt.Errorf("channel name contains invalid characters")
			}
		}
	}

	if r.Topic != nil {
		*r.Topic = strings.TrimSpace(*r.Topic)
		if utf8.RuneCountInString(*r.Topic) > 1024 {
			return fmt.Errorf("channel topic must be at most 1024 characters")
		}
	}

	return nil
}

// isValidChannelNameChar, kanal adında izin verilen karakterleri kontrol eder.
// unicode.IsLetter tüm dillerdeki harfleri kapsar (ş/ç/ğ, ế/ộ dahil).
func isValidChannelNameChar(ch rune) bool {
	return unicode.IsLetter(ch) ||
		unicode.IsDigit(ch) ||
		ch == '-' || ch == '_' || ch == ' '
}

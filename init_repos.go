// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository aynı DB bağlantısını alır ve interface döner.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/akinalp/classhub/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? 8 ayrı repository değişkeni yerine tek struct kullanmak:
// 1. Fonksiyon imzalarını temiz tutar (tek parametre yerine 8 parametre)
// 2. Yeni repository eklendiğinde sadece struct + initRepositories güncellenir
// 3. IDE auto-complete ile kolay erişim (repos.User, repos.Channel, vb.)
type Repositories struct {
	User       repository.UserRepository
	Session    repository.SessionRepository
	Channel    repository.ChannelRepository
	Message    repository.MessageRepository
	Reaction   repository.ReactionRepository
	ReadCursor repository.ReadCursorRepository
	Draft      repository.DraftRepository
	Class      repository.ClassRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Her NewSQLite* fonksiyonu aynı *sql.DB'yi alır — Go'nun sql.DB'si
// thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:       repository.NewSQLiteUserRepo(conn),
		Session:    repository.NewSQLiteSessionRepo(conn),
		Channel:    repository.NewSQLiteChannelRepo(conn),
		Message:    repository.NewSQLiteMessageRepo(conn),
		Reaction:   repository.NewSQLiteReactionRepo(conn),
		ReadCursor: repository.NewSQLiteReadCursorRepo(conn),
		Draft:      repository.NewSQLiteDraftRepo(conn),
		Class:      repository.NewSQLiteClassRepo(conn),
	}
}

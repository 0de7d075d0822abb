package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
	"github.com/akinalp/classhub/pkg/debounce"
	"github.com/akinalp/classhub/repository"
)

// draftDebounceDelay: son tuş vuruşundan sonra DB yazımına kadar geçen
// sessizlik süresi. Her yeni edit sayacı sıfırdan başlatır — yazarken
// hiç yazma olmaz, durunca tek yazma olur.
const draftDebounceDelay = 1000 * time.Millisecond

// DraftService, mesaj taslaklarının debounce'lu kalıcılığını yönetir.
//
// Her composer'ın (user, channel, thread) kendi bağımsız debounce
// zamanlayıcısı vardır: A kanalında yazmak B kanalının bekleyen
// yazmasını geciktirmez.
//
// SaveDraft çağrısı içeriği bellekte tutar ve zamanlayıcıyı kurar;
// süre dolunca bekleyen içerik DB'ye upsert edilir. GetDraft bekleyen
// içerik varsa ONU döner — kullanıcı hızla geri dönerse henüz DB'ye
// inmemiş taslağını kaybetmez.
type DraftService interface {
	SaveDraft(ctx context.Context, userID, channelID string, req *models.SaveDraftRequest) error
	GetDraft(ctx context.Context, userID, channelID, threadID string) (*models.Draft, error)
	GetAllDrafts(ctx context.Context, userID string) ([]models.Draft, error)
	// ClearDraft, taslağı ANINDA siler (debounce yok) ve bekleyen
	// yazma varsa iptal eder. Başarılı mesaj gönderiminden sonra çağrılır.
	ClearDraft(ctx context.Context, userID, channelID, threadID string) error
	// Flush, bekleyen tüm taslakları hemen DB'ye yazar (graceful shutdown).
	Flush()
	Close()
}

type draftService struct {
	draftRepo repository.DraftRepository
	debouncer *debounce.Debouncer

	// pending: composite key → henüz DB'ye yazılmamış taslak.
	mu      sync.Mutex
	pending map[string]*models.Draft
}

// NewDraftService, constructor.
func NewDraftService(draftRepo repository.DraftRepository) DraftService {
	return &draftService{
		draftRepo: draftRepo,
		debouncer: debounce.New(draftDebounceDelay),
		pending:   make(map[string]*models.Draft),
	}
}

// draftKey, composer kimliğini tek string'e indirir.
// '|' kullanıcı/kanal ID'lerinde geçemez (hex + uuid).
func draftKey(userID, channelID, threadID string) string {
	return userID + "|" + channelID + "|" + threadID
}

// SaveDraft, taslağı bellekte günceller ve debounce'lu yazmayı kurar.
//
// Aynı composer'a arka arkaya gelen çağrılar tek DB yazmasına düşer;
// sadece SON içerik yazılır. Farklı composer'lar birbirini etkilemez.
func (s *draftService) SaveDraft(ctx context.Context, userID, channelID string, req *models.SaveDraftRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	draft := &models.Draft{
		UserID:      userID,
		ChannelID:   channelID,
		ThreadID:    req.ThreadID,
		Content:     req.Content,
		Attachments: req.Attachments,
		UpdatedAt:   time.Now().UTC(),
	}

	key := draftKey(userID, channelID, req.ThreadID)

	s.mu.Lock()
	s.pending[key] = draft
	s.mu.Unlock()

	s.debouncer.Schedule(key, func() {
		s.flushKey(key)
	})

	return nil
}

// flushKey, bekleyen taslağı DB'ye yazar ve pending'den düşürür.
// Debounce zamanlayıcısı tetiklediğinde çalışır; HTTP context'i çoktan
// kapanmış olabileceği için Background context kullanılır.
func (s *draftService) flushKey(key string) {
	s.mu.Lock()
	draft, ok := s.pending[key]
	delete(s.pending, key)
	s.mu.Unlock()

	if !ok {
		return // ClearDraft araya girmiş
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.draftRepo.Upsert(ctx, draft); err != nil {
		log.Printf("[draft] failed to persist draft user=%s channel=%s: %v", draft.UserID, draft.ChannelID, err)
	}
}

// GetDraft, composer'ın taslağını döner. Bekleyen (henüz DB'ye inmemiş)
// içerik öncelliklidir. Taslak yoksa ErrNotFound.
func (s *draftService) GetDraft(ctx context.Context, userID, channelID, threadID string) (*models.Draft, error) {
	key := draftKey(userID, channelID, threadID)

	s.mu.Lock()
	if draft, ok := s.pending[key]; ok {
		copied := *draft
		s.mu.Unlock()
		return &copied, nil
	}
	s.mu.Unlock()

	draft, found, err := s.draftRepo.Get(ctx, userID, channelID, threadID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, pkg.ErrNotFound
	}
	return draft, nil
}

// GetAllDrafts, kullanıcının tüm taslaklarını döner (ready event için).
// Bekleyen taslaklar DB sonuçlarının üzerine yazılır.
func (s *draftService) GetAllDrafts(ctx context.Context, userID string) ([]models.Draft, error) {
	drafts, err := s.draftRepo.GetAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byKey := make(map[string]int, len(drafts))
	for i, d := range drafts {
		byKey[draftKey(d.UserID, d.ChannelID, d.ThreadID)] = i
	}
	for key, pending := range s.pending {
		if pending.UserID != userID {
			continue
		}
		if i, ok := byKey[key]; ok {
			drafts[i] = *pending
		} else {
			drafts = append(drafts, *pending)
		}
	}

	return drafts, nil
}

// ClearDraft, taslağı hemen siler.
// Bekleyen debounce yazması iptal edilir — silmeden sonra hayalet
// taslak dirilemez.
func (s *draftService) ClearDraft(ctx context.Context, userID, channelID, threadID string) error {
	key := draftKey(userID, channelID, threadID)

	s.debouncer.Cancel(key)

	s.mu.Lock()
	_, hadPending := s.pending[key]
	delete(s.pending, key)
	s.mu.Unlock()

	err := s.draftRepo.Delete(ctx, userID, channelID, threadID)
	if err != nil && hadPending && errors.Is(err, pkg.ErrNotFound) {
		// DB'de yoktu ama bellekte vardı; silme yine başarılı sayılır.
		return nil
	}
	return err
}

// Flush, bekleyen tüm taslakları hemen yazar. Shutdown'da çağrılır —
// kullanıcı sunucu yeniden başlarken taslağını kaybetmez.
func (s *draftService) Flush() {
	s.mu.Lock()
	keys := make([]string, 0, len(s.pending))
	for key := range s.pending {
		keys = append(keys, key)
	}
	s.mu.Unlock()

	for _, key := range keys {
		s.debouncer.Cancel(key)
		s.flushKey(key)
	}
}

// Close, debouncer'ı kapatır ve bekleyenleri yazar.
func (s *draftService) Close() {
	s.Flush()
	s.debouncer.Close()
}

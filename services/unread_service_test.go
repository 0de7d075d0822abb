package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/ws"
)

// ─── Fake'ler ───

type fakeChannelRepo struct {
	channels []models.Channel
	err      error
}

func (f *fakeChannelRepo) Create(ctx context.Context, channel *models.Channel) error { return nil }
func (f *fakeChannelRepo) GetByID(ctx context.Context, id string) (*models.Channel, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeChannelRepo) GetAllForUser(ctx context.Context, userID string) ([]models.Channel, error) {
	return f.channels, f.err
}
func (f *fakeChannelRepo) Update(ctx context.Context, channel *models.Channel) error { return nil }
func (f *fakeChannelRepo) Delete(ctx context.Context, id string) error               { return nil }
func (f *fakeChannelRepo) AddMember(ctx context.Context, channelID, userID string) error {
	return nil
}
func (f *fakeChannelRepo) RemoveMember(ctx context.Context, channelID, userID string) error {
	return nil
}
func (f *fakeChannelRepo) GetMemberIDs(ctx context.Context, channelID string) ([]string, error) {
	return nil, nil
}
func (f *fakeChannelRepo) IsMember(ctx context.Context, channelID, userID string) (bool, error) {
	return true, nil
}

type fakeMessageRepo struct {
	// recent / since: channelID → dönecek mesajlar
	recent map[string][]models.Message
	since  map[string][]models.Message
	// failChannels: bu kanalların sorgusu hata döner
	failChannels map[string]bool
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *models.Message) error { return nil }
func (f *fakeMessageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeMessageRepo) GetByChannelID(ctx context.Context, channelID, beforeID string, limit int) ([]models.Message, error) {
	return nil, nil
}
func (f *fakeMessageRepo) GetThread(ctx context.Context, rootID string) ([]models.Message, error) {
	return nil, nil
}
func (f *fakeMessageRepo) GetRecent(ctx context.Context, channelID string, limit int) ([]models.Message, error) {
	if f.failChannels[channelID] {
		return nil, errors.New("backfill query failed")
	}
	msgs := f.recent[channelID]
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}
func (f *fakeMessageRepo) GetSince(ctx context.Context, channelID string, after time.Time, limit int) ([]models.Message, error) {
	if f.failChannels[channelID] {
		return nil, errors.New("backfill query failed")
	}
	msgs := f.since[channelID]
	if len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs, nil
}
func (f *fakeMessageRepo) Update(ctx context.Context, message *models.Message) error { return nil }
func (f *fakeMessageRepo) Delete(ctx context.Context, id string) error               { return nil }

type fakeCursorRepo struct {
	cursors   map[string]time.Time // channelID → imleç (tek kullanıcılı testler)
	upsertErr error
	upserts   int
}

func (f *fakeCursorRepo) Upsert(ctx context.Context, userID, channelID string, lastReadAt time.Time) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	if f.cursors == nil {
		f.cursors = make(map[string]time.Time)
	}
	f.cursors[channelID] = lastReadAt
	return nil
}
func (f *fakeCursorRepo) Get(ctx context.Context, userID, channelID string) (time.Time, bool, error) {
	t, ok := f.cursors[channelID]
	return t, ok, nil
}
func (f *fakeCursorRepo) GetAllForUser(ctx context.Context, userID string) (map[string]time.Time, error) {
	if f.cursors == nil {
		return map[string]time.Time{}, nil
	}
	return f.cursors, nil
}

// nopPublisher, broadcast'leri yutan EventPublisher.
type nopPublisher struct{}

func (nopPublisher) BroadcastToAll(event ws.Event)                          {}
func (nopPublisher) BroadcastToAllExcept(excludeUserID string, event ws.Event) {}
func (nopPublisher) BroadcastToUser(userID string, event ws.Event)          {}
func (nopPublisher) BroadcastToUsers(userIDs []string, event ws.Event)      {}
func (nopPublisher) GetOnlineUserIDs() []string                             { return nil }

func othersMessages(channelID string, n int) []models.Message {
	msgs := make([]models.Message, n)
	for i := range msgs {
		msgs[i] = models.Message{ID: fmt.Sprintf("%s-m%d", channelID, i), ChannelID: channelID, UserID: "someone-else"}
	}
	return msgs
}

// ─── Testler ───

func TestReconcileExcludesOwnMessages(t *testing.T) {
	msgs := othersMessages("ch1", 3)
	msgs = append(msgs, models.Message{ID: "mine", ChannelID: "ch1", UserID: "me"})

	svc := NewUnreadService(
		&fakeChannelRepo{channels: []models.Channel{{ID: "ch1"}}},
		&fakeMessageRepo{recent: map[string][]models.Message{"ch1": msgs}},
		&fakeCursorRepo{},
		nopPublisher{},
	)

	infos, err := svc.ReconcileUnreadCounts(context.Background(), "me")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 channel, got %d", len(infos))
	}
	if infos[0].UnreadCount != 3 {
		t.Errorf("own message must not count as unread: expected 3, got %d", infos[0].UnreadCount)
	}
}

func TestReconcileCompleteMappingDespiteFailure(t *testing.T) {
	// 12 kanal (3 batch), biri patlıyor: sonuçta YİNE 12 kayıt olmalı,
	// patlayan kanal 0 sayılmalı.
	channels := make([]models.Channel, 12)
	recent := make(map[string][]models.Message, 12)
	for i := range channels {
		id := fmt.Sprintf("ch%d", i)
		channels[i] = models.Channel{ID: id}
		recent[id] = othersMessages(id, 2)
	}

	svc := NewUnreadService(
		&fakeChannelRepo{channels: channels},
		&fakeMessageRepo{recent: recent, failChannels: map[string]bool{"ch7": true}},
		&fakeCursorRepo{},
		nopPublisher{},
	)

	infos, err := svc.ReconcileUnreadCounts(context.Background(), "me")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(infos) != 12 {
		t.Fatalf("expected complete mapping of 12 channels, got %d", len(infos))
	}

	byID := make(map[string]models.UnreadInfo, len(infos))
	for _, info := range infos {
		byID[info.ChannelID] = info
	}
	if byID["ch7"].UnreadCount != 0 {
		t.Errorf("failed channel must report 0, got %d", byID["ch7"].UnreadCount)
	}
	if byID["ch3"].UnreadCount != 2 {
		t.Errorf("healthy channel must be unaffected, got %d", byID["ch3"].UnreadCount)
	}
}

func TestReconcileApproximateAtLimit(t *testing.T) {
	// İmleçsiz kanal tam limit kadar mesaj dönerse sayı alt sınırdır.
	svc := NewUnreadService(
		&fakeChannelRepo{channels: []models.Channel{{ID: "full"}, {ID: "sparse"}}},
		&fakeMessageRepo{recent: map[string][]models.Message{
			"full":   othersMessages("full", backfillLimitNoCursor),
			"sparse": othersMessages("sparse", 4),
		}},
		&fakeCursorRepo{},
		nopPublisher{},
	)

	infos, err := svc.ReconcileUnreadCounts(context.Background(), "me")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	byID := make(map[string]models.UnreadInfo, len(infos))
	for _, info := range infos {
		byID[info.ChannelID] = info
	}
	if !byID["full"].Approximate {
		t.Error("saturated backfill must be marked approximate")
	}
	if byID["sparse"].Approximate {
		t.Error("partial backfill must not be approximate")
	}
}

func TestReconcileUsesCursorWhenPresent(t *testing.T) {
	cursor := time.Now().Add(-time.Hour)
	svc := NewUnreadService(
		&fakeChannelRepo{channels: []models.Channel{{ID: "ch1"}}},
		&fakeMessageRepo{
			since:  map[string][]models.Message{"ch1": othersMessages("ch1", 7)},
			recent: map[string][]models.Message{"ch1": othersMessages("ch1", 99)},
		},
		&fakeCursorRepo{cursors: map[string]time.Time{"ch1": cursor}},
		nopPublisher{},
	)

	infos, err := svc.ReconcileUnreadCounts(context.Background(), "me")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	// GetSince yolu kullanılmalı (7), GetRecent yolu (99 → limit 20) değil.
	if infos[0].UnreadCount != 7 {
		t.Errorf("expected cursor-based backfill of 7, got %d", infos[0].UnreadCount)
	}
}

func TestMarkChannelAsReadOptimisticZero(t *testing.T) {
	cursorRepo := &fakeCursorRepo{}
	svc := NewUnreadService(
		&fakeChannelRepo{channels: []models.Channel{{ID: "ch1"}}},
		&fakeMessageRepo{recent: map[string][]models.Message{"ch1": othersMessages("ch1", 5)}},
		cursorRepo,
		nopPublisher{},
	)

	if _, err := svc.ReconcileUnreadCounts(context.Background(), "me"); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if got := svc.GetUnreadCount("me", "ch1"); got != 5 {
		t.Fatalf("precondition: expected 5 unread, got %d", got)
	}

	if err := svc.MarkChannelAsRead(context.Background(), "me", "ch1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if got := svc.GetUnreadCount("me", "ch1"); got != 0 {
		t.Errorf("expected snapshot zeroed, got %d", got)
	}
	if cursorRepo.upserts != 1 {
		t.Errorf("expected one cursor upsert, got %d", cursorRepo.upserts)
	}
	if svc.HasUnreadMessages("me", "ch1") {
		t.Error("expected no unread messages after mark read")
	}
}

func TestMarkChannelAsReadRevertsOnFailure(t *testing.T) {
	cursorRepo := &fakeCursorRepo{upsertErr: errors.New("disk full")}
	svc := NewUnreadService(
		&fakeChannelRepo{channels: []models.Channel{{ID: "ch1"}}},
		&fakeMessageRepo{recent: map[string][]models.Message{"ch1": othersMessages("ch1", 5)}},
		cursorRepo,
		nopPublisher{},
	)

	if _, err := svc.ReconcileUnreadCounts(context.Background(), "me"); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	err := svc.MarkChannelAsRead(context.Background(), "me", "ch1")
	if err == nil {
		t.Fatal("expected error when cursor write fails")
	}
	// Optimistic sıfırlama geri alınmış olmalı.
	if got := svc.GetUnreadCount("me", "ch1"); got != 5 {
		t.Errorf("expected count restored to 5 after failed write, got %d", got)
	}
}

func TestNoteIncomingMessage(t *testing.T) {
	svc := NewUnreadService(
		&fakeChannelRepo{channels: []models.Channel{{ID: "ch1"}}},
		&fakeMessageRepo{},
		&fakeCursorRepo{},
		nopPublisher{},
	)

	// alice reconcile olmuş (snapshot var), bob olmamış.
	if _, err := svc.ReconcileUnreadCounts(context.Background(), "alice"); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	svc.NoteIncomingMessage("ch1", "author", []string{"alice", "bob", "author"})

	if got := svc.GetUnreadCount("alice", "ch1"); got != 1 {
		t.Errorf("alice: expected 1, got %d", got)
	}
	// Yazarın kendi sayacı artmaz.
	if got := svc.GetUnreadCount("author", "ch1"); got != 0 {
		t.Errorf("author: expected 0, got %d", got)
	}
	// Snapshot'ı olmayan kullanıcıya sayaç açılmaz.
	if got := svc.GetUnreadCount("bob", "ch1"); got != 0 {
		t.Errorf("bob: expected 0 (no snapshot), got %d", got)
	}

	summary := svc.GetUnreadSummary("alice")
	if len(summary) != 1 || summary[0].UnreadCount != 1 {
		t.Errorf("unexpected summary: %v", summary)
	}
}

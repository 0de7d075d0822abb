package handlers

import (
	"net/http"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
	"github.com/akinalp/classhub/services"
)

// UnreadHandler, okunmamış mesaj takibi endpoint'lerini yöneten struct.
type UnreadHandler struct {
	unreadService services.UnreadService
}

// NewUnreadHandler, constructor.
func NewUnreadHandler(unreadService services.UnreadService) *UnreadHandler {
	return &UnreadHandler{unreadService: unreadService}
}

// GetUnreads godoc
// GET /api/unreads
// Kullanıcının tüm kanallarının okunmamış sayaçlarını yeniden hesaplar
// ve döner. Açılışta ve yeniden bağlanmada çağrılır — batch'li backfill
// burada tetiklenir.
func (h *UnreadHandler) GetUnreads(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	unreads, err := h.unreadService.ReconcileUnreadCounts(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, unreads)
}

// MarkRead godoc
// POST /api/channels/{id}/read
// Kanalı şu ana kadar okunmuş işaretler. Sayaç anında sıfırlanır
// (optimistic), imleç kalıcı katmana yazılır.
func (h *UnreadHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.unreadService.MarkChannelAsRead(r.Context(), user.ID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "marked as read"})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
	"github.com/akinalp/classhub/services"
)

// DraftHandler, taslak endpoint'lerini yöneten struct.
//
// threadID query parameter'dır: ?thread_id=<messageID>.
// Boş bırakılırsa kanal composer'ının taslağına erişilir.
type DraftHandler struct {
	draftService services.DraftService
}

// NewDraftHandler, constructor.
func NewDraftHandler(draftService services.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// Save godoc
// PUT /api/channels/{id}/draft
// Body: { "thread_id": "", "content": "...", "attachments": [] }
// Yazma debounce'ludur — art arda çağrılar tek DB yazmasına düşer.
func (h *DraftHandler) Save(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.SaveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.draftService.SaveDraft(r.Context(), user.ID, r.PathValue("id"), &req); err != nil {
		pkg.Error(w, err)
		return
	}

	// 202: kabul edildi, kalıcı yazma debounce süresi sonunda gerçekleşecek.
	pkg.JSON(w, http.StatusAccepted, map[string]string{"message": "draft scheduled"})
}

// Get godoc
// GET /api/channels/{id}/draft?thread_id=...
func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	draft, err := h.draftService.GetDraft(r.Context(), user.ID, r.PathValue("id"), r.URL.Query().Get("thread_id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, draft)
}

// Delete godoc
// DELETE /api/channels/{id}/draft?thread_id=...
// Taslağı anında siler (debounce beklenmez).
func (h *DraftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.draftService.ClearDraft(r.Context(), user.ID, r.PathValue("id"), r.URL.Query().Get("thread_id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "draft deleted"})
}

// ListMine godoc
// GET /api/drafts
// Kullanıcının tüm taslakları — uygulama açılışında composer'ları doldurur.
func (h *DraftHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	drafts, err := h.draftService.GetAllDrafts(r.Context(), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, drafts)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
	"github.com/akinalp/classhub/services"
)

// MessageHandler, mesaj ve thread endpoint'lerini yöneten struct.
type MessageHandler struct {
	messageService services.MessageService
}

// NewMessageHandler, constructor.
func NewMessageHandler(messageService services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Create godoc
// POST /api/channels/{id}/messages
// Body'de parent_id varsa mesaj thread yanıtı olur.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messageService.CreateMessage(r.Context(), r.PathValue("id"), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, message)
}

// List godoc
// GET /api/channels/{id}/messages?before=<messageID>&limit=N
// Kök mesajları cursor-based pagination ile döner (thread yanıtları hariç).
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	page, err := h.messageService.GetMessages(r.Context(), r.PathValue("id"), user.ID, r.URL.Query().Get("before"), limit)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, page)
}

// GetThread godoc
// GET /api/messages/{id}/thread
// Kök mesajı ve tüm yanıtlarını iç içe ağaç olarak döner.
func (h *MessageHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	tree, err := h.messageService.GetThread(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]any{
		"roots": tree.Roots(),
		"size":  tree.Size(),
	})
}

// Update godoc
// PATCH /api/messages/{id}
func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.UpdateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.messageService.UpdateMessage(r.Context(), r.PathValue("id"), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, message)
}

// Delete godoc
// DELETE /api/messages/{id}
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.messageService.DeleteMessage(r.Context(), r.PathValue("id"), user.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "message deleted"})
}

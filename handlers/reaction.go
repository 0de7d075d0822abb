package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
	"github.com/akinalp/classhub/services"
)

// ReactionHandler, emoji tepki endpoint'lerini yöneten struct.
type ReactionHandler struct {
	reactionService services.ReactionService
}

// NewReactionHandler, constructor.
func NewReactionHandler(reactionService services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// Toggle godoc
// POST /api/messages/{id}/reactions
// Body: { "emoji": "👍" }
// Aynı emoji ikinci kez gönderilirse tepki kaldırılır (toggle).
func (h *ReactionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req struct {
		Emoji string `json:"emoji"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	groups, err := h.reactionService.ToggleReaction(r.Context(), r.PathValue("id"), user.ID, req.Emoji)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, groups)
}

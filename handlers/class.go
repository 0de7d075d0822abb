package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/classhub/models"
	"github.com/akinalp/classhub/pkg"
	"github.com/akinalp/classhub/services"
)

// ClassHandler, sınıf endpoint'lerini yöneten struct.
type ClassHandler struct {
	classService services.ClassService
}

// NewClassHandler, constructor.
func NewClassHandler(classService services.ClassService) *ClassHandler {
	return &ClassHandler{classService: classService}
}

// Create godoc
// POST /api/classes
// Bitiş tarihi oluşturma anında hesaplanır ve kayıtla dondurulur.
func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreateClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	class, err := h.classService.CreateClass(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, class)
}

// Preview godoc
// POST /api/classes/preview
// Kayıt yapmadan bitiş tarihi ve atlanan tatilleri hesaplar —
// form her değiştiğinde çağrılır.
func (h *ClassHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req models.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.classService.PreviewSchedule(&req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}

// List godoc
// GET /api/classes
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classService.GetClasses(r.Context())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, classes)
}

// Get godoc
// GET /api/classes/{id}
func (h *ClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	class, err := h.classService.GetClass(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, class)
}

// Delete godoc
// DELETE /api/classes/{id}
func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.classService.DeleteClass(r.Context(), user.ID, r.PathValue("id")); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "class deleted"})
}

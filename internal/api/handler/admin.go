package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfreeman/sketchdash/internal/api/response"
	"github.com/mfreeman/sketchdash/internal/model"
	"github.com/mfreeman/sketchdash/internal/services/game"
)

// AdminHandler handles operational endpoints
type AdminHandler struct {
	controller *game.Controller
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(controller *game.Controller) *AdminHandler {
	return &AdminHandler{controller: controller}
}

// Health handles GET /api/v1/health
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{
		Status:   "ok",
		Sessions: len(h.controller.ListActive()),
	})
}

// ListSessions handles GET /api/v1/sessions
func (h *AdminHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.ActiveSessionsResponse{
		Sessions: h.controller.ListActive(),
	})
}

// DestroySession handles DELETE /api/v1/sessions/{pin}
func (h *AdminHandler) DestroySession(w http.ResponseWriter, r *http.Request) {
	pin := model.Pin(mux.Vars(r)["pin"])

	if err := h.controller.Destroy(r.Context(), pin, "admin_destroy"); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

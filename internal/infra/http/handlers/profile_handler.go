package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/MoMachkourOfficial/Sizzle-Coaching-App/internal/entity"
)

// ProfileHandler reads profile rows directly; profiles are written lazily
// on report submission, there is no separate write endpoint.
type ProfileHandler struct {
	ProfileRepo entity.ProfileRepository
}

func NewProfileHandler(profileRepo entity.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{ProfileRepo: profileRepo}
}

func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	profile, err := h.ProfileRepo.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

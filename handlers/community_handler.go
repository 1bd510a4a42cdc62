package handlers

import (
	"net/http"

	"github.com/Dosada05/pickup-server/services"
	"github.com/go-chi/chi/v5"
)

type CommunityHandler struct {
	communityService services.CommunityService
}

func NewCommunityHandler(cs services.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: cs}
}

func (h *CommunityHandler) GetCommunityByID(w http.ResponseWriter, r *http.Request) {
	communityID := chi.URLParam(r, "communityID")

	community, err := h.communityService.GetCommunityByID(r.Context(), communityID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"community": community}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CommunityHandler) ListByCollege(w http.ResponseWriter, r *http.Request) {
	collegeID := chi.URLParam(r, "collegeID")

	communities, err := h.communityService.ListByCollege(r.Context(), collegeID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"communities": communities}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

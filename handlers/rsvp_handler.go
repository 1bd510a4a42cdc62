package handlers

import (
	"net/http"

	"github.com/Dosada05/pickup-server/middleware"
	"github.com/Dosada05/pickup-server/services"
)

type RSVPHandler struct {
	rsvpService services.RSVPService
}

func NewRSVPHandler(rs services.RSVPService) *RSVPHandler {
	return &RSVPHandler{rsvpService: rs}
}

func (h *RSVPHandler) JoinMatch(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	matchID, err := getUUIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rsvp, err := h.rsvpService.Join(r.Context(), matchID, currentUserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"rsvp": rsvp}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *RSVPHandler) LeaveMatch(w http.ResponseWriter, r *http.Request) {
	currentUserID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	matchID, err := getUUIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.rsvpService.Leave(r.Context(), matchID, currentUserID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

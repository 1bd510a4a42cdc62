package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/pickup-server/models"
	"github.com/Dosada05/pickup-server/services"
	"github.com/golang-jwt/jwt/v4"
)

const tokenTTL = 72 * time.Hour

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   string
}

func NewAuthHandler(as services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: as,
		jwtSecret:   jwtSecret,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	profile, err := h.authService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := h.issueToken(profile)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{"user": profile, "token": token}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	profile, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := h.issueToken(profile)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	response := jsonResponse{"user": profile, "token": token}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) issueToken(profile *models.Profile) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": profile.ID.String(),
		"name":    profile.Name,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/hr-insights/etl-backend-go/internal/handler/http/response"
	authService "github.com/hr-insights/etl-backend-go/internal/service/auth"
)

type AuthHandler interface {
	Token(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	authService authService.AuthService
}

func NewAuthHandler(svc authService.AuthService) AuthHandler {
	return &authHandlerImpl{authService: svc}
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token issues a bearer token for API write access.
func (h *authHandlerImpl) Token(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, token)
}

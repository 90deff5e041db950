package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"chirp/domain"
	"chirp/errs"
)

func (s *Server) registerAuthRoutes(r *mux.Router) {
	r.HandleFunc("/auth/register", s.handleRegister).Methods("POST")
	r.HandleFunc("/auth/access-token", s.handleLogin).Methods("POST")
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPayload is the wire shape of a freshly registered user. The API key is
// included, it's the credential most endpoints expect afterwards.
type userPayload struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	ApiKey string `json:"api_key"`
}

type registerResponse struct {
	Result bool        `json:"result"`
	User   userPayload `json:"user"`
}

// handleRegister creates a new account. The password hash and the API key are
// provisioned by the user service.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	user := domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := s.us.Create(&user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, &registerResponse{
		Result: true,
		User: userPayload{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			ApiKey: user.ApiKey,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// handleLogin verifies email and password and issues a bearer token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	user, err := s.us.Authenticate(req.Email, req.Password)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, &tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

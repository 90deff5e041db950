package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chirp/auth"
	"chirp/domain"
	"chirp/errs"
)

func (s *Server) registerUserRoutes(r *mux.Router) {
	r.HandleFunc("/users/me", s.requireAuth(s.handleProfileMe)).Methods("GET")
	r.HandleFunc("/users/{id:[0-9]+}", s.requireAuth(s.handleProfile)).Methods("GET")
}

type profileResponse struct {
	Result bool           `json:"result"`
	User   domain.Profile `json:"user"`
}

// handleProfileMe returns the caller's own profile, including the API key.
func (s *Server) handleProfileMe(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	s.writeProfile(w, r, user.ID, true)
}

// handleProfile returns another user's profile, without credential material.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}
	s.writeProfile(w, r, id, false)
}

// writeProfile loads a user with its follow edges resolved and projects the
// profile view. withKey controls whether the API key is exposed.
func (s *Server) writeProfile(w http.ResponseWriter, r *http.Request, userID int, withKey bool) {
	user, err := s.us.ByID(userID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	profile := domain.Profile{
		ID:        user.ID,
		Name:      user.Name,
		Followers: make([]domain.UserRef, 0, len(user.Followers)),
		Following: make([]domain.UserRef, 0, len(user.Followeds)),
	}
	if withKey {
		profile.ApiKey = user.ApiKey
	}
	for _, edge := range user.Followers {
		profile.Followers = append(profile.Followers, domain.UserRef{
			ID:   edge.Follower.ID,
			Name: edge.Follower.Name,
		})
	}
	for _, edge := range user.Followeds {
		profile.Following = append(profile.Following, domain.UserRef{
			ID:   edge.Followed.ID,
			Name: edge.Followed.Name,
		})
	}

	respond(w, r, http.StatusOK, &profileResponse{
		Result: true,
		User:   profile,
	})
}

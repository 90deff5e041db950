package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chirp/auth"
	"chirp/errs"
)

func (s *Server) registerFollowRoutes(r *mux.Router) {
	r.HandleFunc("/users/{id:[0-9]+}/follow", s.requireWrite(s.handleFollow)).Methods("POST")
	r.HandleFunc("/users/{id:[0-9]+}/follow", s.requireWrite(s.handleUnfollow)).Methods("DELETE")
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	followedID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}
	user := auth.UserFromContext(r.Context())
	if err := s.fs.Follow(user.ID, followedID); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, &statusResponse{Result: true})
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request) {
	followedID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}
	user := auth.UserFromContext(r.Context())
	if err := s.fs.Unfollow(user.ID, followedID); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, &statusResponse{Result: true})
}

package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chirp/auth"
	"chirp/errs"
)

func (s *Server) registerLikeRoutes(r *mux.Router) {
	r.HandleFunc("/tweets/{id:[0-9]+}/likes", s.requireWrite(s.handleLike)).Methods("POST")
	r.HandleFunc("/tweets/{id:[0-9]+}/likes", s.requireWrite(s.handleUnlike)).Methods("DELETE")
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	tweetID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}
	user := auth.UserFromContext(r.Context())
	if err := s.ls.Like(user.ID, tweetID); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, &statusResponse{Result: true})
}

func (s *Server) handleUnlike(w http.ResponseWriter, r *http.Request) {
	tweetID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}
	user := auth.UserFromContext(r.Context())
	if err := s.ls.Unlike(user.ID, tweetID); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, &statusResponse{Result: true})
}

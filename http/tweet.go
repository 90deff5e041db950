package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chirp/auth"
	"chirp/domain"
	"chirp/errs"
)

func (s *Server) registerTweetRoutes(r *mux.Router) {
	r.HandleFunc("/tweets", s.requireWrite(s.handleCreateTweet)).Methods("POST")
	r.HandleFunc("/tweets", s.handleFeed).Methods("GET")
	r.HandleFunc("/tweets/{id:[0-9]+}", s.requireWrite(s.handleDeleteTweet)).Methods("DELETE")
}

type createTweetRequest struct {
	TweetData     string `json:"tweet_data"`
	TweetMediaIDs []int  `json:"tweet_media_ids"`
}

type tweetResponse struct {
	Result  bool `json:"result"`
	TweetID int  `json:"tweet_id"`
}

// handleCreateTweet creates a tweet owned by the caller, linked to every
// media id in the request. Any unresolvable media id aborts the creation.
func (s *Server) handleCreateTweet(w http.ResponseWriter, r *http.Request) {
	var req createTweetRequest
	if err := decode(r, &req); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	user := auth.UserFromContext(r.Context())
	tweet := domain.Tweet{
		UserID:  user.ID,
		Content: req.TweetData,
	}
	if err := s.ts.Create(&tweet, req.TweetMediaIDs); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, &tweetResponse{
		Result:  true,
		TweetID: tweet.ID,
	})
}

type feedResponse struct {
	Result bool               `json:"result"`
	Tweets []domain.FeedTweet `json:"tweets"`
}

// handleFeed returns the global feed, newest tweet first. Public, no
// credential needed.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	tweets, err := s.feed.Feed()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, &feedResponse{
		Result: true,
		Tweets: tweets,
	})
}

// handleDeleteTweet deletes a tweet if the caller is its author.
func (s *Server) handleDeleteTweet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}
	user := auth.UserFromContext(r.Context())
	if err := s.ts.Delete(id, user.ID); err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, &tweetResponse{
		Result:  true,
		TweetID: id,
	})
}

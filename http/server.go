package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"chirp/auth"
	"chirp/domain"
	"chirp/errs"
)

// Server provides the http functionality of this app, namely routing, request
// handling, and middleware. It authenticates the caller and performs
// authorization checks before handing things over to one of the services.
type Server struct {
	router *mux.Router
	logger *zap.Logger
	tokens *auth.TokenManager

	// bearerWrites decides whether a bearer token is accepted on
	// content-mutating endpoints. An API key always is.
	bearerWrites bool

	us   domain.UserService
	ts   domain.TweetService
	fs   domain.FollowService
	ls   domain.LikeService
	ms   domain.MediaService
	feed domain.FeedService
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the services passed in.
func NewServer(
	logger *zap.Logger,
	tokens *auth.TokenManager,
	bearerWrites bool,
	us domain.UserService,
	ts domain.TweetService,
	fs domain.FollowService,
	ls domain.LikeService,
	ms domain.MediaService,
	feed domain.FeedService,
) *Server {
	s := &Server{
		router:       mux.NewRouter(),
		logger:       logger,
		tokens:       tokens,
		bearerWrites: bearerWrites,
		us:           us,
		ts:           ts,
		fs:           fs,
		ls:           ls,
		ms:           ms,
		feed:         feed,
	}

	s.router.HandleFunc("/status", s.handleStatus).Methods("GET")

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)

	// Register routes of the content system.
	s.registerUserRoutes(s.router)
	s.registerFollowRoutes(s.router)
	s.registerTweetRoutes(s.router)
	s.registerLikeRoutes(s.router)
	s.registerMediaRoutes(s.router)

	// Middleware that runs on every request.
	s.router.Use(s.logRequest, setContentTypeJSON, s.checkUser)
	return s
}

// ServeHTTP makes the server usable as a plain http.Handler, e.g. with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) {
	addr := ":" + strconv.Itoa(port)
	s.logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, s.router); err != nil {
		s.logger.Fatal("server stopped", zap.Error(err))
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "API is running",
	})
}

// logRequest logs method, path, and duration of every request.
func (s *Server) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// The setContentTypeJSON middleware sets the content type to "application/json".
// Handlers serving raw bytes override it before writing.
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// checkUser runs on every request and tries to resolve a credential to a
// user: the Api-Key header first, a bearer token second. It never rejects,
// it only stashes the user in the context. requireAuth / requireWrite decide
// per route whether an unauthenticated request may proceed.
func (s *Server) checkUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.Header.Get("Api-Key"); key != "" {
			if user, err := s.us.ByApiKey(key); err == nil {
				r = r.WithContext(auth.WithUser(r.Context(), user, auth.SchemeApiKey))
			}
			next.ServeHTTP(w, r)
			return
		}
		if header := r.Header.Get("Authorization"); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				if userID, err := s.tokens.Resolve(parts[1]); err == nil {
					if user, err := s.us.ByID(userID); err == nil {
						r = r.WithContext(auth.WithUser(r.Context(), user, auth.SchemeBearer))
					}
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireAuth wraps a handler that needs an authenticated caller, no matter
// through which credential scheme.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth.UserFromContext(r.Context()) == nil {
			errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "Authentication required."))
			return
		}
		next.ServeHTTP(w, r)
	}
}

// requireWrite wraps a handler that mutates content. An API key is always
// accepted here, a bearer token only when the server is configured for it.
func (s *Server) requireWrite(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := auth.UserFromContext(r.Context())
		if user == nil {
			errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "Authentication required."))
			return
		}
		if auth.SchemeFromContext(r.Context()) == auth.SchemeBearer && !s.bearerWrites {
			errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "An API key is required for this endpoint."))
			return
		}
		next.ServeHTTP(w, r)
	}
}

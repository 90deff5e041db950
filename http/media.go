package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chirp/domain"
	"chirp/errs"
)

func (s *Server) registerMediaRoutes(r *mux.Router) {
	r.HandleFunc("/medias", s.requireWrite(s.handleUploadMedia)).Methods("POST")
	r.HandleFunc("/medias/{id:[0-9]+}", s.handleFetchMedia).Methods("GET")
}

type mediaResponse struct {
	Result  bool `json:"result"`
	MediaID int  `json:"media_id"`
}

// handleUploadMedia accepts a multipart upload under the "file" field, stores
// the bytes and creates the media record. The record is created only after
// the bytes are durable.
func (s *Server) handleUploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, domain.MaxUploadSize)
	if err := r.ParseMultipartForm(domain.MaxUploadSize); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid multipart upload."))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "A file field is required."))
		return
	}
	defer file.Close()

	media, err := s.ms.StoreUpload(file, header.Header.Get("Content-Type"))
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, &mediaResponse{
		Result:  true,
		MediaID: media.ID,
	})
}

// handleFetchMedia streams the stored bytes of a media back to the client.
// Public, media files have no access control.
func (s *Server) handleFetchMedia(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid id format."))
		return
	}
	media, rc, err := s.ms.Fetch(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", media.FileType)
	if _, err := io.Copy(w, rc); err != nil {
		errs.LogError(r, err)
	}
}

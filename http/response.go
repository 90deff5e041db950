package http

import (
	"encoding/json"
	"net/http"

	"chirp/errs"
)

// statusResponse is the body of mutations that have nothing else to say.
type statusResponse struct {
	Result bool `json:"result"`
}

// respond writes v as the JSON response body with the given status code.
func respond(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		errs.LogError(r, err)
	}
}

// decode parses the JSON request body into v.
func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.Errorf(errs.EINVALID, "Invalid JSON body.")
	}
	return nil
}

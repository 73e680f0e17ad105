package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/baharkarakas/stays-backend/internal/repository"
	"github.com/baharkarakas/stays-backend/internal/validate"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

const maxBody = 1 << 20

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

func WriteValidation(w http.ResponseWriter, errs validate.Errs) {
	WriteError(w, http.StatusBadRequest, "validation_error", "invalid input", errs)
}

func NotFound(w http.ResponseWriter) {
	WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
}

// DecodeJSON reads a JSON object body into v. Unknown fields are ignored so
// read-only attributes sent by clients are dropped rather than rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		msg := "malformed JSON body"
		var ute *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			msg = "request body is empty"
		case errors.As(err, &ute) && ute.Field != "":
			WriteValidation(w, validate.Errs{{Field: ute.Field, Msg: "Incorrect type. Expected " + ute.Type.String() + "."}})
			return false
		}
		WriteError(w, http.StatusBadRequest, "bad_request", msg, err.Error())
		return false
	}
	return true
}

// PageFrom reads limit/offset query parameters.
func PageFrom(r *http.Request) repository.Page {
	p := repository.Page{Limit: 50}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.Limit = min(n, 200)
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			p.Offset = n
		}
	}
	return p
}

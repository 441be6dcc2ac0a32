package response

import (
	"encoding/json"
	"net/http"
)

const (
	MSG_INTERNAL_ERROR      = "the form could not be processed, try again later"
	MSG_RATE_LIMIT_EXCEEDED = "too many attempts, try again later"
)

type errorBody struct {
	Error string `json:"error"`
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, MSG_INTERNAL_ERROR, http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter) {
	RenderError(rw, MSG_RATE_LIMIT_EXCEEDED, http.StatusTooManyRequests)
}

func RenderNotFound(rw http.ResponseWriter, msg string) {
	RenderError(rw, msg, http.StatusNotFound)
}

func RenderBadRequest(rw http.ResponseWriter, msg string) {
	RenderError(rw, msg, http.StatusBadRequest)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorBody{Error: msg}, status)
}

// Render writes body as JSON. Responses carry session bound data, so they are never cached.
func Render(rw http.ResponseWriter, body interface{}, status int) {
	content, err := json.Marshal(body)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.Header().Set("Content-Type", "application/json; charset=utf-8")
	rw.Header().Set("Cache-Control", "no-store")
	rw.WriteHeader(status)
	rw.Write(content)
}

package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// RequestError is a non-2xx answer from the tracker API.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("tracker api %d: %s", e.StatusCode, e.Message)
}

func (e *RequestError) HTTPStatus() int       { return e.StatusCode }
func (e *RequestError) RemoteMessage() string { return e.Message }

// IsStatus reports whether err is a RequestError with one of the given codes.
func IsStatus(err error, codes ...int) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	for _, code := range codes {
		if reqErr.StatusCode == code {
			return true
		}
	}
	return false
}

type errorEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

type validationItem struct {
	Msg string `json:"msg"`
}

func newRequestError(status int, body []byte) *RequestError {
	return &RequestError{StatusCode: status, Message: detailMessage(status, body)}
}

// detailMessage extracts the API's detail text. Validation failures carry a list
// of {msg, loc}; their messages are joined.
func detailMessage(status int, body []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Detail) > 0 {
		var text string
		if err := json.Unmarshal(env.Detail, &text); err == nil && strings.TrimSpace(text) != "" {
			return text
		}
		var items []validationItem
		if err := json.Unmarshal(env.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if item.Msg != "" {
					msgs = append(msgs, item.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

package errors

import (
	"errors"
	"fmt"
)

// ErrorDump flattens an error chain for structured logging.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	HTTPStatus int    `json:"http_status,omitempty"`
	Remote     string `json:"remote,omitempty"`
}

// statusCarrier is implemented by remote request errors that know the upstream status.
type statusCarrier interface {
	HTTPStatus() int
	RemoteMessage() string
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var remote statusCarrier
	if errors.As(err, &remote) {
		d.HTTPStatus = remote.HTTPStatus()
		d.Remote = remote.RemoteMessage()
	}

	return d
}

package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "permission denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeBusy, status: http.StatusConflict, publicMsg: "another submission is in progress"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal error"},
		{code: CodeDependency, status: http.StatusBadGateway, publicMsg: "tracker api unavailable", detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing productid")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing productid" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]string{"productid": "is required"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeDependency, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeForbidden, "no entry"))
	if got := As(err); got == nil || got.Code() != CodeForbidden {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
	if !IsCode(err, CodeForbidden) || IsCode(err, CodeValidation) {
		t.Fatalf("IsCode mismatch")
	}
}

type fakeRemote struct {
	status int
	msg    string
}

func (f fakeRemote) Error() string         { return f.msg }
func (f fakeRemote) HTTPStatus() int       { return f.status }
func (f fakeRemote) RemoteMessage() string { return f.msg }

func TestUserMessagePrefersRemoteWording(t *testing.T) {
	remote := fakeRemote{status: http.StatusBadRequest, msg: "Product with this productid already exists"}
	if got := UserMessage(fmt.Errorf("create: %w", remote)); got != remote.msg {
		t.Fatalf("expected remote message, got %q", got)
	}
	if got := UserMessage(New(CodeForbidden, "")); got != "permission denied" {
		t.Fatalf("expected public message fallback, got %q", got)
	}
	if got := UserMessage(stdErrors.New("raw")); got != "internal error" {
		t.Fatalf("expected internal fallback, got %q", got)
	}
	if UserMessage(nil) != "" {
		t.Fatalf("nil error should render empty")
	}
}

func TestDumpCarriesRemoteStatus(t *testing.T) {
	remote := fakeRemote{status: http.StatusUnprocessableEntity, msg: "field required"}
	d := Dump(Wrap(CodeDependency, remote, "update"))
	if d.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", d.Code)
	}
	if d.HTTPStatus != http.StatusUnprocessableEntity || d.Remote != "field required" {
		t.Fatalf("unexpected remote fields %+v", d)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected two chain entries, got %v", d.Chain)
	}
}

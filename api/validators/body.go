package validators

import (
	"net/http"
	"net/url"

	pkgerrors "github.com/aimingmed/sctracker-console/pkg/errors"
)

// maxFormBytes bounds a posted console form.
const maxFormBytes = 1 << 20

// ParseForm reads an urlencoded form body. Query parameters are not merged in.
func ParseForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body").WithDetails(map[string]any{"error": err.Error()})
	}
	return r.PostForm, nil
}

// Package views renders the console's server-side HTML.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/mattn/go-runewidth"

	"github.com/aimingmed/sctracker-console/pkg/enums"
	"github.com/aimingmed/sctracker-console/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
	logg  *logger.Logger
}

func New(logg *logger.Logger) (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tpl, err := template.New("layout.html").Funcs(funcs()).ParseFS(templateFS, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[name] = tpl
	}
	return &Renderer{pages: pages, logg: logg}, nil
}

// Render executes page into a buffer first so a template failure never leaves
// a half-written response. The CSRF field is stamped onto data when it embeds Layout.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	tpl, ok := rd.pages[page]
	if !ok {
		rd.fail(w, r, fmt.Errorf("unknown page %q", page))
		return
	}
	if l, ok := data.(layoutCarrier); ok {
		l.layout().CSRFField = csrf.TemplateField(r)
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		rd.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (rd *Renderer) fail(w http.ResponseWriter, r *http.Request, err error) {
	if rd.logg != nil {
		rd.logg.Error(r.Context(), "render failed", err)
	}
	http.Error(w, "render error", http.StatusInternalServerError)
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"label":    labelOf,
		"truncate": Truncate,
		"str":      derefString,
		"num":      derefFloat,
		"tri":      triState,
		"join":     strings.Join,
		"contains": contains,
		"date":     formatDate,
		"dict":     dict,
	}
}

// Truncate shortens s to width terminal cells. CJK glyphs count as two.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func labelOf(v any) string {
	switch t := v.(type) {
	case fmt.Stringer:
		return enums.Label(t.String())
	case string:
		return enums.Label(t)
	default:
		return fmt.Sprint(v)
	}
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func derefFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// triState renders an optional boolean for a three-way select.
func triState(v *bool) string {
	switch {
	case v == nil:
		return ""
	case *v:
		return "true"
	default:
		return "false"
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// dict builds the argument map for a nested template call.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict needs key/value pairs")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}

package forms

import (
	"net/url"
	"strconv"
	"strings"
)

// values wraps url.Values with trimming readers that record parse failures.
type values struct {
	src  url.Values
	errs FieldErrors
}

func newValues(src url.Values) *values {
	return &values{src: src, errs: FieldErrors{}}
}

func (v *values) str(key string) string {
	return strings.TrimSpace(v.src.Get(key))
}

func (v *values) optStr(key string) *string {
	s := v.str(key)
	if s == "" {
		return nil
	}
	return &s
}

func (v *values) boolean(key string) bool {
	switch strings.ToLower(v.str(key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// optBool reads a tri-state select: "" is unset.
func (v *values) optBool(key string) *bool {
	switch strings.ToLower(v.str(key)) {
	case "":
		return nil
	case "on", "true", "1", "yes":
		b := true
		return &b
	default:
		b := false
		return &b
	}
}

func (v *values) integer(key string) int {
	raw := v.str(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		v.errs.Add(key, "must be a whole number")
		return 0
	}
	return n
}

func (v *values) optFloat(key string) *float64 {
	raw := v.str(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v.errs.Add(key, "must be a number")
		return nil
	}
	return &f
}

// list splits a comma, newline or 、 separated field into trimmed, non-empty entries.
func (v *values) list(key string) []string {
	raw := v.src[key]
	out := []string{}
	for _, entry := range raw {
		for _, part := range strings.FieldsFunc(entry, func(r rune) bool {
			return r == ',' || r == '\n' || r == '、' || r == '，'
		}) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

package enums

import "fmt"

// Source is the biological origin of a product.
type Source string

const (
	SourceHuman Source = "Human(人源)"
	SourceMouse Source = "Mouse(鼠源)"
	SourceHESC  Source = "hESC(人胚胎干细胞)"
	SourceHPSC  Source = "hPSC(人诱导多能干细胞)"
)

var validSources = []Source{
	SourceHuman,
	SourceMouse,
	SourceHESC,
	SourceHPSC,
}

// String implements fmt.Stringer.
func (v Source) String() string {
	return string(v)
}

// IsValid reports whether the value is a known Source.
func (v Source) IsValid() bool {
	for _, candidate := range validSources {
		if candidate == v {
			return true
		}
	}
	return false
}

// Sources returns every Source in display order.
func Sources() []Source {
	return append([]Source(nil), validSources...)
}

// ParseSource converts raw input into a Source.
func ParseSource(value string) (Source, error) {
	for _, candidate := range validSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid source %q", value)
}

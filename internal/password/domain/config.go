package domain

const (
	MinLength     = 4
	MaxLength     = 30
	DefaultLength = 12
)

// GenerationConfig selects the length and character classes of a
// generated password.
type GenerationConfig struct {
	Length              int  `json:"length"`
	IncludeDigits       bool `json:"include_digits"`
	IncludeUppercase    bool `json:"include_uppercase"`
	IncludeLowercase    bool `json:"include_lowercase"`
	IncludeSpecialChars bool `json:"include_special_chars"`
}

// DefaultGenerationConfig mirrors the initial state of the generator form.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		Length:           DefaultLength,
		IncludeLowercase: true,
	}
}

// HasCharset reports whether at least one character class is selected.
func (c GenerationConfig) HasCharset() bool {
	return c.IncludeDigits || c.IncludeUppercase || c.IncludeLowercase || c.IncludeSpecialChars
}

// Validate returns a copy of cfg with Length clamped into [MinLength, MaxLength].
// Out-of-range lengths are corrected rather than rejected; the only failure
// is ErrNoCharsetSelected.
func Validate(cfg GenerationConfig) (GenerationConfig, error) {
	if !cfg.HasCharset() {
		return cfg, ErrNoCharsetSelected
	}
	cfg.Length = ClampLength(cfg.Length)
	return cfg, nil
}

func ClampLength(n int) int {
	switch {
	case n < MinLength:
		return MinLength
	case n > MaxLength:
		return MaxLength
	default:
		return n
	}
}

package rtfde

import (
	"github.com/go-playground/validator/v10"

	"github.com/rtfde/rtfde/logger"
)

// Config controls the optional knobs the de-encapsulation pipeline
// supports. Every field has a spec-mandated default; the zero value of
// Config is NOT the default configuration, use NewDefaultConfig.
type Config struct {
	// FallbackToDefaultCharset, when true, substitutes the ANSI default
	// codepage for a missing `\ansi`/`\mac`/`\pc`/`\pca` keyword instead of
	// failing with MalformedRtfError.
	FallbackToDefaultCharset bool

	// InitialByteCount is the `\uc` value in effect at the start of the
	// document, until a `\ucN` control word sets another.
	InitialByteCount int `validate:"min=0"`

	// UseASCIIAlternativesOnUnicodeDecodeFailure, when true, emits the
	// captured ANSI fallback bytes instead of failing when a `\uN` escape or
	// a surrogate pair cannot be decoded.
	UseASCIIAlternativesOnUnicodeDecodeFailure bool

	// KeepFontdef retains font-definition groups in the tree after decoding,
	// for diagnostics.
	KeepFontdef bool

	// Logger receives structured events for decode failures and for
	// stripped unsupported destinations. HTMLRTF-suppressed regions are not
	// logged. A nil Logger discards events.
	Logger logger.LogFunc
}

// NewDefaultConfig returns the configuration spec.md's defaults describe:
// strict charset handling, a \uc default of 1, no ASCII fallback, and
// fontdef groups discarded after decoding.
func NewDefaultConfig() *Config {
	return &Config{
		FallbackToDefaultCharset: false,
		InitialByteCount:         1,
		UseASCIIAlternativesOnUnicodeDecodeFailure: false,
		KeepFontdef: false,
	}
}

// Validate reports a validation error before Deencapsulate runs, rather
// than surfacing it mid-pipeline.
func (cfg *Config) Validate() error {
	validate := validator.New()
	return validate.Struct(cfg)
}

func (cfg *Config) sink() logger.Sink {
	return logger.New(cfg.Logger)
}

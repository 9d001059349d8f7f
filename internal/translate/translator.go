// Package translate provides the pluggable text transform used by the
// evidence normalizer to turn non-English nuggets into English. The serving
// path always runs with the disabled translator so normalization stays a pure
// function; a real provider is only wired in by offline maintenance commands.
package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/pricelens/pricelens/internal/model"
)

// Translator defines the interface for translation providers
type Translator interface {
	// Name returns the provider name
	Name() string

	// Translate returns an English rendition of each input text, preserving
	// order and length of the slice. Texts already in English pass through.
	Translate(ctx context.Context, texts []string) ([]string, error)
}

// New creates a translator based on configuration. An empty provider returns
// the no-op translator, never nil.
func New(cfg model.TranslateConfig) (Translator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAITranslator(cfg)
	case "":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown translation provider: %s (supported: openai)", cfg.Provider)
	}
}

// Noop passes text through unchanged. It is the default for the serving path,
// where normalization must stay deterministic and offline.
type Noop struct{}

// Name returns the provider name
func (Noop) Name() string { return "noop" }

// Translate returns the inputs unchanged
func (Noop) Translate(_ context.Context, texts []string) ([]string, error) {
	return texts, nil
}

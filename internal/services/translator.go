package services

import (
	"context"
	"strings"

	"github.com/filmyfim/filmyfim/internal/llm"
	"github.com/filmyfim/filmyfim/internal/metrics"
	"github.com/filmyfim/filmyfim/pkg/logger"
)

// Translator localizes synopses through the language model. It never fails: on any
// error the source text is returned unchanged.
type Translator struct {
	llm      llm.Provider
	language string
	logger   logger.Logger
}

func NewTranslator(provider llm.Provider, language string, log logger.Logger) *Translator {
	return &Translator{
		llm:      provider,
		language: language,
		logger:   log,
	}
}

// Language is the target language name.
func (t *Translator) Language() string {
	return t.language
}

// Translate returns text in the target language, or text itself if translation fails.
func (t *Translator) Translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" || t.llm == nil {
		return text
	}

	out, err := t.llm.Complete(ctx, llm.TranslationPrompt(t.language, text))
	if err != nil {
		metrics.UpstreamFailures.WithLabelValues("llm", "translate").Inc()
		t.logger.Warnf("[Translator] translation error: %v", err)
		return text
	}

	out = strings.TrimSpace(out)
	if out == "" {
		t.logger.Warnf("[Translator] empty translation for %d chars of text", len(text))
		return text
	}
	return out
}

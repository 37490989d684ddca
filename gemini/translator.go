// Package gemini provides a newsdigest.Translator backed by Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/newsdigest"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for translation.
const DefaultModel = "gemini-2.5-flash"

// Ensure Translator implements newsdigest.Translator at compile time.
var _ newsdigest.Translator = (*Translator)(nil)

// Translator implements newsdigest.Translator using Google Gemini.
type Translator struct {
	client *genai.Client
	model  string
}

// NewTranslator creates a new Translator.
func NewTranslator(client *genai.Client, model string) *Translator {
	if model == "" {
		model = DefaultModel
	}
	return &Translator{client: client, model: model}
}

// Translate translates text from source to target language.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", newsdigest.Errorf(newsdigest.EINVALID, "text required")
	}
	if source == "" || target == "" {
		return "", newsdigest.Errorf(newsdigest.EINVALID, "source and target languages required")
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(text, source, target)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", newsdigest.Errorf(newsdigest.ETRANSLATION, "gemini: %v", err)
	}
	if result == nil {
		return "", newsdigest.Errorf(newsdigest.ETRANSLATION, "gemini returned nil result")
	}

	translated := strings.TrimSpace(result.Text())
	if translated == "" {
		return "", newsdigest.Errorf(newsdigest.ETRANSLATION, "gemini returned empty translation")
	}
	return translated, nil
}

// BuildConfig returns the GenerateContentConfig for translation calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a professional news translator. Translate the headline you are given. Reply with the translation only, without quotes, notes, or alternatives.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the prompt for a single translation.
func BuildUserPrompt(text, source, target string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Source language: %s\n", source)
	fmt.Fprintf(&sb, "Target language: %s\n\n", target)
	fmt.Fprintf(&sb, "<text>%s</text>", text)
	return sb.String()
}

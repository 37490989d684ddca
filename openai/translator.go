// Package openai provides a newsdigest.Translator backed by the OpenAI
// chat completions API.
package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/newsdigest"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultModel is the chat model used for translation.
const DefaultModel = "gpt-4o-mini"

const systemPrompt = "You are a professional news translator. Translate the headline you are given. Reply with the translation only, without quotes, notes, or alternatives."

// Ensure Translator implements newsdigest.Translator at compile time.
var _ newsdigest.Translator = (*Translator)(nil)

// Translator implements newsdigest.Translator using OpenAI chat completions.
type Translator struct {
	client openai.Client
	model  string
}

// NewTranslator creates a new Translator. opts are passed to the OpenAI
// client, e.g. option.WithAPIKey or option.WithBaseURL.
func NewTranslator(model string, opts ...option.RequestOption) *Translator {
	if model == "" {
		model = DefaultModel
	}
	return &Translator{client: openai.NewClient(opts...), model: model}
}

// Translate translates text from source to target language.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", newsdigest.Errorf(newsdigest.EINVALID, "text required")
	}
	if source == "" || target == "" {
		return "", newsdigest.Errorf(newsdigest.EINVALID, "source and target languages required")
	}

	resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(t.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(BuildUserPrompt(text, source, target)),
		},
	})
	if err != nil {
		return "", newsdigest.Errorf(newsdigest.ETRANSLATION, "openai: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", newsdigest.Errorf(newsdigest.ETRANSLATION, "openai: empty choices")
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", newsdigest.Errorf(newsdigest.ETRANSLATION, "openai returned empty translation")
	}
	return translated, nil
}

// BuildUserPrompt builds the user message for a single translation.
func BuildUserPrompt(text, source, target string) string {
	return fmt.Sprintf("Translate from %s to %s:\n\n%s", source, target, text)
}

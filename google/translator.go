// Package google provides a newsdigest.Translator backed by the public
// Google Translate web endpoint.
package google

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/newsdigest"
	"github.com/tidwall/gjson"
)

// DefaultEndpoint is the translate endpoint used by Google's web clients.
const DefaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// DefaultTimeout is the default timeout for a translation request.
const DefaultTimeout = 15 * time.Second

// maxTextLength is the longest text the endpoint accepts in one request.
const maxTextLength = 5000

// Ensure Translator implements newsdigest.Translator at compile time.
var _ newsdigest.Translator = (*Translator)(nil)

// Translator translates text with Google Translate.
type Translator struct {
	client   *http.Client
	endpoint string
}

// Option configures a Translator.
type Option func(*Translator)

// WithEndpoint overrides the translate endpoint.
func WithEndpoint(endpoint string) Option {
	return func(t *Translator) {
		t.endpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Translator) {
		t.client = c
	}
}

// NewTranslator creates a new Translator.
func NewTranslator(opts ...Option) *Translator {
	t := &Translator{
		client:   &http.Client{Timeout: DefaultTimeout},
		endpoint: DefaultEndpoint,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate translates text from source to target language.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", newsdigest.Errorf(newsdigest.EINVALID, "text required")
	}
	if len(text) > maxTextLength {
		return "", newsdigest.Errorf(newsdigest.EINVALID, "text exceeds %d characters", maxTextLength)
	}

	body, err := t.request(ctx, text, source, target)
	if err != nil {
		return "", err
	}

	translated, err := ParseResponse(body)
	if err != nil {
		return "", err
	}
	return translated, nil
}

func (t *Translator) request(ctx context.Context, text, source, target string) ([]byte, error) {
	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", source)
	q.Set("tl", target)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, newsdigest.Errorf(newsdigest.ETRANSLATION, "building request: %v", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, newsdigest.Errorf(newsdigest.ETRANSLATION, "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newsdigest.Errorf(newsdigest.ETRANSLATION, "HTTP %d from translate endpoint", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newsdigest.Errorf(newsdigest.ETRANSLATION, "reading response: %v", err)
	}
	return body, nil
}

// ParseResponse extracts the translation from an endpoint response.
// The response is a nested JSON array whose first element lists translated
// segments as [translated, original, ...]; segments are concatenated.
func ParseResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", newsdigest.Errorf(newsdigest.ETRANSLATION, "malformed response")
	}

	segments := gjson.GetBytes(body, "0.#.0")
	if !segments.IsArray() {
		return "", newsdigest.Errorf(newsdigest.ETRANSLATION, "response has no translation")
	}

	var sb strings.Builder
	for _, seg := range segments.Array() {
		sb.WriteString(seg.String())
	}

	translated := strings.TrimSpace(sb.String())
	if translated == "" {
		return "", newsdigest.Errorf(newsdigest.ETRANSLATION, "empty translation")
	}
	return translated, nil
}

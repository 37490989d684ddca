package newsdigest

import "context"

// Default translation languages.
const (
	DefaultSourceLang = "es"
	DefaultTargetLang = "en"
)

// Translation is a translated article title.
type Translation struct {
	// Position is the position of the article the title came from.
	Position int    `json:"position"`
	Original string `json:"original"`
	Text     string `json:"text"`
}

// Translator translates text between languages.
type Translator interface {
	// Translate translates text from source to target language.
	// Returns EINVALID for empty text and ETRANSLATION on provider faults.
	Translate(ctx context.Context, text, source, target string) (string, error)
}

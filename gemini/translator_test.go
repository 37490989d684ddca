package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslator_Translate_ReturnsErrorWhenTextEmpty(t *testing.T) {
	t.Parallel()

	tr := gemini.NewTranslator(nil, "") // nil client ok for this test

	_, err := tr.Translate(context.Background(), "  ", "es", "en")

	require.Error(t, err)
	assert.Equal(t, newsdigest.EINVALID, newsdigest.ErrorCode(err))
	assert.Contains(t, newsdigest.ErrorMessage(err), "text required")
}

func TestTranslator_Translate_ReturnsErrorWhenLanguageMissing(t *testing.T) {
	t.Parallel()

	tr := gemini.NewTranslator(nil, "")

	_, err := tr.Translate(context.Background(), "Hola", "", "en")

	require.Error(t, err)
	assert.Equal(t, newsdigest.EINVALID, newsdigest.ErrorCode(err))
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "translation only")
}

func TestBuildConfig_SetsZeroTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.0, *config.Temperature, 0.001)
}

func TestBuildUserPrompt(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt("La guerra", "es", "en")

	assert.Contains(t, prompt, "Source language: es")
	assert.Contains(t, prompt, "Target language: en")
	assert.Contains(t, prompt, "<text>La guerra</text>")
	assert.NotContains(t, prompt, "professional news translator")
}

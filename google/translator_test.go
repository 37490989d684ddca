package google_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/fwojciec/newsdigest"
	"github.com/fwojciec/newsdigest/google"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSegmentResponse = `[[["The war in Ukraine. ","La guerra en Ucrania. ",null,null,10],["A new era","Una nueva era",null,null,10]],null,"es",null,null,null,1,[],[["es"],null,[1],["es"]]]`

func TestParseResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "concatenates segments",
			body: twoSegmentResponse,
			want: "The war in Ukraine. A new era",
		},
		{
			name: "single segment",
			body: `[[["Hello","Hola",null,null,1]],null,"es"]`,
			want: "Hello",
		},
		{
			name:    "malformed JSON",
			body:    `<html>captcha</html>`,
			wantErr: true,
		},
		{
			name:    "missing segments",
			body:    `[null,null,"es"]`,
			wantErr: true,
		},
		{
			name:    "empty translation",
			body:    `[[["","",null,null,1]]]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := google.ParseResponse([]byte(tt.body))

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, newsdigest.ETRANSLATION, newsdigest.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslator_Translate(t *testing.T) {
	t.Parallel()

	t.Run("sends languages and text", func(t *testing.T) {
		t.Parallel()

		var query url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			_, _ = w.Write([]byte(`[[["The opinion","La opinión",null,null,1]],null,"es"]`))
		}))
		defer server.Close()

		tr := google.NewTranslator(google.WithEndpoint(server.URL))
		got, err := tr.Translate(context.Background(), "La opinión", "es", "en")

		require.NoError(t, err)
		assert.Equal(t, "The opinion", got)
		assert.Equal(t, "gtx", query.Get("client"))
		assert.Equal(t, "es", query.Get("sl"))
		assert.Equal(t, "en", query.Get("tl"))
		assert.Equal(t, "La opinión", query.Get("q"))
	})

	t.Run("returns ETRANSLATION on HTTP error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		tr := google.NewTranslator(google.WithEndpoint(server.URL))
		_, err := tr.Translate(context.Background(), "Hola", "es", "en")

		require.Error(t, err)
		assert.Equal(t, newsdigest.ETRANSLATION, newsdigest.ErrorCode(err))
		assert.Contains(t, newsdigest.ErrorMessage(err), "429")
	})

	t.Run("returns ETRANSLATION on transport error", func(t *testing.T) {
		t.Parallel()

		tr := google.NewTranslator(google.WithEndpoint("http://non-existent-host.invalid/translate"))
		_, err := tr.Translate(context.Background(), "Hola", "es", "en")

		require.Error(t, err)
		assert.Equal(t, newsdigest.ETRANSLATION, newsdigest.ErrorCode(err))
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		tr := google.NewTranslator()
		_, err := tr.Translate(context.Background(), "   ", "es", "en")

		require.Error(t, err)
		assert.Equal(t, newsdigest.EINVALID, newsdigest.ErrorCode(err))
	})

	t.Run("rejects oversized text", func(t *testing.T) {
		t.Parallel()

		tr := google.NewTranslator()
		_, err := tr.Translate(context.Background(), strings.Repeat("a", 5001), "es", "en")

		require.Error(t, err)
		assert.Equal(t, newsdigest.EINVALID, newsdigest.ErrorCode(err))
	})
}

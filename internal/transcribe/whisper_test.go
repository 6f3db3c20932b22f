package transcribe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhisper_Transcribe(t *testing.T) {
	var gotLanguage, gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotLanguage = r.FormValue("language")
		gotModel = r.FormValue("model")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"bonjour à tous"}`))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "podcast.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3"), 0o600))

	w := NewWhisper("test-key", "whisper-1", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	text, err := w.Transcribe(context.Background(), path, "fr")

	require.NoError(t, err)
	assert.Equal(t, "bonjour à tous", text)
	assert.Equal(t, "fr", gotLanguage)
	assert.Equal(t, "whisper-1", gotModel)
}

func TestWhisper_MissingFile(t *testing.T) {
	w := NewWhisper("k", "whisper-1")
	_, err := w.Transcribe(context.Background(), filepath.Join(t.TempDir(), "none.mp3"), "fr")
	assert.Error(t, err)
}

// Package transcribe converts downloaded audio to text with OpenAI Whisper.
package transcribe

import (
	"context"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type Whisper struct {
	client openai.Client
	model  string
}

func NewWhisper(apiKey, model string, opts ...option.RequestOption) *Whisper {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Whisper{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (w *Whisper) Transcribe(ctx context.Context, path, language string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	params := openai.AudioTranscriptionNewParams{
		File:  f,
		Model: openai.AudioModel(w.model),
	}
	if language != "" {
		params.Language = openai.String(language)
	}

	resp, err := w.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("transcribe %s: %w", path, err)
	}
	return resp.Text, nil
}

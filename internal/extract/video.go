package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"

	"newsletter_digest/internal/classifier"
	"newsletter_digest/internal/domain"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:.*&)?v=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`youtube\.com/(?:live|shorts|embed)/([a-zA-Z0-9_-]+)`),
}

var ErrNoSubtitles = errors.New("no subtitles available")

// VideoIDFromURL resolves the canonical video identifier of a YouTube URL.
func VideoIDFromURL(u string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(u); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// TranscriptClient is the part of *youtube.Client the extractor needs.
type TranscriptClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetTranscriptCtx(ctx context.Context, video *youtube.Video, lang string) (youtube.VideoTranscript, error)
}

type VideoExtractor struct {
	client    TranscriptClient
	languages []string
	logger    *slog.Logger
}

func NewVideoExtractor(client TranscriptClient, languages []string, logger *slog.Logger) *VideoExtractor {
	return &VideoExtractor{
		client:    client,
		languages: languages,
		logger:    logger.With("strategy", "video"),
	}
}

func (e *VideoExtractor) Extract(ctx context.Context, item domain.RawItem, c classifier.Classification) Result {
	id, ok := VideoIDFromURL(c.URL)
	if !ok {
		return Result{Content: fmt.Sprintf("[could not extract video id from %s]", c.URL)}
	}

	title := "YouTube: " + id
	text, err := e.transcript(ctx, id)
	if err != nil {
		e.logger.Warn("transcript retrieval failed", "video_id", id, "external_id", item.ExternalID, "error", err)
		return Result{Title: title, Content: fmt.Sprintf("[YouTube transcript error: %v]", err)}
	}

	return Result{Title: title, Content: text}
}

func (e *VideoExtractor) transcript(ctx context.Context, id string) (string, error) {
	video, err := e.client.GetVideoContext(ctx, id)
	if err != nil {
		return "", fmt.Errorf("fetch video: %w", err)
	}

	track, ok := pickTrack(video.CaptionTracks, e.languages)
	if !ok {
		return "", fmt.Errorf("%w for languages %v", ErrNoSubtitles, e.languages)
	}

	segments, err := e.client.GetTranscriptCtx(ctx, video, track.LanguageCode)
	if err != nil {
		return "", fmt.Errorf("fetch transcript: %w", err)
	}

	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		text := strings.Join(strings.Fields(s.Text), " ")
		if text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return "", ErrNoSubtitles
	}
	return strings.Join(parts, " "), nil
}

// pickTrack walks languages in preference order, preferring manual tracks
// over auto-generated ones ("asr") for the same language.
func pickTrack(tracks []youtube.CaptionTrack, languages []string) (youtube.CaptionTrack, bool) {
	for _, lang := range languages {
		var generated *youtube.CaptionTrack
		for i := range tracks {
			t := tracks[i]
			if !strings.EqualFold(t.LanguageCode, lang) {
				continue
			}
			if t.Kind != "asr" {
				return t, true
			}
			if generated == nil {
				generated = &tracks[i]
			}
		}
		if generated != nil {
			return *generated, true
		}
	}
	return youtube.CaptionTrack{}, false
}

package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"newsletter_digest/internal/classifier"
	"newsletter_digest/internal/domain"
)

type Downloader interface {
	Download(ctx context.Context, url, dir string) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, path, language string) (string, error)
}

type AudioConfig struct {
	Language        string
	DownloadTimeout time.Duration
	MaxFileBytes    int64
	TempDir         string
}

type AudioExtractor struct {
	downloader  Downloader
	transcriber Transcriber
	cfg         AudioConfig
	logger      *slog.Logger
}

func NewAudioExtractor(downloader Downloader, transcriber Transcriber, cfg AudioConfig, logger *slog.Logger) *AudioExtractor {
	return &AudioExtractor{
		downloader:  downloader,
		transcriber: transcriber,
		cfg:         cfg,
		logger:      logger.With("strategy", "audio"),
	}
}

func (e *AudioExtractor) Extract(ctx context.Context, item domain.RawItem, c classifier.Classification) Result {
	title := "Podcast: " + c.URL

	dir, err := os.MkdirTemp(e.cfg.TempDir, "podcast-*")
	if err != nil {
		return Result{Title: title, Content: fmt.Sprintf("[podcast download error: %v]", err)}
	}
	defer os.RemoveAll(dir)

	path, err := e.download(ctx, c.URL, dir)
	if err != nil {
		e.logger.Warn("podcast download failed", "url", c.URL, "external_id", item.ExternalID, "error", err)
		return Result{Title: title, Content: fmt.Sprintf("[podcast download error: %v]", err)}
	}

	if info, err := os.Stat(path); err == nil && e.cfg.MaxFileBytes > 0 && info.Size() > e.cfg.MaxFileBytes {
		return Result{Title: title, Content: fmt.Sprintf("[podcast transcription error: audio file is %d bytes, limit is %d]", info.Size(), e.cfg.MaxFileBytes)}
	}

	text, err := e.transcriber.Transcribe(ctx, path, e.cfg.Language)
	if err != nil {
		e.logger.Warn("podcast transcription failed", "url", c.URL, "external_id", item.ExternalID, "error", err)
		return Result{Title: title, Content: fmt.Sprintf("[podcast transcription error: %v]", err)}
	}

	return Result{Title: title, Content: text}
}

// download is bounded by DownloadTimeout and never retried.
func (e *AudioExtractor) download(ctx context.Context, url, dir string) (string, error) {
	dctx, cancel := context.WithTimeout(ctx, e.cfg.DownloadTimeout)
	defer cancel()

	path, err := e.downloader.Download(dctx, url, dir)
	if err != nil {
		if errors.Is(dctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("timed out after %s", e.cfg.DownloadTimeout)
		}
		return "", err
	}
	return path, nil
}

// YtDlp downloads audio with the yt-dlp binary.
type YtDlp struct {
	Binary string
}

func (y YtDlp) Download(ctx context.Context, url, dir string) (string, error) {
	output := filepath.Join(dir, "podcast.%(ext)s")
	cmd := exec.CommandContext(ctx, y.Binary,
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", "5",
		"--output", output,
		"--no-playlist",
		url,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp: %w: %s", err, tail(out, 500))
	}

	matches, err := filepath.Glob(filepath.Join(dir, "podcast.*"))
	if err != nil || len(matches) == 0 {
		return "", errors.New("yt-dlp produced no audio file")
	}
	return matches[0], nil
}

func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(b)
}

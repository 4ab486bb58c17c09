// Package media downloads audio for a video URL and gathers descriptive
// metadata about it.
package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kapu/ayovirals-go/internal/constants"
	"go.uber.org/zap"
)

var (
	// ErrDisabled is returned when acquisition is switched off in config.
	ErrDisabled = errors.New("media acquisition disabled")
	// ErrToolMissing is returned when the yt-dlp binary cannot be found.
	ErrToolMissing = errors.New("yt-dlp not available")
	// ErrNoAudio is returned when the download step produced no audio file.
	ErrNoAudio = errors.New("no audio file produced")
)

// Acquisition is the outcome of one successful download attempt. Callers must
// call Cleanup once the audio has been consumed.
type Acquisition struct {
	AudioPath   string
	Title       string
	Duration    string
	Description string

	dir    string
	keep   bool
	logger *zap.Logger
}

// Cleanup removes the temporary directory holding the audio. Failures are
// logged only.
func (a *Acquisition) Cleanup() {
	if a == nil || a.dir == "" || a.keep {
		return
	}
	if err := os.RemoveAll(a.dir); err != nil {
		a.logger.Warn("Failed to remove media temp dir",
			zap.String("dir", a.dir),
			zap.Error(err))
	}
}

// Text joins the non-empty title and description.
func (a *Acquisition) Text() string {
	parts := make([]string, 0, 2)
	for _, p := range []string{a.Title, a.Description} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ". ")
}

// AcquirerOptions configures an Acquirer.
type AcquirerOptions struct {
	Enabled         bool
	BinaryPath      string
	TempDir         string
	KeepFiles       bool
	InfoTimeout     time.Duration
	DownloadTimeout time.Duration
}

// Acquirer drives yt-dlp: one metadata print call, then an audio extraction.
type Acquirer struct {
	opts   AcquirerOptions
	runner CommandRunner
	logger *zap.Logger
}

func NewAcquirer(opts AcquirerOptions, runner CommandRunner, logger *zap.Logger) *Acquirer {
	if opts.BinaryPath == "" {
		opts.BinaryPath = "yt-dlp"
	}
	if opts.InfoTimeout <= 0 {
		opts.InfoTimeout = constants.MediaTimeouts.Info
	}
	if opts.DownloadTimeout <= 0 {
		opts.DownloadTimeout = constants.MediaTimeouts.Download
	}
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Acquirer{
		opts:   opts,
		runner: runner,
		logger: logger,
	}
}

// Available reports whether acquisition is enabled and yt-dlp resolves.
func (a *Acquirer) Available() error {
	if !a.opts.Enabled {
		return ErrDisabled
	}
	if _, err := a.runner.LookPath(a.opts.BinaryPath); err != nil {
		return fmt.Errorf("%w: %v", ErrToolMissing, err)
	}
	return nil
}

// Acquire fetches metadata and extracts audio for url into a fresh temp dir.
// On error nothing is left on disk.
func (a *Acquirer) Acquire(ctx context.Context, url string) (*Acquisition, error) {
	if err := a.Available(); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp(a.opts.TempDir, "ayovirals-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}

	acq := &Acquisition{dir: dir, keep: a.opts.KeepFiles, logger: a.logger}
	success := false
	defer func() {
		if !success {
			acq.keep = false
			acq.Cleanup()
		}
	}()

	if err := a.fetchInfo(ctx, url, acq); err != nil {
		return nil, err
	}

	audioPath, err := a.download(ctx, url, dir)
	if err != nil {
		return nil, err
	}
	acq.AudioPath = audioPath

	a.logger.Info("Media acquired",
		zap.String("url", url),
		zap.String("title", acq.Title),
		zap.String("duration", acq.Duration))

	success = true
	return acq, nil
}

func (a *Acquirer) fetchInfo(ctx context.Context, url string, acq *Acquisition) error {
	infoCtx, cancel := context.WithTimeout(ctx, a.opts.InfoTimeout)
	defer cancel()

	out, err := a.runner.Run(infoCtx, a.opts.BinaryPath,
		"--print", "title",
		"--print", "duration",
		"--print", "description",
		url,
	)
	if err != nil {
		return fmt.Errorf("yt-dlp info failed: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	acq.Title = "Unknown"
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		acq.Title = strings.TrimSpace(lines[0])
	}
	if len(lines) > 1 {
		acq.Duration = strings.TrimSpace(lines[1])
	}
	if len(lines) > 2 {
		acq.Description = strings.TrimSpace(strings.Join(lines[2:], "\n"))
	}
	return nil
}

func (a *Acquirer) download(ctx context.Context, url, dir string) (string, error) {
	dlCtx, cancel := context.WithTimeout(ctx, a.opts.DownloadTimeout)
	defer cancel()

	template := filepath.Join(dir, "audio.%(ext)s")
	if _, err := a.runner.Run(dlCtx, a.opts.BinaryPath,
		"-x",
		"--audio-format", "wav",
		"--audio-quality", "0",
		"-o", template,
		url,
	); err != nil {
		return "", fmt.Errorf("yt-dlp download failed: %w", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "audio.*"))
	if err != nil {
		return "", fmt.Errorf("failed to locate audio: %w", err)
	}
	if len(matches) == 0 {
		return "", ErrNoAudio
	}
	return matches[0], nil
}

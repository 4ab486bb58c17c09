package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeRunner struct {
	mu          sync.Mutex
	infoOut     string
	infoErr     error
	downloadErr error
	writeAudio  bool
	lookErr     error
	calls       [][]string
	deadlines   []time.Duration
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string{name}, args...))
	if dl, ok := ctx.Deadline(); ok {
		f.deadlines = append(f.deadlines, time.Until(dl))
	}

	if args[0] == "--print" {
		return f.infoOut, f.infoErr
	}
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	if f.writeAudio {
		for i, a := range args {
			if a == "-o" {
				out := strings.Replace(args[i+1], "%(ext)s", "wav", 1)
				if err := os.WriteFile(out, []byte("RIFF"), 0o600); err != nil {
					return "", err
				}
			}
		}
	}
	return "", nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.lookErr != nil {
		return "", f.lookErr
	}
	return "/usr/bin/" + name, nil
}

func newTestAcquirer(t *testing.T, runner *fakeRunner) *Acquirer {
	t.Helper()
	return NewAcquirer(AcquirerOptions{
		Enabled: true,
		TempDir: t.TempDir(),
	}, runner, zap.NewNop())
}

func TestAcquireSuccess(t *testing.T) {
	runner := &fakeRunner{
		infoOut:    "Tiny NYC Studio Tour\n95\nA $3000 shoebox.\nSecond line.",
		writeAudio: true,
	}
	acq := newTestAcquirer(t, runner)

	got, err := acq.Acquire(context.Background(), "https://youtube.com/watch?v=abc")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	if got.Title != "Tiny NYC Studio Tour" || got.Duration != "95" {
		t.Fatalf("unexpected metadata: %+v", got)
	}
	if got.Description != "A $3000 shoebox.\nSecond line." {
		t.Fatalf("unexpected description %q", got.Description)
	}
	if filepath.Base(got.AudioPath) != "audio.wav" {
		t.Fatalf("unexpected audio path %q", got.AudioPath)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected 2 yt-dlp calls, got %d", len(runner.calls))
	}
	if runner.deadlines[0] > 30*time.Second || runner.deadlines[1] > 120*time.Second || runner.deadlines[1] <= 30*time.Second {
		t.Fatalf("unexpected step deadlines %v", runner.deadlines)
	}

	dir := filepath.Dir(got.AudioPath)
	got.Cleanup()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected temp dir removed, stat err = %v", err)
	}
}

func TestAcquireFailuresLeaveNothingBehind(t *testing.T) {
	tests := []struct {
		name   string
		runner *fakeRunner
		want   error
	}{
		{name: "info error", runner: &fakeRunner{infoErr: errors.New("exit 1")}},
		{name: "download error", runner: &fakeRunner{infoOut: "t", downloadErr: errors.New("exit 1")}},
		{name: "no audio", runner: &fakeRunner{infoOut: "t"}, want: ErrNoAudio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := t.TempDir()
			acq := NewAcquirer(AcquirerOptions{Enabled: true, TempDir: tmp}, tt.runner, zap.NewNop())

			_, err := acq.Acquire(context.Background(), "https://tiktok.com/@x/video/1")
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			entries, _ := os.ReadDir(tmp)
			if len(entries) != 0 {
				t.Fatalf("expected temp root to be empty, found %d entries", len(entries))
			}
		})
	}
}

func TestAcquireFailsFastWhenUnavailable(t *testing.T) {
	disabled := NewAcquirer(AcquirerOptions{Enabled: false}, &fakeRunner{}, zap.NewNop())
	if _, err := disabled.Acquire(context.Background(), "u"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}

	runner := &fakeRunner{lookErr: errors.New("not found")}
	missing := NewAcquirer(AcquirerOptions{Enabled: true}, runner, zap.NewNop())
	if _, err := missing.Acquire(context.Background(), "u"); !errors.Is(err, ErrToolMissing) {
		t.Fatalf("expected ErrToolMissing, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Fatal("runner must not be invoked when yt-dlp is missing")
	}
}

func TestAcquisitionKeepFiles(t *testing.T) {
	runner := &fakeRunner{infoOut: "t", writeAudio: true}
	acq := NewAcquirer(AcquirerOptions{Enabled: true, TempDir: t.TempDir(), KeepFiles: true}, runner, zap.NewNop())

	got, err := acq.Acquire(context.Background(), "u")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	got.Cleanup()
	if _, err := os.Stat(got.AudioPath); err != nil {
		t.Fatalf("expected audio kept, stat err = %v", err)
	}
}

package transcribe

import (
	"context"
	"errors"
	"testing"

	"github.com/kapu/ayovirals-go/internal/config"
	"github.com/kapu/ayovirals-go/internal/util"
	"go.uber.org/zap"
)

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Name() string { return "fake" }

func (f *fakeTranscriber) Transcribe(context.Context, string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestServiceReturnsTranscript(t *testing.T) {
	svc := NewService(&fakeTranscriber{text: "hello there"}, zap.NewNop())

	text, ok := svc.Transcribe(context.Background(), "/tmp/audio.wav")
	if !ok || text != "hello there" {
		t.Fatalf("Transcribe() = %q, %v", text, ok)
	}
}

func TestServiceDegradesToPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		tr   Transcriber
	}{
		{name: "nil provider", tr: nil},
		{name: "provider error", tr: &fakeTranscriber{err: errors.New("boom")}},
		{name: "empty text", tr: &fakeTranscriber{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.tr, zap.NewNop())
			text, ok := svc.Transcribe(context.Background(), "f")
			if ok || text != Placeholder {
				t.Fatalf("Transcribe() = %q, %v", text, ok)
			}
		})
	}
}

func TestServiceOpensCircuitAfterRepeatedFailures(t *testing.T) {
	fake := &fakeTranscriber{err: errors.New("rate limited")}
	svc := NewService(fake, zap.NewNop())

	for i := 0; i < 5; i++ {
		svc.Transcribe(context.Background(), "f")
	}

	if fake.calls != 3 {
		t.Fatalf("expected provider called 3 times before circuit opened, got %d", fake.calls)
	}
	if svc.Breaker().GetState() != util.CircuitStateOpen {
		t.Fatalf("expected open circuit, got %s", svc.Breaker().GetState())
	}
}

func TestNewSelectsProvider(t *testing.T) {
	tr, err := New(context.Background(), config.TranscribeConfig{Provider: "mock"}, zap.NewNop())
	if err != nil {
		t.Fatalf("New(mock) error = %v", err)
	}
	text, err := tr.Transcribe(context.Background(), "ignored")
	if err != nil || text != MockText {
		t.Fatalf("mock Transcribe() = %q, %v", text, err)
	}

	tr, err = New(context.Background(), config.TranscribeConfig{Provider: "none"}, zap.NewNop())
	if err != nil || tr != nil {
		t.Fatalf("New(none) = %v, %v", tr, err)
	}
	if NewService(tr, zap.NewNop()).Name() != "none" {
		t.Fatal("expected service name none")
	}

	if _, err := New(context.Background(), config.TranscribeConfig{Provider: "openai"}, zap.NewNop()); err == nil {
		t.Fatal("expected error without OpenAI key")
	}
	if _, err := New(context.Background(), config.TranscribeConfig{Provider: "whisper-local"}, zap.NewNop()); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

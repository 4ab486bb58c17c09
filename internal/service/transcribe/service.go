package transcribe

import (
	"context"
	"errors"
	"time"

	"github.com/kapu/ayovirals-go/internal/constants"
	"github.com/kapu/ayovirals-go/internal/util"
	apperrors "github.com/kapu/ayovirals-go/pkg/errors"
	"go.uber.org/zap"
)

// Placeholder labels text that stands in for a failed transcription.
const Placeholder = "[transcription unavailable] Audio could not be transcribed for this video."

var errEmptyTranscript = errors.New("empty transcript")

// Service guards a Transcriber with a timeout and a circuit breaker.
type Service struct {
	transcriber Transcriber
	breaker     *util.CircuitBreaker
	timeout     time.Duration
	logger      *zap.Logger
}

// NewService accepts a nil transcriber.
func NewService(t Transcriber, logger *zap.Logger) *Service {
	return &Service{
		transcriber: t,
		breaker: util.NewCircuitBreaker("transcriber",
			constants.CircuitBreakerConfig.FailureThreshold,
			constants.CircuitBreakerConfig.ResetTimeout,
			logger),
		timeout: constants.TranscribeTimeouts.Request,
		logger:  logger,
	}
}

// Name reports the underlying provider, or "none".
func (s *Service) Name() string {
	if s.transcriber == nil {
		return ProviderNone
	}
	return s.transcriber.Name()
}

// Breaker exposes the breaker for health reporting.
func (s *Service) Breaker() *util.CircuitBreaker {
	return s.breaker
}

// Transcribe returns the transcript and true, or Placeholder and false on any
// failure. It never returns an error.
func (s *Service) Transcribe(ctx context.Context, filePath string) (string, bool) {
	if s.transcriber == nil {
		return Placeholder, false
	}
	if !s.breaker.CanExecute() {
		s.logger.Warn("Transcription skipped, circuit open",
			zap.String("provider", s.transcriber.Name()))
		return Placeholder, false
	}

	tctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.transcriber.Transcribe(tctx, filePath)
	if err == nil && text == "" {
		err = errEmptyTranscript
	}
	if err != nil {
		s.breaker.RecordFailure()
		s.logger.Warn("Transcription failed",
			zap.String("provider", s.transcriber.Name()),
			zap.String("file", filePath),
			zap.String("code", apperrors.Code(err)),
			zap.Error(err))
		return Placeholder, false
	}

	s.breaker.RecordSuccess()
	return text, true
}

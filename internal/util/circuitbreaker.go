package util

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// CircuitState represents the state of the circuit breaker
type CircuitState string

const (
	CircuitStateClosed   CircuitState = "CLOSED"
	CircuitStateOpen     CircuitState = "OPEN"
	CircuitStateHalfOpen CircuitState = "HALF_OPEN"
)

func (s CircuitState) String() string {
	return string(s)
}

// CircuitBreaker stops calling a failing dependency for resetTimeout after
// failureThreshold consecutive failures. After the timeout a single trial call
// is let through (HALF_OPEN); its outcome closes or re-opens the circuit.
type CircuitBreaker struct {
	name             string
	state            CircuitState
	failureCount     int
	failureThreshold int
	resetTimeout     time.Duration
	nextRetryTime    time.Time
	now              func() time.Time
	logger           *zap.Logger
	mu               sync.Mutex
}

func NewCircuitBreaker(name string, failureThreshold int, resetTimeout time.Duration, logger *zap.Logger) *CircuitBreaker {
	if failureThreshold <= 0 {
		failureThreshold = 1
	}
	return &CircuitBreaker{
		name:             name,
		state:            CircuitStateClosed,
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		now:              time.Now,
		logger:           logger,
	}
}

// GetState returns the current state, moving OPEN to HALF_OPEN once the
// reset timeout has elapsed.
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitStateOpen && cb.now().After(cb.nextRetryTime) {
		cb.transitionTo(CircuitStateHalfOpen)
	}
	return cb.state
}

// CanExecute checks if requests can be executed
func (cb *CircuitBreaker) CanExecute() bool {
	return cb.GetState() != CircuitStateOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitStateHalfOpen {
		cb.logger.Info("Circuit Breaker: dependency recovered", zap.String("name", cb.name))
		cb.transitionTo(CircuitStateClosed)
	}
	cb.failureCount = 0
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++

	cb.logger.Warn("Circuit Breaker: failure recorded",
		zap.String("name", cb.name),
		zap.Int("count", cb.failureCount),
		zap.Int("threshold", cb.failureThreshold),
	)

	if cb.state == CircuitStateHalfOpen || cb.failureCount >= cb.failureThreshold {
		cb.nextRetryTime = cb.now().Add(cb.resetTimeout)
		cb.transitionTo(CircuitStateOpen)
	}
}

// transitionTo must be called with the lock held.
func (cb *CircuitBreaker) transitionTo(newState CircuitState) {
	oldState := cb.state
	cb.state = newState

	nextRetry := "n/a"
	if newState == CircuitStateOpen {
		nextRetry = cb.nextRetryTime.Format(time.RFC3339)
	}

	cb.logger.Info("Circuit Breaker: state transition",
		zap.String("name", cb.name),
		zap.String("from", oldState.String()),
		zap.String("to", newState.String()),
		zap.Int("failure_count", cb.failureCount),
		zap.String("next_retry", nextRetry),
	)
}

func (cb *CircuitBreaker) GetStatus() CircuitBreakerStatus {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	status := CircuitBreakerStatus{
		State:        cb.state,
		FailureCount: cb.failureCount,
	}
	if cb.state == CircuitStateOpen {
		next := cb.nextRetryTime
		status.NextRetryTime = &next
	}
	return status
}

type CircuitBreakerStatus struct {
	State         CircuitState
	FailureCount  int
	NextRetryTime *time.Time
}

package market

import (
	"sync"
	"time"
)

// CircuitState represents the state of the circuit breaker
type CircuitState int

const (
	CircuitClosed   CircuitState = iota // Normal operation
	CircuitOpen                         // Too many failures, blocking requests
	CircuitHalfOpen                     // Cooldown passed, next attempt decides
)

// CircuitBreaker stops calling a failing provider for a cooldown period
type CircuitBreaker struct {
	maxFailures     int
	cooldownPeriod  time.Duration
	failures        int
	lastFailureTime time.Time
	state           CircuitState
	now             func() time.Time
	mu              sync.Mutex
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(maxFailures int, cooldownPeriod time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:    maxFailures,
		cooldownPeriod: cooldownPeriod,
		state:          CircuitClosed,
		now:            time.Now,
	}
}

// CanAttempt returns true if a request can be attempted
func (cb *CircuitBreaker) CanAttempt() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != CircuitOpen {
		return true
	}
	if cb.now().Sub(cb.lastFailureTime) > cb.cooldownPeriod {
		cb.state = CircuitHalfOpen
		return true
	}
	return false
}

// RecordSuccess closes the circuit
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.state = CircuitClosed
}

// RecordFailure opens the circuit after maxFailures consecutive failures, or at once when half-open
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailureTime = cb.now()

	if cb.failures >= cb.maxFailures || cb.state == CircuitHalfOpen {
		cb.state = CircuitOpen
	}
}

// State returns the current circuit breaker state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

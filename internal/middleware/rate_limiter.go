package middleware

import (
	"sync"
	"time"
)

// AttemptLimiter limita intentos por identificador (email, IP) dentro de
// una ventana deslizante. El reloj se inyecta para poder avanzar el
// tiempo en los tests.
type AttemptLimiter struct {
	mutex       sync.Mutex
	attempts    map[string]*attemptEntry
	maxAttempts int
	window      time.Duration
	now         func() time.Time
}

type attemptEntry struct {
	count     int
	resetTime time.Time
}

// NewAttemptLimiter crea un limitador con reloj real
func NewAttemptLimiter(maxAttempts int, window time.Duration) *AttemptLimiter {
	return NewAttemptLimiterWithClock(maxAttempts, window, time.Now)
}

// NewAttemptLimiterWithClock permite inyectar el reloj (para tests)
func NewAttemptLimiterWithClock(maxAttempts int, window time.Duration, now func() time.Time) *AttemptLimiter {
	return &AttemptLimiter{
		attempts:    make(map[string]*attemptEntry),
		maxAttempts: maxAttempts,
		window:      window,
		now:         now,
	}
}

// Allow registra un intento para el identificador y decide si se permite.
// Devuelve los intentos restantes y el momento en que la ventana expira.
func (l *AttemptLimiter) Allow(identifier string) (allowed bool, remaining int, resetTime time.Time) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.now()
	entry, exists := l.attempts[identifier]

	if !exists || now.After(entry.resetTime) {
		// Ventana nueva para este identificador
		entry = &attemptEntry{count: 1, resetTime: now.Add(l.window)}
		l.attempts[identifier] = entry
		return true, l.maxAttempts - 1, entry.resetTime
	}

	if entry.count >= l.maxAttempts {
		return false, 0, entry.resetTime
	}

	entry.count++
	return true, l.maxAttempts - entry.count, entry.resetTime
}

// Reset limpia los intentos del identificador (por ejemplo tras un login
// exitoso)
func (l *AttemptLimiter) Reset(identifier string) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	delete(l.attempts, identifier)
}

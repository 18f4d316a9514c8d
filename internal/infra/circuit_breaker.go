package infra

import (
	"errors"
	"sync"
	"time"
)

// CircuitBreaker protege el relay SMTP: tras una racha de fallos los envíos
// fallan rápido en vez de colgar a cada worker esperando timeouts. Pasado el
// periodo de enfriamiento deja pasar sondas hasta juntar la racha de éxitos
// que lo vuelve a cerrar.

// ErrCircuitOpen se devuelve mientras el circuito está abierto.
var ErrCircuitOpen = errors.New("circuit breaker abierto")

type CircuitBreakerConfig struct {
	FailureThreshold int           // fallos consecutivos que abren el circuito
	SuccessThreshold int           // éxitos de sonda que lo cierran
	OpenTimeout      time.Duration // enfriamiento antes de sondear
}

func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
	}
}

type CircuitBreaker struct {
	mu       sync.Mutex
	cfg      CircuitBreakerConfig
	fallos   int
	exitos   int
	abierto  bool
	abiertoA time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{cfg: cfg}
}

// Execute corre fn a través del circuito. Si está abierto y el enfriamiento
// no venció devuelve ErrCircuitOpen sin invocar fn.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.permitir() {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.registrarFallo()
		return err
	}
	cb.registrarExito()
	return nil
}

func (cb *CircuitBreaker) permitir() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if !cb.abierto {
		return true
	}
	// Abierto: solo sondas una vez vencido el enfriamiento
	return time.Since(cb.abiertoA) >= cb.cfg.OpenTimeout
}

func (cb *CircuitBreaker) registrarFallo() {
	cb.exitos = 0
	if cb.abierto {
		// La sonda falló: reiniciar el enfriamiento
		cb.abiertoA = time.Now()
		return
	}
	cb.fallos++
	if cb.fallos >= cb.cfg.FailureThreshold {
		cb.abierto = true
		cb.abiertoA = time.Now()
	}
}

func (cb *CircuitBreaker) registrarExito() {
	cb.fallos = 0
	if !cb.abierto {
		return
	}
	cb.exitos++
	if cb.exitos >= cb.cfg.SuccessThreshold {
		cb.abierto = false
		cb.exitos = 0
	}
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/edulopezdev/forestBarber/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ventana acumula solicitudes de una IP hasta que expira.
type ventana struct {
	intentos int
	expira   time.Time
}

// limiter es un limitador de ventana deslizante por IP, en memoria.
// Alcanza para una instancia única del backend; las entradas vencidas
// se purgan en segundo plano.
type limiter struct {
	mu       sync.Mutex
	ventanas map[string]*ventana
	limite   int
	duracion time.Duration
	mensaje  string
}

func newLimiter(limite int, duracion time.Duration, mensaje string) *limiter {
	l := &limiter{
		ventanas: make(map[string]*ventana),
		limite:   limite,
		duracion: duracion,
		mensaje:  mensaje,
	}
	go l.purgar()
	return l
}

func (l *limiter) permitir(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.ventanas[ip]
	if !ok || now.After(v.expira) {
		v = &ventana{expira: now.Add(l.duracion)}
		l.ventanas[ip] = v
	}
	v.intentos++
	return v.intentos <= l.limite, v.expira
}

func (l *limiter) purgar() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		purgadas := 0
		for ip, v := range l.ventanas {
			if now.After(v.expira) {
				delete(l.ventanas, ip)
				purgadas++
			}
		}
		restantes := len(l.ventanas)
		l.mu.Unlock()

		if purgadas > 0 {
			log.Debug().
				Int("purgadas", purgadas).
				Int("restantes", restantes).
				Msg("rate limiter: ventanas vencidas purgadas")
		}
	}
}

func (l *limiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, expira := l.permitir(c.ClientIP())
		if !ok {
			c.Header("Retry-After", expira.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

// RateLimiter limita el tráfico general de la API por IP.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newLimiter(limit, window, "Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}

// LoginRateLimiter acota los intentos de login a 20 por minuto por IP.
// Mitiga fuerza bruta sobre /api/auth/login.
func LoginRateLimiter() gin.HandlerFunc {
	return newLimiter(20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.").handler()
}

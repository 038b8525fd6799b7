package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	apperror "estoqueti/internal/errors"
	"estoqueti/internal/pkg/cache"
	"estoqueti/internal/pkg/logger"
)

// RateLimiter limita o número de requisições por IP em uma janela fixa.
// Falhas do cache não bloqueiam o tráfego: a requisição segue e o erro é registrado.
func RateLimiter(client cache.Client, limit int, duration time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + ip
			ctx := r.Context()

			// 1. Contar a requisição (INCR é atômico; o primeiro acesso abre a janela)
			count, err := client.Incr(ctx, key)
			if err != nil {
				log.Error("Falha ao incrementar contador do rate limit.", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := client.Expire(ctx, key, duration); err != nil {
					log.Error("Falha ao iniciar janela do rate limit.", err)
				}
			}

			// 2. Bloquear acima do limite
			if count > int64(limit) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", strconv.Itoa(int(duration.Seconds())))
				writeError(w, &tooManyRequestsError{})
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-int(count)))
			next.ServeHTTP(w, r)
		})
	}
}

// tooManyRequestsError é exclusivo do rate limiter e não faz parte do domínio.
type tooManyRequestsError struct{}

func (e *tooManyRequestsError) Error() string    { return "Limite de requisições excedido. Tente novamente mais tarde." }
func (e *tooManyRequestsError) Category() string { return "RATE_LIMITED" }
func (e *tooManyRequestsError) HTTPStatus() int  { return http.StatusTooManyRequests }
func (e *tooManyRequestsError) Unwrap() error    { return nil }

var _ apperror.AppError = (*tooManyRequestsError)(nil)

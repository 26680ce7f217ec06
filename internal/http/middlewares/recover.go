package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/jwksverify/internal/http/errors"
	"github.com/dropDatabas3/jwksverify/internal/observability/logger"
)

// WithRecover captura panics y devuelve un 500 en lugar de tirar la conexión.
func WithRecover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.From(r.Context()).Error("panic recovered",
						logger.Op("recover"),
						logger.Any("panic", rec),
					)
					errors.WriteError(w, errors.ErrInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

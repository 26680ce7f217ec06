package middlewares

import "context"

type ctxKey string

const (
	ctxRequestIDKey ctxKey = "request_id"
	ctxSubjectKey   ctxKey = "subject"
)

func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID obtiene el request ID del contexto ("" si no hay).
func GetRequestID(ctx context.Context) string {
	s, _ := ctx.Value(ctxRequestIDKey).(string)
	return s
}

// subjectHolder deja que el handler publique el sub verificado hacia el
// middleware de logging, que ya tiene su contexto armado.
type subjectHolder struct{ sub string }

func withSubjectHolder(ctx context.Context) (context.Context, *subjectHolder) {
	h := &subjectHolder{}
	return context.WithValue(ctx, ctxSubjectKey, h), h
}

// SetSubject registra el sub de un token válido para el log del request.
// No-op si el middleware de logging no está en la cadena.
func SetSubject(ctx context.Context, sub string) {
	if h, ok := ctx.Value(ctxSubjectKey).(*subjectHolder); ok {
		h.sub = sub
	}
}

// Package logger expone un logger Zap singleton con scoping por contexto.
//
// Inicialización (una vez, en el comando serve):
//
//	logger.Init(logger.Config{
//	    Env:   cfg.App.Env,   // "dev" o "prod"
//	    Level: cfg.App.LogLevel,
//	})
//	defer logger.Sync()
//
// En handlers (con contexto, el middleware de logging inyecta request_id/method/path):
//
//	log := logger.From(r.Context())
//	log.Warn("token rejected", logger.Reason("key_mismatch"))
//
// Sin contexto (fallback al singleton):
//
//	logger.L().Info("jwks document loaded", logger.KeyID(kid))
package logger

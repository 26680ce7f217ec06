package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu       sync.Mutex
	instance *zap.Logger
)

// Init inicializa el logger singleton. Solo la primera llamada tiene efecto.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = build(cfg)
	}
}

// L retorna el logger singleton.
// Si Init() no fue llamado, crea un logger por defecto (dev, info).
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		instance = build(Config{Env: "dev", Level: "info"})
	}
	return instance
}

// Named retorna un logger con un nombre de componente.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Replace reemplaza el singleton. Pensado para tests (zap.NewNop, zaptest).
func Replace(l *zap.Logger) {
	mu.Lock()
	instance = l
	mu.Unlock()
}

// Sync flushea cualquier buffer pendiente.
func Sync() error {
	mu.Lock()
	l := instance
	mu.Unlock()
	if l != nil {
		return l.Sync()
	}
	return nil
}

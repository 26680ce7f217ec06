// Package health contiene DTOs para endpoints de health check.
package health

import "time"

// ComponentStatus representa el estado de un componente específico.
type ComponentStatus struct {
	Status  string `json:"status"` // "ok" | "error"
	Message string `json:"message,omitempty"`
}

// ReadyResponse es el cuerpo de GET /readyz.
type ReadyResponse struct {
	Status     string                     `json:"status"` // "ready" | "unavailable"
	KeyID      string                     `json:"kid,omitempty"`
	Components map[string]ComponentStatus `json:"components"`
	Version    string                     `json:"version,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

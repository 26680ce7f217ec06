// Package health contiene el controller de /readyz.
package health

import (
	"net/http"
	"time"

	dto "github.com/dropDatabas3/jwksverify/internal/http/dto/health"
	httperrors "github.com/dropDatabas3/jwksverify/internal/http/errors"
	"github.com/dropDatabas3/jwksverify/internal/observability/logger"
)

// KeyChecker es lo que el health check necesita del verificador.
type KeyChecker interface {
	KeyID() string
	CheckKey() error
}

// HealthController maneja GET /readyz.
type HealthController struct {
	keys    KeyChecker
	version string
}

// NewHealthController crea el controller. version puede ser "".
func NewHealthController(keys KeyChecker, version string) *HealthController {
	return &HealthController{keys: keys, version: version}
}

// Readyz maneja GET /readyz
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("HealthController.Readyz"))

	resp := dto.ReadyResponse{
		Status:     "ready",
		KeyID:      c.keys.KeyID(),
		Components: map[string]dto.ComponentStatus{},
		Version:    c.version,
		Timestamp:  time.Now().UTC(),
	}

	if err := c.keys.CheckKey(); err != nil {
		log.Error("key material self-check failed", logger.KeyID(resp.KeyID), logger.Err(err))
		resp.Status = "unavailable"
		resp.Components["key_material"] = dto.ComponentStatus{Status: "error", Message: "decoding key cannot be built"}
	} else {
		resp.Components["key_material"] = dto.ComponentStatus{Status: "ok"}
	}

	if resp.KeyID != "" {
		w.Header().Set("X-JWKS-KID", resp.KeyID)
	}
	if c.version != "" {
		w.Header().Set("X-Service-Version", c.version)
	}

	status := http.StatusOK
	if resp.Status != "ready" {
		status = http.StatusServiceUnavailable
	}
	httperrors.WriteJSON(w, status, resp)
}

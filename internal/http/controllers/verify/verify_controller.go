// Package verify contiene el controller de GET /verify.
package verify

import (
	"errors"
	"net/http"
	"strings"

	httperrors "github.com/dropDatabas3/jwksverify/internal/http/errors"
	mw "github.com/dropDatabas3/jwksverify/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/jwksverify/internal/jwt"
	"github.com/dropDatabas3/jwksverify/internal/metrics"
	"github.com/dropDatabas3/jwksverify/internal/observability/logger"
	"github.com/dropDatabas3/jwksverify/internal/util"
)

const bearerPrefix = "Bearer "

// TokenVerifier valida un bearer token crudo.
type TokenVerifier interface {
	Verify(raw string) (*jwtx.Claims, error)
}

// VerifyController mapea un request a una respuesta; no guarda estado entre requests.
type VerifyController struct {
	verifier TokenVerifier
}

// NewVerifyController crea el controller sobre un verificador compartido.
func NewVerifyController(v TokenVerifier) *VerifyController {
	return &VerifyController{verifier: v}
}

// Verify maneja GET /verify
func (c *VerifyController) Verify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("VerifyController.Verify"))

	token, appErr := bearerToken(r)
	if appErr != nil {
		metrics.RecordVerify(metrics.ResultBadRequest)
		log.Debug("bad authorization header", logger.Reason(appErr.Code))
		httperrors.WriteError(w, appErr)
		return
	}

	claims, err := c.verifier.Verify(token)
	if err != nil {
		result, appErr := classify(err)
		metrics.RecordVerify(result)
		if appErr.HTTPStatus == http.StatusUnauthorized {
			w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		}
		if appErr.HTTPStatus >= 500 {
			log.Error("verification failed", logger.Reason(result), logger.Err(err))
		} else {
			log.Debug("token rejected", logger.Reason(result), logger.Err(err), logger.Any("token", util.MaskToken(token)))
		}
		httperrors.WriteError(w, appErr)
		return
	}

	metrics.RecordVerify(metrics.ResultOK)
	mw.SetSubject(ctx, claims.Subject)
	httperrors.WriteJSON(w, http.StatusOK, claims)
}

// bearerToken extrae el token de Authorization. El orden de chequeos define
// qué 400 ve el cliente: ausente → no-texto → sin prefijo → vacío.
func bearerToken(r *http.Request) (string, *httperrors.AppError) {
	values, ok := r.Header["Authorization"]
	if !ok || len(values) == 0 {
		return "", httperrors.ErrMissingAuthHeader
	}
	value := values[0]
	if !isVisibleASCII(value) {
		return "", httperrors.ErrInvalidAuthHeader
	}
	// net/http recorta el espacio final del valor, así que "Bearer " llega como "Bearer".
	if value == strings.TrimSpace(bearerPrefix) {
		return "", httperrors.ErrEmptyBearer
	}
	token, found := strings.CutPrefix(value, bearerPrefix)
	if !found {
		return "", httperrors.ErrInvalidBearer
	}
	if token == "" {
		return "", httperrors.ErrEmptyBearer
	}
	return token, nil
}

// isVisibleASCII acepta solo ASCII visible, espacio y tab: lo que un header
// puede contener y aún leerse como texto.
func isVisibleASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b == '\t' {
			continue
		}
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

// classify traduce un error de verificación al resultado de métricas y al AppError.
func classify(err error) (string, *httperrors.AppError) {
	cause := ""
	var verr *jwtx.VerifyError
	if errors.As(err, &verr) {
		cause = verr.Cause()
	}

	switch {
	case errors.Is(err, jwtx.ErrMalformedHeader):
		return metrics.ResultMalformedHeader, httperrors.ErrInvalidTokenHeader.WithDetail(cause).WithCause(err)
	case errors.Is(err, jwtx.ErrKeyMismatch):
		return metrics.ResultKeyMismatch, httperrors.ErrKeyMismatch.WithCause(err)
	case errors.Is(err, jwtx.ErrInvalidKeyMaterial):
		return metrics.ResultInvalidKeyMaterial, httperrors.ErrDecodingKey.WithDetail(cause).WithCause(err)
	case errors.Is(err, jwtx.ErrInvalidToken):
		return metrics.ResultInvalidToken, httperrors.ErrInvalidToken.WithDetail(cause).WithCause(err)
	}
	return metrics.ResultInternal, httperrors.ErrInternalServerError.WithCause(err)
}
